package database

import "testing"

func TestExportScopeIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		scope ExportScope
		want  bool
	}{
		{"zero value", ExportScope{}, true},
		{"empty slices", ExportScope{ArtworkIDs: []string{}, EditionIDs: []string{}}, true},
		{"artworks only", ExportScope{ArtworkIDs: []string{"a1"}}, false},
		{"editions only", ExportScope{EditionIDs: []string{"e1"}}, false},
		{"both", ExportScope{ArtworkIDs: []string{"a1"}, EditionIDs: []string{"e1"}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.scope.IsEmpty(); got != tc.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGetCatalogReader_NotInitialized(t *testing.T) {
	ResetForTesting()
	t.Cleanup(ResetForTesting)

	if _, err := GetCatalogReader(t.Context()); err == nil {
		t.Error("expected error when backend is not initialized")
	}

	RegisterPostgresBackend()
	if _, err := GetCatalogReader(t.Context()); err == nil {
		t.Error("expected error when catalog store is not registered")
	}
}
