package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{"object", http.StatusOK, map[string]int{"pages": 3}, "{\"pages\":3}\n"},
		{"nil data", http.StatusNoContent, nil, ""},
		{"array", http.StatusCreated, []string{"a", "b"}, "[\"a\",\"b\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondJSON(recorder, tt.status, tt.data)

			assertStatusCode(t, recorder, tt.status)
			assertContentType(t, recorder, "application/json")
			if recorder.Body.String() != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, http.StatusNotFound, "no records found for export")

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "no records found for export")
}

func TestHealthCheck(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPost} {
		recorder := httptest.NewRecorder()
		HealthCheck(recorder, httptest.NewRequest(method, "/api/v1/health", nil))

		assertStatusCode(t, recorder, http.StatusOK)
		var resp map[string]string
		parseJSONResponse(t, recorder, &resp)
		if resp["status"] != "ok" {
			t.Errorf("%s: expected status ok, got %q", method, resp["status"])
		}
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("line1\nline2\r\n"); got != "line1line2" {
		t.Errorf("expected newlines stripped, got %q", got)
	}
}

func TestCleanIDs(t *testing.T) {
	got := cleanIDs([]string{" a ", "", "b", "a", "  ", "c"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
