package catalog

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"River at Dusk", "river-at-dusk"},
		{"Über Blau (II)", "uber-blau-ii"},
		{"  Příliš žluťoučký kůň  ", "prilis-zlutoucky-kun"},
		{"No. 5 / Untitled", "no-5-untitled"},
		{"---", ""},
		{"河流", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
