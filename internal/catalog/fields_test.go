package catalog

import (
	"testing"

	"github.com/kozaktomas/art-inventory/internal/config"
	"github.com/kozaktomas/art-inventory/internal/database"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func numberedRecord(editionID string, number int) database.ExportRecord {
	return database.ExportRecord{
		ArtworkID:           "art-1",
		EditionID:           editionID,
		Title:               "River",
		Year:                intPtr(2021),
		Type:                "Photograph",
		Dimensions:          "60 x 90 cm",
		EditionType:         database.EditionNumbered,
		EditionNumber:       intPtr(number),
		EditionTotal:        intPtr(10),
		ArtworkEditionTotal: intPtr(10),
		ArtworkAPTotal:      intPtr(2),
		Currency:            strPtr("USD"),
		Price:               floatPtr(5000),
		Status:              "sold",
		Location:            strPtr("Studio"),
	}
}

func assertLabeled(t *testing.T, got []LabeledValue, want []LabeledValue) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPrepareFields_SingleEdition(t *testing.T) {
	labels := config.LoadLabels()
	opts := Options{IncludePrice: true, IncludeStatus: true, IncludeLocation: true}

	got := PrepareFields([]database.ExportRecord{numberedRecord("e1", 3)}, opts, labels)
	if len(got) != 1 {
		t.Fatalf("expected 1 field set, got %d", len(got))
	}
	f := got[0]

	assertLabeled(t, f.Info, []LabeledValue{
		{"Year", "2021"},
		{"Type", "Photograph"},
		{"Dimensions", "60 x 90 cm"},
		{"Edition", "Edition of 10 + 2 AP"},
	})
	assertLabeled(t, f.Edition, []LabeledValue{
		{"Edition No.", "3/10"},
		{"Price", "USD 5,000.00"},
		{"Status", "Sold"},
		{"Location", "Studio"},
	})
	if len(f.EditionLines) != 0 {
		t.Errorf("expected no edition lines, got %v", f.EditionLines)
	}
}

func TestPrepareFields_InclusionFlags(t *testing.T) {
	labels := config.LoadLabels()
	got := PrepareFields([]database.ExportRecord{numberedRecord("e1", 3)}, Options{}, labels)
	assertLabeled(t, got[0].Edition, []LabeledValue{{"Edition No.", "3/10"}})

	got = PrepareFields([]database.ExportRecord{numberedRecord("e1", 3)}, Options{IncludeStatus: true}, labels)
	assertLabeled(t, got[0].Edition, []LabeledValue{{"Edition No.", "3/10"}, {"Status", "Sold"}})
}

func TestPrepareFields_SiblingEditions(t *testing.T) {
	labels := config.LoadLabels()
	ap := numberedRecord("e3", 1)
	ap.EditionType = database.EditionAP
	ap.EditionTotal = intPtr(2)
	ap.Price = nil
	ap.Location = nil
	ap.Status = "on_loan"

	other := database.ExportRecord{ArtworkID: "art-2", EditionID: "u1", Title: "Stone", EditionType: database.EditionUnique}

	records := []database.ExportRecord{numberedRecord("e1", 1), numberedRecord("e2", 2), ap, other}
	opts := Options{IncludePrice: true, IncludeStatus: true, IncludeLocation: true}
	got := PrepareFields(records, opts, labels)

	want := []string{
		"1/10 | USD 5,000.00 | Sold | Studio",
		"2/10 | USD 5,000.00 | Sold | Studio",
		"AP 1/2 | On Loan",
	}
	for i := range 3 {
		f := got[i]
		if len(f.EditionLines) != len(want) {
			t.Fatalf("record %d: expected %d lines, got %v", i, len(want), f.EditionLines)
		}
		for j := range want {
			if f.EditionLines[j] != want[j] {
				t.Errorf("record %d line %d: expected %q, got %q", i, j, want[j], f.EditionLines[j])
			}
		}
		if len(f.Edition) != 0 {
			t.Errorf("record %d: expected no single-edition rows, got %v", i, f.Edition)
		}
		if f.EditionDetailsLabel != "Edition Details" {
			t.Errorf("unexpected heading %q", f.EditionDetailsLabel)
		}
	}

	stone := got[3]
	if len(stone.EditionLines) != 0 {
		t.Errorf("expected no edition lines for a single edition, got %v", stone.EditionLines)
	}
	assertLabeled(t, stone.Info, []LabeledValue{{"Edition", "Unique"}})
	assertLabeled(t, stone.Edition, []LabeledValue{{"Edition No.", "Unique"}})
}

func TestEditionLabel(t *testing.T) {
	p := newFieldPrinter(config.LoadLabels(), Options{})
	tests := []struct {
		name string
		rec  database.ExportRecord
		want string
	}{
		{"numbered with total", database.ExportRecord{EditionType: "numbered", EditionNumber: intPtr(3), EditionTotal: intPtr(10)}, "3/10"},
		{"numbered without total", database.ExportRecord{EditionType: "numbered", EditionNumber: intPtr(3)}, "3"},
		{"numbered without number", database.ExportRecord{EditionType: "numbered"}, "Edition"},
		{"ap with total", database.ExportRecord{EditionType: "ap", EditionNumber: intPtr(1), EditionTotal: intPtr(2)}, "AP 1/2"},
		{"ap without number", database.ExportRecord{EditionType: "ap"}, "AP"},
		{"unique", database.ExportRecord{EditionType: "unique", EditionNumber: intPtr(1)}, "Unique"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.editionLabel(tt.rec); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEditionSummary(t *testing.T) {
	p := newFieldPrinter(config.LoadLabels(), Options{})
	tests := []struct {
		name string
		rec  database.ExportRecord
		want string
	}{
		{"edition and proofs", database.ExportRecord{ArtworkEditionTotal: intPtr(10), ArtworkAPTotal: intPtr(2)}, "Edition of 10 + 2 AP"},
		{"edition only", database.ExportRecord{ArtworkEditionTotal: intPtr(5)}, "Edition of 5"},
		{"unique", database.ExportRecord{EditionType: "unique"}, "Unique"},
		{"unknown", database.ExportRecord{EditionType: "numbered"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.editionSummary(tt.rec); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	got := PrepareFields(nil, Options{}, config.LoadLabels())
	if len(got) != 0 {
		t.Fatalf("expected no fields, got %d", len(got))
	}

	p := newFieldPrinter(config.LoadLabels(), Options{})
	tests := []struct {
		name     string
		currency *string
		amount   *float64
		want     string
	}{
		{"usd", strPtr("USD"), floatPtr(5000), "USD 5,000.00"},
		{"lowercase code", strPtr("eur"), floatPtr(1234.5), "EUR 1,234.50"},
		{"zero-decimal currency", strPtr("JPY"), floatPtr(500000), "JPY 500,000"},
		{"no currency", nil, floatPtr(99), "99.00"},
		{"unknown currency", strPtr("XYZ1"), floatPtr(10), "XYZ1 10.00"},
		{"no amount", strPtr("USD"), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.price(tt.currency, tt.amount); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	p := newFieldPrinter(config.LoadLabels(), Options{})
	tests := []struct {
		in, want string
	}{
		{"sold", "Sold"},
		{"NOT_FOR_SALE", "Not for Sale"},
		{"in_transit", "In Transit"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := p.status(tt.in); got != tt.want {
			t.Errorf("status(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
