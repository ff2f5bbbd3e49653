package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kozaktomas/art-inventory/internal/config"
	"github.com/kozaktomas/art-inventory/internal/database"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Options controls which commercial fields appear in the catalog.
type Options struct {
	IncludePrice    bool
	IncludeStatus   bool
	IncludeLocation bool
}

// LabeledValue is one "Label: value" row on a page.
type LabeledValue struct {
	Label string
	Value string
}

// PreparedFields is the presentation-ready content of one catalog page.
type PreparedFields struct {
	EditionID    string
	Title        string
	TitleZH      string
	ThumbnailURL string
	SourceURL    string

	// Info holds year, type, materials, dimensions, duration and the edition
	// summary, in that order, with empty values left out.
	Info []LabeledValue

	// Edition holds the single-edition rows (number, price, status, location)
	// used when the page has no edition detail lines.
	Edition []LabeledValue

	// EditionDetailsLabel heads EditionLines.
	EditionDetailsLabel string
	// EditionLines lists every sibling edition of the artwork in this export,
	// set only when there are at least two.
	EditionLines []string
}

// PrepareFields projects records into page content, one entry per record in order.
func PrepareFields(records []database.ExportRecord, opts Options, labels config.LabelsConfig) []PreparedFields {
	siblings := make(map[string][]database.ExportRecord)
	for _, r := range records {
		siblings[r.ArtworkID] = append(siblings[r.ArtworkID], r)
	}

	p := newFieldPrinter(labels, opts)

	out := make([]PreparedFields, 0, len(records))
	for _, r := range records {
		f := PreparedFields{
			EditionID:           r.EditionID,
			Title:               strings.TrimSpace(r.Title),
			TitleZH:             strings.TrimSpace(r.TitleZH),
			ThumbnailURL:        deref(r.ThumbnailURL),
			SourceURL:           deref(r.SourceURL),
			EditionDetailsLabel: labels.Field("edition_details"),
		}

		year := ""
		if r.Year != nil {
			year = strconv.Itoa(*r.Year)
		}
		f.Info = appendNonEmpty(f.Info,
			LabeledValue{labels.Field("year"), year},
			LabeledValue{labels.Field("type"), r.Type},
			LabeledValue{labels.Field("materials"), r.Materials},
			LabeledValue{labels.Field("dimensions"), r.Dimensions},
			LabeledValue{labels.Field("duration"), r.Duration},
			LabeledValue{labels.Field("edition_summary"), p.editionSummary(r)},
		)

		if group := siblings[r.ArtworkID]; len(group) >= 2 {
			for _, s := range group {
				f.EditionLines = append(f.EditionLines, p.editionLine(s))
			}
		} else {
			f.Edition = p.editionFields(r)
		}

		out = append(out, f)
	}
	return out
}

type fieldPrinter struct {
	labels  config.LabelsConfig
	opts    Options
	printer *message.Printer
	title   cases.Caser
}

func newFieldPrinter(labels config.LabelsConfig, opts Options) *fieldPrinter {
	return &fieldPrinter{
		labels:  labels,
		opts:    opts,
		printer: message.NewPrinter(language.English),
		title:   cases.Title(language.English),
	}
}

// editionSummary describes the artwork's edition structure, e.g. "Edition of 10 + 2 AP".
func (p *fieldPrinter) editionSummary(r database.ExportRecord) string {
	var parts []string
	if r.ArtworkEditionTotal != nil && *r.ArtworkEditionTotal > 0 {
		parts = append(parts, fmt.Sprintf("%s of %d", p.labels.EditionType(database.EditionNumbered), *r.ArtworkEditionTotal))
	}
	if r.ArtworkAPTotal != nil && *r.ArtworkAPTotal > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", *r.ArtworkAPTotal, p.labels.EditionType(database.EditionAP)))
	}
	if len(parts) == 0 && r.EditionType == database.EditionUnique {
		return p.labels.EditionType(database.EditionUnique)
	}
	return strings.Join(parts, " + ")
}

// editionLabel names one edition, e.g. "3/10", "AP 1/2" or "Unique".
func (p *fieldPrinter) editionLabel(r database.ExportRecord) string {
	numbered := ""
	if r.EditionNumber != nil {
		numbered = strconv.Itoa(*r.EditionNumber)
		if r.EditionTotal != nil && *r.EditionTotal > 0 {
			numbered += "/" + strconv.Itoa(*r.EditionTotal)
		}
	}

	switch r.EditionType {
	case database.EditionAP:
		ap := p.labels.EditionType(database.EditionAP)
		if numbered == "" {
			return ap
		}
		return ap + " " + numbered
	case database.EditionUnique:
		return p.labels.EditionType(database.EditionUnique)
	default:
		if numbered == "" {
			return p.labels.EditionType(r.EditionType)
		}
		return numbered
	}
}

func (p *fieldPrinter) editionFields(r database.ExportRecord) []LabeledValue {
	fields := []LabeledValue{{p.labels.Field("edition_number"), p.editionLabel(r)}}
	if p.opts.IncludePrice {
		fields = append(fields, LabeledValue{p.labels.Field("price"), p.price(r.Currency, r.Price)})
	}
	if p.opts.IncludeStatus {
		fields = append(fields, LabeledValue{p.labels.Field("status"), p.status(r.Status)})
	}
	if p.opts.IncludeLocation {
		fields = append(fields, LabeledValue{p.labels.Field("location"), deref(r.Location)})
	}
	return appendNonEmpty(nil, fields...)
}

// editionLine renders one sibling edition as "3/10 | USD 5,000.00 | Sold | Studio".
func (p *fieldPrinter) editionLine(r database.ExportRecord) string {
	parts := []string{p.editionLabel(r)}
	if p.opts.IncludePrice {
		if v := p.price(r.Currency, r.Price); v != "" {
			parts = append(parts, v)
		}
	}
	if p.opts.IncludeStatus {
		if v := p.status(r.Status); v != "" {
			parts = append(parts, v)
		}
	}
	if p.opts.IncludeLocation {
		if v := deref(r.Location); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

// price formats an amount with its currency's standard scale, e.g. "USD 5,000.00"
// or "JPY 500,000". An unknown or missing currency code falls back to two decimals.
func (p *fieldPrinter) price(code *string, amount *float64) string {
	if amount == nil {
		return ""
	}
	scale := 2
	prefix := ""
	if code != nil && strings.TrimSpace(*code) != "" {
		iso := strings.ToUpper(strings.TrimSpace(*code))
		prefix = iso + " "
		if unit, err := currency.ParseISO(iso); err == nil {
			scale, _ = currency.Standard.Rounding(unit)
			prefix = unit.String() + " "
		}
	}
	return prefix + p.printer.Sprintf("%v", number.Decimal(*amount, number.Scale(scale)))
}

func (p *fieldPrinter) status(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if label, ok := p.labels.Status(s); ok {
		return label
	}
	return p.title.String(strings.ReplaceAll(s, "_", " "))
}

func appendNonEmpty(dst []LabeledValue, values ...LabeledValue) []LabeledValue {
	for _, v := range values {
		if strings.TrimSpace(v.Value) != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
