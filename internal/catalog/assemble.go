package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/art-inventory/internal/config"
	"github.com/kozaktomas/art-inventory/internal/constants"
	"github.com/kozaktomas/art-inventory/internal/database"
)

var (
	// ErrNoRecords is returned when an export job has nothing to render.
	ErrNoRecords = errors.New("no records to export")
	// ErrEmptyScope is returned when an export scope names no artworks or editions.
	ErrEmptyScope = errors.New("export scope is empty")
)

const genericFilename = "catalog"

// Result is a finished catalog.
type Result struct {
	Data     []byte
	Filename string
	Report   *ExportReport
}

// Assembler turns export records into a catalog PDF.
type Assembler struct {
	batcher    *Batcher
	fonts      FontLoader
	labels     config.LabelsConfig
	copyright  string
	author     string
	jobTimeout time.Duration
	now        func() time.Time
}

// NewAssembler creates an Assembler. fonts may be nil. A non-positive
// jobTimeout uses the default.
func NewAssembler(batcher *Batcher, fonts FontLoader, labels config.LabelsConfig, catalog config.CatalogConfig, jobTimeout time.Duration) *Assembler {
	if jobTimeout <= 0 {
		jobTimeout = constants.DefaultJobTimeoutSeconds * time.Second
	}
	return &Assembler{
		batcher:    batcher,
		fonts:      fonts,
		labels:     labels,
		copyright:  catalog.Copyright,
		author:     catalog.Author,
		jobTimeout: jobTimeout,
		now:        time.Now,
	}
}

// NewAssemblerFromConfig wires an Assembler with an HTTP fetcher and the
// configured CJK font source.
func NewAssemblerFromConfig(cfg *config.Config) *Assembler {
	fetcher := NewHTTPFetcher(cfg.Export.FetchTimeout, cfg.Export.StrictContentType)
	batcher := NewBatcher(fetcher, cfg.Export.BatchSize)
	fonts := NewCJKFontLoader(cfg.Catalog.CJKFontPath, cfg.Catalog.CJKFontURL)
	return NewAssembler(batcher, fonts, cfg.Labels, cfg.Catalog, cfg.Export.JobTimeout)
}

// Batcher returns the batcher used for thumbnail fetches.
func (a *Assembler) Batcher() *Batcher {
	return a.batcher
}

// Export resolves scope through reader and assembles the resulting records.
func (a *Assembler) Export(ctx context.Context, reader database.CatalogReader, scope database.ExportScope, opts Options) (*Result, error) {
	if scope.IsEmpty() {
		return nil, ErrEmptyScope
	}
	records, err := reader.ResolveExportRecords(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve export records: %w", err)
	}
	return a.Assemble(ctx, records, opts)
}

// Assemble renders one page per record, in order. Thumbnail fetching is
// bounded by the job timeout; pages whose thumbnail is unavailable are
// rendered without an image.
func (a *Assembler) Assemble(ctx context.Context, records []database.ExportRecord, opts Options) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	jobID := uuid.NewString()
	log.Printf("Catalog export %s: %d records", jobID, len(records))

	fetchCtx, cancel := context.WithTimeout(ctx, a.jobTimeout)
	defer cancel()

	report := &ExportReport{
		JobID:         jobID,
		RecordCount:   len(records),
		MissingImages: []string{},
		Warnings:      []string{},
	}

	fields := PrepareFields(records, opts, a.labels)
	font := a.loadFont(fetchCtx, fields, report)

	start := time.Now()
	cache := a.batcher.BuildCache(fetchCtx, records)
	log.Printf("Catalog export %s: %d images fetched in %s, %d unavailable",
		jobID, cache.Len(), time.Since(start).Round(time.Millisecond), len(cache.Missing()))

	filename := Filename(records, a.now())

	ds := NewDocumentState(Metadata{
		Title:     documentTitle(records),
		Author:    a.author,
		Copyright: a.copyright,
	}, font)

	for i, f := range fields {
		RenderPage(ds, f, cache.Get(f.ThumbnailURL), i == 0)
	}

	data, err := ds.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to assemble catalog: %w", err)
	}

	report.Filename = filename
	report.PageCount = ds.PageCount()
	report.ImageCount = cache.Len()
	report.MissingImages = append(report.MissingImages, cache.Missing()...)
	report.Warnings = append(report.Warnings, ds.Warnings()...)

	log.Printf("Catalog export %s: %d pages, %d bytes", jobID, report.PageCount, len(data))

	return &Result{Data: data, Filename: filename, Report: report}, nil
}

// loadFont fetches the CJK font when any drawn text contains CJK characters.
// Failures only degrade CJK rendering.
func (a *Assembler) loadFont(ctx context.Context, fields []PreparedFields, report *ExportReport) []byte {
	if !fieldsNeedCJK(fields) {
		return nil
	}
	var font []byte
	var err error
	if a.fonts != nil {
		font, err = a.fonts.LoadCJKFont(ctx)
	}
	switch {
	case err != nil:
		report.warn("CJK font unavailable, Chinese text omitted: %v", err)
	case font == nil:
		report.warn("no CJK font configured, Chinese text omitted")
	}
	return font
}

// fieldsNeedCJK reports whether any text the layout draws in a per-value font
// contains CJK characters.
func fieldsNeedCJK(fields []PreparedFields) bool {
	for _, f := range fields {
		if containsCJK(f.Title) || containsCJK(f.TitleZH) || containsCJK(f.SourceURL) {
			return true
		}
		for _, lv := range f.Info {
			if containsCJK(lv.Value) {
				return true
			}
		}
		for _, lv := range f.Edition {
			if containsCJK(lv.Value) {
				return true
			}
		}
		for _, line := range f.EditionLines {
			if containsCJK(line) {
				return true
			}
		}
	}
	return false
}

// Filename derives the download name of a catalog: the slugged title for a
// single record, a generic name otherwise, suffixed with the date.
func Filename(records []database.ExportRecord, now time.Time) string {
	base := genericFilename
	if len(records) == 1 {
		if slug := Slugify(records[0].Title); slug != "" {
			base = slug
		}
	}
	return fmt.Sprintf("%s-%s.pdf", base, now.Format(time.DateOnly))
}

func documentTitle(records []database.ExportRecord) string {
	if len(records) == 1 && records[0].Title != "" {
		return records[0].Title
	}
	return "Catalog"
}
