package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/kozaktomas/art-inventory/internal/constants"
	"github.com/lvillar/gofpdf"
)

const (
	latinFamily = "Helvetica"
	cjkFamily   = "cjk"
	creator     = "art-inventory"
)

var errUnsupportedImage = errors.New("image type cannot be embedded")

// Metadata is written into the PDF document information dictionary.
type Metadata struct {
	Title     string
	Author    string
	Copyright string
}

// DocumentState owns the PDF canvas of one export job together with the
// layout cursor. It is threaded through every layout call and must not be
// used from more than one goroutine.
type DocumentState struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	cjk   bool
	y     float64
	pageW float64
	pageH float64

	// images registered with the PDF, and images whose registration failed
	registered map[string]bool
	failed     map[string]error

	warnings []string
}

// NewDocumentState creates an A4 portrait document with its first page already
// added. cjkFont may be nil, in which case CJK text falls back to the Latin font.
func NewDocumentState(meta Metadata, cjkFont []byte) *DocumentState {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(constants.PageMarginMM, constants.PageMarginMM, constants.PageMarginMM)
	pdf.SetAutoPageBreak(false, 0)

	ds := &DocumentState{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		registered: make(map[string]bool),
		failed:     make(map[string]error),
	}
	ds.pageW, ds.pageH = pdf.GetPageSize()

	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	pdf.SetCreator(creator, true)

	if len(cjkFont) > 0 {
		ds.cjk = ds.registerCJKFont(cjkFont)
	}

	copyright := meta.Copyright
	pdf.SetFooterFunc(func() {
		if copyright == "" {
			return
		}
		pdf.SetFont(latinFamily, "", 8)
		pdf.SetTextColor(mutedGray, mutedGray, mutedGray)
		pdf.SetXY(constants.PageMarginMM, ds.pageH-constants.BottomMarginMM)
		pdf.CellFormat(ds.ContentWidth(), 4, ds.tr(copyright), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	ds.y = constants.PageMarginMM
	return ds
}

// registerCJKFont adds the TrueType font under cjkFamily. Malformed font data
// can make the font parser panic, which is treated like any other failure.
func (ds *DocumentState) registerCJKFont(font []byte) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: CJK font could not be parsed: %v", r)
			ds.pdf.ClearError()
			ok = false
		}
	}()

	ds.pdf.AddUTF8FontFromBytes(cjkFamily, "", font)
	// Selecting the font fails when the parser rejected it without reporting.
	ds.pdf.SetFont(cjkFamily, "", bodySize)
	if ds.pdf.Err() {
		log.Printf("WARNING: CJK font could not be registered: %v", ds.pdf.Error())
		ds.pdf.ClearError()
		return false
	}
	ds.pdf.SetFont(latinFamily, "", bodySize)
	return true
}

// warn logs a degraded rendering step and keeps it for the export report.
func (ds *DocumentState) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("WARNING: %s", msg)
	ds.warnings = append(ds.warnings, msg)
}

// Warnings returns the rendering problems recorded so far.
func (ds *DocumentState) Warnings() []string {
	return ds.warnings
}

// CJKAvailable reports whether a CJK font is loaded for this document.
func (ds *DocumentState) CJKAvailable() bool {
	return ds.cjk
}

// NewPage starts a new page and resets the cursor to the top margin.
func (ds *DocumentState) NewPage() {
	ds.pdf.AddPage()
	ds.y = constants.PageMarginMM
}

// Y returns the vertical cursor position.
func (ds *DocumentState) Y() float64 {
	return ds.y
}

// Advance moves the cursor down by dy.
func (ds *DocumentState) Advance(dy float64) {
	ds.y += dy
}

// ContentWidth returns the page width between the side margins.
func (ds *DocumentState) ContentWidth() float64 {
	return ds.pageW - 2*constants.PageMarginMM
}

// PageSize returns the page width and height.
func (ds *DocumentState) PageSize() (float64, float64) {
	return ds.pageW, ds.pageH
}

// PageCount returns the number of pages added so far.
func (ds *DocumentState) PageCount() int {
	return ds.pdf.PageNo()
}

// useFont selects the CJK font when text needs it and one is loaded, otherwise
// the Latin font. It returns the function that encodes text for the chosen font.
func (ds *DocumentState) useFont(text, style string, size float64) func(string) string {
	if ds.cjk && containsCJK(text) {
		// The CJK font is registered in one style only.
		ds.pdf.SetFont(cjkFamily, "", size)
		return func(s string) string { return s }
	}
	ds.pdf.SetFont(latinFamily, style, size)
	return ds.tr
}

func (ds *DocumentState) setTextGray(level int) {
	ds.pdf.SetTextColor(level, level, level)
}

// drawImage places handle at the given box. Bytes are registered with the PDF on
// first use and referenced by key afterwards.
func (ds *DocumentState) drawImage(handle *ImageHandle, x, y, w, h float64) error {
	if handle.ImageType == "" {
		return fmt.Errorf("%w: %s", errUnsupportedImage, handle.Key)
	}
	if err, ok := ds.failed[handle.Key]; ok {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: handle.ImageType}
	if !ds.registered[handle.Key] {
		ds.pdf.RegisterImageOptionsReader(handle.Key, opts, bytes.NewReader(handle.Data))
		if ds.pdf.Err() {
			err := fmt.Errorf("failed to register image %s: %w", handle.Key, ds.pdf.Error())
			ds.pdf.ClearError()
			ds.failed[handle.Key] = err
			return err
		}
		ds.registered[handle.Key] = true
	}

	ds.pdf.ImageOptions(handle.Key, x, y, w, h, false, opts, 0, "")
	if ds.pdf.Err() {
		err := fmt.Errorf("failed to draw image %s: %w", handle.Key, ds.pdf.Error())
		ds.pdf.ClearError()
		return err
	}
	return nil
}

// Bytes closes the document and returns the serialized PDF.
func (ds *DocumentState) Bytes() ([]byte, error) {
	if ds.pdf.Err() {
		return nil, fmt.Errorf("failed to build PDF: %w", ds.pdf.Error())
	}
	var buf bytes.Buffer
	if err := ds.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
