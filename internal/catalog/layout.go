package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kozaktomas/art-inventory/internal/constants"
)

const (
	titleSize     = 18.0
	titleLineH    = 8.0
	subtitleSize  = 14.0
	subtitleLineH = 7.0
	bodySize      = 11.0
	bodyLineH     = 6.0
	smallSize     = 8.0
	smallLineH    = 4.0
	blockGap      = 4.0
	imageGap      = 8.0
	imageErrorGap = 4.0
	labelColumnW  = 40.0
	bulletIndent  = 5.0
	mutedGray     = 120
	textBlack     = 0
	bulletPrefix  = "• "
)

// RenderPage draws one record onto the document: thumbnail, titles, info rows,
// edition rows and source link. Every page after the first starts a new PDF
// page. img may be nil. Drawing errors are logged and never abort the page.
func RenderPage(ds *DocumentState, f PreparedFields, img *ImageHandle, isFirstPage bool) {
	if !isFirstPage {
		ds.NewPage()
	} else {
		ds.y = constants.PageMarginMM
	}

	if img != nil {
		renderImage(ds, img)
	}

	if f.Title != "" {
		renderCentered(ds, f.Title, "B", titleSize, titleLineH, textBlack)
		ds.Advance(blockGap)
	}
	if f.TitleZH != "" && ds.CJKAvailable() {
		renderCentered(ds, f.TitleZH, "", subtitleSize, subtitleLineH, mutedGray)
		ds.Advance(blockGap)
	}

	for _, lv := range f.Info {
		renderLabeled(ds, lv)
	}

	if len(f.EditionLines) >= 2 {
		ds.Advance(blockGap)
		renderEditionDetails(ds, f.EditionDetailsLabel, f.EditionLines)
	} else {
		for _, lv := range f.Edition {
			renderLabeled(ds, lv)
		}
	}

	if f.SourceURL != "" {
		ds.Advance(blockGap)
		renderCentered(ds, f.SourceURL, "", smallSize, smallLineH, mutedGray)
	}
}

func renderImage(ds *DocumentState, img *ImageHandle) {
	w, h := fitImage(constants.ImageBoxMM, constants.ImageBoxMM, img.Width, img.Height)
	pageW, _ := ds.PageSize()
	x := (pageW - w) / 2

	if err := ds.drawImage(img, x, ds.y, w, h); err != nil {
		ds.warn("image skipped: %v", err)
		ds.Advance(imageErrorGap)
		return
	}
	ds.Advance(h + imageGap)
}

// fitImage scales a w x h image into a boxW x boxH box preserving its aspect
// ratio. Landscape images take the full box width, all others the full height.
func fitImage(boxW, boxH float64, w, h int) (float64, float64) {
	if w <= 0 || h <= 0 {
		return boxW, boxH
	}
	aspect := float64(w) / float64(h)
	if aspect > 1 {
		return boxW, boxW / aspect
	}
	return boxH * aspect, boxH
}

func renderCentered(ds *DocumentState, text, style string, size, lineH float64, gray int) {
	enc := ds.useFont(text, style, size)
	ds.setTextGray(gray)
	width := ds.ContentWidth()
	lines := wrapLines(text, width, func(s string) float64 { return ds.pdf.GetStringWidth(enc(s)) })
	for _, line := range lines {
		ds.pdf.SetXY(constants.PageMarginMM, ds.y)
		ds.pdf.CellFormat(width, lineH, enc(line), "", 0, "C", false, 0, "")
		ds.Advance(lineH)
	}
	ds.setTextGray(textBlack)
}

// renderLabeled draws "Label  value" with the value wrapped in its own column.
// The value font is chosen per field so Chinese values render next to Latin labels.
func renderLabeled(ds *DocumentState, lv LabeledValue) {
	ds.pdf.SetFont(latinFamily, "B", bodySize)
	ds.pdf.SetXY(constants.PageMarginMM, ds.y)
	ds.pdf.CellFormat(labelColumnW, bodyLineH, ds.tr(lv.Label), "", 0, "L", false, 0, "")

	valueW := ds.ContentWidth() - labelColumnW
	enc := ds.useFont(lv.Value, "", bodySize)
	lines := wrapLines(lv.Value, valueW, func(s string) float64 { return ds.pdf.GetStringWidth(enc(s)) })
	for _, line := range lines {
		ds.pdf.SetXY(constants.PageMarginMM+labelColumnW, ds.y)
		ds.pdf.CellFormat(valueW, bodyLineH, enc(line), "", 0, "L", false, 0, "")
		ds.Advance(bodyLineH)
	}
}

// renderEditionDetails draws a bulleted list of sibling editions, continuing on
// a new page whenever the next line would cross the bottom threshold.
func renderEditionDetails(ds *DocumentState, heading string, lines []string) {
	ensureSpace(ds, 2*bodyLineH)
	ds.pdf.SetFont(latinFamily, "B", bodySize)
	ds.pdf.SetXY(constants.PageMarginMM, ds.y)
	ds.pdf.CellFormat(ds.ContentWidth(), bodyLineH, ds.tr(heading), "", 0, "L", false, 0, "")
	ds.Advance(bodyLineH)

	width := ds.ContentWidth() - bulletIndent
	for _, line := range lines {
		enc := ds.useFont(line, "", bodySize)
		wrapped := wrapLines(bulletPrefix+line, width, func(s string) float64 { return ds.pdf.GetStringWidth(enc(s)) })
		for _, w := range wrapped {
			ensureSpace(ds, bodyLineH)
			ds.pdf.SetXY(constants.PageMarginMM+bulletIndent, ds.y)
			ds.pdf.CellFormat(width, bodyLineH, enc(w), "", 0, "L", false, 0, "")
			ds.Advance(bodyLineH)
		}
	}
}

// ensureSpace starts a new page when dy more millimetres would cross the bottom threshold.
func ensureSpace(ds *DocumentState, dy float64) {
	_, pageH := ds.PageSize()
	if ds.y+dy > pageH-constants.ContentBottomMM {
		ds.NewPage()
	}
}

// wrapLines breaks text into lines no wider than width as reported by measure.
// Words wider than a line, and runs of CJK text without spaces, are broken
// between runes.
func wrapLines(text string, width float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, width, measure)...)
	}
	return lines
}

func wrapParagraph(text string, width float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if measure(word) <= width {
			current = word
			continue
		}
		// Break an overlong word between runes.
		for _, r := range word {
			next := current + string(r)
			if current != "" && measure(next) > width {
				lines = append(lines, current)
				next = string(r)
			}
			current = next
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func containsCJK(s string) bool {
	for _, r := range s {
		if r < utf8.RuneSelf {
			continue
		}
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
			(r >= 0x3000 && r <= 0x303F) || (r >= 0xFF00 && r <= 0xFFEF) {
			return true
		}
	}
	return false
}
