package catalog

import (
	"fmt"
	"log"
)

// ExportReport describes the outcome of one export job.
type ExportReport struct {
	JobID         string   `json:"job_id"`
	Filename      string   `json:"filename"`
	PageCount     int      `json:"page_count"`
	RecordCount   int      `json:"record_count"`
	ImageCount    int      `json:"image_count"`
	MissingImages []string `json:"missing_images"`
	Warnings      []string `json:"warnings"`
}

// HasWarnings reports whether the export degraded anywhere.
func (r *ExportReport) HasWarnings() bool {
	return len(r.Warnings) > 0 || len(r.MissingImages) > 0
}

func (r *ExportReport) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("WARNING: %s", msg)
	r.Warnings = append(r.Warnings, msg)
}
