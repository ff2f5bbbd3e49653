package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/kozaktomas/art-inventory/internal/catalog"
	"github.com/kozaktomas/art-inventory/internal/constants"
	"github.com/kozaktomas/art-inventory/internal/database"
)

// ExportHandler serves catalog PDF exports
type ExportHandler struct {
	assembler *catalog.Assembler
}

// NewExportHandler creates a new export handler
func NewExportHandler(assembler *catalog.Assembler) *ExportHandler {
	return &ExportHandler{assembler: assembler}
}

type exportRequest struct {
	ArtworkIDs      []string `json:"artwork_ids"`
	EditionIDs      []string `json:"edition_ids"`
	IncludePrice    bool     `json:"include_price"`
	IncludeStatus   bool     `json:"include_status"`
	IncludeLocation bool     `json:"include_location"`
}

// cleanIDs trims IDs and drops empty and repeated ones, keeping request order.
func cleanIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Export renders the requested artworks and editions as a catalog PDF.
// With ?format=report the export report is returned as JSON instead.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxExportRequestSize)
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	scope := database.ExportScope{
		ArtworkIDs: cleanIDs(req.ArtworkIDs),
		EditionIDs: cleanIDs(req.EditionIDs),
	}
	if scope.IsEmpty() {
		respondError(w, http.StatusBadRequest, "artwork_ids or edition_ids required")
		return
	}
	if n := len(scope.ArtworkIDs) + len(scope.EditionIDs); n > constants.MaxExportScopeIDs {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("too many IDs: %d (max %d)", n, constants.MaxExportScopeIDs))
		return
	}

	reader, err := database.GetCatalogReader(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog storage not available")
		return
	}

	opts := catalog.Options{
		IncludePrice:    req.IncludePrice,
		IncludeStatus:   req.IncludeStatus,
		IncludeLocation: req.IncludeLocation,
	}
	result, err := h.assembler.Export(r.Context(), reader, scope, opts)
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, catalog.ErrNoRecords):
		respondError(w, http.StatusNotFound, "no records found for export")
		return
	case errors.Is(err, catalog.ErrEmptyScope):
		respondError(w, http.StatusBadRequest, "artwork_ids or edition_ids required")
		return
	case err != nil:
		log.Printf("Catalog export failed: %s", sanitizeForLog(err.Error()))
		respondError(w, http.StatusInternalServerError, "catalog export failed")
		return
	}

	if r.URL.Query().Get("format") == "report" {
		respondJSON(w, http.StatusOK, result.Report)
		return
	}

	if result.Report.HasWarnings() {
		w.Header().Set("X-Export-Warnings", exportWarningsHeader(result.Report))
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.Write(result.Data)
}

// exportWarningsHeader reports the number of warnings and missing images.
func exportWarningsHeader(report *catalog.ExportReport) string {
	return strconv.Itoa(len(report.Warnings) + len(report.MissingImages))
}
