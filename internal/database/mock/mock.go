// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/kozaktomas/art-inventory/internal/database"
)

// MockCatalogStore is an in-memory implementation of database.CatalogWriter
type MockCatalogStore struct {
	mu        sync.RWMutex
	artworks  map[string]*database.Artwork
	locations map[string]*database.Location
	records   []database.ExportRecord
	nextID    int

	// Error injection
	ResolveError error
	GetError     error
	CreateError  error

	// ResolveCalls counts ResolveExportRecords invocations
	ResolveCalls int
}

// NewMockCatalogStore creates a new mock catalog store
func NewMockCatalogStore() *MockCatalogStore {
	return &MockCatalogStore{
		artworks:  make(map[string]*database.Artwork),
		locations: make(map[string]*database.Location),
	}
}

// AddRecord adds a pre-joined export record to the mock store
func (m *MockCatalogStore) AddRecord(rec database.ExportRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
}

func (m *MockCatalogStore) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// ResolveExportRecords returns records of the requested artworks in request order,
// followed by explicitly requested editions not already included.
func (m *MockCatalogStore) ResolveExportRecords(ctx context.Context, scope database.ExportScope) ([]database.ExportRecord, error) {
	m.mu.Lock()
	m.ResolveCalls++
	m.mu.Unlock()
	if m.ResolveError != nil {
		return nil, m.ResolveError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var out []database.ExportRecord
	for _, artworkID := range scope.ArtworkIDs {
		for _, rec := range m.records {
			if rec.ArtworkID == artworkID && !seen[rec.EditionID] {
				seen[rec.EditionID] = true
				out = append(out, rec)
			}
		}
	}
	for _, editionID := range scope.EditionIDs {
		for _, rec := range m.records {
			if rec.EditionID == editionID && !seen[rec.EditionID] {
				seen[rec.EditionID] = true
				out = append(out, rec)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("resolve export records: %w", database.ErrNotFound)
	}
	return out, nil
}

// GetArtwork retrieves an artwork by ID
func (m *MockCatalogStore) GetArtwork(ctx context.Context, id string) (*database.Artwork, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.artworks[id], nil
}

// CreateLocation stores a location
func (m *MockCatalogStore) CreateLocation(ctx context.Context, loc *database.Location) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if loc.ID == "" {
		loc.ID = m.id("loc")
	}
	m.locations[loc.ID] = loc
	return nil
}

// CreateArtwork stores an artwork
func (m *MockCatalogStore) CreateArtwork(ctx context.Context, art *database.Artwork) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if art.ID == "" {
		art.ID = m.id("art")
	}
	m.artworks[art.ID] = art
	return nil
}

// CreateEdition stores an edition and derives its export record from the parent artwork
func (m *MockCatalogStore) CreateEdition(ctx context.Context, ed *database.Edition) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	art, ok := m.artworks[ed.ArtworkID]
	if !ok {
		return fmt.Errorf("create edition: artwork %s: %w", ed.ArtworkID, database.ErrNotFound)
	}
	if ed.ID == "" {
		ed.ID = m.id("ed")
	}
	if ed.Status == "" {
		ed.Status = "available"
	}

	rec := database.ExportRecord{
		ArtworkID:           art.ID,
		EditionID:           ed.ID,
		Title:               art.Title,
		TitleZH:             art.TitleZH,
		Year:                art.Year,
		Type:                art.Type,
		Dimensions:          art.Dimensions,
		Materials:           art.Materials,
		Duration:            art.Duration,
		ThumbnailURL:        art.ThumbnailURL,
		EditionType:         ed.EditionType,
		EditionNumber:       ed.Number,
		ArtworkEditionTotal: art.EditionTotal,
		ArtworkAPTotal:      art.APTotal,
		Currency:            ed.Currency,
		Price:               ed.Price,
		Status:              ed.Status,
		SourceURL:           art.SourceURL,
	}
	switch ed.EditionType {
	case database.EditionNumbered:
		rec.EditionTotal = art.EditionTotal
	case database.EditionAP:
		rec.EditionTotal = art.APTotal
	}
	if ed.LocationID != nil {
		if loc, ok := m.locations[*ed.LocationID]; ok {
			name := loc.Name
			rec.Location = &name
		}
	}
	m.records = append(m.records, rec)
	return nil
}
