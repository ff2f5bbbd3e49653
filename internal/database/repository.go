package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup or scope resolves to no rows.
var ErrNotFound = errors.New("not found")

// CatalogReader resolves export scopes into ordered export records
type CatalogReader interface {
	// ResolveExportRecords returns the records selected by scope, ordered by the
	// requested artwork order and then by edition type and number.
	// Returns ErrNotFound if the scope yields zero records.
	ResolveExportRecords(ctx context.Context, scope ExportScope) ([]ExportRecord, error)
	// GetArtwork retrieves an artwork by ID, returns nil if not found
	GetArtwork(ctx context.Context, id string) (*Artwork, error)
}

// CatalogWriter provides write access to artworks, editions and locations
type CatalogWriter interface {
	CatalogReader

	// CreateLocation stores a location, assigning an ID when empty
	CreateLocation(ctx context.Context, loc *Location) error
	// CreateArtwork stores an artwork, assigning an ID when empty
	CreateArtwork(ctx context.Context, art *Artwork) error
	// CreateEdition stores an edition of an existing artwork, assigning an ID when empty
	CreateEdition(ctx context.Context, ed *Edition) error
}
