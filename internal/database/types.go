package database

import (
	"time"
)

// Edition types
const (
	EditionNumbered = "numbered"
	EditionAP       = "ap"
	EditionUnique   = "unique"
)

// Artwork is a catalogued work. Editions hang off it.
type Artwork struct {
	ID           string
	Title        string
	TitleZH      string
	Year         *int
	Type         string
	Dimensions   string
	Materials    string
	Duration     string
	ThumbnailURL *string
	EditionTotal *int // size of the numbered edition
	APTotal      *int // number of artist's proofs
	SourceURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Edition is one physical or digital instance of an artwork.
type Edition struct {
	ID          string
	ArtworkID   string
	EditionType string // numbered, ap or unique
	Number      *int
	Currency    *string
	Price       *float64
	Status      string
	LocationID  *string
	CreatedAt   time.Time
}

// Location is where an edition is kept.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// ExportRecord is one edition joined with its parent artwork, as consumed by the
// catalog export. It is read-only for the duration of an export job.
type ExportRecord struct {
	ArtworkID    string
	EditionID    string
	Title        string
	TitleZH      string
	Year         *int
	Type         string
	Dimensions   string
	Materials    string
	Duration     string
	ThumbnailURL *string

	EditionType   string
	EditionNumber *int
	// EditionTotal is the size of the series this edition is numbered in:
	// the numbered edition size for "numbered", the AP count for "ap".
	EditionTotal *int

	ArtworkEditionTotal *int
	ArtworkAPTotal      *int

	Currency  *string
	Price     *float64
	Status    string
	Location  *string
	SourceURL *string
}

// ExportScope selects the records of an export job. Artwork IDs expand to all of
// their editions; edition IDs select explicit editions. Both may be combined.
type ExportScope struct {
	ArtworkIDs []string
	EditionIDs []string
}

// IsEmpty reports whether the scope selects nothing.
func (s ExportScope) IsEmpty() bool {
	return len(s.ArtworkIDs) == 0 && len(s.EditionIDs) == 0
}
