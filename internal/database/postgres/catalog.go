package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/art-inventory/internal/database"
	"github.com/lib/pq"
)

// CatalogRepository provides PostgreSQL-backed artwork and edition storage
type CatalogRepository struct {
	pool *Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(pool *Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func newID() string {
	return uuid.New().String()
}

// validIDs drops IDs that are not UUIDs so a malformed request cannot fail the cast.
func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// Artworks requested by ID keep their request order; explicitly selected editions
// follow in their own request order. Within an artwork, numbered editions come first,
// then APs, then unique pieces.
const resolveExportQuery = `
	SELECT a.id, e.id, a.title, a.title_zh, a.year, a.type, a.dimensions, a.materials, a.duration,
		a.thumbnail_url, e.edition_type, e.number,
		CASE e.edition_type WHEN 'numbered' THEN a.edition_total WHEN 'ap' THEN a.ap_total END,
		a.edition_total, a.ap_total, e.currency, e.price, e.status, l.name, a.source_url
	FROM editions e
	JOIN artworks a ON a.id = e.artwork_id
	LEFT JOIN locations l ON l.id = e.location_id
	WHERE a.id = ANY($1::uuid[]) OR e.id = ANY($2::uuid[])
	ORDER BY COALESCE(array_position($1::uuid[], a.id), 1000000 + array_position($2::uuid[], e.id)),
		CASE e.edition_type WHEN 'numbered' THEN 0 WHEN 'ap' THEN 1 ELSE 2 END,
		e.number NULLS LAST, e.created_at`

func (r *CatalogRepository) ResolveExportRecords(ctx context.Context, scope database.ExportScope) ([]database.ExportRecord, error) {
	artworkIDs := validIDs(scope.ArtworkIDs)
	editionIDs := validIDs(scope.EditionIDs)
	if len(artworkIDs) == 0 && len(editionIDs) == 0 {
		return nil, fmt.Errorf("resolve export records: %w", database.ErrNotFound)
	}

	rows, err := r.pool.Query(ctx, resolveExportQuery, pq.Array(artworkIDs), pq.Array(editionIDs))
	if err != nil {
		return nil, fmt.Errorf("resolve export records: %w", err)
	}
	defer rows.Close()

	var records []database.ExportRecord
	for rows.Next() {
		rec, err := scanExportRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("resolve export records: %w", database.ErrNotFound)
	}
	return records, nil
}

func scanExportRecord(rows *sql.Rows) (database.ExportRecord, error) {
	var rec database.ExportRecord
	var (
		year, number, total, edTotal, apTotal sql.NullInt64
		thumb, currency, location, source     sql.NullString
		price                                 sql.NullFloat64
	)
	err := rows.Scan(&rec.ArtworkID, &rec.EditionID, &rec.Title, &rec.TitleZH, &year, &rec.Type,
		&rec.Dimensions, &rec.Materials, &rec.Duration, &thumb, &rec.EditionType, &number,
		&total, &edTotal, &apTotal, &currency, &price, &rec.Status, &location, &source)
	if err != nil {
		return rec, err
	}
	rec.Year = intPtr(year)
	rec.EditionNumber = intPtr(number)
	rec.EditionTotal = intPtr(total)
	rec.ArtworkEditionTotal = intPtr(edTotal)
	rec.ArtworkAPTotal = intPtr(apTotal)
	rec.ThumbnailURL = stringPtr(thumb)
	rec.Currency = stringPtr(currency)
	rec.Location = stringPtr(location)
	rec.SourceURL = stringPtr(source)
	if price.Valid {
		rec.Price = &price.Float64
	}
	return rec, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func (r *CatalogRepository) GetArtwork(ctx context.Context, id string) (*database.Artwork, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var a database.Artwork
	var (
		year, edTotal, apTotal sql.NullInt64
		thumb, source          sql.NullString
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, title_zh, year, type, dimensions, materials, duration, thumbnail_url,
			edition_total, ap_total, source_url, created_at, updated_at
		 FROM artworks WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.TitleZH, &year, &a.Type, &a.Dimensions, &a.Materials, &a.Duration,
			&thumb, &edTotal, &apTotal, &source, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get artwork: %w", err)
	}
	a.Year = intPtr(year)
	a.EditionTotal = intPtr(edTotal)
	a.APTotal = intPtr(apTotal)
	a.ThumbnailURL = stringPtr(thumb)
	a.SourceURL = stringPtr(source)
	return &a, nil
}

func (r *CatalogRepository) CreateLocation(ctx context.Context, loc *database.Location) error {
	if loc.ID == "" {
		loc.ID = newID()
	}
	loc.CreatedAt = time.Now()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO locations (id, name, created_at) VALUES ($1, $2, $3)`,
		loc.ID, loc.Name, loc.CreatedAt)
	if err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *CatalogRepository) CreateArtwork(ctx context.Context, art *database.Artwork) error {
	if art.ID == "" {
		art.ID = newID()
	}
	now := time.Now()
	art.CreatedAt = now
	art.UpdatedAt = now
	_, err := r.pool.Exec(ctx,
		`INSERT INTO artworks (id, title, title_zh, year, type, dimensions, materials, duration,
			thumbnail_url, edition_total, ap_total, source_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		art.ID, art.Title, art.TitleZH, art.Year, art.Type, art.Dimensions, art.Materials, art.Duration,
		art.ThumbnailURL, art.EditionTotal, art.APTotal, art.SourceURL, art.CreatedAt, art.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create artwork: %w", err)
	}
	return nil
}

func (r *CatalogRepository) CreateEdition(ctx context.Context, ed *database.Edition) error {
	if ed.ID == "" {
		ed.ID = newID()
	}
	if ed.Status == "" {
		ed.Status = "available"
	}
	ed.CreatedAt = time.Now()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO editions (id, artwork_id, edition_type, number, currency, price, status, location_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ed.ID, ed.ArtworkID, ed.EditionType, ed.Number, ed.Currency, ed.Price, ed.Status, ed.LocationID, ed.CreatedAt)
	if err != nil {
		return fmt.Errorf("create edition: %w", err)
	}
	return nil
}
