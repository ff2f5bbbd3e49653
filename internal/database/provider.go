package database

import (
	"context"
	"errors"
)

var (
	postgresCatalogStore func() CatalogWriter
	postgresInitialized  bool
)

// RegisterPostgresBackend marks the PostgreSQL backend as initialized.
// This is called by the serve and export commands to avoid import cycles.
func RegisterPostgresBackend() {
	postgresInitialized = true
}

// RegisterCatalogStore registers the CatalogWriter constructor.
func RegisterCatalogStore(store func() CatalogWriter) {
	postgresCatalogStore = store
}

// IsInitialized returns whether the PostgreSQL backend has been initialized.
func IsInitialized() bool {
	return postgresInitialized
}

// GetCatalogReader returns a CatalogReader from the PostgreSQL backend
func GetCatalogReader(ctx context.Context) (CatalogReader, error) {
	return GetCatalogWriter(ctx)
}

// GetCatalogWriter returns a CatalogWriter from the PostgreSQL backend
func GetCatalogWriter(ctx context.Context) (CatalogWriter, error) {
	if !postgresInitialized {
		return nil, errors.New("PostgreSQL backend not initialized: DATABASE_URL is required")
	}
	if postgresCatalogStore == nil {
		return nil, errors.New("PostgreSQL catalog store not registered")
	}
	return postgresCatalogStore(), nil
}

// ResetForTesting clears all registered backends.
func ResetForTesting() {
	postgresCatalogStore = nil
	postgresInitialized = false
}
