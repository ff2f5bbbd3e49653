// Package constants provides shared constants used across the codebase.
package constants

// Export request constants
const (
	// MaxExportRequestSize is the maximum JSON body size of an export request (1MB)
	MaxExportRequestSize = 1 << 20

	// MaxExportScopeIDs is the maximum number of artwork plus edition IDs in one export
	MaxExportScopeIDs = 500
)
