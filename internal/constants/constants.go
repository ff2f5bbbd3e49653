// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Image fetch constants
const (
	// DefaultBatchSize is the number of thumbnails fetched concurrently per window
	DefaultBatchSize = 5

	// DefaultFetchTimeoutMs is the hard timeout of a single thumbnail fetch
	DefaultFetchTimeoutMs = 10000

	// DefaultJobTimeoutSeconds is the wall-clock ceiling of one export job
	DefaultJobTimeoutSeconds = 30

	// MaxImageBytes caps the body size read from a thumbnail response (32MB)
	MaxImageBytes = 32 << 20
)

// Dimension sniffing constants
const (
	// FallbackImageDimension is returned for both width and height when the
	// dimensions of an image cannot be read from its bytes
	FallbackImageDimension = 400
)

// Page layout constants, in millimetres on A4 portrait
const (
	// ImageBoxMM is the side of the square box thumbnails are fitted into
	ImageBoxMM = 80.0

	// PageMarginMM is the left, right and top page margin
	PageMarginMM = 20.0

	// BottomMarginMM is where the copyright footer sits, measured from the page bottom
	BottomMarginMM = 15.0

	// ContentBottomMM is the distance from the page bottom past which the
	// edition details list continues on a new page
	ContentBottomMM = 30.0
)
