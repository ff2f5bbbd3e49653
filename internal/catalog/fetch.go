package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/kozaktomas/art-inventory/internal/constants"
)

var (
	// ErrFetchTimeout is returned when a thumbnail fetch exceeds its deadline.
	ErrFetchTimeout = errors.New("image fetch timed out")
	// ErrNotImage is returned when the response declares a non-image content type.
	ErrNotImage = errors.New("response is not an image")
	// ErrMissingContentType is returned in strict mode when the response has no content type.
	ErrMissingContentType = errors.New("response has no content type")
	// ErrImageTooLarge is returned when the response body exceeds the size cap.
	ErrImageTooLarge = errors.New("image exceeds size limit")
)

// HTTPStatusError reports a non-2xx thumbnail response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// FetchedImage holds the raw bytes of a downloaded thumbnail.
type FetchedImage struct {
	Data        []byte
	ContentType string
}

// ImageFetcher downloads a single thumbnail.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedImage, error)
}

// HTTPFetcher downloads thumbnails over HTTP with a hard per-request timeout.
// It never retries.
type HTTPFetcher struct {
	client   *http.Client
	timeout  time.Duration
	strict   bool
	maxBytes int64
}

// NewHTTPFetcher creates a fetcher. When strict is false, responses without a
// Content-Type header are treated as JPEG.
func NewHTTPFetcher(timeout time.Duration, strict bool) *HTTPFetcher {
	if timeout <= 0 {
		timeout = constants.DefaultFetchTimeoutMs * time.Millisecond
	}
	return &HTTPFetcher{
		client:   &http.Client{},
		timeout:  timeout,
		strict:   strict,
		maxBytes: constants.MaxImageBytes,
	}
}

// Fetch downloads url, failing on timeouts, non-2xx statuses, non-image
// responses and bodies over the size limit.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*FetchedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req) //nolint:gosec // thumbnail URLs come from catalog records
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %s", ErrFetchTimeout, f.timeout, url)
		}
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	contentType, err := f.contentType(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %s", ErrFetchTimeout, f.timeout, url)
		}
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s", ErrImageTooLarge, url)
	}

	return &FetchedImage{Data: data, ContentType: contentType}, nil
}

func (f *HTTPFetcher) contentType(header string) (string, error) {
	if header == "" {
		if f.strict {
			return "", ErrMissingContentType
		}
		return "image/jpeg", nil
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(header))
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mediaType)
	}
	return mediaType, nil
}
