package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ErrInvalidFont is returned when loaded font bytes are not a TrueType font.
var ErrInvalidFont = errors.New("not a TrueType font")

const (
	fontFetchTimeout = 15 * time.Second
	maxFontBytes     = 64 << 20
)

// FontLoader supplies the CJK font for one export job. A nil result with a
// nil error means no font is configured.
type FontLoader interface {
	LoadCJKFont(ctx context.Context) ([]byte, error)
}

// CJKFontLoader reads a TrueType font from a local path, or downloads it when
// only a URL is configured.
type CJKFontLoader struct {
	path   string
	url    string
	client *http.Client
}

// NewCJKFontLoader creates a loader. Both path and url may be empty.
func NewCJKFontLoader(path, url string) *CJKFontLoader {
	return &CJKFontLoader{
		path:   path,
		url:    url,
		client: &http.Client{Timeout: fontFetchTimeout},
	}
}

// LoadCJKFont reads the configured font file or URL. It returns nil when no
// font source is configured.
func (l *CJKFontLoader) LoadCJKFont(ctx context.Context) ([]byte, error) {
	var data []byte
	var err error
	switch {
	case l.path != "":
		data, err = os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
	case l.url != "":
		data, err = l.download(ctx)
		if err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	if !isTrueType(data) {
		return nil, ErrInvalidFont
	}
	return data, nil
}

func (l *CJKFontLoader) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	resp, err := l.client.Do(req) //nolint:gosec // URL from configuration
	if err != nil {
		return nil, fmt.Errorf("could not download font: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("font download failed with status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read font: %w", err)
	}
	return data, nil
}

func isTrueType(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return bytes.Equal(data[:4], []byte{0x00, 0x01, 0x00, 0x00}) || string(data[:4]) == "true"
}
