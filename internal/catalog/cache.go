package catalog

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"strings"

	"github.com/kozaktomas/art-inventory/internal/constants"
	"github.com/kozaktomas/art-inventory/internal/database"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ImageHandle is a fetched thumbnail ready to be placed on a page.
// Key is the alias the image is registered under in the PDF, so repeated
// placements of the same thumbnail embed its bytes only once.
type ImageHandle struct {
	Width     int
	Height    int
	Key       string
	Data      []byte
	ImageType string // gofpdf image type: JPG, PNG or GIF; empty when not embeddable
}

// ImageCache maps thumbnail URLs to their handles for the duration of one job.
type ImageCache struct {
	handles map[string]*ImageHandle
	missing []string
}

// Get returns the handle for url, or nil when no image is available.
func (c *ImageCache) Get(url string) *ImageHandle {
	if c == nil {
		return nil
	}
	return c.handles[url]
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.handles)
}

// Missing returns URLs whose fetch failed or was never attempted, in URL order.
func (c *ImageCache) Missing() []string {
	if c == nil {
		return nil
	}
	return c.missing
}

// Batcher fetches the distinct thumbnails of a job in sequential windows of
// batchSize concurrent requests.
type Batcher struct {
	fetcher   ImageFetcher
	batchSize int

	// OnProgress, when set, is called after each window with the number of
	// URLs processed so far and the total.
	OnProgress func(done, total int)
}

// NewBatcher creates a Batcher. A non-positive batchSize uses the default.
func NewBatcher(fetcher ImageFetcher, batchSize int) *Batcher {
	if batchSize <= 0 {
		batchSize = constants.DefaultBatchSize
	}
	return &Batcher{fetcher: fetcher, batchSize: batchSize}
}

// DistinctURLs returns the non-empty thumbnail URLs of records in order of first appearance.
func DistinctURLs(records []database.ExportRecord) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, r := range records {
		if r.ThumbnailURL == nil || *r.ThumbnailURL == "" {
			continue
		}
		u := *r.ThumbnailURL
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

// BuildCache fetches every distinct thumbnail referenced by records exactly once.
// Failed fetches are logged and left out of the cache. Once ctx is done no
// further windows are started.
func (b *Batcher) BuildCache(ctx context.Context, records []database.ExportRecord) *ImageCache {
	urls := DistinctURLs(records)
	cache := &ImageCache{handles: make(map[string]*ImageHandle, len(urls))}

	for start := 0; start < len(urls); start += b.batchSize {
		if ctx.Err() != nil {
			log.Printf("WARNING: export deadline reached, skipping %d thumbnails", len(urls)-start)
			cache.missing = append(cache.missing, urls[start:]...)
			break
		}

		window := urls[start:min(start+b.batchSize, len(urls))]
		results := b.fetchWindow(ctx, window)

		for i, url := range window {
			img := results[i]
			if img == nil {
				cache.missing = append(cache.missing, url)
				continue
			}
			cache.handles[url] = newImageHandle(img, fmt.Sprintf("img_%d", len(cache.handles)))
		}

		if b.OnProgress != nil {
			b.OnProgress(start+len(window), len(urls))
		}
	}

	return cache
}

func (b *Batcher) fetchWindow(ctx context.Context, window []string) []*FetchedImage {
	results := make([]*FetchedImage, len(window))

	var g errgroup.Group
	g.SetLimit(b.batchSize)
	for i, url := range window {
		g.Go(func() error {
			img, err := b.fetcher.Fetch(ctx, url)
			if err != nil {
				log.Printf("WARNING: failed to fetch thumbnail %s: %v", sanitize(url), err)
				return nil
			}
			results[i] = img
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func newImageHandle(img *FetchedImage, key string) *ImageHandle {
	w, h := SniffDimensions(img.Data, img.ContentType)
	handle := &ImageHandle{Width: w, Height: h, Key: key, Data: img.Data}

	ct := strings.ToLower(img.ContentType)
	switch {
	case strings.Contains(ct, "png"):
		handle.ImageType = "PNG"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		handle.ImageType = "JPG"
	case strings.Contains(ct, "gif"):
		handle.ImageType = "GIF"
	case strings.Contains(ct, "webp"):
		data, err := transcodeWebP(img.Data)
		if err != nil {
			log.Printf("WARNING: could not transcode WebP thumbnail %s: %v", key, err)
			break
		}
		handle.Data = data
		handle.ImageType = "PNG"
	}
	return handle
}

// transcodeWebP re-encodes WebP bytes as PNG, which the PDF writer can embed.
func transcodeWebP(data []byte) ([]byte, error) {
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode webp: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func sanitize(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}
