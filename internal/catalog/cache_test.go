package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kozaktomas/art-inventory/internal/database"
)

// fakeFetcher serves generated PNGs and records call counts and concurrency.
type fakeFetcher struct {
	mu          sync.Mutex
	data        []byte
	delay       time.Duration
	fail        map[string]bool
	calls       map[string]int
	inFlight    int
	maxInFlight int
	completed   int
	// completedAtStart records how many fetches had finished when each URL started
	completedAtStart map[string]int
}

func newFakeFetcher(data []byte) *fakeFetcher {
	return &fakeFetcher{
		data:             data,
		fail:             make(map[string]bool),
		calls:            make(map[string]int),
		completedAtStart: make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*FetchedImage, error) {
	f.mu.Lock()
	f.calls[url]++
	f.inFlight++
	f.maxInFlight = max(f.maxInFlight, f.inFlight)
	f.completedAtStart[url] = f.completed
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.completed++
	failed := f.fail[url]
	f.mu.Unlock()

	if failed {
		return nil, &HTTPStatusError{URL: url, StatusCode: 500}
	}
	return &FetchedImage{Data: f.data, ContentType: "image/png"}, nil
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func strPtr(s string) *string { return &s }

func recordWithURL(editionID, url string) database.ExportRecord {
	rec := database.ExportRecord{ArtworkID: "a-" + editionID, EditionID: editionID, Title: "Work " + editionID}
	if url != "" {
		rec.ThumbnailURL = strPtr(url)
	}
	return rec
}

func TestDistinctURLs(t *testing.T) {
	records := []database.ExportRecord{
		recordWithURL("1", "https://img/b"),
		recordWithURL("2", ""),
		recordWithURL("3", "https://img/a"),
		recordWithURL("4", "https://img/b"),
		{EditionID: "5", ThumbnailURL: strPtr("")},
	}
	got := DistinctURLs(records)
	want := []string{"https://img/b", "https://img/a"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestBuildCache_FetchesSharedURLOnce(t *testing.T) {
	fetcher := newFakeFetcher(encodePNG(t, 20, 10))
	var records []database.ExportRecord
	for i := range 12 {
		records = append(records, recordWithURL(fmt.Sprint(i), "https://img/shared.png"))
	}
	records = append(records, recordWithURL("nil", ""))

	cache := NewBatcher(fetcher, 5).BuildCache(context.Background(), records)

	if n := fetcher.totalCalls(); n != 1 {
		t.Errorf("expected 1 fetch, got %d", n)
	}
	h := cache.Get("https://img/shared.png")
	if h == nil {
		t.Fatal("expected cached handle")
	}
	if h.Width != 20 || h.Height != 10 {
		t.Errorf("expected 20x10, got %dx%d", h.Width, h.Height)
	}
	if h.Key != "img_0" {
		t.Errorf("expected key img_0, got %s", h.Key)
	}
	if h.ImageType != "PNG" {
		t.Errorf("expected PNG, got %s", h.ImageType)
	}
}

func TestBuildCache_SequentialWindows(t *testing.T) {
	fetcher := newFakeFetcher(encodePNG(t, 4, 4))
	fetcher.delay = 20 * time.Millisecond

	var records []database.ExportRecord
	var urls []string
	for i := range 12 {
		url := fmt.Sprintf("https://img/%d.png", i)
		urls = append(urls, url)
		records = append(records, recordWithURL(fmt.Sprint(i), url))
	}

	var progress [][2]int
	b := NewBatcher(fetcher, 5)
	b.OnProgress = func(done, total int) {
		progress = append(progress, [2]int{done, total})
	}
	cache := b.BuildCache(context.Background(), records)

	if cache.Len() != 12 {
		t.Errorf("expected 12 cached images, got %d", cache.Len())
	}
	if fetcher.maxInFlight > 5 {
		t.Errorf("expected at most 5 concurrent fetches, got %d", fetcher.maxInFlight)
	}
	for i, url := range urls {
		window := i / 5
		c := fetcher.completedAtStart[url]
		if c < 5*window || c > 5*window+4 {
			t.Errorf("url %d started with %d completed fetches, expected window %d", i, c, window)
		}
	}

	wantProgress := [][2]int{{5, 12}, {10, 12}, {12, 12}}
	if len(progress) != len(wantProgress) {
		t.Fatalf("expected 3 windows, got progress %v", progress)
	}
	for i := range wantProgress {
		if progress[i] != wantProgress[i] {
			t.Errorf("window %d: expected %v, got %v", i, wantProgress[i], progress[i])
		}
	}
}

func TestBuildCache_FailuresAreSkipped(t *testing.T) {
	fetcher := newFakeFetcher(encodePNG(t, 4, 4))
	fetcher.fail["https://img/b"] = true

	records := []database.ExportRecord{
		recordWithURL("1", "https://img/a"),
		recordWithURL("2", "https://img/b"),
		recordWithURL("3", "https://img/c"),
	}
	cache := NewBatcher(fetcher, 5).BuildCache(context.Background(), records)

	if cache.Get("https://img/b") != nil {
		t.Error("expected failed URL to be absent")
	}
	if got := cache.Get("https://img/a").Key; got != "img_0" {
		t.Errorf("expected img_0, got %s", got)
	}
	if got := cache.Get("https://img/c").Key; got != "img_1" {
		t.Errorf("expected img_1, got %s", got)
	}
	missing := cache.Missing()
	if len(missing) != 1 || missing[0] != "https://img/b" {
		t.Errorf("expected [https://img/b] missing, got %v", missing)
	}
}

func TestBuildCache_StopsAfterDeadline(t *testing.T) {
	fetcher := newFakeFetcher(encodePNG(t, 4, 4))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []database.ExportRecord{
		recordWithURL("1", "https://img/a"),
		recordWithURL("2", "https://img/b"),
	}
	cache := NewBatcher(fetcher, 5).BuildCache(ctx, records)

	if n := fetcher.totalCalls(); n != 0 {
		t.Errorf("expected no fetches, got %d", n)
	}
	if len(cache.Missing()) != 2 {
		t.Errorf("expected 2 missing, got %v", cache.Missing())
	}
}

func TestNewImageHandle(t *testing.T) {
	t.Run("jpeg", func(t *testing.T) {
		h := newImageHandle(&FetchedImage{Data: encodeJPEG(t, 30, 60), ContentType: "image/jpeg"}, "img_3")
		if h.ImageType != "JPG" || h.Key != "img_3" {
			t.Errorf("unexpected handle %s %s", h.ImageType, h.Key)
		}
		if h.Width != 30 || h.Height != 60 {
			t.Errorf("expected 30x60, got %dx%d", h.Width, h.Height)
		}
	})

	t.Run("gif", func(t *testing.T) {
		h := newImageHandle(&FetchedImage{Data: encodeGIF(t, 80, 45), ContentType: "image/gif"}, "img_1")
		if h.ImageType != "GIF" {
			t.Errorf("expected GIF, got %s", h.ImageType)
		}
		if h.Width != 80 || h.Height != 45 {
			t.Errorf("expected 80x45, got %dx%d", h.Width, h.Height)
		}
	})

	t.Run("undecodable webp", func(t *testing.T) {
		h := newImageHandle(&FetchedImage{Data: []byte("garbage"), ContentType: "image/webp"}, "img_0")
		if h.ImageType != "" {
			t.Errorf("expected no embeddable type, got %s", h.ImageType)
		}
		if h.Width != 400 || h.Height != 400 {
			t.Errorf("expected fallback dimensions, got %dx%d", h.Width, h.Height)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		h := newImageHandle(&FetchedImage{Data: []byte("<svg/>"), ContentType: "image/svg+xml"}, "img_0")
		if h.ImageType != "" {
			t.Errorf("expected no embeddable type, got %s", h.ImageType)
		}
	})
}

func TestImageCache_NilSafe(t *testing.T) {
	var c *ImageCache
	if c.Get("x") != nil || c.Len() != 0 || c.Missing() != nil {
		t.Error("nil cache should behave as empty")
	}
}

func TestHTTPStatusErrorMessage(t *testing.T) {
	err := error(&HTTPStatusError{URL: "https://img/x", StatusCode: 502})
	var target *HTTPStatusError
	if !errors.As(err, &target) || target.Error() != "fetch https://img/x: unexpected status 502" {
		t.Errorf("unexpected error %v", err)
	}
}
