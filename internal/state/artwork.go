package state

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxArtworkBytes caps the artwork payload; Spotify covers are well
// under this.
const maxArtworkBytes = 2 << 20

// HTTPArtworkFetcher downloads artwork bytes and caches the last result
// by URL, since consecutive polls of the same track return the same URL.
type HTTPArtworkFetcher struct {
	mu        sync.Mutex
	client    *retryablehttp.Client
	cachedURL string
	cached    []byte
}

// NewArtworkFetcher creates a fetcher with a short timeout and a single
// retry. Artwork is cosmetic, so the fetch stays cheap.
func NewArtworkFetcher() *HTTPArtworkFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 1
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 500 * time.Millisecond
	client.HTTPClient.Timeout = 3 * time.Second
	client.Logger = nil
	return &HTTPArtworkFetcher{client: client}
}

// Fetch returns the image bytes at rawURL, or nil on any failure.
// Callers treat artwork as optional.
func (f *HTTPArtworkFetcher) Fetch(ctx context.Context, rawURL string) []byte {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil
	}

	f.mu.Lock()
	if rawURL == f.cachedURL {
		cached := f.cached
		f.mu.Unlock()
		return cached
	}
	f.mu.Unlock()

	data := f.fetch(ctx, rawURL)

	f.mu.Lock()
	f.cachedURL = rawURL
	f.cached = data
	f.mu.Unlock()

	return data
}

func (f *HTTPArtworkFetcher) fetch(ctx context.Context, rawURL string) []byte {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArtworkBytes))
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}
