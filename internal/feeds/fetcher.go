// Package feeds retrieves documents from RSS/Atom sources and converts them
// into pipeline documents. It is a caller-side collaborator of the scoring
// pipeline: fetching and parsing stop here, scoring never does I/O.
package feeds

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hellothere012/ghostbrief/internal/config"
	"github.com/hellothere012/ghostbrief/internal/logging"
	"github.com/hellothere012/ghostbrief/internal/model"
)

// maxConcurrentFetches limits parallel fetch operations across sources.
const maxConcurrentFetches = 5

// perHostInterval is the politeness interval between requests to one host.
const perHostInterval = 2 * time.Second

// Fetcher retrieves documents from configured sources.
type Fetcher struct {
	client *http.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter // host -> limiter
}

// NewFetcher creates a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		limiters: make(map[string]*rate.Limiter),
	}
}

// FetchAll fetches every source concurrently (bounded) and returns the
// combined documents in source order. Per-source failures are logged and
// skipped; the error return covers context cancellation only.
func (f *Fetcher) FetchAll(ctx context.Context, sources []config.SourceConfig) ([]model.Document, error) {
	results := make([][]model.Document, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			docs, err := f.Fetch(ctx, src)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn("fetch failed", "source", src.Name, "error", err)
				return nil
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Document
	for _, docs := range results {
		all = append(all, docs...)
	}
	return all, nil
}

// Fetch retrieves one source's documents. Respects context cancellation and
// the per-host rate limit.
func (f *Fetcher) Fetch(ctx context.Context, src config.SourceConfig) ([]model.Document, error) {
	if err := f.limiter(src.URL).Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ghostbrief/0.1 (+https://github.com/hellothere012/ghostbrief)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := time.Now()
	docs := make([]model.Document, 0, len(feed.Items))
	for _, entry := range feed.Items {
		docs = append(docs, convertEntry(entry, src, now))
	}
	return docs, nil
}

// limiter returns the rate limiter for the URL's host, creating it on first
// use.
func (f *Fetcher) limiter(rawURL string) *rate.Limiter {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(perHostInterval), 1)
		f.limiters[host] = lim
	}
	return lim
}

// convertEntry maps one feed entry onto a Document. The ID is a stable
// digest of the entry link so refetching yields the same identity.
func convertEntry(entry *gofeed.Item, src config.SourceConfig, now time.Time) model.Document {
	id := fmt.Sprintf("%x", sha256.Sum256([]byte(entry.Link)))[:16]

	published := time.Time{}
	if entry.PublishedParsed != nil {
		published = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		published = *entry.UpdatedParsed
	}

	content := entry.Content
	if strings.TrimSpace(content) == "" {
		content = entry.Description
	}

	return model.Document{
		ID:        id,
		Title:     strings.TrimSpace(entry.Title),
		Content:   StripHTML(content),
		URL:       entry.Link,
		Published: published,
		Fetched:   now,
		Source: model.Source{
			Domain:      src.Domain,
			Name:        src.Name,
			Credibility: src.Credibility,
			Category:    src.Category,
		},
	}
}
