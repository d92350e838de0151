// Package feed retrieves recent "Debt to the Penny" items from the
// TreasuryDirect syndication endpoint.
package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/wallscreet/us-debt/internal/model"
	"golang.org/x/time/rate"
)

// Item is one syndicated snapshot as handed to the extractor.
type Item struct {
	Title     string
	Content   string
	Published string
}

// Fetcher retrieves the most recent published items. Fetches are
// rate-limited per process; parsed items are cached for a short TTL so
// watch-mode refreshes do not hammer the endpoint. There is no retry:
// a failed fetch surfaces to the caller.
type Fetcher struct {
	url     string
	parser  *gofeed.Parser
	limiter *rate.Limiter
	cache   *itemCache  // nil when caching is disabled
	robots  *RobotsGate // nil unless robots checking is enabled
}

// NewFetcher creates a Fetcher from the feed configuration.
func NewFetcher(cfg model.FeedConfig) *Fetcher {
	client := &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", cfg.MaxRedirects)
			}
			return nil
		},
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = cfg.UserAgent

	f := &Fetcher{
		url:     cfg.URL,
		parser:  parser,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.Burst, 1)),
	}
	if cfg.CacheEnabled {
		f.cache = newItemCache(cfg.CacheTTL)
	}
	if cfg.RespectRobots {
		f.robots = NewRobotsGate(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// Recent returns the n most recent items in feed order (newest first).
// Fewer than n published items is an error: the delta report needs a
// full pair and never substitutes partial data.
func (f *Fetcher) Recent(ctx context.Context, n int) ([]Item, error) {
	if n <= 0 {
		return nil, fmt.Errorf("item count must be positive, got %d", n)
	}

	key := cacheKey(f.url)
	if f.cache != nil {
		if items, ok := f.cache.get(key); ok && len(items) >= n {
			return items[:n], nil
		}
	}

	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, f.url)
		if err == nil && !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", f.url)
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	parsed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	if len(parsed.Items) < n {
		return nil, fmt.Errorf("feed returned %d item(s), need %d", len(parsed.Items), n)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		// Prefer content:encoded, which carries the full markup with
		// the labeled figures; some aggregators only fill description.
		content := it.Content
		if content == "" {
			content = it.Description
		}
		items = append(items, Item{
			Title:     it.Title,
			Content:   content,
			Published: it.Published,
		})
	}

	if f.cache != nil {
		f.cache.set(key, items)
	}

	return items[:n], nil
}
