package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGate checks robots.txt compliance before a host is fetched.
type RobotsGate struct {
	httpClient *http.Client
	userAgent  string

	mu    sync.RWMutex
	cache map[string]*robotstxt.RobotsData
}

// NewRobotsGate creates a new robots.txt gate.
func NewRobotsGate(userAgent string, timeout time.Duration) *RobotsGate {
	return &RobotsGate{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		cache:      make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether rawURL may be fetched according to the host's
// robots.txt. An unreachable robots.txt allows by default.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	data, err := g.robotsData(ctx, parsed)
	if err != nil {
		return true, nil
	}

	return data.TestAgent(parsed.Path, g.userAgent), nil
}

// robotsData fetches and caches robots.txt data per host.
func (g *RobotsGate) robotsData(ctx context.Context, parsed *url.URL) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	data, exists := g.cache[parsed.Host]
	g.mu.RUnlock()

	if exists {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A missing robots.txt allows everything.
	if resp.StatusCode == http.StatusNotFound {
		data, _ := robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
		g.store(parsed.Host, data)
		return data, nil
	}

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.store(parsed.Host, data)
	return data, nil
}

func (g *RobotsGate) store(host string, data *robotstxt.RobotsData) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cache[host] = data
}
