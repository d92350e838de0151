package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wallscreet/us-debt/internal/model"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<title>Debt to the Penny</title>
<item>
<title>Debt to the Penny for 01/02/2024</title>
<description>summary only</description>
<content:encoded><![CDATA[<em>Debt Held by the Public:</em> 1,000.00 <em>Intragovernmental Holdings:</em> 500.00 <em>Total Public Debt Outstanding:</em> 1,500.00]]></content:encoded>
<pubDate>Tue, 02 Jan 2024 16:00:00 GMT</pubDate>
</item>
<item>
<title>Debt to the Penny for 01/01/2024</title>
<description><![CDATA[<em>Debt Held by the Public:</em> 950.00 <em>Intragovernmental Holdings:</em> 450.00 <em>Total Public Debt Outstanding:</em> 1,400.00]]></description>
<pubDate>Mon, 01 Jan 2024 16:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func testConfig(url string) model.FeedConfig {
	return model.FeedConfig{
		URL:           url,
		Items:         2,
		UserAgent:     "test-agent",
		Timeout:       5 * time.Second,
		MaxRedirects:  3,
		RatePerSecond: 100,
		Burst:         5,
	}
}

func feedServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, testFeed)
	}))
}

func TestRecent_ParsesItems(t *testing.T) {
	server := feedServer(t, nil)
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	items, err := f.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Debt to the Penny for 01/02/2024" {
		t.Errorf("Unexpected newest title: %q", items[0].Title)
	}
	if !strings.Contains(items[0].Content, "Total Public Debt Outstanding") {
		t.Errorf("Expected content:encoded to be used, got %q", items[0].Content)
	}
	if items[0].Published == "" {
		t.Error("Expected published label to be carried through")
	}
}

func TestRecent_DescriptionFallback(t *testing.T) {
	server := feedServer(t, nil)
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	items, err := f.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The older item has no content:encoded.
	if !strings.Contains(items[1].Content, "950.00") {
		t.Errorf("Expected description fallback, got %q", items[1].Content)
	}
}

func TestRecent_NotEnoughItems(t *testing.T) {
	server := feedServer(t, nil)
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	_, err := f.Recent(context.Background(), 3)
	if err == nil {
		t.Fatal("Expected error for too few items, got nil")
	}
	if !strings.Contains(err.Error(), "need 3") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRecent_NonPositiveCount(t *testing.T) {
	f := NewFetcher(testConfig("http://unused.invalid"))
	if _, err := f.Recent(context.Background(), 0); err == nil {
		t.Fatal("Expected error for non-positive count, got nil")
	}
}

func TestRecent_CacheReusesParse(t *testing.T) {
	var hits atomic.Int32
	server := feedServer(t, &hits)
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.CacheEnabled = true
	cfg.CacheTTL = time.Minute

	f := NewFetcher(cfg)
	for i := 0; i < 3; i++ {
		if _, err := f.Recent(context.Background(), 2); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}

	if hits.Load() != 1 {
		t.Errorf("Expected 1 fetch with cache enabled, got %d", hits.Load())
	}
}

func TestRecent_NoCacheRefetches(t *testing.T) {
	var hits atomic.Int32
	server := feedServer(t, &hits)
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	for i := 0; i < 2; i++ {
		if _, err := f.Recent(context.Background(), 2); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}

	if hits.Load() != 2 {
		t.Errorf("Expected 2 fetches with cache disabled, got %d", hits.Load())
	}
}

func TestRecent_RobotsDisallowedBlocksFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, testFeed)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig(server.URL + "/feed")
	cfg.RespectRobots = true

	f := NewFetcher(cfg)
	_, err := f.Recent(context.Background(), 2)
	if err == nil {
		t.Fatal("Expected error when robots.txt disallows the feed path, got nil")
	}
	if !strings.Contains(err.Error(), "robots.txt disallows") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRecent_RobotsMissingAllows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, testFeed)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig(server.URL + "/feed")
	cfg.RespectRobots = true

	// The mux serves a 404 for /robots.txt; fetching must proceed.
	f := NewFetcher(cfg)
	items, err := f.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Expected missing robots.txt to allow the fetch, got %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(items))
	}
}

func TestRobotsGate_UnreachableHostAllows(t *testing.T) {
	g := NewRobotsGate("test-agent", time.Second)

	allowed, err := g.Allowed(context.Background(), "http://127.0.0.1:1/feed")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected unreachable robots.txt to allow by default")
	}
}

func TestRecent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	if _, err := f.Recent(context.Background(), 2); err == nil {
		t.Fatal("Expected error for 500 response, got nil")
	}
}
