package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cityrent/zufang/internal/config"
	"github.com/cityrent/zufang/internal/retry"
	"github.com/cityrent/zufang/internal/stats"
)

func testConfig(serverURL string) *config.Config {
	return &config.Config{
		HTTPTimeout:     5 * time.Second,
		UserAgent:       "TestAgent/1.0",
		Referer:         "https://example.com",
		BaseURLTemplate: serverURL + "/%s/zufang/",
		Pages:           1,
		Delay:           0,
	}
}

func listingPage(prices ...string) string {
	var items strings.Builder
	for i, p := range prices {
		fmt.Fprintf(&items, `
	<div class="content__list--item">
		<p class="content__list--item--title"><a>整租·小区%d 2室1厅</a></p>
		<p class="content__list--item--des">某区 / 60㎡</p>
		<span><em>%s</em> 元/月</span>
	</div>`, i+1, p)
	}
	return `<html><body><div class="content__list">` + items.String() + `</div></body></html>`
}

func newTestFetcher(cfg *config.Config) *Fetcher {
	f := New(cfg, nil)
	f.Warnf = func(string, ...any) {} // keep test output clean
	return f
}

func TestFetchCity_OneRequestPerPage(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		if r.Header.Get("User-Agent") != "TestAgent/1.0" {
			t.Errorf("Unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Referer") != "https://example.com" {
			t.Errorf("Unexpected Referer: %q", r.Header.Get("Referer"))
		}

		w.Write([]byte(listingPage("1000")))
	}))
	defer server.Close()

	f := newTestFetcher(testConfig(server.URL))
	result, err := f.FetchCity(context.Background(), "sh", 3)
	if err != nil {
		t.Fatalf("FetchCity failed: %v", err)
	}

	want := []string{"/sh/zufang/", "/sh/zufang/pg2/", "/sh/zufang/pg3/"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d requests, got %d (%v)", len(want), len(paths), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("Request %d: got path %q, want %q", i+1, paths[i], p)
		}
	}

	if len(result.Listings) != 3 {
		t.Errorf("Expected 3 listings (one per page), got %d", len(result.Listings))
	}
	for i, l := range result.Listings {
		if l.Page != i+1 {
			t.Errorf("Listing %d: got page %d, want %d", i, l.Page, i+1)
		}
	}
}

func TestFetchCity_SkipsBadStatusPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sh/zufang/" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(listingPage("3000", "4000", "5000")))
	}))
	defer server.Close()

	f := newTestFetcher(testConfig(server.URL))
	result, err := f.FetchCity(context.Background(), "sh", 2)
	if err != nil {
		t.Fatalf("FetchCity failed: %v", err)
	}

	if len(result.Listings) != 3 {
		t.Errorf("Expected 3 listings from the healthy page, got %d", len(result.Listings))
	}

	if len(result.Pages) != 2 {
		t.Fatalf("Expected 2 page outcomes, got %d", len(result.Pages))
	}
	bad := result.Pages[0]
	if !bad.Skipped {
		t.Error("Expected first page to be skipped")
	}
	if bad.Reason != "status 500" {
		t.Errorf("Unexpected skip reason: %q", bad.Reason)
	}
	if bad.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected recorded status 500, got %d", bad.StatusCode)
	}
	if result.Pages[1].Listings != 3 {
		t.Errorf("Expected 3 listings recorded for second page, got %d", result.Pages[1].Listings)
	}
}

func TestFetchCity_EndToEndAverage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sh/zufang/":
			w.Write([]byte(listingPage("4000", "6000")))
		case "/sh/zufang/pg2/":
			// one valid item plus one malformed (no title) item
			page := `<html><body><div class="content__list">
	<div class="content__list--item">
		<p class="content__list--item--title"><a>整租·两室</a></p>
		<span><em>5000</em></span>
	</div>
	<div class="content__list--item">
		<span><em>8888</em></span>
	</div>
</div></body></html>`
			w.Write([]byte(page))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f := newTestFetcher(testConfig(server.URL))
	result, err := f.FetchCity(context.Background(), "sh", 2)
	if err != nil {
		t.Fatalf("FetchCity failed: %v", err)
	}

	if len(result.Listings) != 3 {
		t.Fatalf("Expected 3 listings, got %d", len(result.Listings))
	}

	avg, ok := stats.AverageRent(result.Listings)
	if !ok {
		t.Fatal("Expected an average, got no data")
	}
	if avg != 5000.0 {
		t.Errorf("Expected average 5000.0, got %v", avg)
	}
}

func TestFetchCity_MissingPriceExcludedFromAverage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPage("3000", "5000", "面议")))
	}))
	defer server.Close()

	f := newTestFetcher(testConfig(server.URL))
	result, err := f.FetchCity(context.Background(), "sh", 1)
	if err != nil {
		t.Fatalf("FetchCity failed: %v", err)
	}

	// The record itself is kept, only its price is missing
	if len(result.Listings) != 3 {
		t.Fatalf("Expected 3 listings, got %d", len(result.Listings))
	}

	avg, ok := stats.AverageRent(result.Listings)
	if !ok || avg != 4000.0 {
		t.Errorf("Expected average 4000.0 excluding missing price, got %v (ok=%v)", avg, ok)
	}
}

func TestFetchCity_NetworkErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	f := newTestFetcher(testConfig(server.URL))
	_, err := f.FetchCity(context.Background(), "sh", 1)
	if err == nil {
		t.Fatal("Expected network error to propagate with retries disabled")
	}
}

func TestFetchCity_RetriesThenSkipsDeadPage(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "pg2/") {
			w.Write([]byte(listingPage("2000")))
			return
		}
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Retries = 2

	f := newTestFetcher(cfg)
	f.RetryConfig = retry.Config{
		MaxAttempts:          3,
		InitialBackoff:       time.Millisecond,
		MaxBackoff:           10 * time.Millisecond,
		Multiplier:           2.0,
		RetryableStatusCodes: []int{http.StatusServiceUnavailable},
	}

	result, err := f.FetchCity(context.Background(), "sh", 2)
	if err != nil {
		t.Fatalf("Expected dead page to be skipped in retry mode, got error: %v", err)
	}

	if hits != 3 {
		t.Errorf("Expected 3 attempts on the dead page, got %d", hits)
	}
	if !result.Pages[0].Skipped {
		t.Error("Expected first page to be skipped after retries")
	}
	if len(result.Listings) != 1 {
		t.Errorf("Expected 1 listing from the healthy page, got %d", len(result.Listings))
	}
}

func TestPageURL(t *testing.T) {
	cfg := testConfig("https://host")
	f := New(cfg, nil)

	if got := f.PageURL("sh", 1); got != "https://host/sh/zufang/" {
		t.Errorf("Page 1 URL = %q", got)
	}
	if got := f.PageURL("sh", 4); got != "https://host/sh/zufang/pg4/" {
		t.Errorf("Page 4 URL = %q", got)
	}
}

func TestFetchCity_EmptyCity(t *testing.T) {
	f := New(testConfig("https://host"), nil)
	if _, err := f.FetchCity(context.Background(), "", 1); err == nil {
		t.Error("Expected error for empty city")
	}
}
