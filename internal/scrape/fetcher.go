// Package scrape implements the sequential page fetcher for rental listings.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/cityrent/zufang/internal/config"
	"github.com/cityrent/zufang/internal/pacer"
	"github.com/cityrent/zufang/internal/retry"
	"github.com/cityrent/zufang/pkg/models"
	"github.com/rs/zerolog/log"
)

// Fetcher walks the paginated listing results of one city, page by page.
//
// One Fetcher owns one HTTP client for the duration of a fetch so all page
// requests share connections. Pages are fetched strictly sequentially and
// spaced by the configured delay.
type Fetcher struct {
	client *http.Client
	cfg    *config.Config

	// OnPage, when set, is invoked once per completed page (fetched or
	// skipped). Used by the CLI to advance its progress bar.
	OnPage func(models.PageResult)

	// Warnf receives the per-page warning lines for skipped pages.
	// Defaults to printing on standard output.
	Warnf func(format string, args ...any)

	// RetryConfig controls the backoff applied when cfg.Retries > 0.
	// MaxAttempts is derived from cfg.Retries per fetch.
	RetryConfig retry.Config
}

// New creates a Fetcher with dependency injection. A nil client gets the
// default one built from the config.
func New(cfg *config.Config, client *http.Client) *Fetcher {
	if client == nil {
		client = NewHTTPClient(cfg)
	}
	return &Fetcher{
		client:      client,
		cfg:         cfg,
		RetryConfig: retry.DefaultConfig(),
		Warnf: func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		},
	}
}

// PageURL returns the listings URL for the given 1-based page index.
// The first page uses the bare listings path; later pages append a pgN
// path segment.
func (f *Fetcher) PageURL(city string, page int) string {
	base := fmt.Sprintf(f.cfg.BaseURLTemplate, city)
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%spg%d/", base, page)
}

// FetchCity fetches pages 1..pages for the city and accumulates listings.
//
// A non-200 response never fails the run: the page is recorded as skipped
// with a reason and the loop continues. Network-level errors abort the fetch
// unless retries are configured, in which case the page request is retried
// with backoff and, once attempts are exhausted, recorded as skipped too.
// The partial result accumulated so far is returned alongside any error.
func (f *Fetcher) FetchCity(ctx context.Context, city string, pages int) (*models.FetchResult, error) {
	if city == "" {
		return nil, fmt.Errorf("city must not be empty")
	}
	if pages < 1 {
		pages = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result := &models.FetchResult{City: city}

	pace := pacer.New(f.cfg.Delay)

	for page := 1; page <= pages; page++ {
		if err := pace.Wait(ctx); err != nil {
			return result, err
		}

		pageURL := f.PageURL(city, page)
		log.Debug().Str("url", pageURL).Int("page", page).Msg("Fetching page")

		var status int
		var listings []models.Listing

		fetch := func() error {
			var err error
			status, listings, err = f.fetchPage(ctx, pageURL)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return retry.NewHTTPError(status, http.StatusText(status), pageURL)
			}
			return nil
		}

		var err error
		if f.cfg.Retries > 0 {
			rc := f.RetryConfig
			rc.MaxAttempts = f.cfg.Retries + 1
			err = retry.WithRetry(ctx, rc, fetch)
		} else {
			err = fetch()
		}

		outcome := models.PageResult{Page: page, URL: pageURL, StatusCode: status}

		var httpErr retry.HTTPError
		switch {
		case err == nil:
			for i := range listings {
				listings[i].Page = page
			}
			result.Listings = append(result.Listings, listings...)
			outcome.Listings = len(listings)
			log.Debug().Int("page", page).Int("listings", len(listings)).Msg("Page extracted")

		case errors.As(err, &httpErr):
			f.warnf("warning: received status %d for %s", httpErr.StatusCode, pageURL)
			outcome.Skipped = true
			outcome.Reason = fmt.Sprintf("status %d", httpErr.StatusCode)

		case f.cfg.Retries > 0:
			// Hardened mode: a dead page is treated like a bad status.
			f.warnf("warning: giving up on %s: %v", pageURL, err)
			outcome.Skipped = true
			outcome.Reason = err.Error()

		default:
			return result, err
		}

		result.Pages = append(result.Pages, outcome)
		if f.OnPage != nil {
			f.OnPage(outcome)
		}
	}

	return result, nil
}

// fetchPage issues one GET with the fixed header set and extracts listings
// from a 200 response. A non-200 status is not an error here; the body is
// drained so the connection can be reused.
func (f *Fetcher) fetchPage(ctx context.Context, pageURL string) (int, []models.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Referer", f.cfg.Referer)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return resp.StatusCode, ParseListings(doc), nil
}

func (f *Fetcher) warnf(format string, args ...any) {
	log.Warn().Msgf(format, args...)
	if f.Warnf != nil {
		f.Warnf(format, args...)
	}
}
