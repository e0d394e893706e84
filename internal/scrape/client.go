package scrape

import (
	"net/http"
	"net/url"
	"time"

	"github.com/cityrent/zufang/internal/config"
	"github.com/rs/zerolog/log"
)

// NewHTTPClient builds the client shared by every page request of a fetch.
// Keep-Alive is left on so sequential pages reuse one connection.
func NewHTTPClient(cfg *config.Config) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
	}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			log.Warn().Err(err).Str("proxy", cfg.Proxy).Msg("Invalid proxy URL, ignoring")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.HTTPTimeout,
	}
}
