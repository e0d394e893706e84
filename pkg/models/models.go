package models

// Listing represents one rental property entry extracted from a results page.
//
// PriceText holds the monthly rent exactly as displayed; Price and PriceValid
// carry the coerced numeric value. Display text that carries no number
// (e.g. "面议", price on request) leaves PriceValid false — a missing value,
// distinct from zero.
type Listing struct {
	Title      string  `json:"title"`
	PriceText  string  `json:"price_text"`
	Price      float64 `json:"price,omitempty"`
	PriceValid bool    `json:"price_valid"`
	Detail     string  `json:"detail,omitempty"`
	Page       int     `json:"page"`
}

// PageResult records the outcome of fetching a single results page.
// A skipped page carries a human-readable reason (bad status, exhausted
// retries) so callers and tests can assert on why it produced no listings.
type PageResult struct {
	Page       int    `json:"page"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code,omitempty"`
	Listings   int    `json:"listings"`
	Skipped    bool   `json:"skipped"`
	Reason     string `json:"reason,omitempty"`
}

// FetchResult bundles the accumulated listings with the per-page outcomes.
// Listings keeps insertion order: page order first, DOM order within a page.
// It is not mutated after the fetch returns.
type FetchResult struct {
	City     string       `json:"city"`
	Listings []Listing    `json:"listings"`
	Pages    []PageResult `json:"pages"`
}
