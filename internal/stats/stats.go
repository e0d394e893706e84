// Package stats reduces a listing collection into summary rent figures.
package stats

import "github.com/cityrent/zufang/pkg/models"

// Summary describes the rent distribution of a listing collection.
// Min/Max/Mean are only meaningful when ValidPrices > 0.
type Summary struct {
	Listings    int
	ValidPrices int
	Mean        float64
	Min         float64
	Max         float64
}

// AverageRent returns the arithmetic mean of all valid prices in the
// collection. ok is false when there is no data: an empty collection, or one
// where every price failed to parse. A missing price is excluded from both
// the numerator and the denominator, never treated as zero.
func AverageRent(listings []models.Listing) (float64, bool) {
	var sum float64
	var n int
	for _, l := range listings {
		if l.PriceValid {
			sum += l.Price
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Summarize computes counts and min/mean/max over the valid prices.
func Summarize(listings []models.Listing) Summary {
	s := Summary{Listings: len(listings)}
	for _, l := range listings {
		if !l.PriceValid {
			continue
		}
		if s.ValidPrices == 0 || l.Price < s.Min {
			s.Min = l.Price
		}
		if s.ValidPrices == 0 || l.Price > s.Max {
			s.Max = l.Price
		}
		s.Mean += l.Price
		s.ValidPrices++
	}
	if s.ValidPrices > 0 {
		s.Mean /= float64(s.ValidPrices)
	}
	return s
}
