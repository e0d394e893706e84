package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cityrent/zufang/pkg/models"
)

// Selectors matching the listing markup of the rental site.
const (
	itemSelector   = ".content__list .content__list--item"
	titleSelector  = "p.content__list--item--title a"
	priceSelector  = "em"
	detailSelector = "p.content__list--item--des"
	detailSep      = " | "
)

// ParseListings extracts rental listings from a parsed results page.
//
// Items without both a title and a price element are advertisement or
// placeholder slots and are dropped. The description is optional; when its
// element is absent Detail stays "".
func ParseListings(doc *goquery.Document) []models.Listing {
	var listings []models.Listing

	doc.Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
		title := item.Find(titleSelector).First()
		price := item.Find(priceSelector).First()
		if title.Length() == 0 || price.Length() == 0 {
			return
		}

		titleText := strings.TrimSpace(title.Text())
		priceText := strings.TrimSpace(price.Text())
		if titleText == "" || priceText == "" {
			return
		}

		listing := models.Listing{
			Title:     titleText,
			PriceText: priceText,
			Detail:    detailText(item.Find(detailSelector).First()),
		}
		listing.Price, listing.PriceValid = ParsePrice(priceText)

		listings = append(listings, listing)
	})

	return listings
}

// ParsePrice coerces displayed price text to a number. Text that carries no
// plain number ("面议", ranges, annotated amounts) yields ok=false — a
// missing value for that record, not zero.
func ParsePrice(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// detailText joins the text fragments of the description element with a
// separator. The site breaks the description line into nested inline
// elements, so each non-empty leaf text node becomes one fragment.
func detailText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	var parts []string
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.TrimSpace(c.Text()); t != "" {
					parts = append(parts, t)
				}
				return
			}
			walk(c)
		})
	}
	walk(sel)

	return strings.Join(parts, detailSep)
}
