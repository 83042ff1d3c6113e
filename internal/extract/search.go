package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"golden_pages/internal/config"
	"golden_pages/internal/models"
)

// Listings returns the businesses on a listing-index page in page order. An
// empty result means the page has no listings, which ends pagination.
func Listings(doc *goquery.Document, sel config.SelectorConfig) []models.ListingRef {
	refs := make([]models.ListingRef, 0)

	doc.Find(sel.ListingContainer).Each(func(_ int, container *goquery.Selection) {
		a := container.Find(sel.ListingTitleLink).First()
		if a.Length() == 0 {
			return
		}
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		refs = append(refs, models.ListingRef{
			Name: listingName(a.Text()),
			Link: href,
		})
	})

	return refs
}

// listingName drops the "N." rank prefix the directory puts in front of names.
func listingName(text string) string {
	if _, rest, found := strings.Cut(text, "."); found {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}
