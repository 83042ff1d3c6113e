package listingset

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golden_pages/internal/models"
)

// ListingSet keeps the first occurrence of every (name, link) pair in the
// order it was seen.
type ListingSet struct {
	seen  map[models.ListingRef]bool
	items []models.ListingRef
}

func NewListingSet() *ListingSet {
	return &ListingSet{
		seen:  make(map[models.ListingRef]bool),
		items: make([]models.ListingRef, 0),
	}
}

func (s *ListingSet) Add(ref models.ListingRef) bool {
	if s.seen[ref] {
		return false
	}
	s.seen[ref] = true
	s.items = append(s.items, ref)
	return true
}

// AddAll returns how many refs were new.
func (s *ListingSet) AddAll(refs []models.ListingRef) int {
	added := 0
	for _, ref := range refs {
		if s.Add(ref) {
			added++
		}
	}
	return added
}

func (s *ListingSet) Items() []models.ListingRef {
	out := make([]models.ListingRef, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ListingSet) Size() int {
	return len(s.items)
}

// PageURL returns the search URL for a 1-based page number. Page 1 is the
// search URL itself, later pages append the number as a path segment.
func PageURL(searchURL string, page int) string {
	if page <= 1 {
		return searchURL
	}
	return strings.TrimRight(searchURL, "/") + "/" + strconv.Itoa(page) + "/"
}

// DetailURL resolves a listing link against the site root.
func DetailURL(siteURL, link string) (string, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("parse site url: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("parse listing link %q: %w", link, err)
	}
	if !ref.IsAbs() && !strings.HasPrefix(ref.Path, "/") {
		ref.Path = "/" + ref.Path
	}
	return base.ResolveReference(ref).String(), nil
}
