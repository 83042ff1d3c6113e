package listingset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golden_pages/internal/models"
)

func TestListingSetDeduplicatesIdenticalPairs(t *testing.T) {
	s := NewListingSet()

	assert.True(t, s.Add(models.ListingRef{Name: "Plumbing Co", Link: "/biz/1"}))
	assert.False(t, s.Add(models.ListingRef{Name: "Plumbing Co", Link: "/biz/1"}))
	// same link, different name is a different tuple
	assert.True(t, s.Add(models.ListingRef{Name: "Plumbing Company", Link: "/biz/1"}))

	assert.Equal(t, 2, s.Size())
}

func TestListingSetKeepsFirstSeenOrder(t *testing.T) {
	s := NewListingSet()
	added := s.AddAll([]models.ListingRef{
		{Name: "B", Link: "/b"},
		{Name: "A", Link: "/a"},
		{Name: "B", Link: "/b"},
		{Name: "C", Link: "/c"},
		{Name: "A", Link: "/a"},
	})

	assert.Equal(t, 3, added)
	assert.Equal(t, []models.ListingRef{
		{Name: "B", Link: "/b"},
		{Name: "A", Link: "/a"},
		{Name: "C", Link: "/c"},
	}, s.Items())
}

func TestListingSetItemsIsACopy(t *testing.T) {
	s := NewListingSet()
	s.Add(models.ListingRef{Name: "A", Link: "/a"})

	items := s.Items()
	items[0].Name = "changed"

	assert.Equal(t, "A", s.Items()[0].Name)
}

func TestPageURL(t *testing.T) {
	base := "https://www.goldenpages.ie/q/business/advanced/what/plumbers/"

	assert.Equal(t, base, PageURL(base, 1))
	assert.Equal(t, base+"2/", PageURL(base, 2))
	assert.Equal(t, base+"95/", PageURL(base, 95))
	assert.Equal(t, "http://x/q/3/", PageURL("http://x/q", 3))
}

func TestDetailURL(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"/plumbers/acme/123", "https://www.goldenpages.ie/plumbers/acme/123"},
		{"plumbers/acme/123", "https://www.goldenpages.ie/plumbers/acme/123"},
		{" /biz/1?ref=search ", "https://www.goldenpages.ie/biz/1?ref=search"},
		{"https://other.example/biz/9", "https://other.example/biz/9"},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, err := DetailURL("https://www.goldenpages.ie", tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetailURLBadLink(t *testing.T) {
	_, err := DetailURL("https://www.goldenpages.ie", "http://[::1")
	assert.Error(t, err)
}
