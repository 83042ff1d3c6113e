package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListingDetailStartsNotFound(t *testing.T) {
	d := NewListingDetail("https://www.goldenpages.ie/biz/1")

	assert.Equal(t, NotFound, d.Email)
	assert.Equal(t, NotFound, d.Website)
	assert.False(t, d.HasWebsite())
}

func TestHasWebsiteTreatsEmptyAsPresent(t *testing.T) {
	// "" is a resolved value as far as the filter is concerned; only the
	// sentinel means missing
	assert.True(t, ListingDetail{Website: ""}.HasWebsite())
}

func TestMergeRecord(t *testing.T) {
	ref := ListingRef{Name: "Acme Plumbing", Link: "/biz/1"}
	d := ListingDetail{Link: "https://www.goldenpages.ie/biz/1", Email: "a@acme.ie", Website: "https://acme.ie"}

	r := MergeRecord(ref, d)

	assert.Equal(t, Record{Name: "Acme Plumbing", Link: "https://www.goldenpages.ie/biz/1", Email: "a@acme.ie", Website: "https://acme.ie"}, r)
	assert.Equal(t, []string{"Acme Plumbing", "https://www.goldenpages.ie/biz/1", "a@acme.ie", "https://acme.ie"}, r.Values())
	assert.Len(t, RecordFields, len(r.Values()))
}
