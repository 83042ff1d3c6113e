package models

// NotFound marks a contact field that could not be resolved. It is distinct from "".
const NotFound = "Not found"

// ListingRef is a business found on a listing-index page. It is comparable and
// is used directly as a set key.
type ListingRef struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type ListingDetail struct {
	Link    string `json:"link"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Record is one line of the final output.
type Record struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// RecordFields is the column order used by the CSV writer.
var RecordFields = []string{"name", "link", "email", "website"}

func NewListingDetail(link string) ListingDetail {
	return ListingDetail{
		Link:    link,
		Email:   NotFound,
		Website: NotFound,
	}
}

func (d ListingDetail) HasWebsite() bool {
	return d.Website != NotFound
}

func MergeRecord(ref ListingRef, d ListingDetail) Record {
	return Record{
		Name:    ref.Name,
		Link:    d.Link,
		Email:   d.Email,
		Website: d.Website,
	}
}

func (r Record) Values() []string {
	return []string{r.Name, r.Link, r.Email, r.Website}
}
