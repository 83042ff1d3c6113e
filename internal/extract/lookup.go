package extract

import (
	"github.com/PuerkitoBio/goquery"
)

type Tier int

const (
	TierNone Tier = iota
	TierPrimary
	TierIcon
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierIcon:
		return "icon"
	default:
		return "none"
	}
}

// Lookup finds a field's anchor inside a contact block: first by the primary
// selector, then by the element right after the field's icon.
type Lookup struct {
	Field   string
	Primary string
	Icon    string
}

// Match is the result of a Lookup. Anchor is empty when Tier is TierNone.
// IconSeen reports whether the icon marker exists even if it had no sibling.
type Match struct {
	Anchor   *goquery.Selection
	Tier     Tier
	IconSeen bool
}

func (m Match) Found() bool {
	return m.Tier != TierNone
}

func (l Lookup) Find(block *goquery.Selection) Match {
	if a := block.Find(l.Primary).First(); a.Length() > 0 {
		return Match{Anchor: a, Tier: TierPrimary}
	}

	icon := block.Find(l.Icon).First()
	if icon.Length() == 0 {
		return Match{}
	}
	if next := icon.Next(); next.Length() > 0 {
		return Match{Anchor: next, Tier: TierIcon, IconSeen: true}
	}
	return Match{IconSeen: true}
}
