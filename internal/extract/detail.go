package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"golden_pages/internal/config"
	"golden_pages/internal/fetch"
	"golden_pages/internal/models"
)

// DetailExtractor pulls website and email from individual listing pages.
type DetailExtractor struct {
	fetcher      fetch.Fetcher
	contactBlock string
	website      Lookup
	email        Lookup
	// gateOnEmail commits the website only when an email anchor is also
	// present, and gives up before looking at the email when the website has
	// neither anchor nor icon. See DESIGN.md.
	gateOnEmail bool
	logger      *log.Logger
}

func NewDetailExtractor(f fetch.Fetcher, sel config.SelectorConfig, logic config.LogicConfig, logger *log.Logger) *DetailExtractor {
	return &DetailExtractor{
		fetcher:      f,
		contactBlock: sel.ContactBlock,
		website:      Lookup{Field: "website", Primary: sel.WebsiteLink, Icon: sel.WebsiteIcon},
		email:        Lookup{Field: "email", Primary: sel.EmailLink, Icon: sel.EmailIcon},
		gateOnEmail:  logic.GateWebsiteOnEmail,
		logger:       logger,
	}
}

// Scrape fetches a detail page. A failed fetch yields a detail with both
// contact fields set to models.NotFound.
func (d *DetailExtractor) Scrape(ctx context.Context, pageURL string) models.ListingDetail {
	d.logger.Info("scraping details", "url", pageURL)

	doc, err := d.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return models.NewListingDetail(pageURL)
	}
	return d.ParseContacts(doc, pageURL)
}

func (d *DetailExtractor) ParseContacts(doc *goquery.Document, pageURL string) models.ListingDetail {
	details := models.NewListingDetail(pageURL)

	block := doc.Find(d.contactBlock).First()
	if block.Length() == 0 {
		d.logger.Warn("contact block not found", "url", pageURL)
		return details
	}

	website := d.find(d.website, block, pageURL)
	if d.gateOnEmail && !website.Found() && !website.IconSeen {
		return details
	}

	email := d.find(d.email, block, pageURL)

	if d.gateOnEmail && !email.Found() {
		return details
	}

	setField(&details.Website, website, websiteValue)
	setField(&details.Email, email, emailValue)
	return details
}

func (d *DetailExtractor) find(l Lookup, block *goquery.Selection, pageURL string) Match {
	m := l.Find(block)
	switch {
	case m.Tier == TierIcon:
		d.logger.Info(l.Field+" found via icon", "url", pageURL)
	case !m.Found() && m.IconSeen:
		d.logger.Warn(l.Field+" icon has no anchor after it", "url", pageURL)
	case !m.Found():
		d.logger.Debug(l.Field+" not found", "url", pageURL)
	}
	return m
}

func setField(dst *string, m Match, value func(string) string) {
	if !m.Found() {
		return
	}
	href, _ := m.Anchor.Attr("href")
	if v := value(href); v != "" {
		*dst = v
	}
}

func websiteValue(href string) string {
	return strings.TrimSpace(href)
}

func emailValue(href string) string {
	return strings.TrimSpace(strings.ReplaceAll(href, "mailto:", ""))
}
