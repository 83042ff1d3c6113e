package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"golden_pages/internal/config"
	"golden_pages/internal/extract"
	"golden_pages/internal/fetch"
	listingset "golden_pages/internal/listing_set"
	"golden_pages/internal/models"
	"golden_pages/internal/store"
)

type ScraperApp struct {
	config  *config.ScraperConfig
	fetcher fetch.Fetcher
	details *extract.DetailExtractor
	logger  *log.Logger
	sleep   func(ctx context.Context, d time.Duration) bool
}

// Summary counts what a run produced.
type Summary struct {
	Pages    int
	Listings int
	Records  int
}

func NewScraperApp(cfg *config.ScraperConfig, logger *log.Logger) (*ScraperApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fetcher, err := fetch.NewFetcher(cfg.Fetch, logger)
	if err != nil {
		return nil, err
	}

	return &ScraperApp{
		config:  cfg,
		fetcher: fetcher,
		details: extract.NewDetailExtractor(fetcher, cfg.Selectors, cfg.Logic, logger),
		logger:  logger,
		sleep:   sleepContext,
	}, nil
}

// Run collects listing links, scrapes every listing for contacts and saves the
// listings that have a website. Output errors are logged, not returned.
func (a *ScraperApp) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	a.logger.Info("phase 1: collecting business links", "search_url", a.config.Site.SearchURL, "max_pages", a.config.Site.MaxPages)
	links, pages := a.CollectListings(ctx)
	summary.Pages = pages
	summary.Listings = links.Size()
	a.logger.Info("phase 1 complete", "pages", pages, "unique_links", links.Size())

	if links.Size() == 0 {
		a.logger.Warn("no links found, check the search url or selectors")
		return summary, ctx.Err()
	}

	a.logger.Info("phase 2: scraping business pages")
	records := a.CollectDetails(ctx, links.Items())
	summary.Records = len(records)

	a.logger.Info("phase 3: saving data")
	a.Save(records)

	a.logger.Info("scraping complete", "pages", summary.Pages, "listings", summary.Listings, "records", summary.Records)
	return summary, ctx.Err()
}

// CollectListings walks the search pages until one is empty, one fails to
// load or max_pages is reached. It returns the unique listings and the number
// of pages requested.
func (a *ScraperApp) CollectListings(ctx context.Context) (*listingset.ListingSet, int) {
	links := listingset.NewListingSet()
	requested := 0

	for page := 1; page <= a.config.Site.MaxPages; page++ {
		if ctx.Err() != nil {
			a.logger.Warn("interrupted, stopping pagination", "page", page)
			break
		}

		pageURL := listingset.PageURL(a.config.Site.SearchURL, page)
		a.logger.Info("scraping search results", "page", page, "url", pageURL)

		requested++
		doc, err := a.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			a.logger.Error("failed to fetch search results, stopping", "page", page)
			break
		}

		refs := extract.Listings(doc, a.config.Selectors)
		if len(refs) == 0 {
			a.logger.Info("no more listings, stopping pagination", "page", page)
			break
		}

		added := links.AddAll(refs)
		a.logger.Info("links found", "page", page, "found", len(refs), "new", added, "total_unique", links.Size())

		if page < a.config.Site.MaxPages {
			a.sleep(ctx, a.config.Logic.PageDelay())
		}
	}

	return links, requested
}

// CollectDetails scrapes every listing and keeps the ones with a website, in
// the order given.
func (a *ScraperApp) CollectDetails(ctx context.Context, refs []models.ListingRef) []models.Record {
	records := make([]models.Record, 0)

	for i, ref := range refs {
		if ctx.Err() != nil {
			a.logger.Warn("interrupted, stopping detail collection", "done", i, "total", len(refs))
			break
		}

		a.logger.Info("processing business", "name", ref.Name, "n", i+1, "of", len(refs))

		detailURL, err := listingset.DetailURL(a.config.Site.SiteURL, ref.Link)
		if err != nil {
			a.logger.Error("bad listing link, skipping", "name", ref.Name, "link", ref.Link, "err", err)
			continue
		}

		detail := a.details.Scrape(ctx, detailURL)
		if detail.HasWebsite() {
			a.logger.Info("website found, keeping", "name", ref.Name, "website", detail.Website)
			records = append(records, models.MergeRecord(ref, detail))
		} else {
			a.logger.Info("no website found, skipping", "name", ref.Name)
		}

		a.sleep(ctx, a.config.Logic.DetailDelay())
	}

	return records
}

func (a *ScraperApp) Save(records []models.Record) {
	if len(records) == 0 {
		a.logger.Warn("no data was collected to save")
		return
	}

	out := a.config.Output
	if err := store.SaveJSON(out.JSONFile, records); err != nil {
		a.logger.Error("failed to write JSON", "file", out.JSONFile, "err", err)
	} else {
		a.logger.Info("wrote JSON", "file", out.JSONFile, "records", len(records))
	}

	if out.CSVFile == "" {
		return
	}
	if err := store.SaveCSV(out.CSVFile, records, out.CSVMode, out.CSVHeader); err != nil {
		a.logger.Error("failed to write CSV", "file", out.CSVFile, "err", err)
	} else {
		a.logger.Info("wrote CSV", "file", out.CSVFile, "records", len(records), "mode", out.CSVMode)
	}
}

// sleepContext waits for d and reports false if ctx ended first.
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// IsInterrupted reports whether err came from the run being cancelled.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
