package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"

	"golden_pages/internal/config"
)

// CollyFetcher drives a synchronous colly collector one URL at a time.
type CollyFetcher struct {
	collector *colly.Collector
	last      *colly.Response
	logger    *log.Logger
}

func NewCollyFetcher(cfg config.FetchConfig, logger *log.Logger) (*CollyFetcher, error) {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
	)
	c.IgnoreRobotsTxt = !cfg.RespectRobotsTxt
	c.SetRequestTimeout(cfg.Timeout())

	if cfg.Proxy != "" {
		if err := c.SetProxy(cfg.Proxy); err != nil {
			return nil, fmt.Errorf("set proxy: %w", err)
		}
	}

	if ua := userAgent(cfg.Headers); ua != "" {
		c.UserAgent = ua
	} else {
		extensions.RandomUserAgent(c)
	}

	headers := cfg.Headers
	c.OnRequest(func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	})

	f := &CollyFetcher{
		collector: c,
		logger:    logger,
	}
	c.OnResponse(func(r *colly.Response) {
		f.last = r
	})
	return f, nil
}

func (f *CollyFetcher) Fetch(ctx context.Context, urlStr string) (*goquery.Document, error) {
	doc, err := f.fetch(ctx, urlStr)
	if err != nil {
		f.logger.Error("fetch failed", "url", urlStr, "err", err)
		return nil, err
	}
	f.logger.Info("fetched", "url", urlStr)
	return doc, nil
}

func (f *CollyFetcher) fetch(ctx context.Context, urlStr string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.last = nil
	if err := f.collector.Visit(urlStr); err != nil {
		if errors.Is(err, colly.ErrRobotsTxtBlocked) {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, urlStr)
		}
		return nil, err
	}

	resp := f.last
	if resp == nil {
		return nil, fmt.Errorf("no response for %s", urlStr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrBadStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
