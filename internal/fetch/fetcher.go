package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"

	"golden_pages/internal/config"
)

var (
	ErrBadStatus  = errors.New("unexpected HTTP status")
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// Fetcher downloads a page and returns it parsed. Any error means there is
// no document for that URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// NewFetcher builds the engine named by cfg.Engine.
func NewFetcher(cfg config.FetchConfig, logger *log.Logger) (Fetcher, error) {
	switch cfg.Engine {
	case config.EngineColly:
		return NewCollyFetcher(cfg, logger)
	case config.EngineHTTP, "":
		return NewHTTPFetcher(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown fetch engine %q", cfg.Engine)
	}
}

type HTTPFetcher struct {
	client  *http.Client
	headers map[string]string
	robots  *robotsCache
	logger  *log.Logger
}

func NewHTTPFetcher(cfg config.FetchConfig, logger *log.Logger) (*HTTPFetcher, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	jar, _ := cookiejar.New(nil)
	maxHops := cfg.MaxRedirects
	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   cfg.Timeout(),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxHops {
				return fmt.Errorf("stopped after %d redirects", maxHops)
			}
			return nil
		},
	}

	f := &HTTPFetcher{
		client:  client,
		headers: cfg.Headers,
		logger:  logger,
	}
	if cfg.RespectRobotsTxt {
		f.robots = newRobotsCache(client, userAgent(cfg.Headers), logger)
	}
	return f, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (*goquery.Document, error) {
	doc, err := f.fetch(ctx, urlStr)
	if err != nil {
		f.logger.Error("fetch failed", "url", urlStr, "err", err)
		return nil, err
	}
	f.logger.Info("fetched", "url", urlStr)
	return doc, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, urlStr string) (*goquery.Document, error) {
	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, urlStr)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, urlStr)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: HTTP %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		body = resp.Body
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func userAgent(headers map[string]string) string {
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == "User-Agent" {
			return v
		}
	}
	return ""
}
