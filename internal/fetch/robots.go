package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/temoto/robotstxt"
)

// robotsCache loads robots.txt once per host. A host whose robots.txt cannot
// be loaded is treated as allowing everything.
type robotsCache struct {
	client    *http.Client
	userAgent string
	groups    map[string]*robotstxt.Group
	logger    *log.Logger
}

func newRobotsCache(client *http.Client, userAgent string, logger *log.Logger) *robotsCache {
	return &robotsCache{
		client:    client,
		userAgent: userAgent,
		groups:    make(map[string]*robotstxt.Group),
		logger:    logger,
	}
}

func (r *robotsCache) Allowed(ctx context.Context, urlStr string) (bool, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, err
	}
	key := u.Scheme + "://" + u.Host

	group, ok := r.groups[key]
	if !ok {
		group = r.load(ctx, key)
		r.groups[key] = group
	}
	if group == nil {
		return true, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return group.Test(path), nil
}

func (r *robotsCache) load(ctx context.Context, origin string) *robotstxt.Group {
	robotsURL := fmt.Sprintf("%s/robots.txt", origin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		r.logger.Warn("robots.txt request", "url", robotsURL, "err", err)
		return nil
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("robots.txt unavailable, ignoring", "url", robotsURL, "err", err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		r.logger.Warn("robots.txt unparsable, ignoring", "url", robotsURL, "err", err)
		return nil
	}

	r.logger.Info("robots.txt loaded", "url", robotsURL)
	return data.FindGroup(r.userAgent)
}
