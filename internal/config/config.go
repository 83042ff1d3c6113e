package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	EngineHTTP  = "http"
	EngineColly = "colly"

	CSVModeOverwrite = "overwrite"
	CSVModeAppend    = "append"

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var ErrInvalidConfig = errors.New("invalid config")

type SiteConfig struct {
	SiteURL   string `yaml:"site_url"`
	SearchURL string `yaml:"search_url"`
	MaxPages  int    `yaml:"max_pages"`
}

type FetchConfig struct {
	Engine           string            `yaml:"engine"`
	TimeoutSec       int               `yaml:"timeout_sec"`
	MaxRedirects     int               `yaml:"max_redirects"`
	Headers          map[string]string `yaml:"headers"`
	Proxy            string            `yaml:"proxy"`
	RespectRobotsTxt bool              `yaml:"respect_robots_txt"`
}

// SelectorConfig holds the CSS selectors used against the directory markup.
type SelectorConfig struct {
	ListingContainer string `yaml:"listing_container"`
	ListingTitleLink string `yaml:"listing_title_link"`
	ContactBlock     string `yaml:"contact_block"`
	WebsiteLink      string `yaml:"website_link"`
	WebsiteIcon      string `yaml:"website_icon"`
	EmailLink        string `yaml:"email_link"`
	EmailIcon        string `yaml:"email_icon"`
}

type LogicConfig struct {
	PageDelayMS        int  `yaml:"page_delay_ms"`
	DetailDelayMS      int  `yaml:"detail_delay_ms"`
	GateWebsiteOnEmail bool `yaml:"gate_website_on_email"`
}

type OutputConfig struct {
	JSONFile  string `yaml:"json_file"`
	CSVFile   string `yaml:"csv_file"`
	CSVMode   string `yaml:"csv_mode"`
	CSVHeader bool   `yaml:"csv_header"`
}

type ScraperConfig struct {
	Site      SiteConfig     `yaml:"site"`
	Fetch     FetchConfig    `yaml:"fetch"`
	Selectors SelectorConfig `yaml:"selectors"`
	Logic     LogicConfig    `yaml:"logic"`
	Output    OutputConfig   `yaml:"output"`
	LogLevel  string         `yaml:"log_level"`
}

// Default returns the settings the scraper was originally built with.
func Default() *ScraperConfig {
	return &ScraperConfig{
		Site: SiteConfig{
			SiteURL:   "https://www.goldenpages.ie",
			SearchURL: "https://www.goldenpages.ie/q/business/advanced/what/plumbers/",
			MaxPages:  95,
		},
		Fetch: FetchConfig{
			Engine:       EngineHTTP,
			TimeoutSec:   10,
			MaxRedirects: 15,
			Headers: map[string]string{
				"User-Agent": DefaultUserAgent,
			},
		},
		Selectors: SelectorConfig{
			ListingContainer: "div.listing_container",
			ListingTitleLink: "h3.listing_title a",
			ContactBlock:     "div.details_contact_other.col_item.width_2_4",
			WebsiteLink:      `a[class~="yext.homepage"]`,
			WebsiteIcon:      "span.icon_website",
			EmailLink:        `a[class~="yext.email"]`,
			EmailIcon:        "span.icon_email",
		},
		Logic: LogicConfig{
			PageDelayMS:        2000,
			DetailDelayMS:      2000,
			GateWebsiteOnEmail: true,
		},
		Output: OutputConfig{
			JSONFile:  "golden_pages_data.json",
			CSVMode:   CSVModeOverwrite,
			CSVHeader: true,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file on top of Default. Keys missing from the file
// keep their default values.
func LoadConfig(path string) (*ScraperConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ScraperConfig) Validate() error {
	if c.Site.MaxPages < 1 {
		return fmt.Errorf("%w: site.max_pages must be >= 1, got %d", ErrInvalidConfig, c.Site.MaxPages)
	}
	for name, raw := range map[string]string{"site.site_url": c.Site.SiteURL, "site.search_url": c.Site.SearchURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalidConfig, name, raw)
		}
	}
	if c.Fetch.Proxy != "" {
		if _, err := url.Parse(c.Fetch.Proxy); err != nil {
			return fmt.Errorf("%w: fetch.proxy: %v", ErrInvalidConfig, err)
		}
	}
	switch c.Fetch.Engine {
	case EngineHTTP, EngineColly:
	default:
		return fmt.Errorf("%w: unknown fetch.engine %q", ErrInvalidConfig, c.Fetch.Engine)
	}
	if c.Fetch.TimeoutSec <= 0 {
		return fmt.Errorf("%w: fetch.timeout_sec must be positive", ErrInvalidConfig)
	}
	if c.Logic.PageDelayMS < 0 || c.Logic.DetailDelayMS < 0 {
		return fmt.Errorf("%w: delays cannot be negative", ErrInvalidConfig)
	}
	switch c.Output.CSVMode {
	case CSVModeOverwrite, CSVModeAppend:
	default:
		return fmt.Errorf("%w: unknown output.csv_mode %q", ErrInvalidConfig, c.Output.CSVMode)
	}
	if c.Output.JSONFile == "" {
		return fmt.Errorf("%w: output.json_file is required", ErrInvalidConfig)
	}
	return nil
}

func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

func (l LogicConfig) PageDelay() time.Duration {
	return time.Duration(l.PageDelayMS) * time.Millisecond
}

func (l LogicConfig) DetailDelay() time.Duration {
	return time.Duration(l.DetailDelayMS) * time.Millisecond
}
