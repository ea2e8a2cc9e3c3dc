package config

import (
	"time"

	"github.com/muurk/catalog-admin/internal/catalog"
)

// CurrentVersion is the settings file format version
const CurrentVersion = 1

// DefaultListen is the address the web console binds to
const DefaultListen = "127.0.0.1:8080"

// Settings represents the entire user configuration file
type Settings struct {
	Version     int                  `yaml:"version"`
	API         *APISettings         `yaml:"api,omitempty"`
	Display     *DisplaySettings     `yaml:"display,omitempty"`
	Web         *WebSettings         `yaml:"web,omitempty"`
	Preferences *Preferences         `yaml:"preferences,omitempty"`
	Endpoints   map[string]*Endpoint `yaml:"endpoints,omitempty"` // Keyed by products URL
}

// APISettings configures the catalog API client
type APISettings struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`     // 0 = no timeout
	FetchLimit int           `yaml:"fetch_limit"` // Products loaded per reload
}

// DisplaySettings configures how prices are shown
type DisplaySettings struct {
	CurrencySymbol string `yaml:"currency_symbol"`
}

// WebSettings configures the browser console
type WebSettings struct {
	Listen    string `yaml:"listen"`
	Advertise bool   `yaml:"advertise"` // Announce the console over mDNS
}

// Preferences represents application-wide user preferences
type Preferences struct {
	AutoDiscover    bool `yaml:"auto_discover"`    // Browse mDNS when no API URL is configured
	DiscoverTimeout int  `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// Endpoint is a catalog API the user has connected to before
type Endpoint struct {
	Nickname string    `yaml:"nickname,omitempty"`
	LastUsed time.Time `yaml:"last_used,omitempty"`
}

// NewSettings creates Settings with default values
func NewSettings() *Settings {
	s := &Settings{Version: CurrentVersion}
	s.fillDefaults()
	return s
}

// fillDefaults sets every missing section or zero field to its default
func (s *Settings) fillDefaults() {
	if s.API == nil {
		s.API = &APISettings{}
	}
	if s.API.BaseURL == "" {
		s.API.BaseURL = catalog.DefaultBaseURL
	}
	if s.API.FetchLimit <= 0 {
		s.API.FetchLimit = catalog.BulkFetchLimit
	}
	if s.Display == nil {
		s.Display = &DisplaySettings{CurrencySymbol: catalog.DefaultCurrencySymbol}
	}
	if s.Web == nil {
		s.Web = &WebSettings{}
	}
	if s.Web.Listen == "" {
		s.Web.Listen = DefaultListen
	}
	if s.Preferences == nil {
		s.Preferences = &Preferences{AutoDiscover: false, DiscoverTimeout: 5}
	}
	if s.Preferences.DiscoverTimeout <= 0 {
		s.Preferences.DiscoverTimeout = 5
	}
	if s.Endpoints == nil {
		s.Endpoints = make(map[string]*Endpoint)
	}
}

// DiscoverTimeout returns the mDNS browse timeout
func (s *Settings) DiscoverTimeout() time.Duration {
	return time.Duration(s.Preferences.DiscoverTimeout) * time.Second
}

// RememberEndpoint records that url was used now. An empty nickname keeps the old one.
func (s *Settings) RememberEndpoint(url, nickname string, now time.Time) {
	ep, ok := s.Endpoints[url]
	if !ok {
		ep = &Endpoint{}
		s.Endpoints[url] = ep
	}
	if nickname != "" {
		ep.Nickname = nickname
	}
	ep.LastUsed = now
}
