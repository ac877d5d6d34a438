package visionapi

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultLoginPath = "/login"
	defaultCacheTTL  = time.Minute
	cacheSize        = 32
)

// Config holds the client settings. Only BaseURL is required.
type Config struct {
	BaseURL    string
	LoginPath  string
	Timeout    time.Duration
	CacheTTL   time.Duration // <0 disables caching of read-only resources
	Tokens     TokenSource
	Redirector Redirector
	HTTPClient *http.Client
}

// Client is the Vision REST API client.
type Client struct {
	baseURL    string
	loginPath  string
	tokens     TokenSource
	redirector Redirector
	httpClient *http.Client
	cache      *expirable.LRU[string, []byte]

	// redirected is set on the first 401 and cleared by ResetAuth.
	redirected atomic.Bool
}

// New creates a Vision API client.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		loginPath:  cfg.LoginPath,
		tokens:     cfg.Tokens,
		redirector: cfg.Redirector,
		httpClient: cfg.HTTPClient,
	}
	if c.loginPath == "" {
		c.loginPath = defaultLoginPath
	}
	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	if ttl > 0 {
		c.cache = expirable.NewLRU[string, []byte](cacheSize, nil, ttl)
	}
	return c
}

// ResetAuth re-arms the login redirect after a new sign-in and drops cached responses.
func (c *Client) ResetAuth() {
	c.redirected.Store(false)
	if c.cache != nil {
		c.cache.Purge()
	}
}

var _ IVision = (*Client)(nil)
