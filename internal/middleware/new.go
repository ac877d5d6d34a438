package middleware

import (
	"sync"
	"time"

	"vision/pkg/log"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	limiterTableSize = 1024
	limiterIdleTTL   = 10 * time.Minute
)

type Middleware struct {
	l              log.Logger
	allowedOrigins map[string]struct{}
	allowAll       bool

	limit      rate.Limit
	burst      int
	limitersMu *sync.Mutex
	limiters   *expirable.LRU[string, *rate.Limiter]
}

// Config tunes the middleware chain.
type Config struct {
	// AllowedOrigins lists UI origins for CORS; "*" allows any origin.
	AllowedOrigins []string
	// RequestsPerMin is the per-client budget; 0 disables rate limiting.
	RequestsPerMin int
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:              l,
		allowedOrigins: make(map[string]struct{}, len(cfg.AllowedOrigins)),
		limitersMu:     &sync.Mutex{},
		limiters:       expirable.NewLRU[string, *rate.Limiter](limiterTableSize, nil, limiterIdleTTL),
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			mw.allowAll = true
		}
		mw.allowedOrigins[o] = struct{}{}
	}
	if cfg.RequestsPerMin > 0 {
		mw.limit = rate.Limit(float64(cfg.RequestsPerMin) / 60)
		mw.burst = max(1, cfg.RequestsPerMin/6)
	}
	return mw
}
