package fetch

import (
	"log/slog"
	"time"

	"github.com/pokesdk/poke-sdk/application/config"
	"golang.org/x/time/rate"
)

// Option configures an Engine.
type Option func(*Engine)

// WithConfig applies every setting of cfg.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		WithBaseURL(cfg.BaseURL)(e)
		WithUserAgent(cfg.UserAgent)(e)
		WithTimeout(cfg.Timeout)(e)
		WithRetries(cfg.Retries, cfg.RetryBackoff)(e)
		WithRateLimit(cfg.RateLimit)(e)
		WithMaxBodyBytes(cfg.MaxBodyBytes)(e)
	}
}

// WithBaseURL sets the API root; lookups go to {url}/pokemon/{id}.
func WithBaseURL(url string) Option {
	return func(e *Engine) {
		if url != "" {
			e.baseURL = url
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(e *Engine) {
		if ua != "" {
			e.userAgent = ua
		}
	}
}

// WithTimeout bounds each request attempt.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithRetries allows n extra attempts after a transport failure, waiting
// backoff multiplied by the attempt number between them.
func WithRetries(n int, backoff time.Duration) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.retries = n
		}
		if backoff >= 0 {
			e.backoff = backoff
		}
	}
}

// WithRateLimit caps outgoing requests per second across all calls on the
// engine. Zero or less removes the limit.
func WithRateLimit(perSecond float64) Option {
	return func(e *Engine) {
		if perSecond <= 0 {
			e.limiter = nil
			return
		}
		e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithMaxBodyBytes caps the upstream response size.
func WithMaxBodyBytes(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger; nil keeps the current one.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
