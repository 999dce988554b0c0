// Package fetch implements the Fetch Engine: one upstream lookup per call,
// with every failure folded into a Failure envelope.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pokesdk/poke-sdk/application/config"
	"github.com/pokesdk/poke-sdk/domain/entities"
	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/domain/ports"
	"github.com/pokesdk/poke-sdk/log"
	"golang.org/x/time/rate"
)

var errNilResponse = errors.New("client returned neither a response nor an error")

// Compile-time interface compliance check
var _ ports.Fetcher = (*Engine)(nil)

// Engine looks up Pokémon through an HTTPClient. It is safe for concurrent
// use; the optional rate limiter is the only state shared between calls.
type Engine struct {
	client  ports.HTTPClient
	logger  *slog.Logger
	limiter *rate.Limiter

	baseURL   string
	userAgent string

	timeout      time.Duration
	backoff      time.Duration
	maxBodyBytes int64
	retries      int
}

// NewEngine returns an Engine using client with config.Default() settings
// and a discarding logger, then applies opts.
func NewEngine(client ports.HTTPClient, opts ...Option) *Engine {
	e := &Engine{client: client, logger: log.Discard()}
	WithConfig(config.Default())(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fetch looks up id and returns exactly one envelope. It never panics for a
// per-lookup failure.
func (e *Engine) Fetch(ctx context.Context, id uint32) entities.Envelope {
	p, err := e.Lookup(ctx, id)
	if err != nil {
		e.logger.WarnContext(ctx, "pokemon lookup failed",
			slog.Uint64("id", uint64(id)),
			slog.String("kind", string(sdkerrors.KindOf(err))),
			slog.Any("error", err))
		return entities.FailureFromError(err)
	}
	return entities.Success(p)
}

// Lookup is Fetch with the typed error instead of an envelope.
func (e *Engine) Lookup(ctx context.Context, id uint32) (entities.Pokemon, error) {
	url := e.URL(id)

	for attempt := 0; ; attempt++ {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return entities.Pokemon{}, &sdkerrors.TransportError{Err: err, URL: url}
			}
		}

		p, err := e.lookupOnce(ctx, id, url)
		if err == nil || sdkerrors.KindOf(err) != sdkerrors.KindTransport || attempt >= e.retries {
			return p, err
		}

		wait := e.backoff * time.Duration(attempt+1)
		e.logger.DebugContext(ctx, "retrying pokemon lookup",
			slog.Uint64("id", uint64(id)),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return entities.Pokemon{}, err
		case <-timer.C:
		}
	}
}

// URL returns the upstream address for id.
func (e *Engine) URL(id uint32) string {
	return fmt.Sprintf("%s/pokemon/%d", strings.TrimRight(e.baseURL, "/"), id)
}

func (e *Engine) lookupOnce(ctx context.Context, id uint32, url string) (entities.Pokemon, error) {
	e.logger.DebugContext(ctx, "requesting pokemon", slog.String("url", url))

	start := time.Now()
	resp, err := e.client.Do(ctx, ports.HTTPRequest{
		Method: http.MethodGet,
		URL:    url,
		Headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": e.userAgent,
		},
		Timeout:      int(e.timeout.Milliseconds()),
		MaxBodyBytes: e.maxBodyBytes,
	})
	if err != nil {
		if sdkerrors.KindOf(err) == sdkerrors.KindTransport {
			return entities.Pokemon{}, err
		}
		return entities.Pokemon{}, &sdkerrors.TransportError{Err: err, URL: url, Duration: time.Since(start)}
	}
	if resp == nil {
		return entities.Pokemon{}, &sdkerrors.InternalError{Operation: "http request", Err: errNilResponse}
	}

	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
	case code == http.StatusNotFound, code == http.StatusBadRequest:
		return entities.Pokemon{}, &sdkerrors.NotFoundError{ID: id, StatusCode: code}
	case code == http.StatusTooManyRequests, code >= 500:
		return entities.Pokemon{}, &sdkerrors.TransportError{URL: url, StatusCode: code, Duration: time.Since(start)}
	default:
		return entities.Pokemon{}, &sdkerrors.UpstreamMalformedError{Reason: fmt.Sprintf("unexpected status %d", code)}
	}

	if resp.BodyTruncated {
		return entities.Pokemon{}, &sdkerrors.UpstreamMalformedError{
			Reason: fmt.Sprintf("response body exceeds %d bytes", e.maxBodyBytes),
		}
	}
	return parsePokemon(resp.Body, id)
}
