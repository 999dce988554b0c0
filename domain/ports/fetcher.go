package ports

import (
	"context"

	"github.com/pokesdk/poke-sdk/domain/entities"
)

// Fetcher retrieves a Pokemon by id and always answers with an envelope.
// Implementations must not panic on per-lookup failures.
type Fetcher interface {
	Fetch(ctx context.Context, id uint32) entities.Envelope
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id uint32) entities.Envelope

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, id uint32) entities.Envelope {
	return f(ctx, id)
}
