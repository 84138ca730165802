package ports

import (
	"context"

	"fiture/domain/coach"
	"fiture/domain/core"
)

// CardCache is an optional read-through cache in front of the prediction
// pipeline, keyed by the hash of the aligned feature row.
type CardCache interface {
	Get(ctx context.Context, key core.Hash) (*coach.Card, bool, error)
	Set(ctx context.Context, key core.Hash, card coach.Card) error
}
