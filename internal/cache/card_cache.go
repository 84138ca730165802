// Package cache provides an optional redis-backed coaching-card cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fiture/domain/coach"
	"fiture/domain/core"
	"fiture/internal/errors"
)

// defaultTTL keeps cards around for one day; a card describes "today" and
// has no value beyond that.
const defaultTTL = 24 * time.Hour

const keyPrefix = "coach:card:"

// CardCache stores cards keyed by the hash of the aligned feature row
type CardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCardCache creates a cache over an existing redis client
func NewCardCache(client *redis.Client) *CardCache {
	return &CardCache{client: client, ttl: defaultTTL}
}

// Get returns the cached card for a row hash, if present
func (c *CardCache) Get(ctx context.Context, key core.Hash) (*coach.Card, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key.String()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "card cache read")
	}
	var card coach.Card
	if err := json.Unmarshal(data, &card); err != nil {
		// A corrupt entry is treated as a miss so the pipeline recomputes
		return nil, false, nil
	}
	return &card, true, nil
}

// Set stores a card under its row hash
func (c *CardCache) Set(ctx context.Context, key core.Hash, card coach.Card) error {
	data, err := json.Marshal(card)
	if err != nil {
		return errors.Wrap(err, "card cache encode")
	}
	if err := c.client.Set(ctx, keyPrefix+key.String(), data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "card cache write")
	}
	return nil
}
