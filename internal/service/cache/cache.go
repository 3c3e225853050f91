package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

// Cache memoizes generations by fingerprint. Store failures degrade to misses.
// Two concurrent misses on the same fingerprint both generate; the last write wins.
type Cache struct {
	store core.CacheStore
	now   func() time.Time
}

func New(store core.CacheStore) *Cache {
	return &Cache{store: store, now: time.Now}
}

// Key identifies one cached answer.
type Key struct {
	Fingerprint string
	Feature     string
}

func NewKey(subject core.BirthSubject, birthTime, featureID string) Key {
	return Key{
		Fingerprint: ComputeFingerprint(subject.Date, birthTime, subject.Gender, featureID),
		Feature:     featureID,
	}
}

// Lookup returns the stored entry for a key, if any.
func (c *Cache) Lookup(ctx context.Context, key Key) (*core.CacheEntry, bool) {
	logger := log.FromCtx(ctx)

	entry, ok, err := c.store.Get(ctx, key.Fingerprint)
	if err != nil {
		lookups.WithLabelValues(key.Feature, "error").Inc()
		logger.Warn().Err(err).Str("feature", key.Feature).Msg("cache read failed, treating as miss")
		return nil, false
	}
	if !ok {
		lookups.WithLabelValues(key.Feature, "miss").Inc()
		return nil, false
	}

	lookups.WithLabelValues(key.Feature, "hit").Inc()
	logger.Debug().Str("feature", key.Feature).Str("fingerprint", key.Fingerprint).Msg("cache hit")
	return entry, true
}

// Store writes an answer unless the generation was a fallback. Errors are logged and dropped.
func (c *Cache) Store(ctx context.Context, key Key, answer any, gen core.Generation) {
	logger := log.FromCtx(ctx)

	if gen.Fallback {
		writes.WithLabelValues(key.Feature, "skipped").Inc()
		return
	}

	raw, err := json.Marshal(answer)
	if err != nil {
		writes.WithLabelValues(key.Feature, "error").Inc()
		logger.Warn().Err(err).Str("feature", key.Feature).Msg("failed to encode cache answer")
		return
	}

	entry := core.CacheEntry{
		Fingerprint:  key.Fingerprint,
		Answer:       raw,
		InputTokens:  gen.InputTokens,
		OutputTokens: gen.OutputTokens,
		CreatedAt:    c.now().UTC(),
	}
	if err := c.store.Put(ctx, entry); err != nil {
		writes.WithLabelValues(key.Feature, "error").Inc()
		logger.Warn().Err(err).Str("feature", key.Feature).Msg("cache write failed")
		return
	}
	writes.WithLabelValues(key.Feature, "ok").Inc()
}

// Remember returns the cached answer for key or computes and stores it.
// A cached value that no longer decodes into T is recomputed.
func Remember[T any](ctx context.Context, c *Cache, key Key, compute func(context.Context) (T, core.Generation, error)) (T, error) {
	if entry, ok := c.Lookup(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(entry.Answer, &cached); err == nil {
			return cached, nil
		}
		log.FromCtx(ctx).Warn().Str("feature", key.Feature).Msg("discarding undecodable cache entry")
	}

	answer, gen, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Store(ctx, key, answer, gen)
	return answer, nil
}
