package knowledge

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const DefaultCacheSize = 256

// Categories used by the datasets.
const (
	CategoryZodiac     = "cung-hoang-dao"
	CategoryNumerology = "numerology_number"
	CategoryTarot      = "tarot_card"
)

// NumerologyEntity is the knowledge key of a life path number.
func NumerologyEntity(lifePath string) string {
	return "Số " + lifePath
}

// Lookup reads fact sheets through an in-process LRU.
// Only non-empty sheets are cached so newly ingested entries show up without a restart.
type Lookup struct {
	repo  core.KnowledgeRepository
	cache *lru.Cache[string, core.Attributes]
}

func NewLookup(repo core.KnowledgeRepository, size int) *Lookup {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[string, core.Attributes](size)
	return &Lookup{repo: repo, cache: cache}
}

func cacheKey(category, entityKey string) string {
	return category + "\x00" + entityKey
}

// Lookup returns the fact sheet or an empty one; store errors are logged.
func (l *Lookup) Lookup(ctx context.Context, category, entityKey string) core.Attributes {
	if entityKey == "" {
		return core.Attributes{}
	}

	key := cacheKey(category, entityKey)
	if attrs, ok := l.cache.Get(key); ok {
		return attrs
	}

	attrs, err := l.repo.GetEntry(ctx, category, entityKey)
	if err != nil {
		log.FromCtx(ctx).Warn().
			Err(err).
			Str("category", category).
			Str("entity", entityKey).
			Msg("knowledge lookup failed, proceeding without it")
		return core.Attributes{}
	}
	if len(attrs) == 0 {
		return core.Attributes{}
	}

	l.cache.Add(key, attrs)
	return attrs
}

// Purge drops every cached sheet. Called after ingestion.
func (l *Lookup) Purge() {
	l.cache.Purge()
}
