package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sorcerer/pkg/log"
)

type CacheConfig struct {
	// Empty means <runtime>/cache.
	Path string `env:"CACHE_PATH"`
	// Zero keeps entries forever.
	TTL time.Duration `env:"CACHE_TTL" envDefault:"0s"`
	// Knowledge sheets held in process.
	KnowledgeLRUSize int `env:"KNOWLEDGE_LRU_SIZE" envDefault:"256"`
}

func NewCacheConfig(ctx context.Context, app *AppConfig) *CacheConfig {
	c := &CacheConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Cache config")
	}
	if c.Path == "" {
		c.Path = filepath.Join(app.GetRuntimePath(), "cache")
	}
	return c
}
