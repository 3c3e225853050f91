package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sorcerer/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SORCERER_RUNTIME_PATH" envDefault:".sorcerer"`
	HTTPAddr    string `env:"SORCERER_HTTP_ADDR" envDefault:":8080"`

	// Every external call gets its own deadline.
	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"30s"`

	// Conversation memory
	ChatHistoryLimit int  `env:"CHAT_HISTORY_LIMIT" envDefault:"50"`
	ChatSummaries    bool `env:"CHAT_SUMMARIES" envDefault:"true"`

	MaxQuestionChars int `env:"MAX_QUESTION_CHARS" envDefault:"2000"`

	// Prompts quote the current time at this UTC offset.
	TimezoneOffsetHours int `env:"TIMEZONE_OFFSET_HOURS" envDefault:"7"`

	// Per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "sorcerer.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) Location() *time.Location {
	return time.FixedZone("", c.TimezoneOffsetHours*3600)
}
