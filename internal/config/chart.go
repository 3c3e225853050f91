package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sorcerer/pkg/log"
)

type ChartConfig struct {
	// Empty disables horoscope charts.
	ServiceURL string `env:"CHART_SERVICE_URL"`
	APIKey     string `env:"CHART_SERVICE_API_KEY"`
}

func NewChartConfig(ctx context.Context) *ChartConfig {
	c := &ChartConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Chart config")
	}
	return c
}
