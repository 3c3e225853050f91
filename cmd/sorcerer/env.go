package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/pkg/env"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:          "env",
	Short:        "Print the effective configuration as .env lines",
	Long:         `Prints every non-empty setting after defaults and the runtime .env file are applied. Secrets are masked.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLoggerTo(cmd.Context(), cmd.ErrOrStderr())
		defer flushLog()

		if err := config.LoadEnv(ctx); err != nil {
			return fmt.Errorf("failed to load env: %w", err)
		}

		out, err := effectiveEnv(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func effectiveEnv(ctx context.Context) (string, error) {
	appCfg := config.NewAppConfig(ctx)
	sections := []any{
		appCfg,
		config.NewLLMConfig(ctx),
		config.NewRAGConfig(ctx),
		config.NewCacheConfig(ctx, appCfg),
		config.NewChartConfig(ctx),
	}

	var out string
	for _, s := range sections {
		lines, err := env.MarshalEnv(s, env.MaskSecrets())
		if err != nil {
			return "", err
		}
		out += lines
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(envCmd)
}
