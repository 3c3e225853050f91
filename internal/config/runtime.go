package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/sorcerer/pkg/log"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("SORCERER_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".sorcerer"
	}
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

// LoadEnv reads <runtime>/.env when present. Real environment variables win.
func LoadEnv(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(GetRuntimePath(), ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
