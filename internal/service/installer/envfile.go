package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrEnvExists = errors.New(".env file already exists")

// WriteEnv renders vars in godotenv format, sorted by key. Empty values are dropped.
func WriteEnv(path string, vars map[string]string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w at %s", ErrEnvExists, path)
		}
	}

	set := make(map[string]string, len(vars))
	for k, v := range vars {
		if v != "" {
			set[k] = v
		}
	}

	content, err := godotenv.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to render env: %w", err)
	}
	if content != "" {
		content += "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func validateURL(v string) error {
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		return errors.New("expected an http:// or https:// URL")
	}
	return nil
}

func validateChatIDs(v string) error {
	for _, part := range strings.Split(v, ",") {
		if _, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err != nil {
			return fmt.Errorf("not a chat id: %q", part)
		}
	}
	return nil
}
