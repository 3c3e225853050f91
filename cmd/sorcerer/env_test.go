package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveEnv(t *testing.T) {
	t.Setenv("SORCERER_RUNTIME_PATH", t.TempDir())
	t.Setenv("LLM_API_KEY", "sk-secret")
	t.Setenv("CHART_SERVICE_URL", "http://chart.local")

	out, err := effectiveEnv(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out, "SORCERER_HTTP_ADDR=:8080\n")
	assert.Contains(t, out, "CALL_TIMEOUT=30s\n")
	assert.Contains(t, out, "LLM_API_KEY=********\n")
	assert.Contains(t, out, "CHART_SERVICE_URL=http://chart.local\n")
	assert.NotContains(t, out, "sk-secret")

	// Each key at most once.
	seen := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		key, _, _ := strings.Cut(line, "=")
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
}
