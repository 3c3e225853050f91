package chart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const computePath = "/v1/chart"

// Client asks an external chart service to lay out a horoscope chart.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

type computeRequest struct {
	Day        int    `json:"day"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	HourBranch int    `json:"hour_branch"`
	GenderSign int    `json:"gender_sign"`
	Name       string `json:"name,omitempty"`
	TZOffset   int    `json:"tz_offset"`
}

// NewClient returns nil when no service URL is configured.
func NewClient(cfg *config.ChartConfig, timeout time.Duration) *Client {
	if cfg.ServiceURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.ServiceURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Compute(ctx context.Context, req core.ChartRequest) (*core.ChartResult, error) {
	if c == nil {
		return nil, core.ErrChartUnavailable
	}

	body, err := json.Marshal(computeRequest{
		Day:        req.Day,
		Month:      req.Month,
		Year:       req.Year,
		HourBranch: req.HourBranch,
		GenderSign: req.GenderSign,
		Name:       req.Name,
		TZOffset:   req.TZOffset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+computePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chart request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrChartUnavailable, err)
	}
	defer resp.Body.Close()

	log.FromCtx(ctx).Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("chart service responded")

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", core.ErrChartUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result core.ChartResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	if len(result.Palaces) == 0 {
		return nil, fmt.Errorf("%w: chart has no palaces", core.ErrChartUnavailable)
	}
	return &result, nil
}
