package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sandevgo/sorcerer/internal/core"
)

const anthropicDefaultMaxTokens = 1024

type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(baseURL, apiKey, model string) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (a *Anthropic) Name() string {
	return "anthropic"
}

func (a *Anthropic) Generate(ctx context.Context, p core.GenerateParams) (core.Generation, error) {
	maxTokens := p.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}
	// Newer models reject temperature and top_p together.
	if p.Temperature > 0 {
		params.Temperature = anthropic.Float(p.Temperature)
	} else if p.TopP > 0 {
		params.TopP = anthropic.Float(p.TopP)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return core.Generation{}, fmt.Errorf("anthropic generate: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return core.Generation{
		Text:         text,
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}, nil
}
