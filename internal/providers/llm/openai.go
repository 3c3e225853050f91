package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sashabaranov/go-openai"
)

// OpenAICompatible serves any chat-completions endpoint: OpenAI, OpenRouter, Ollama or a custom gateway.
type OpenAICompatible struct {
	client *openai.Client
	name   string
	model  string
}

type OpenAICompatibleConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string
	// Sent with every request.
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if len(cfg.ExtraHeaders) > 0 {
		clientCfg.HTTPClient = &http.Client{
			Transport: &headerTransport{base: http.DefaultTransport, headers: cfg.ExtraHeaders},
		}
	}
	return &OpenAICompatible{
		client: openai.NewClientWithConfig(clientCfg),
		name:   cfg.Name,
		model:  cfg.Model,
	}
}

func NewOpenAI(apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{Name: "openai", APIKey: apiKey, Model: model})
}

func NewOpenRouter(apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		Name:    "openrouter",
		BaseURL: "https://openrouter.ai/api/v1",
		APIKey:  apiKey,
		Model:   model,
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.RepositoryURL,
			"X-Title":      core.AppName,
		},
	})
}

func NewOllama(baseURL, apiKey, model string) *OpenAICompatible {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}
	return NewOpenAICompatible(OpenAICompatibleConfig{Name: "ollama", BaseURL: baseURL, APIKey: apiKey, Model: model})
}

func NewCustomOpenAI(baseURL, apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{Name: "custom", BaseURL: baseURL, APIKey: apiKey, Model: model})
}

func (o *OpenAICompatible) Name() string {
	return o.name
}

func (o *OpenAICompatible) Generate(ctx context.Context, p core.GenerateParams) (core.Generation, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: p.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.User})

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   p.MaxTokens,
		Temperature: float32(p.Temperature),
		TopP:        float32(p.TopP),
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return core.Generation{}, fmt.Errorf("%s chat completion: %w", o.name, err)
	}
	if len(resp.Choices) == 0 {
		return core.Generation{}, errors.New(o.name + " returned no choices")
	}

	return core.Generation{
		Text:         resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}
