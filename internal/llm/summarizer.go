// Package llm generates an optional plain-language note about the debt
// report. The note is strictly additive: it never alters a figure and a
// failure never aborts the report.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/wallscreet/us-debt/internal/model"
)

// Summarizer wraps the chat-completion provider.
type Summarizer struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewSummarizer creates a Summarizer from the LLM configuration.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %q", cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Note generates a short commentary on the newest snapshot and its
// delta. The prompt pins the model to the computed figures.
func (s *Summarizer) Note(ctx context.Context, newest model.DebtRecord, d model.DebtDelta) (string, error) {
	chatModel := s.cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := s.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write brief, neutral notes about U.S. national debt figures. Use only the numbers given to you; never invent figures.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(newest, d),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from provider")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(newest model.DebtRecord, d model.DebtDelta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As of %s the total public debt outstanding is $%s.\n", newest.Date, newest.TotalDebt.StringFixed(2))
	fmt.Fprintf(&b, "Over the preceding %d day(s) it changed by $%s, which is $%s per hour.\n",
		d.DaysElapsed, d.TotalDebt.StringFixed(2), d.HourlyRate.StringFixed(2))
	b.WriteString("Write a two-sentence note describing this change.")
	return b.String()
}
