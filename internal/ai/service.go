// Package ai rewrites product descriptions and generates tags through
// the OpenAI chat API. All failures degrade to the original text so a
// flaky network or missing key never aborts a build.
package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/loomworks/shopforge/internal/config"
)

const systemPrompt = "You are a top-tier Shopify copywriter."

// Result is the outcome of processing one description.
type Result struct {
	Description string
	Tags        string
}

// Service wraps the chat client with the configured mode and pacing.
type Service struct {
	mode      string
	model     string
	rateLimit time.Duration
	available bool

	// complete issues one chat completion. Swappable so failure paths
	// can be tested without a live client.
	complete func(ctx context.Context, prompt string) (string, error)
}

// NewService builds a service for the given config. The returned
// service is always usable: if the API key env var is empty, every
// call falls back to the original description.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		mode:      cfg.Build.Mode,
		model:     cfg.AI.Model,
		rateLimit: time.Duration(cfg.AI.RateLimitMs) * time.Millisecond,
	}

	apiKey := os.Getenv(cfg.AI.APIKeyEnv)
	if apiKey == "" {
		// No key: every call passes the source text through untouched.
		s.complete = func(context.Context, string) (string, error) {
			return "", fmt.Errorf("API key not set (%s)", cfg.AI.APIKeyEnv)
		}
		return s
	}

	s.available = true
	client := openai.NewClient(option.WithAPIKey(apiKey))
	s.complete = func(ctx context.Context, prompt string) (string, error) {
		chat, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(prompt),
			},
			Model: openai.ChatModel(s.model),
		})
		if err != nil {
			return "", err
		}
		if len(chat.Choices) == 0 {
			return "", fmt.Errorf("empty completion")
		}
		return strings.TrimSpace(chat.Choices[0].Message.Content), nil
	}

	return s
}

// Enabled reports whether the service will call the API at all.
func (s *Service) Enabled() bool {
	return s.available && (s.mode == config.ModeSimple || s.mode == config.ModeFull)
}

// Process handles one description according to the configured mode.
// Errors are reported as a warning and the original text comes back
// unchanged with empty tags.
func (s *Service) Process(ctx context.Context, description string) Result {
	description = strings.TrimSpace(description)
	if description == "" {
		return Result{}
	}
	if !s.available {
		return Result{Description: description}
	}

	switch s.mode {
	case config.ModeSimple:
		return s.processSimple(ctx, description)
	case config.ModeFull:
		return s.processFull(ctx, description)
	default:
		return Result{Description: description}
	}
}

// ProcessBatch runs Process over each description sequentially,
// pausing between calls to stay under the provider's rate limit.
// The callback fires after each item for progress reporting.
func (s *Service) ProcessBatch(ctx context.Context, descriptions []string, onItem func(i int)) []Result {
	results := make([]Result, len(descriptions))
	for i, desc := range descriptions {
		results[i] = s.Process(ctx, desc)
		if onItem != nil {
			onItem(i)
		}
		if s.Enabled() && i < len(descriptions)-1 {
			time.Sleep(s.rateLimit)
		}
	}

	return results
}

// processSimple keeps the first sentence of the source text and asks
// the model only for tags.
func (s *Service) processSimple(ctx context.Context, text string) Result {
	firstSentence, _, found := strings.Cut(text, ".")
	firstSentence = strings.TrimSpace(firstSentence)
	if !found || firstSentence == "" {
		firstSentence = text
	}

	prompt := "Extract exactly 5 relevant product tags from this text. " +
		"Return only the tags as a comma-separated list with no extra text.\n\n" +
		"Text: " + firstSentence + "\n\n" +
		"Tags:"

	tags, err := s.complete(ctx, prompt)
	if err != nil {
		color.Yellow("⚠ AI tag generation failed: %v", err)
		return Result{Description: firstSentence}
	}

	return Result{Description: firstSentence, Tags: tags}
}

// processFull asks the model for a rewritten description plus tags in
// a fixed two-line format.
func (s *Service) processFull(ctx context.Context, text string) Result {
	prompt := "1) Rewrite this product description to be clear, engaging, and on-brand.\n" +
		"2) Then output on the next line exactly five comma-separated tags.\n\n" +
		"Original description:\n\"\"\"\n" + text + "\n\"\"\"\n\n" +
		"Respond with exactly two lines:\n" +
		"- Line 1: your rewritten description\n" +
		"- Line 2: tag1,tag2,tag3,tag4,tag5"

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		color.Yellow("⚠ AI processing failed: %v", err)
		return Result{Description: text}
	}

	description, tags, found := strings.Cut(raw, "\n")
	if !found {
		return Result{Description: strings.TrimSpace(raw)}
	}

	return Result{
		Description: strings.TrimSpace(description),
		Tags:        strings.TrimSpace(tags),
	}
}
