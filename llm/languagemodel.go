package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"
)

// ErrGenerationFailed covers any transport or API failure while asking the
// hosted model for a reply. Callers substitute FallbackReply into the
// transcript rather than surfacing the raw error.
var ErrGenerationFailed = errors.New("reply generation failed")

// FallbackReply is what the assistant says when the model is unreachable.
const FallbackReply = "I'm sorry, I'm having trouble responding right now. Could you try asking again?"

// LanguageModel produces one assistant reply for one user utterance.
//
// Each call sends exactly two messages: the fixed persona instruction and
// the current user text. No prior turns are included, so the model only
// "remembers" what the user can see in the rendered transcript.
type LanguageModel interface {
	Reply(ctx context.Context, userText string) (string, error)
}

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqLanguageModel talks to Groq's OpenAI-compatible chat completion API.
type GroqLanguageModel struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *log.Logger
}

func NewGroqLanguageModel(
	apiKey string,
	model string,
	maxTokens int,
	temperature float32,
	logger *log.Logger,
) *GroqLanguageModel {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &GroqLanguageModel{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (g *GroqLanguageModel) Reply(
	ctx context.Context,
	userText string,
) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: SystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userText,
				},
			},
			MaxTokens:   g.maxTokens,
			Temperature: g.temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %v: %w", err, ErrGenerationFailed)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices: %w", ErrGenerationFailed)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("chat completion returned empty reply: %w", ErrGenerationFailed)
	}

	g.logger.Debug("reply", "model", g.model, "chars", len(reply))
	return reply, nil
}
