package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiLanguageModel answers through Google's generative API instead of
// Groq. Selected when GEMINI_API_KEY is configured.
type GeminiLanguageModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiLanguageModel(
	ctx context.Context,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
) (*GeminiLanguageModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SetTemperature(temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemPrompt)},
	}

	return &GeminiLanguageModel{client: client, model: model}, nil
}

func (g *GeminiLanguageModel) Reply(
	ctx context.Context,
	userText string,
) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %v: %w", err, ErrGenerationFailed)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}

	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("gemini returned no text: %w", ErrGenerationFailed)
	}
	return reply, nil
}

func (g *GeminiLanguageModel) Close() error {
	return g.client.Close()
}
