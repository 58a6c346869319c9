package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"
)

const (
	groqBaseURL  = "https://api.groq.com/openai/v1"
	whisperModel = "whisper-large-v3"
)

// WhisperTranscriber recognizes speech through Groq's Whisper endpoint,
// which speaks the OpenAI audio transcription API. Used when no Deepgram
// key is configured, so voice input works with the Groq key alone.
type WhisperTranscriber struct {
	client *openai.Client
	logger *log.Logger
}

func NewWhisperTranscriber(
	apiKey string,
	logger *log.Logger,
) *WhisperTranscriber {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(cfg),
		logger: logger,
	}
}

func (w *WhisperTranscriber) Transcribe(
	ctx context.Context,
	pcm []byte,
) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    whisperModel,
		FilePath: "input.wav",
		Reader:   bytes.NewReader(WrapPCM(pcm)),
	})
	if err != nil {
		if kind := classify(err); kind != nil {
			return "", fmt.Errorf("whisper: %v: %w", err, kind)
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 500 {
			return "", fmt.Errorf("whisper: %v: %w", err, ErrServiceUnavailable)
		}
		return "", fmt.Errorf("whisper: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrUnintelligible
	}

	w.logger.Debug("transcribed", "engine", "whisper", "chars", len(text))
	return text, nil
}
