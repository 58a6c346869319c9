package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"vox.town/config"
	"vox.town/llm"
	"vox.town/stt"
	"vox.town/tts"
)

const geminiModelName = "gemini-1.5-pro"

// BuildPipeline assembles a Pipeline from configured providers. Groq
// serves every stage by default; Deepgram, ElevenLabs, and Gemini take
// over their stage when their key is present.
func BuildPipeline(
	ctx context.Context,
	cfg *config.Config,
	logger *log.Logger,
) (*Pipeline, error) {
	var model llm.LanguageModel
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiLanguageModel(
			ctx,
			cfg.GeminiAPIKey,
			geminiModelName,
			cfg.MaxTokens,
			cfg.Temperature,
		)
		if err != nil {
			return nil, fmt.Errorf("gemini model: %w", err)
		}
		model = gemini
	} else {
		model = llm.NewGroqLanguageModel(
			cfg.GroqAPIKey,
			cfg.ModelName,
			cfg.MaxTokens,
			cfg.Temperature,
			logger.WithPrefix("mind"),
		)
	}

	var transcriber stt.Transcriber
	if cfg.DeepgramAPIKey != "" {
		transcriber = stt.NewDeepgramTranscriber(
			cfg.DeepgramAPIKey,
			logger.WithPrefix("hear"),
		)
	} else {
		transcriber = stt.NewWhisperTranscriber(
			cfg.GroqAPIKey,
			logger.WithPrefix("hear"),
		)
	}

	synthesizer, err := BuildSynthesizer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Transcriber: transcriber,
		Model:       model,
		Synthesizer: synthesizer,
		Logger:      logger.WithPrefix("turn"),
		CallTimeout: cfg.CallTimeout,
	}, nil
}

// BuildSynthesizer picks the speech engine on its own, for commands that
// only speak (`vox say`, `vox voices`). A configured voice id becomes the
// engine default and is checked against the catalog up front.
func BuildSynthesizer(
	ctx context.Context,
	cfg *config.Config,
	logger *log.Logger,
) (tts.Synthesizer, error) {
	var synthesizer tts.Synthesizer
	if cfg.ElevenLabsAPIKey != "" {
		synthesizer = tts.NewElevenLabsSynthesizer(
			cfg.ElevenLabsAPIKey,
			cfg.VoiceID,
			logger.WithPrefix("talk"),
		)
	} else {
		synthesizer = tts.NewGroqSynthesizer(
			cfg.GroqAPIKey,
			cfg.VoiceID,
			cfg.VoiceRate,
			cfg.VoiceVolume,
			logger.WithPrefix("talk"),
		)
	}

	if cfg.VoiceID != "" {
		if err := synthesizer.ValidateVoice(ctx, cfg.VoiceID); err != nil {
			return nil, fmt.Errorf("configured voice: %w", err)
		}
	}
	return synthesizer, nil
}
