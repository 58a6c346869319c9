package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/haguro/elevenlabs-go"
)

const (
	elevenLabsModel        = "eleven_turbo_v2_5"
	elevenLabsDefaultVoice = "pKLLpypGseGMUjkb5fEZ"
	elevenLabsTimeout      = 30 * time.Second
)

// ElevenLabsSynthesizer speaks through the ElevenLabs API. The engine
// controls prosody itself, so the configured rate and volume are not
// applied here; its artifacts are MP3. No mutable state, safe for
// concurrent use.
type ElevenLabsSynthesizer struct {
	apiKey       string
	defaultVoice string
	logger       *log.Logger
}

func NewElevenLabsSynthesizer(
	apiKey string,
	voice string,
	logger *log.Logger,
) *ElevenLabsSynthesizer {
	if voice == "" {
		voice = elevenLabsDefaultVoice
	}
	return &ElevenLabsSynthesizer{
		apiKey:       apiKey,
		defaultVoice: voice,
		logger:       logger,
	}
}

func (e *ElevenLabsSynthesizer) Synthesize(
	ctx context.Context,
	text, voice string,
) (*Artifact, error) {
	if voice == "" {
		voice = e.defaultVoice
	}

	client := elevenlabs.NewClient(ctx, e.apiKey, elevenLabsTimeout)

	audio, err := client.TextToSpeech(voice, elevenlabs.TextToSpeechRequest{
		Text:    text,
		ModelID: elevenLabsModel,
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs speech: %v: %w", err, ErrSynthesisFailed)
	}

	artifact, err := newArtifact(audio, ".mp3", "audio/mpeg")
	if err != nil {
		return nil, err
	}

	e.logger.Debug("synthesized",
		"engine", "elevenlabs", "voice", voice, "bytes", artifact.Size)
	return artifact, nil
}

func (e *ElevenLabsSynthesizer) Voices(
	ctx context.Context,
) ([]VoiceOption, error) {
	client := elevenlabs.NewClient(ctx, e.apiKey, elevenLabsTimeout)

	voices, err := client.GetVoices()
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}

	options := make([]VoiceOption, 0, len(voices))
	for _, v := range voices {
		options = append(options, VoiceOption{ID: v.VoiceId, Name: v.Name})
	}
	return options, nil
}

// ValidateVoice checks the id against the live catalog. Only selection
// routes call this; Synthesize trusts the id and lets the engine reject
// bad ones, sparing a catalog round trip per turn.
func (e *ElevenLabsSynthesizer) ValidateVoice(
	ctx context.Context,
	id string,
) error {
	voices, err := e.Voices(ctx)
	if err != nil {
		return fmt.Errorf("%q: %v: %w", id, err, ErrUnknownVoice)
	}
	for _, v := range voices {
		if v.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrUnknownVoice)
}
