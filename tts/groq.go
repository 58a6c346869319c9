package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"
)

const (
	groqBaseURL  = "https://api.groq.com/openai/v1"
	groqTTSModel = "playai-tts"

	// baselineRate is the words-per-minute that maps to engine speed 1.0.
	baselineRate = 200
)

// groqVoices is PlayAI's fixed English catalog as served through Groq.
// There is no enumeration endpoint, so the adapter carries the list.
var groqVoices = []VoiceOption{
	{ID: "Fritz-PlayAI", Name: "Fritz"},
	{ID: "Arista-PlayAI", Name: "Arista"},
	{ID: "Atlas-PlayAI", Name: "Atlas"},
	{ID: "Basil-PlayAI", Name: "Basil"},
	{ID: "Briggs-PlayAI", Name: "Briggs"},
	{ID: "Calum-PlayAI", Name: "Calum"},
	{ID: "Celeste-PlayAI", Name: "Celeste"},
	{ID: "Cheyenne-PlayAI", Name: "Cheyenne"},
	{ID: "Chip-PlayAI", Name: "Chip"},
	{ID: "Cillian-PlayAI", Name: "Cillian"},
	{ID: "Deedee-PlayAI", Name: "Deedee"},
	{ID: "Gail-PlayAI", Name: "Gail"},
	{ID: "Indigo-PlayAI", Name: "Indigo"},
	{ID: "Mamaw-PlayAI", Name: "Mamaw"},
	{ID: "Mason-PlayAI", Name: "Mason"},
	{ID: "Mikail-PlayAI", Name: "Mikail"},
	{ID: "Mitch-PlayAI", Name: "Mitch"},
	{ID: "Quinn-PlayAI", Name: "Quinn"},
	{ID: "Thunder-PlayAI", Name: "Thunder"},
}

// GroqSynthesizer speaks through Groq's PlayAI text-to-speech endpoint,
// which implements the OpenAI speech API. The configured rate becomes the
// engine's speed multiplier and the volume is applied as a gain pass over
// the returned WAV samples. All fields are set at construction and never
// written after, so the struct is safe for concurrent use.
type GroqSynthesizer struct {
	client       *openai.Client
	defaultVoice string
	speed        float64
	volume       float64
	logger       *log.Logger
}

func NewGroqSynthesizer(
	apiKey string,
	voice string,
	rate int,
	volume float64,
	logger *log.Logger,
) *GroqSynthesizer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL

	if voice == "" {
		voice = groqVoices[0].ID
	}

	speed := float64(rate) / baselineRate
	if speed < 0.5 {
		speed = 0.5
	}
	if speed > 2.0 {
		speed = 2.0
	}

	return &GroqSynthesizer{
		client:       openai.NewClientWithConfig(cfg),
		defaultVoice: voice,
		speed:        speed,
		volume:       volume,
		logger:       logger,
	}
}

func (g *GroqSynthesizer) Synthesize(
	ctx context.Context,
	text, voice string,
) (*Artifact, error) {
	if voice == "" {
		voice = g.defaultVoice
	}
	if err := g.ValidateVoice(ctx, voice); err != nil {
		return nil, err
	}

	resp, err := g.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          groqTTSModel,
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatWav,
		Speed:          g.speed,
	})
	if err != nil {
		return nil, fmt.Errorf("playai speech: %v: %w", err, ErrSynthesisFailed)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %v: %w", err, ErrSynthesisFailed)
	}

	data, err = applyGain(data, g.volume)
	if err != nil {
		return nil, fmt.Errorf("apply volume: %v: %w", err, ErrSynthesisFailed)
	}

	artifact, err := newArtifact(data, ".wav", "audio/wav")
	if err != nil {
		return nil, err
	}

	g.logger.Debug("synthesized",
		"engine", "playai", "voice", voice, "bytes", artifact.Size)
	return artifact, nil
}

func (g *GroqSynthesizer) Voices(_ context.Context) ([]VoiceOption, error) {
	voices := make([]VoiceOption, len(groqVoices))
	copy(voices, groqVoices)
	return voices, nil
}

func (g *GroqSynthesizer) ValidateVoice(_ context.Context, id string) error {
	for _, v := range groqVoices {
		if v.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrUnknownVoice)
}
