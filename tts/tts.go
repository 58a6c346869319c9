package tts

import (
	"context"
	"errors"
)

// MinArtifactSize is the sanity floor for synthesized audio. Engines
// occasionally return a near-empty buffer for a "successful" call; anything
// under a kilobyte is silent output and counts as a failure.
const MinArtifactSize = 1024

var (
	// ErrSynthesisFailed covers engine errors and undersized output.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrUnknownVoice is returned for voice ids the engine does not
	// offer.
	ErrUnknownVoice = errors.New("unknown voice")
)

// VoiceOption is one entry of the engine's voice catalog.
type VoiceOption struct {
	ID   string
	Name string
}

// Synthesizer turns reply text into a playable audio artifact.
//
// Rate, volume, and the default voice are fixed at construction.
// Implementations hold no mutable selection state, so one Synthesizer is
// safe to share across concurrent sessions; the voice travels with each
// call instead.
type Synthesizer interface {
	// Synthesize speaks text in the given voice. An empty voice means the
	// engine's default; an unknown one is ErrUnknownVoice.
	Synthesize(ctx context.Context, text, voice string) (*Artifact, error)

	// Voices enumerates the engine's catalog. The order is whatever the
	// engine returns and is not guaranteed stable across calls.
	Voices(ctx context.Context) ([]VoiceOption, error)

	// ValidateVoice reports whether the engine offers the voice id,
	// ErrUnknownVoice when it does not. For selection routes; Synthesize
	// checks again on its own.
	ValidateVoice(ctx context.Context, id string) error
}
