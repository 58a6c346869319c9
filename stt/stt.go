package stt

import (
	"context"
	"errors"
	"net"
)

// Transcriber converts raw audio samples into recognized text.
//
// Input is assumed to be mono, 16-bit little-endian PCM at 16kHz.
// Implementations wrap the samples in a valid WAV container before
// handing them to the recognition engine.
type Transcriber interface {
	Transcribe(ctx context.Context, pcm []byte) (string, error)
}

var (
	// ErrUnintelligible means the engine could not map the audio to any
	// text. The user should be prompted to try again.
	ErrUnintelligible = errors.New("could not understand audio")

	// ErrServiceUnavailable means the recognition service could not be
	// reached or answered with a service-level failure.
	ErrServiceUnavailable = errors.New("speech recognition service unavailable")
)

// classify maps transport-level failures onto ErrServiceUnavailable so
// the pipeline can branch on error kind instead of message text.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return ErrServiceUnavailable
	}
	return nil
}
