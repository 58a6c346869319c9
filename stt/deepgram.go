package stt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/rest"
	interfaces "github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces"
	listen "github.com/deepgram/deepgram-go-sdk/pkg/client/listen"
)

// DeepgramTranscriber recognizes speech through Deepgram's prerecorded
// REST endpoint.
type DeepgramTranscriber struct {
	rest   *api.Client
	logger *log.Logger
}

func NewDeepgramTranscriber(
	apiKey string,
	logger *log.Logger,
) *DeepgramTranscriber {
	client := listen.NewREST(apiKey, &interfaces.ClientOptions{})
	return &DeepgramTranscriber{
		rest:   api.New(client),
		logger: logger,
	}
}

func (d *DeepgramTranscriber) Transcribe(
	ctx context.Context,
	pcm []byte,
) (string, error) {
	tmp, err := os.CreateTemp("", "vox-listen-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	path := tmp.Name()
	// The temp file must not outlive the call, whichever way it ends.
	defer os.Remove(path)

	if _, err := tmp.Write(WrapPCM(pcm)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp audio file: %w", err)
	}

	res, err := d.rest.FromFile(ctx, path, &interfaces.PreRecordedTranscriptionOptions{
		Model:       "nova-2",
		Language:    "en-US",
		Punctuate:   true,
		SmartFormat: true,
	})
	if err != nil {
		if kind := classify(err); kind != nil {
			return "", fmt.Errorf("deepgram: %v: %w", err, kind)
		}
		return "", fmt.Errorf("deepgram: %w", err)
	}

	if len(res.Results.Channels) == 0 ||
		len(res.Results.Channels[0].Alternatives) == 0 {
		return "", ErrUnintelligible
	}

	text := strings.TrimSpace(
		res.Results.Channels[0].Alternatives[0].Transcript,
	)
	if text == "" {
		return "", ErrUnintelligible
	}

	d.logger.Debug("transcribed", "engine", "deepgram", "chars", len(text))
	return text, nil
}
