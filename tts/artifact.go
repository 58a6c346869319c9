package tts

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Artifact is a synthesized audio clip parked in a temp file. The call
// that created it owns the file; Release removes it once no turn or page
// references it anymore.
type Artifact struct {
	ID   string
	Path string
	Size int64

	// MIMEType of the audio payload, e.g. "audio/wav" or "audio/mpeg".
	MIMEType string
}

// newArtifact validates the synthesized bytes and parks them in a temp
// file. Output under MinArtifactSize is discarded as ErrSynthesisFailed.
func newArtifact(data []byte, ext, mimeType string) (*Artifact, error) {
	if len(data) < MinArtifactSize {
		return nil, fmt.Errorf(
			"engine returned %d bytes (min %d): %w",
			len(data), MinArtifactSize, ErrSynthesisFailed,
		)
	}

	tmp, err := os.CreateTemp("", "vox-speak-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create artifact file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write artifact file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close artifact file: %w", err)
	}

	return &Artifact{
		ID:       uuid.NewString(),
		Path:     tmp.Name(),
		Size:     int64(len(data)),
		MIMEType: mimeType,
	}, nil
}

// Release deletes the backing file. Safe to call more than once.
func (a *Artifact) Release() error {
	if a == nil || a.Path == "" {
		return nil
	}
	err := os.Remove(a.Path)
	a.Path = ""
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
