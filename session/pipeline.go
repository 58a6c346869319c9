package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"vox.town/llm"
	"vox.town/stt"
	"vox.town/tts"
)

// ErrEmptyInput rejects blank or whitespace-only text before the pipeline
// starts. No turn is recorded and the session state never leaves Idle.
var ErrEmptyInput = errors.New("empty input")

// WarnNoAudio is surfaced when the reply text arrived but synthesis did
// not, so the turn renders without a playback control.
const WarnNoAudio = "Audio response could not be generated"

// Pipeline runs one unit of user input through recognition, reply
// generation, and speech synthesis, appending the results to a Session.
//
// Transcriber and Synthesizer may be nil for text-only front-ends; the
// corresponding stages are skipped. All three external calls are blocking
// and strictly sequential, each under its own CallTimeout.
type Pipeline struct {
	Transcriber stt.Transcriber
	Model       llm.LanguageModel
	Synthesizer tts.Synthesizer
	Logger      *log.Logger

	// CallTimeout bounds each external call. Zero means 30 seconds.
	CallTimeout time.Duration
}

// Result reports what one submission did to the session.
type Result struct {
	UserTurn      Turn
	AssistantTurn Turn

	// Warning is a non-fatal degradation notice for the user, empty when
	// the turn completed cleanly.
	Warning string
}

// SubmitText runs the pipeline on typed (or already recognized) text.
// Only input validation returns an error; generation and synthesis
// failures degrade the turn and come back inside the Result.
func (p *Pipeline) SubmitText(
	ctx context.Context,
	s *Session,
	text string,
) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()
	return p.run(ctx, s, text)
}

// SubmitAudio transcribes raw mono/16-bit/16kHz samples and, when the
// recognition succeeds, continues like SubmitText. A failed transcription
// appends nothing: the caller warns the user and the session stays Idle.
func (p *Pipeline) SubmitAudio(
	ctx context.Context,
	s *Session,
	pcm []byte,
) (*Result, error) {
	if len(pcm) == 0 {
		return nil, ErrEmptyInput
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.setState(StateAwaitingTranscription)

	tctx, cancel := p.callContext(ctx)
	text, err := p.Transcriber.Transcribe(tctx, pcm)
	cancel()
	if err != nil {
		s.setState(StateIdle)
		p.Logger.Warn("transcription failed", "error", err)
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	return p.run(ctx, s, text)
}

func (p *Pipeline) run(
	ctx context.Context,
	s *Session,
	text string,
) (*Result, error) {
	defer s.setState(StateIdle)

	result := &Result{
		UserTurn: Turn{Role: RoleUser, Content: text, At: time.Now()},
	}
	s.append(result.UserTurn)

	s.setState(StateAwaitingGeneration)

	gctx, cancel := p.callContext(ctx)
	reply, err := p.Model.Reply(gctx, text)
	cancel()
	if err != nil {
		// The transcript gets the apology, never the raw error.
		p.Logger.Warn("generation failed", "error", err)
		result.AssistantTurn = Turn{
			Role:    RoleAssistant,
			Content: llm.FallbackReply,
			At:      time.Now(),
		}
		s.append(result.AssistantTurn)
		return result, nil
	}

	assistant := Turn{Role: RoleAssistant, Content: reply, At: time.Now()}

	if p.Synthesizer != nil {
		s.setState(StateAwaitingSynthesis)

		sctx, cancel := p.callContext(ctx)
		artifact, err := p.Synthesizer.Synthesize(sctx, reply, s.Voice())
		cancel()
		if err != nil {
			p.Logger.Warn("synthesis failed", "error", err)
			result.Warning = WarnNoAudio
		} else {
			assistant.Audio = artifact
		}
	}

	result.AssistantTurn = assistant
	s.append(assistant)
	return result, nil
}

func (p *Pipeline) callContext(
	ctx context.Context,
) (context.Context, context.CancelFunc) {
	timeout := p.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
