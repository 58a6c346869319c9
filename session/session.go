package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"vox.town/tts"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message in the conversation. Turns are
// immutable once appended; slice order is chronological.
type Turn struct {
	Role    Role
	Content string
	At      time.Time

	// Audio is the synthesized clip for assistant turns. Nil when
	// synthesis failed or was skipped, and always nil for user turns.
	Audio *tts.Artifact
}

// State tracks where a session is in its turn pipeline. Every submitted
// input walks Idle -> AwaitingTranscription (voice only) ->
// AwaitingGeneration -> AwaitingSynthesis -> Idle; failures short-circuit
// back to Idle.
type State int

const (
	StateIdle State = iota
	StateAwaitingTranscription
	StateAwaitingGeneration
	StateAwaitingSynthesis
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingTranscription:
		return "awaiting transcription"
	case StateAwaitingGeneration:
		return "awaiting generation"
	case StateAwaitingSynthesis:
		return "awaiting synthesis"
	}
	return "unknown"
}

// Session holds one conversation: the ordered turn history and the voice
// the user picked. Lives in memory only; nothing survives a restart.
type Session struct {
	ID string

	// runMu serializes pipeline submissions: one turn in flight per
	// session at a time.
	runMu sync.Mutex

	mu    sync.Mutex
	turns []Turn
	voice string
	state State
}

func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Turns returns a snapshot of the conversation so far.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Voice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

func (s *Session) SetVoice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice = id
}

// Clear empties the turn history and releases any audio still attached to
// it. The voice selection survives. Clearing an empty session is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.turns {
		if s.turns[i].Audio != nil {
			s.turns[i].Audio.Release()
		}
	}
	s.turns = nil
}

// Artifact finds a turn's audio clip by id, for playback routes.
func (s *Session) Artifact(id string) *tts.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.turns {
		if a := s.turns[i].Audio; a != nil && a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Session) append(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}
