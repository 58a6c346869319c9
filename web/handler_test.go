package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"vox.town/session"
	"vox.town/tts"
)

type stubModel struct{ reply string }

func (s *stubModel) Reply(_ context.Context, _ string) (string, error) {
	return s.reply, nil
}

type stubSynthesizer struct {
	voices []tts.VoiceOption
}

func (s *stubSynthesizer) Synthesize(_ context.Context, _, _ string) (*tts.Artifact, error) {
	return nil, tts.ErrSynthesisFailed
}

func (s *stubSynthesizer) Voices(_ context.Context) ([]tts.VoiceOption, error) {
	return s.voices, nil
}

func (s *stubSynthesizer) ValidateVoice(_ context.Context, id string) error {
	for _, v := range s.voices {
		if v.ID == id {
			return nil
		}
	}
	return tts.ErrUnknownVoice
}

func newTestHandler() *Handler {
	pipeline := &session.Pipeline{
		Model: &stubModel{reply: "I value empathy and context."},
		Synthesizer: &stubSynthesizer{
			voices: []tts.VoiceOption{
				{ID: "Fritz-PlayAI", Name: "Fritz"},
				{ID: "Celeste-PlayAI", Name: "Celeste"},
			},
		},
		Logger: log.New(io.Discard),
	}
	return NewHandler(pipeline, log.New(io.Discard))
}

// do replays the session cookie across requests, like a browser would.
func do(t *testing.T, router http.Handler, cookie *http.Cookie, req *http.Request) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			cookie = c
		}
	}
	return rec, cookie
}

func TestSayThenIndexShowsTurns(t *testing.T) {
	h := newTestHandler()
	router := h.Router()

	form := url.Values{"text": {"What's your superpower?"}}
	req := httptest.NewRequest("POST", "/say", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, cookie := do(t, router, nil, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /say status = %d, want 303", rec.Code)
	}

	rec, _ = do(t, router, cookie, httptest.NewRequest("GET", "/", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "What&#39;s your superpower?") {
		t.Error("page does not show the user turn")
	}
	if !strings.Contains(body, "I value empathy and context.") {
		t.Error("page does not show the assistant turn")
	}
}

func TestIndexShowsSidebar(t *testing.T) {
	h := newTestHandler()
	rec, _ := do(t, h.Router(), nil, httptest.NewRequest("GET", "/", nil))
	body := rec.Body.String()

	for _, want := range []string{
		"Instructions",
		"Voice Input",
		"Sample Questions",
		"#1 superpower",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing sidebar section %q", want)
		}
	}
}

func TestSayEmptyTextWarns(t *testing.T) {
	h := newTestHandler()
	router := h.Router()

	form := url.Values{"text": {"   "}}
	req := httptest.NewRequest("POST", "/say", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, _ := do(t, router, nil, req)

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "warn=") {
		t.Errorf("redirect = %q, want a warning", loc)
	}
}

func TestClearEmptiesConversation(t *testing.T) {
	h := newTestHandler()
	router := h.Router()

	form := url.Values{"text": {"Hello"}}
	req := httptest.NewRequest("POST", "/say", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, cookie := do(t, router, nil, req)

	_, cookie = do(t, router, cookie, httptest.NewRequest("POST", "/clear", nil))

	rec, _ := do(t, router, cookie, httptest.NewRequest("GET", "/", nil))
	if !strings.Contains(rec.Body.String(), "No messages yet") {
		t.Error("conversation not empty after clear")
	}
}

func TestVoiceSelectionSurvivesClear(t *testing.T) {
	h := newTestHandler()
	router := h.Router()

	form := url.Values{"voice": {"Celeste-PlayAI"}}
	req := httptest.NewRequest("POST", "/voice", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, cookie := do(t, router, nil, req)

	_, cookie = do(t, router, cookie, httptest.NewRequest("POST", "/clear", nil))

	rec, _ := do(t, router, cookie, httptest.NewRequest("GET", "/", nil))
	if !strings.Contains(rec.Body.String(), `value="Celeste-PlayAI" selected`) {
		t.Error("voice selection lost across clear")
	}
}

func TestVoiceSelectionsAreIsolated(t *testing.T) {
	// Two browsers pick different voices against the one shared
	// synthesizer; each page must keep showing its own pick.
	h := newTestHandler()
	router := h.Router()

	pick := func(voice string, cookie *http.Cookie) *http.Cookie {
		form := url.Values{"voice": {voice}}
		req := httptest.NewRequest("POST", "/voice", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		_, cookie = do(t, router, cookie, req)
		return cookie
	}

	one := pick("Celeste-PlayAI", nil)
	two := pick("Fritz-PlayAI", nil)

	rec, _ := do(t, router, one, httptest.NewRequest("GET", "/", nil))
	if !strings.Contains(rec.Body.String(), `value="Celeste-PlayAI" selected`) {
		t.Error("browser one lost its voice selection")
	}
	rec, _ = do(t, router, two, httptest.NewRequest("GET", "/", nil))
	if !strings.Contains(rec.Body.String(), `value="Fritz-PlayAI" selected`) {
		t.Error("browser two lost its voice selection")
	}
}

func TestVoiceUnknownWarns(t *testing.T) {
	h := newTestHandler()
	router := h.Router()

	form := url.Values{"voice": {"no-such-voice"}}
	req := httptest.NewRequest("POST", "/voice", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, _ := do(t, router, nil, req)

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "warn=") {
		t.Errorf("redirect = %q, want a warning", loc)
	}
}

func TestAudioUnknownID(t *testing.T) {
	h := newTestHandler()
	rec, _ := do(t, h.Router(), nil, httptest.NewRequest("GET", "/audio/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /audio/nope status = %d, want 404", rec.Code)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newTestHandler()
	router := h.Router()

	form := url.Values{"text": {"Hello from browser one"}}
	req := httptest.NewRequest("POST", "/say", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	do(t, router, nil, req)

	// A different browser (no cookie) sees a fresh conversation.
	rec, _ := do(t, router, nil, httptest.NewRequest("GET", "/", nil))
	if strings.Contains(rec.Body.String(), "Hello from browser one") {
		t.Error("turns leaked across sessions")
	}
}
