package web

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"vox.town/session"
	"vox.town/tts"
)

const sessionCookie = "vox_session"

// maxAudioBody caps voice uploads at roughly 60 seconds of 16kHz mono
// 16-bit capture.
const maxAudioBody = 2 << 20

// Handler serves the browser chat. Every browser gets its own Session,
// keyed by cookie; nothing is shared across them but the adapters.
type Handler struct {
	pipeline *session.Pipeline
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[string]*session.Session
}

func NewHandler(pipeline *session.Pipeline, logger *log.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		logger:   logger,
		sessions: make(map[string]*session.Session),
	}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleIndex)
	r.Post("/say", h.handleSay)
	r.Post("/listen", h.handleListen)
	r.Post("/voice", h.handleVoice)
	r.Post("/clear", h.handleClear)
	r.Get("/audio/{id}", h.handleAudio)
	return r
}

// session finds or creates the Session for this browser.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.mu.Lock()
		s, ok := h.sessions[cookie.Value]
		h.mu.Unlock()
		if ok {
			return s
		}
	}

	s := session.New()
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return s
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	voices, err := h.pipeline.Synthesizer.Voices(r.Context())
	if err != nil {
		h.logger.Error("list voices", "error", err)
		// The page still renders; the picker just comes up empty.
	}

	data := indexData{
		Turns:   s.Turns(),
		Voices:  voices,
		Voice:   s.Voice(),
		Warning: r.URL.Query().Get("warn"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Error("render index", "error", err)
	}
}

func (h *Handler) handleSay(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.SubmitText(r.Context(), s, r.FormValue("text"))
	if err != nil {
		h.redirectWarn(w, r, "Please enter a question!")
		return
	}
	h.redirectWarn(w, r, result.Warning)
}

func (h *Handler) handleListen(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	pcm, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBody))
	if err != nil {
		http.Error(w, "bad audio body", http.StatusBadRequest)
		return
	}

	type listenResponse struct {
		Warning string `json:"warning,omitempty"`
	}

	w.Header().Set("Content-Type", "application/json")

	result, err := h.pipeline.SubmitAudio(r.Context(), s, pcm)
	if err != nil {
		// Failed recognition records no turn; the user retries.
		json.NewEncoder(w).Encode(listenResponse{
			Warning: "Could not recognize speech. Please try again.",
		})
		return
	}
	json.NewEncoder(w).Encode(listenResponse{Warning: result.Warning})
}

func (h *Handler) handleVoice(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	// The selection lives on the session only; the synthesizer itself is
	// shared across sessions and stays untouched.
	voice := r.FormValue("voice")
	if err := h.pipeline.Synthesizer.ValidateVoice(r.Context(), voice); err != nil {
		h.logger.Warn("set voice", "voice", voice, "error", err)
		h.redirectWarn(w, r, "Failed to update voice")
		return
	}
	s.SetVoice(voice)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).Clear()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleAudio(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	artifact := s.Artifact(chi.URLParam(r, "id"))
	if artifact == nil || artifact.Path == "" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", artifact.MIMEType)
	http.ServeFile(w, r, artifact.Path)
}

func (h *Handler) redirectWarn(w http.ResponseWriter, r *http.Request, warning string) {
	target := "/"
	if warning != "" {
		target = "/?warn=" + url.QueryEscape(warning)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type indexData struct {
	Turns   []session.Turn
	Voices  []tts.VoiceOption
	Voice   string
	Warning string
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))
