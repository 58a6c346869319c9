package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"
)

// newTestModel points a GroqLanguageModel at a local fake of the
// chat-completion endpoint.
func newTestModel(t *testing.T, handler http.HandlerFunc) *GroqLanguageModel {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	return &GroqLanguageModel{
		client:      openai.NewClientWithConfig(cfg),
		model:       "llama3-70b-8192",
		maxTokens:   1000,
		temperature: 0.7,
		logger:      log.New(io.Discard),
	}
}

func completionJSON(content string) string {
	resp := map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "llama3-70b-8192",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGroqReply(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	model := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON("I value empathy and context."))
	})

	reply, err := model.Reply(context.Background(), "What's your superpower?")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if reply != "I value empathy and context." {
		t.Errorf("reply = %q", reply)
	}

	// Statelessness: exactly the persona instruction plus the current
	// utterance, nothing else.
	if len(gotReq.Messages) != 2 {
		t.Fatalf("sent %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" ||
		gotReq.Messages[0].Content != SystemPrompt {
		t.Error("first message is not the persona instruction")
	}
	if gotReq.Messages[1].Role != "user" ||
		gotReq.Messages[1].Content != "What's your superpower?" {
		t.Errorf("second message = %+v, want the user text", gotReq.Messages[1])
	}
	if gotReq.MaxTokens != 1000 {
		t.Errorf("max tokens = %d, want 1000", gotReq.MaxTokens)
	}
}

func TestGroqReplyAPIError(t *testing.T) {
	model := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	})

	_, err := model.Reply(context.Background(), "Hello")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestGroqReplyEmptyContent(t *testing.T) {
	model := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON("   "))
	})

	_, err := model.Reply(context.Background(), "Hello")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed for blank reply", err)
	}
}
