package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(""); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(Config{Provider: "mystery"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewOllamaDefaults(t *testing.T) {
	p, err := New(Config{Provider: ProviderOllama, Model: "llama3"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Name() != ProviderOllama {
		t.Errorf("Name = %q, want %q", p.Name(), ProviderOllama)
	}
	op := p.(*OpenAIProvider)
	if op.baseURL != "http://localhost:11434/v1" {
		t.Errorf("baseURL = %q", op.baseURL)
	}
	if op.model != "llama3" {
		t.Errorf("model = %q", op.model)
	}
}

func TestChat(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "gpt-4o-mini",
			"choices": [{"message": {"content": "{\"score\": 0.4}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", WithBaseURL(srv.URL), WithModel("gpt-4o-mini"))
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}

	resp, err := p.Chat(context.Background(), []Message{
		SystemMessage("You are a scorer."),
		UserMessage("Score this."),
	}, &ChatOptions{Temperature: 0.2})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Content != `{"score": 0.4}` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", resp.Usage.TotalTokens)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != RoleSystem {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.2 {
		t.Error("temperature not forwarded")
	}
}

func TestChatErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, ErrNoAPIKey},
		{http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, ErrRateLimit},
		{http.StatusNotFound, `{"error":{"message":"no model","code":"model_not_found"}}`, ErrInvalidModel},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))
		p, _ := NewOpenAIProvider("test-key", WithBaseURL(srv.URL))
		_, err := p.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
		srv.Close()
	}
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model": "gpt-4o-mini", "choices": []}`))
	}))
	defer srv.Close()

	p, _ := NewOpenAIProvider("test-key", WithBaseURL(srv.URL))
	if _, err := p.Chat(context.Background(), []Message{UserMessage("hi")}, nil); !errors.Is(err, ErrEmptyReply) {
		t.Errorf("err = %v, want ErrEmptyReply", err)
	}
}
