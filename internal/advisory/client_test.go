package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("expected 2 messages, got %d", len(req.Messages))
		}

		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(chatResponse{
				Choices: []struct {
					Message chatMessage `json:"message"`
				}{
					{Message: chatMessage{Role: "assistant", Content: content}},
				},
			})
		}
	}))
}

func TestClient_SuggestRoom(t *testing.T) {
	server := newTestServer(t, "  Room C \n", http.StatusOK)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"}, server.Client())

	room, err := client.SuggestRoom(context.Background(), []string{"Room A", "Room C"}, "2025-07-09", "10:00 AM", "12:00 PM")
	if err != nil {
		t.Fatalf("SuggestRoom failed: %v", err)
	}
	if room != "Room C" {
		t.Errorf("room = %q, want Room C", room)
	}
}

func TestClient_SuggestMessage_ServerError(t *testing.T) {
	server := newTestServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"}, server.Client())

	if _, err := client.SuggestMessage(context.Background(), "2025-07-09", "10:00 AM", "12:00 PM"); err == nil {
		t.Fatal("expected error from failing server")
	}
}

func TestClient_Disabled(t *testing.T) {
	client := NewClient(Config{}, nil)

	if client.Enabled() {
		t.Error("client without API key should report disabled")
	}
	if _, err := client.SuggestMessage(context.Background(), "2025-07-09", "10:00 AM", "12:00 PM"); err == nil {
		t.Fatal("expected error from disabled client")
	}
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key", Timeout: 50 * time.Millisecond}, server.Client())

	start := time.Now()
	_, err := client.SuggestMessage(context.Background(), "2025-07-09", "10:00 AM", "12:00 PM")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call was not bounded by the configured timeout (took %v)", elapsed)
	}
}
