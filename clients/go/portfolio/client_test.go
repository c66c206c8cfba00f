package portfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseHandler(t *testing.T, events []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req struct {
			Messages []wireMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Messages)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, ev := range events {
			_, _ = w.Write([]byte(ev))
			flusher.Flush()
		}
	}
}

func TestStreamChatAssemblesReply(t *testing.T) {
	events := []string{
		event("The "),
		event("answer"),
		"data: [DONE]\n\n",
	}
	srv := httptest.NewServer(sseHandler(t, events))
	defer srv.Close()

	client := NewClient(srv.URL)
	conv := NewConversation()
	conv.AddUser("question")

	var deltas []string
	err := client.StreamChat(context.Background(), conv, func(delta string, msg ChatMessage) {
		deltas = append(deltas, delta)
		assert.Equal(t, RoleAssistant, msg.Role)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"The ", "answer"}, deltas)
	assert.False(t, conv.InProgress())

	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, "The answer", last.Content)
	assert.Equal(t, 2, conv.Len())
}

func TestStreamChatTruncatedStreamCompletes(t *testing.T) {
	// Upstream hangs up without sending the terminator; whatever arrived
	// stands as the reply.
	srv := httptest.NewServer(sseHandler(t, []string{event("partial")}))
	defer srv.Close()

	client := NewClient(srv.URL)
	conv := NewConversation()
	conv.AddUser("question")

	err := client.StreamChat(context.Background(), conv, nil)
	require.NoError(t, err)
	assert.False(t, conv.InProgress())

	last, _ := conv.Last()
	assert.Equal(t, "partial", last.Content)
}

func TestStreamChatRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests. Please try again later."})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	conv := NewConversation()
	conv.AddUser("question")

	err := client.StreamChat(context.Background(), conv, nil)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Too many requests. Please try again later.", apiErr.Message)

	// No assistant message was started.
	assert.Equal(t, 1, conv.Len())
}

func TestStreamChatServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Service temporarily unavailable, please try again later."})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	conv := NewConversation()
	conv.AddUser("question")

	err := client.StreamChat(context.Background(), conv, nil)
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsRateLimited(err))
}

func TestStreamChatRejectsConcurrentTurn(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	conv := NewConversation()
	conv.AddUser("slow question")

	done := make(chan error, 1)
	go func() {
		done <- client.StreamChat(context.Background(), conv, nil)
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first turn never reached the server")
	}

	second := NewConversation()
	second.AddUser("impatient question")
	err := client.StreamChat(context.Background(), second, nil)
	assert.ErrorIs(t, err, ErrTurnInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestSubmitContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contact", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Jordan", payload["name"])
		assert.Equal(t, "", payload["website"])
		assert.NotZero(t, payload["form_started_at"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Submission received successfully",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.SubmitContact(context.Background(), ContactRequest{
		Name:          "Jordan",
		Email:         "jordan@example.com",
		Subject:       "Hello",
		Message:       "Great portfolio!",
		FormStartedAt: time.Now().Add(-10 * time.Second),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Submission received successfully", resp.Message)
}

func TestSubmitContactRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email format"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SubmitContact(context.Background(), ContactRequest{FormStartedAt: time.Now()})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid email format", apiErr.Message)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "version": "0.1.0"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
}
