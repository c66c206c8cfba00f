// Package portfolio is a Go client for the portfolio API: streamed chat
// with the site assistant, contact form submission, and health checks.
package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// readChunkSize is the read granularity for streamed responses. Deltas are
// surfaced per SSE event, not per read, so the size only affects syscall
// frequency.
const readChunkSize = 4096

// Client talks to the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.Mutex
	streaming bool
}

// NewClient creates a client for the API at baseURL. An empty baseURL uses
// the local development default. The underlying HTTP client has no overall
// timeout since chat responses stream; bound calls with the context.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []wireMessage `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// StreamChat sends the conversation so far and streams the assistant's
// reply into conv. onUpdate, if non-nil, is invoked once per received
// delta with the delta text and the current snapshot of the assistant
// message. Only one turn may stream per client at a time; a second call
// while one is in flight returns ErrTurnInProgress.
//
// A stream that ends without the terminator is treated as complete with
// whatever content arrived.
func (c *Client) StreamChat(ctx context.Context, conv *Conversation, onUpdate func(delta string, msg ChatMessage)) error {
	c.mu.Lock()
	if c.streaming {
		c.mu.Unlock()
		return ErrTurnInProgress
	}
	c.streaming = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.streaming = false
		c.mu.Unlock()
	}()

	history := conv.Messages()
	msgs := make([]wireMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, wireMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(chatRequest{Messages: msgs})
	if err != nil {
		return fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}

	asm := NewAssembler()
	buf := make([]byte, readChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, delta := range asm.Feed(buf[:n]) {
				msg := conv.SetAssistant(asm.Content())
				if onUpdate != nil {
					onUpdate(delta, msg)
				}
			}
		}
		if asm.Done() {
			break
		}
		if readErr != nil {
			if readErr != io.EOF {
				conv.Finalize()
				return fmt.Errorf("reading chat stream: %w", readErr)
			}
			break
		}
	}
	conv.Finalize()
	return nil
}

// ContactRequest is a contact form submission. FormStartedAt should be the
// moment the sender began filling the form; submissions faster than the
// server's minimum are rejected.
type ContactRequest struct {
	Name    string
	Email   string
	Subject string
	Message string

	FormStartedAt time.Time
}

type contactPayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	Website       string `json:"website"`
	FormStartedAt int64  `json:"form_started_at"`
}

// ContactResponse is the acknowledgement for an accepted submission.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitContact sends a contact form submission.
func (c *Client) SubmitContact(ctx context.Context, cr ContactRequest) (*ContactResponse, error) {
	payload := contactPayload{
		Name:          cr.Name,
		Email:         cr.Email,
		Subject:       cr.Subject,
		Message:       cr.Message,
		FormStartedAt: cr.FormStartedAt.UnixMilli(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding contact request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/contact", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending contact request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var out ContactResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding contact response: %w", err)
	}
	return &out, nil
}

// HealthResponse is the API health report.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Health fetches the API health report. A degraded API returns the report
// alongside an APIError.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending health request: %w", err)
	}
	defer resp.Body.Close()

	var out HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &out, &APIError{Status: resp.StatusCode, Message: out.Status}
	}
	return &out, nil
}

// apiError reads an error body into an APIError, falling back to the HTTP
// status text when the body is not the expected shape.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error != "" {
			apiErr.Message = er.Error
		}
	}
	return apiErr
}
