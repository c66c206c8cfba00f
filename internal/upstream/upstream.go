// Package upstream calls the hosted AI gateway: streaming chat completions
// for the portfolio chatbot and ephemeral session tokens for the voice
// assistant.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/models"
)

// Sentinel errors map gateway responses onto the error taxonomy the
// handlers expose to clients.
var (
	// ErrNotConfigured means the required API key is absent.
	ErrNotConfigured = errors.New("upstream: API key is not configured")
	// ErrRateLimited means the gateway returned 429.
	ErrRateLimited = errors.New("upstream: rate limited")
	// ErrQuotaExhausted means the gateway returned 402.
	ErrQuotaExhausted = errors.New("upstream: quota exhausted")
	// ErrGateway covers every other gateway failure.
	ErrGateway = errors.New("upstream: gateway error")
)

// Client talks to an OpenAI-compatible chat-completion gateway.
type Client struct {
	gatewayURL string
	gatewayKey string
	chatModel  string

	realtimeURL   string
	realtimeKey   string
	realtimeModel string
	realtimeVoice string

	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRealtime configures the realtime voice-session endpoint.
func WithRealtime(url, key, model, voice string) Option {
	return func(c *Client) {
		c.realtimeURL = url
		c.realtimeKey = key
		c.realtimeModel = model
		c.realtimeVoice = voice
	}
}

// New creates a gateway client.
func New(gatewayURL, gatewayKey, chatModel string, opts ...Option) *Client {
	c := &Client{
		gatewayURL: gatewayURL,
		gatewayKey: gatewayKey,
		chatModel:  chatModel,
		// No overall timeout: chat responses stream for as long as the
		// model generates. Context cancellation aborts in-flight calls.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

// StreamChat sends the validated history, with the portfolio system prompt
// prepended, and returns the raw SSE response body. The caller owns the
// returned reader and must close it. Context cancellation (client
// disconnect) aborts the in-flight request.
func (c *Client) StreamChat(ctx context.Context, messages []models.ChatMessage) (io.ReadCloser, error) {
	if c.gatewayKey == "" {
		return nil, ErrNotConfigured
	}

	payload := chatRequest{
		Model:    c.chatModel,
		Messages: append([]models.ChatMessage{{Role: string(models.RoleSystem), Content: SystemPrompt}}, messages...),
		Stream:   true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.gatewayKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, ErrRateLimited
		case http.StatusPaymentRequired:
			return nil, ErrQuotaExhausted
		default:
			return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, detail)
		}
	}

	return resp.Body, nil
}

type realtimeRequest struct {
	Model        string `json:"model"`
	Voice        string `json:"voice"`
	Instructions string `json:"instructions"`
}

// CreateRealtimeSession requests an ephemeral token for a WebRTC voice
// session and returns the provider's JSON response verbatim.
func (c *Client) CreateRealtimeSession(ctx context.Context) ([]byte, error) {
	if c.realtimeKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(realtimeRequest{
		Model:        c.realtimeModel,
		Voice:        c.realtimeVoice,
		Instructions: SystemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.realtimeURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.realtimeKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, data)
	}

	return data, nil
}
