package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yatraplan/trip-planner-api/internal/ports/out/aigateway"
)

// systemPrompt pins the collaborator's persona and output discipline. The
// user prompt (built by the planner) carries the trip details and schema.
const systemPrompt = "You are an expert travel planner specializing in budget-friendly student travel in India. " +
	"Always respond with valid JSON only, no markdown formatting. " +
	"Be realistic with costs in Indian Rupees (₹). " +
	"Focus on affordable options, street food, hostels, and student-friendly activities."

// Client calls a hosted chat-completions endpoint over HTTPS with bearer-token
// authorization. It implements aigateway.Gateway.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
}

func NewClient(endpoint, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
	}
}

// SetHTTPClientForTest overrides the underlying HTTP client.
// It should not be used in production code.
func (c *Client) SetHTTPClientForTest(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Generate(ctx context.Context, req aigateway.Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.Prompt},
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	correlationID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("X-Request-ID", correlationID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ai gateway request %s: %w", correlationID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", aigateway.ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", aigateway.ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("aigateway: request %s: status %d: %s", correlationID, resp.StatusCode, errText)
		return "", fmt.Errorf("ai gateway request %s: unexpected status %d", correlationID, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ai gateway request %s: decode response: %w", correlationID, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("ai gateway request %s: no choices in response", correlationID)
	}
	return out.Choices[0].Message.Content, nil
}
