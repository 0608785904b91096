package narrative

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAIConfig configures the OpenAI-compatible chat completions adapter.
type OpenAIConfig struct {
	BaseURL    string // e.g. https://api.openai.com/v1
	Model      string
	APIKey     string
	HTTPClient *http.Client
}

// OpenAIGenerator implements Generator against any OpenAI-compatible
// /chat/completions endpoint using server-sent event streaming.
type OpenAIGenerator struct {
	cfg OpenAIConfig
}

// NewOpenAIGenerator builds the adapter, defaulting the HTTP client and
// base URL.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &OpenAIGenerator{cfg: cfg}, nil
}

// Start opens a new session.
func (g *OpenAIGenerator) Start(ctx context.Context, tc Context, stream StreamFunc) (Response, error) {
	return g.invoke(ctx, tc, startPrompt, stream)
}

// Turn continues the story after a player action and optional roll.
func (g *OpenAIGenerator) Turn(ctx context.Context, tc Context, action string, roll *EffectiveRoll, stream StreamFunc) (Response, error) {
	return g.invoke(ctx, tc, turnPrompt(action, roll), stream)
}

// Death produces the closing narration.
func (g *OpenAIGenerator) Death(ctx context.Context, tc Context, cause string, stream StreamFunc) (Response, error) {
	return g.invoke(ctx, tc, deathPrompt(cause), stream)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (g *OpenAIGenerator) invoke(ctx context.Context, tc Context, prompt string, stream StreamFunc) (Response, error) {
	messages := []chatMessage{{Role: "system", Content: systemPrompt(tc)}}
	for _, msg := range historyMessages(tc.Messages) {
		role := "user"
		if msg.Role != RolePlayer {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	requestBody, err := json.Marshal(map[string]any{
		"model":    g.cfg.Model,
		"messages": messages,
		"stream":   true,
	})
	if err != nil {
		return Response{}, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/chat/completions", bytes.NewReader(requestBody))
	if err != nil {
		return Response{}, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Credential material travels only as an Authorization header and is
	// never echoed into errors or logs.
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	res, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return Response{}, fmt.Errorf("read chat error body: %w", err)
		}
		return Response{}, fmt.Errorf("chat request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	content, err := readStream(res.Body, stream)
	if err != nil {
		return Response{}, err
	}
	return parseResponse(content), nil
}

// readStream consumes the SSE body, forwarding content deltas to stream and
// returning the accumulated text.
func readStream(body io.Reader, stream StreamFunc) (string, error) {
	var content strings.Builder
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var event struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			// Tolerate malformed keep-alive frames; the terminal JSON block
			// is validated separately.
			continue
		}
		for _, choice := range event.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			content.WriteString(choice.Delta.Content)
			if stream != nil {
				stream(choice.Delta.Content)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read chat stream: %w", err)
	}
	return content.String(), nil
}
