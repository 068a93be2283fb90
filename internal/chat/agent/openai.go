package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadchat_backend/internal/chat/domain"
)

// OpenAIGateway talks to an OpenAI-compatible chat completions endpoint and
// enforces the output contract with a strict json_schema response format.
type OpenAIGateway struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenAIGateway creates a gateway against an OpenAI-compatible API.
func NewOpenAIGateway(apiKey, baseURL, model string) *OpenAIGateway {
	return &OpenAIGateway{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat any             `json:"response_format"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error any `json:"error"`
}

// outputJSONSchema is the wire form of the strict output contract.
// additionalProperties is false at every level and all keys are required.
var outputJSONSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"reply", "lead", "next_question", "wants_follow_up"},
	"properties": map[string]any{
		"reply": map[string]any{"type": "string"},
		"lead": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"name", "email", "phone", "company", "website", "preferred_contact"},
			"properties": map[string]any{
				"name":    map[string]any{"type": []string{"string", "null"}},
				"email":   map[string]any{"type": []string{"string", "null"}},
				"phone":   map[string]any{"type": []string{"string", "null"}},
				"company": map[string]any{"type": []string{"string", "null"}},
				"website": map[string]any{"type": []string{"string", "null"}},
				"preferred_contact": map[string]any{
					"type": []string{"string", "null"},
					"enum": []any{"email", "phone", "text", nil},
				},
			},
		},
		"next_question":   map[string]any{"type": []string{"string", "null"}},
		"wants_follow_up": map[string]any{"type": "boolean"},
	},
}

// ExtractTurn implements Gateway.
func (g *OpenAIGateway) ExtractTurn(ctx context.Context, messages []domain.Message, known domain.Lead, followUpIntent bool) (Extraction, error) {
	reqBody := openAIRequest{
		Model:       g.model,
		Temperature: 0.2,
		Messages:    g.convertMessages(messages, known, followUpIntent),
		ResponseFormat: map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   "chat_turn",
				"strict": true,
				"schema": outputJSONSchema,
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Extraction{}, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Extraction{}, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Extraction{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Extraction{}, fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Extraction{}, fmt.Errorf("chat completions status %d: %s", resp.StatusCode, truncate(string(body), 400))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Extraction{}, fmt.Errorf("decode chat response: %s", truncate(string(body), 400))
	}
	if parsed.Error != nil {
		return Extraction{}, fmt.Errorf("chat completions error: %v", parsed.Error)
	}
	if len(parsed.Choices) == 0 {
		return Extraction{}, fmt.Errorf("chat completions returned no choices")
	}

	return ParseExtraction([]byte(parsed.Choices[0].Message.Content))
}

func (g *OpenAIGateway) convertMessages(messages []domain.Message, known domain.Lead, followUpIntent bool) []openAIMessage {
	converted := make([]openAIMessage, 0, len(messages)+1)
	converted = append(converted, openAIMessage{Role: "system", Content: BuildInstruction(known, followUpIntent)})
	for _, m := range messages {
		role := "user"
		if m.Role == domain.RoleAssistant {
			role = "assistant"
		}
		converted = append(converted, openAIMessage{Role: role, Content: m.Content})
	}
	return converted
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}

var _ Gateway = (*OpenAIGateway)(nil)
