package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"leadchat_backend/internal/chat/domain"
)

// GeminiGateway drives the turn extraction through the Gemini API with a
// response schema so the model cannot emit anything but the output contract.
type GeminiGateway struct {
	client *genai.Client
	model  string
}

// NewGeminiGateway creates a gateway backed by the Gemini API.
func NewGeminiGateway(ctx context.Context, apiKey, model string) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGateway{client: client, model: model}, nil
}

var geminiOutputSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"reply", "lead", "next_question", "wants_follow_up"},
	Properties: map[string]*genai.Schema{
		"reply": {Type: genai.TypeString},
		"lead": {
			Type:     genai.TypeObject,
			Required: []string{"name", "email", "phone", "company", "website", "preferred_contact"},
			Properties: map[string]*genai.Schema{
				"name":    {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"email":   {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"phone":   {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"company": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"website": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"preferred_contact": {
					Type:     genai.TypeString,
					Nullable: genai.Ptr(true),
					Enum:     []string{"email", "phone", "text"},
				},
			},
		},
		"next_question":   {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"wants_follow_up": {Type: genai.TypeBoolean},
	},
}

// ExtractTurn implements Gateway.
func (g *GeminiGateway) ExtractTurn(ctx context.Context, messages []domain.Message, known domain.Lead, followUpIntent bool) (Extraction, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		var role genai.Role = genai.RoleUser
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(BuildInstruction(known, followUpIntent), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiOutputSchema,
		Temperature:       genai.Ptr[float32](0.2),
	})
	if err != nil {
		return Extraction{}, fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return Extraction{}, fmt.Errorf("gemini returned an empty response")
	}

	return ParseExtraction([]byte(text))
}

var _ Gateway = (*GeminiGateway)(nil)
