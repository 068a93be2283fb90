// Package agent contains the language-model gateway: one structured-output
// call per chat turn. The model is used strictly as an information extractor;
// the dialogue surface belongs to the orchestrator.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"leadchat_backend/internal/chat/domain"
)

// Extraction is the model's structured output for one turn.
type Extraction struct {
	Reply         string      `json:"reply"`
	Lead          domain.Lead `json:"lead"`
	NextQuestion  *string     `json:"next_question"`
	WantsFollowUp bool        `json:"wants_follow_up"`
}

// Gateway performs the single model call of a chat turn.
type Gateway interface {
	// ExtractTurn sends the conversation and known lead to the model and
	// returns its schema-conforming output. Any deviation from the schema
	// is an error; the caller degrades to a fallback reply.
	ExtractTurn(ctx context.Context, messages []domain.Message, known domain.Lead, followUpIntent bool) (Extraction, error)
}

// Key sets the output must match exactly. A stray or missing key invalidates
// the whole turn's model output; there is no salvage heuristic.
var (
	topLevelKeys = []string{"reply", "lead", "next_question", "wants_follow_up"}
	leadKeys     = []string{"name", "email", "phone", "company", "website", "preferred_contact"}
)

// ParseExtraction decodes and validates raw model output against the strict
// output schema.
func ParseExtraction(raw []byte) (Extraction, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return Extraction{}, fmt.Errorf("model output is not a JSON object: %w", err)
	}
	if err := checkKeys(top, topLevelKeys); err != nil {
		return Extraction{}, err
	}

	var leadRaw map[string]json.RawMessage
	if err := json.Unmarshal(top["lead"], &leadRaw); err != nil {
		return Extraction{}, fmt.Errorf("lead is not a JSON object: %w", err)
	}
	if err := checkKeys(leadRaw, leadKeys); err != nil {
		return Extraction{}, err
	}

	var ext Extraction
	if err := json.Unmarshal(raw, &ext); err != nil {
		return Extraction{}, fmt.Errorf("model output shape invalid: %w", err)
	}
	if ext.Reply == "" {
		return Extraction{}, fmt.Errorf("model output has empty reply")
	}
	return ext, nil
}

func checkKeys(obj map[string]json.RawMessage, want []string) error {
	if len(obj) != len(want) {
		return fmt.Errorf("expected exactly %d keys, got %d", len(want), len(obj))
	}
	for _, key := range want {
		if _, ok := obj[key]; !ok {
			return fmt.Errorf("missing required key %q", key)
		}
	}
	return nil
}
