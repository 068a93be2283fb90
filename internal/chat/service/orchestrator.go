// Package service implements the conversational lead-qualification engine: a
// deterministic dialogue state machine layered over a single language-model
// call per turn. The model extracts information; the state machine owns the
// dialogue surface whenever contact collection is active.
package service

import (
	"context"
	"fmt"
	"strings"

	"leadchat_backend/internal/chat/agent"
	"leadchat_backend/internal/chat/detect"
	"leadchat_backend/internal/chat/domain"
	"leadchat_backend/platform/logger"
	"leadchat_backend/platform/phone"
)

// fallbackReply is used when the model call fails or returns non-conforming
// output. The visitor always gets a coherent answer.
const fallbackReply = "Thanks for your message! Could you tell me a bit more about what you're looking for? I'm happy to help."

// TurnInput is one chat turn: the full transcript plus the caller-held lead.
type TurnInput struct {
	ConversationID string
	Messages       []domain.Message
	Known          domain.Lead
}

// TurnResult is the authoritative outcome of one turn.
type TurnResult struct {
	Reply         string
	Lead          domain.Lead
	Stage         domain.Stage
	FollowUp      bool
	IntlHint      bool
	ModelFallback bool
}

// Orchestrator combines the detectors, the model gateway, and the lead merge
// into a final (reply, lead) pair per turn. It holds no per-conversation
// state; everything is derived fresh from the caller-supplied transcript.
type Orchestrator struct {
	gateway agent.Gateway
	log     *logger.Logger
}

// NewOrchestrator creates the turn orchestrator.
func NewOrchestrator(gateway agent.Gateway, log *logger.Logger) *Orchestrator {
	return &Orchestrator{gateway: gateway, log: log}
}

// RunTurn executes one chat turn. A failed or non-conforming model call
// degrades to a generic acknowledgement with the known lead untouched; the
// follow-up sequence is never entered or advanced on such a turn.
func (o *Orchestrator) RunTurn(ctx context.Context, in TurnInput) TurnResult {
	transcript := domain.Transcript(in.Messages)
	intlHint := detect.InternationalHint(transcript)
	intent := detect.FollowUpIntent(domain.LatestVisitorMessage(in.Messages))

	ext, err := o.gateway.ExtractTurn(ctx, in.Messages, in.Known, intent)
	if err != nil {
		o.log.ModelFallback(in.ConversationID, err)
		return TurnResult{
			Reply:         fallbackReply,
			Lead:          in.Known,
			Stage:         domain.StageNoFollowUp,
			IntlHint:      intlHint,
			ModelFallback: true,
		}
	}

	followUp := intent || ext.WantsFollowUp

	candidate := ext.Lead
	if domain.Has(candidate.Phone) {
		normalized := phone.Normalize(domain.Value(candidate.Phone), intlHint)
		candidate.Phone = &normalized
	}
	merged := domain.Merge(in.Known, candidate)

	stage := domain.DeriveStage(merged, followUp, intlHint)

	return TurnResult{
		Reply:    o.composeReply(stage, merged, ext),
		Lead:     merged,
		Stage:    stage,
		FollowUp: followUp,
		IntlHint: intlHint,
	}
}

// composeReply picks the turn's reply. Inside the follow-up sequence the
// model's free-form output is discarded and replaced by the deterministic
// text for the current stage; outside it the model's reply is used as-is,
// with its suggested question appended at most once.
func (o *Orchestrator) composeReply(stage domain.Stage, lead domain.Lead, ext agent.Extraction) string {
	if stage.InSequence() {
		return stagePrompt(stage, lead)
	}

	reply := ext.Reply
	if q := domain.Value(ext.NextQuestion); q != "" && !containsVerbatim(reply, q) {
		reply = reply + " " + q
	}
	return reply
}

// stagePrompt returns the deterministic text for a follow-up stage. Each
// prompt asks for exactly one thing.
func stagePrompt(stage domain.Stage, lead domain.Lead) string {
	switch stage {
	case domain.StageCollectName:
		return "Happy to have someone reach out! First, what's your name?"
	case domain.StageCollectMethod:
		return fmt.Sprintf("Thanks, %s! How would you prefer to be contacted: email, phone call, or text?", domain.Value(lead.Name))
	case domain.StageCollectDetail:
		if domain.Value(lead.PreferredContact) == domain.ContactEmail {
			return "Great. What email address should we use?"
		}
		return "Great. What phone number is best to reach you at?"
	case domain.StageCollectCountryCode:
		return "One more thing: which country is that phone number in? Please include the country code, for example +44."
	case domain.StageConfirmed:
		return confirmation(lead)
	default:
		return fallbackReply
	}
}

// confirmation is the terminal message naming the channel and destination.
// No further question is appended.
func confirmation(lead domain.Lead) string {
	name := domain.Value(lead.Name)
	switch domain.Value(lead.PreferredContact) {
	case domain.ContactEmail:
		return fmt.Sprintf("Perfect, %s. We'll email you at %s shortly. Thanks for reaching out!", name, domain.Value(lead.Email))
	case domain.ContactText:
		return fmt.Sprintf("Perfect, %s. We'll text you at %s shortly. Thanks for reaching out!", name, phone.FormatDisplay(domain.Value(lead.Phone)))
	default:
		return fmt.Sprintf("Perfect, %s. We'll call you at %s shortly. Thanks for reaching out!", name, phone.FormatDisplay(domain.Value(lead.Phone)))
	}
}

// containsVerbatim reports whether the question already appears in the reply,
// so it is not appended a second time.
func containsVerbatim(reply, question string) bool {
	return question != "" && strings.Contains(reply, question)
}
