package domain

import "strings"

// Message roles on the wire.
const (
	RoleVisitor   = "visitor"
	RoleAssistant = "assistant"
)

// Message is one entry in the conversation transcript. Order is meaningful.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript joins all message contents into one lowercased blob for the
// keyword detectors.
func Transcript(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Content)
	}
	return strings.ToLower(b.String())
}

// LatestVisitorMessage returns the content of the most recent visitor
// message, or "" when there is none.
func LatestVisitorMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleVisitor {
			return messages[i].Content
		}
	}
	return ""
}
