// Package domain holds the chat lead model and the pure state transitions
// the dialogue is built on. Nothing in this package performs I/O.
package domain

import "strings"

// Preferred contact channels. Anything outside this closed set is treated as
// unknown and normalized to nil.
const (
	ContactEmail = "email"
	ContactPhone = "phone"
	ContactText  = "text"
)

// Lead is the structured contact profile progressively extracted from a
// conversation. Every field is optional; nil means not yet known.
type Lead struct {
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Company          *string `json:"company"`
	Website          *string `json:"website"`
	PreferredContact *string `json:"preferred_contact"`
}

// Merge combines the known lead with candidate fields extracted this turn.
// A candidate value wins only when it is non-nil and non-empty after
// trimming; a known field is never erased by a nil or blank candidate.
func Merge(known, candidate Lead) Lead {
	return Lead{
		Name:             mergeField(known.Name, candidate.Name),
		Email:            mergeField(known.Email, candidate.Email),
		Phone:            mergeField(known.Phone, candidate.Phone),
		Company:          mergeField(known.Company, candidate.Company),
		Website:          mergeField(known.Website, candidate.Website),
		PreferredContact: mergeField(known.PreferredContact, NormalizePreferredContact(candidate.PreferredContact)),
	}
}

// NormalizePreferredContact maps a raw candidate value onto the closed
// channel set. Unknown or malformed values become nil, never an error.
func NormalizePreferredContact(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*raw))
	switch v {
	case ContactEmail, ContactPhone, ContactText:
		return &v
	case "phone call", "call":
		p := ContactPhone
		return &p
	case "sms", "text message":
		p := ContactText
		return &p
	default:
		return nil
	}
}

// Sanitized returns a copy with every present field trimmed.
func (l Lead) Sanitized() Lead {
	return Lead{
		Name:             trimPtr(l.Name),
		Email:            trimPtr(l.Email),
		Phone:            trimPtr(l.Phone),
		Company:          trimPtr(l.Company),
		Website:          trimPtr(l.Website),
		PreferredContact: NormalizePreferredContact(l.PreferredContact),
	}
}

// Has reports whether the pointer holds a non-blank value.
func Has(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// Value returns the dereferenced string or "" for nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to s, for building leads in one expression.
func Ptr(s string) *string {
	return &s
}

func mergeField(known, candidate *string) *string {
	if candidate != nil && strings.TrimSpace(*candidate) != "" {
		trimmed := strings.TrimSpace(*candidate)
		return &trimmed
	}
	return known
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
