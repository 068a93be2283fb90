package domain

import "leadchat_backend/platform/phone"

// Stage is the follow-up collection stage, derived fresh on every turn from
// the merged lead. It is never stored.
type Stage int

const (
	// StageNoFollowUp means the visitor has not asked to be contacted.
	StageNoFollowUp Stage = iota
	// StageCollectName asks for the visitor's name.
	StageCollectName
	// StageCollectMethod asks for the preferred contact channel.
	StageCollectMethod
	// StageCollectDetail asks for the address of the chosen channel.
	StageCollectDetail
	// StageCollectCountryCode asks for the calling region of an ambiguous number.
	StageCollectCountryCode
	// StageConfirmed means every requirement is met.
	StageConfirmed
)

// String returns the stage name for logs and events.
func (s Stage) String() string {
	switch s {
	case StageNoFollowUp:
		return "no_follow_up"
	case StageCollectName:
		return "collect_name"
	case StageCollectMethod:
		return "collect_method"
	case StageCollectDetail:
		return "collect_detail"
	case StageCollectCountryCode:
		return "collect_country_code"
	case StageConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// InSequence reports whether the stage is inside the follow-up collection
// sequence, where deterministic text replaces the model's reply.
func (s Stage) InSequence() bool {
	return s != StageNoFollowUp
}

// DeriveStage evaluates the lead's unmet requirements in fixed order and
// returns the current stage. followUp gates entry into the sequence;
// intlHint gates the country-code interruption for bare 10-digit numbers.
func DeriveStage(lead Lead, followUp, intlHint bool) Stage {
	if !followUp {
		return StageNoFollowUp
	}
	if !Has(lead.Name) {
		return StageCollectName
	}
	if lead.PreferredContact == nil {
		return StageCollectMethod
	}
	if !Has(requiredDetail(lead)) {
		return StageCollectDetail
	}
	if Value(lead.PreferredContact) != ContactEmail && phone.NeedsCountryCode(Value(lead.Phone), intlHint) {
		return StageCollectCountryCode
	}
	return StageConfirmed
}

// requiredDetail returns the field the chosen channel needs.
func requiredDetail(lead Lead) *string {
	if Value(lead.PreferredContact) == ContactEmail {
		return lead.Email
	}
	return lead.Phone
}
