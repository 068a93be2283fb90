// Package detect holds the keyword heuristics that feed the dialogue:
// follow-up intent and the international calling-region hint. Both are
// deliberately simple substring checks, not classifiers.
package detect

import "strings"

// followUpPhrases signal explicit intent to be contacted by a human.
// Matching is substring-based over the lowercased utterance.
var followUpPhrases = []string{
	"call me",
	"phone me",
	"email me",
	"text me",
	"contact me",
	"reach me",
	"reach out",
	"get back to me",
	"follow up with me",
	"follow-up",
	"get in touch",
	"be in touch",
	"touch base",
	"talk to someone",
	"talk to a person",
	"speak to someone",
	"speak with someone",
	"have someone",
	"send me a quote",
	"set up a call",
	"schedule a call",
	"give me a call",
}

// FollowUpIntent reports whether the visitor's latest utterance explicitly
// asks to be contacted.
func FollowUpIntent(utterance string) bool {
	text := strings.ToLower(utterance)
	for _, phrase := range followUpPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
