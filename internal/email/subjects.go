package email

import "fmt"

const (
	subjectLeadNotificationFmt = "New qualified lead: %s"
	subjectContactRelayFmt     = "Website contact from %s"
)

// LeadNotificationSubject returns the subject line for a lead summary email.
func LeadNotificationSubject(name string) string {
	if name == "" {
		name = "unnamed visitor"
	}
	return fmt.Sprintf(subjectLeadNotificationFmt, name)
}

// ContactRelaySubject returns the subject line for a relayed contact message.
func ContactRelaySubject(name string) string {
	if name == "" {
		name = "website visitor"
	}
	return fmt.Sprintf(subjectContactRelayFmt, name)
}
