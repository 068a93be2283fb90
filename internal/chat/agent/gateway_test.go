package agent

import "testing"

const validOutput = `{
	"reply": "Happy to help!",
	"lead": {"name": "Dana", "email": null, "phone": null, "company": null, "website": null, "preferred_contact": null},
	"next_question": "What kind of project is it?",
	"wants_follow_up": false
}`

func TestParseExtractionAcceptsConformingOutput(t *testing.T) {
	ext, err := ParseExtraction([]byte(validOutput))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.Reply != "Happy to help!" {
		t.Fatalf("unexpected reply %q", ext.Reply)
	}
	if ext.Lead.Name == nil || *ext.Lead.Name != "Dana" {
		t.Fatalf("expected extracted name, got %v", ext.Lead.Name)
	}
	if ext.NextQuestion == nil || *ext.NextQuestion != "What kind of project is it?" {
		t.Fatalf("unexpected next question %v", ext.NextQuestion)
	}
	if ext.WantsFollowUp {
		t.Fatal("wants_follow_up should be false")
	}
}

func TestParseExtractionRejectsStrayTopLevelKey(t *testing.T) {
	raw := `{
		"reply": "hi",
		"lead": {"name": null, "email": null, "phone": null, "company": null, "website": null, "preferred_contact": null},
		"next_question": null,
		"wants_follow_up": false,
		"confidence": 0.9
	}`
	if _, err := ParseExtraction([]byte(raw)); err == nil {
		t.Fatal("expected stray top-level key to invalidate the output")
	}
}

func TestParseExtractionRejectsMissingLeadKey(t *testing.T) {
	raw := `{
		"reply": "hi",
		"lead": {"name": null, "email": null, "phone": null, "company": null, "website": null},
		"next_question": null,
		"wants_follow_up": false
	}`
	if _, err := ParseExtraction([]byte(raw)); err == nil {
		t.Fatal("expected missing preferred_contact key to invalidate the output")
	}
}

func TestParseExtractionRejectsNonObject(t *testing.T) {
	for _, raw := range []string{"", "not json", `"just a string"`, "[1,2,3]"} {
		if _, err := ParseExtraction([]byte(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseExtractionRejectsEmptyReply(t *testing.T) {
	raw := `{
		"reply": "",
		"lead": {"name": null, "email": null, "phone": null, "company": null, "website": null, "preferred_contact": null},
		"next_question": null,
		"wants_follow_up": true
	}`
	if _, err := ParseExtraction([]byte(raw)); err == nil {
		t.Fatal("expected empty reply to invalidate the output")
	}
}
