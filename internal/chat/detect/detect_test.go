package detect

import "testing"

func TestFollowUpIntent(t *testing.T) {
	positives := []string{
		"Please call me about pricing",
		"can someone CONTACT ME tomorrow",
		"I'd like you to reach out next week",
		"get back to me when you can",
	}
	for _, u := range positives {
		if !FollowUpIntent(u) {
			t.Fatalf("expected follow-up intent for %q", u)
		}
	}

	negatives := []string{
		"what do you charge for a website?",
		"do you build mobile apps?",
		"",
	}
	for _, u := range negatives {
		if FollowUpIntent(u) {
			t.Fatalf("did not expect follow-up intent for %q", u)
		}
	}
}

func TestInternationalHintNorthAmericaMarkersWin(t *testing.T) {
	if InternationalHint("i'm in vancouver, bc") {
		t.Fatal("explicit NA marker must force hint=false")
	}
	if InternationalHint("calling from Toronto, Canada but I travel overseas a lot") {
		t.Fatal("NA marker must override weaker international tokens")
	}
}

func TestInternationalHintPositive(t *testing.T) {
	if !InternationalHint("i'm in london") {
		t.Fatal("expected hint=true for london")
	}
	if !InternationalHint("we're an international company based in Singapore") {
		t.Fatal("expected hint=true for international markers")
	}
}

func TestInternationalHintDefaultsToFalse(t *testing.T) {
	if InternationalHint("how much does a small website cost?") {
		t.Fatal("expected hint=false with no region markers at all")
	}
}

func TestInternationalHintWholeWordMatching(t *testing.T) {
	// "ukulele" contains "uk" but must not match the single-word token.
	if InternationalHint("i want a site for my ukulele shop") {
		t.Fatal("substring of a longer word must not trigger the hint")
	}
}
