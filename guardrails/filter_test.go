package guardrails

import "testing"

func TestFilterFirstMatchWins(t *testing.T) {
	f := NewContentFilter()

	// Trips both the inappropriate and personal-info families; the
	// inappropriate family is evaluated first.
	match, ok := f.Check("send my password to someone about drugs")
	if !ok {
		t.Fatalf("expected a match")
	}
	if match.Category != CategoryInappropriate {
		t.Fatalf("expected first family to win, got %s", match.Category)
	}
}

func TestFilterPersonalInfoPatterns(t *testing.T) {
	f := NewContentFilter()

	cases := []string{
		"reach me at bob.smith@school.edu please",
		"my number is 555.867.5309",
		"I live at 42 Elm Street near campus",
		"here is my login and username for the portal",
	}
	for _, text := range cases {
		match, ok := f.Check(text)
		if !ok {
			t.Fatalf("expected %q to match", text)
		}
		if match.Category != CategoryPersonalInfo {
			t.Fatalf("expected personal_info for %q, got %s", text, match.Category)
		}
	}
}

func TestFilterOffTopicHeuristic(t *testing.T) {
	f := NewContentFilter()

	// Long, leisure-heavy, no study vocabulary.
	offTopic := "did you watch the big game last night and then the new movie with that celebrity everyone talks about"
	if match, ok := f.Check(offTopic); !ok || match.Category != CategoryOffTopic {
		t.Fatalf("expected off_topic match, got %v %v", match, ok)
	}

	// Same leisure terms but clearly framed as study material.
	onTopic := "for my homework assignment I need to explain how a movie and a game can illustrate the concept of narrative structure"
	if match, ok := f.Check(onTopic); ok {
		t.Fatalf("expected study-framed query to pass, got %s", match.Category)
	}

	// Short texts never trip the heuristic.
	short := "movie game party"
	if _, ok := f.Check(short); ok {
		t.Fatalf("expected short text to pass the off-topic heuristic")
	}
}

func TestFilterTunableThresholds(t *testing.T) {
	f := NewContentFilter(
		WithOffTopicMinWords(3),
		WithSuspiciousThreshold(1),
	)

	match, ok := f.Check("that party was fun and loud last night")
	if !ok || match.Category != CategoryOffTopic {
		t.Fatalf("expected tightened thresholds to flag leisure chat, got %v %v", match, ok)
	}
}

func TestFilterPassesEducationalText(t *testing.T) {
	f := NewContentFilter()

	if match, ok := f.Check("explain the theory behind photosynthesis for my biology lesson"); ok {
		t.Fatalf("expected educational text to pass, got %s", match.Category)
	}
}
