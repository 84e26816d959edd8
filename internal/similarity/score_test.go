package similarity

import "testing"

func TestScore_ExactMatch(t *testing.T) {
	if got := Score("Cats are mammals", "cats are mammals."); got != 1.0 {
		t.Errorf("Expected 1.0 for normalized-equal strings, got %f", got)
	}
}

func TestScore_Substring(t *testing.T) {
	long := "Indigenous Australians receive twice as much funding as white Australians"
	short := "receive twice as much funding"
	if got := Score(long, short); got != 0.95 {
		t.Errorf("Expected 0.95 for substring containment, got %f", got)
	}
}

func TestScore_Empty(t *testing.T) {
	if got := Score("", "anything"); got != 0 {
		t.Errorf("Expected 0 for empty input, got %f", got)
	}
	if got := Score("?!", "anything at all here"); got != 0 {
		t.Errorf("Expected 0 when one side normalizes to empty, got %f", got)
	}
}

func TestScore_KnownPairs(t *testing.T) {
	a := "Indigenous Australians receive twice as much funding as white Australians per capita"
	b := "They receive 2x funding per capita"
	if got := Score(a, b); got < 0.7 {
		t.Errorf("Expected rephrasing pair to score >= 0.7, got %f", got)
	}

	if got := Score("Cats are mammals", "The sky is blue"); got >= 0.4 {
		t.Errorf("Expected unrelated pair to score < 0.4, got %f", got)
	}
}

func TestScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Unemployment rose to 5 percent last quarter", "Unemployment is now five percent"},
		{"The bridge was built in 1932", "Construction finished on the bridge in 1932"},
		{"Cats are mammals", "The sky is blue"},
	}
	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q, %q) = %f but reversed = %f", p[0], p[1], ab, ba)
		}
	}
}

func TestScore_StopWordsIgnored(t *testing.T) {
	// Overlap consisting only of stop words must not score.
	if got := Score("that was said according to them", "they said that it was so"); got != 0 {
		t.Errorf("Expected 0 when only stop words overlap, got %f", got)
	}
}
