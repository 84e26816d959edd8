package intent

import "testing"

func TestIsDisputeCue(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"that's wrong", true},
		{"That is wrong", true},
		{"that's just false", true},
		{"no, that's not what happened", true},
		{"that is not true", true},
		{"the figure is incorrect", true},
		{"I disagree with that", true},
		{"that's a lie", true},
		{"the weather is nice today", false},
		{"he made a wrong turn", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		if got := IsDisputeCue(tt.text); got != tt.want {
			t.Errorf("IsDisputeCue(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsExplicitVerifyCue(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"fact check that", true},
		{"can you fact-check this", true},
		{"please verify", true},
		{"is that true?", true},
		{"is this true", true},
		{"is it true that he won", true},
		{"is that correct?", true},
		{"look that up", true},
		{"the fact-checkers were busy", false},
		{"as a matter of fact", false},
		{"they checked into the hotel", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsExplicitVerifyCue(tt.text); got != tt.want {
			t.Errorf("IsExplicitVerifyCue(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
