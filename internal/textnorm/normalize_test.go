package textnorm

import "testing"

func TestNormalize_Basic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and trim", "  The Economy GREW  ", "the economy grew"},
		{"percent word", "unemployment is five percent", "unemployment is five %"},
		{"per cent spelling", "inflation rose two per cent", "inflation rose two %"},
		{"million", "the budget is 5 million dollars", "the budget is 5 m $"},
		{"billions plural", "costs reached 3 billions", "costs reached 3 b"},
		{"byte sizes", "the file is 2 gigabytes not 2000 megabytes", "the file is 2 gb not 2000 mb"},
		{"punctuation stripped", `He said, "it's done!"`, "he said its done"},
		{"whitespace collapsed", "a   b\t\tc", "a b c"},
		{"empty", "", ""},
		{"only punctuation", "?!.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Indigenous Australians receive twice as much funding per capita.",
		"The deficit is 30 billion dollars, up 5 percent!",
		"  Mixed   CASE with 10 gigabytes of data  ",
		"no punctuation here",
		"",
		"5 per cent of 2 million",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalize_WordBoundaries(t *testing.T) {
	// Unit expansion must not fire inside longer words.
	got := Normalize("the millionaire from Dollarton")
	if got != "the millionaire from dollarton" {
		t.Errorf("expected word-boundary-safe expansion, got %q", got)
	}
}
