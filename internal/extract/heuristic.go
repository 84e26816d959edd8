package extract

import (
	"context"
	"strings"
	"unicode"
)

// HeuristicExtractor extracts claim candidates without a model call, using
// keyword and number heuristics over sentence splits. It is the fallback
// when no LLM provider is configured, and deliberately over-selects: the
// registry's matching policy cleans up behind it.
type HeuristicExtractor struct {
	keywords  []string
	minLength int
}

// NewHeuristicExtractor creates a heuristic extractor. Candidates shorter
// than minLength runes are dropped.
func NewHeuristicExtractor(minLength int) *HeuristicExtractor {
	if minLength <= 0 {
		minLength = 8
	}
	return &HeuristicExtractor{
		minLength: minLength,
		keywords: []string{
			"percent", "per cent", "million", "billion", "trillion",
			"according to", "originated", "invented", "founded",
			"established", "discovered", "first", "largest", "smallest",
			"highest", "lowest", "more than", "less than", "twice",
			"half of", "per capita", "every year", "on average",
		},
	}
}

// Extract returns sentences that look like checkable factual claims:
// those containing a digit or one of the claim keywords.
func (e *HeuristicExtractor) Extract(_ context.Context, req Request) (*Response, error) {
	out := &Response{}
	seen := make(map[string]bool)

	for _, sentence := range splitSentences(req.NewText) {
		if len([]rune(sentence)) < e.minLength {
			continue
		}
		if !e.looksCheckable(sentence) {
			continue
		}
		key := strings.ToLower(sentence)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Claims = append(out.Claims, sentence)
	}
	return out, nil
}

func (e *HeuristicExtractor) looksCheckable(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, r := range sentence {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// splitSentences splits transcript text on terminal punctuation. Trailing
// text without a terminator still counts: speech fragments often arrive
// unpunctuated.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}
