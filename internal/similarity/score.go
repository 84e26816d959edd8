// Package similarity scores how likely two claim strings restate the same
// factual assertion.
package similarity

import (
	"strings"

	"github.com/hearsay-live/hearsay/internal/textnorm"
)

const (
	exactScore     = 1.0
	substringScore = 0.95
	minTokenLen    = 3
)

// stopWords are function words that carry no claim content. Shared stop
// words would inflate the overlap score between unrelated claims.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "for": {}, "nor": {}, "yet": {},
	"was": {}, "were": {}, "are": {}, "been": {}, "being": {},
	"has": {}, "have": {}, "had": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "shall": {},
	"that": {}, "this": {}, "these": {}, "those": {}, "there": {},
	"they": {}, "them": {}, "their": {}, "then": {}, "than": {},
	"with": {}, "from": {}, "into": {}, "about": {}, "over": {},
	"under": {}, "after": {}, "before": {}, "while": {}, "when": {},
	"what": {}, "which": {}, "who": {}, "how": {}, "why": {},
	"said": {}, "says": {}, "saying": {}, "told": {}, "stated": {},
	"according": {}, "reported": {}, "claimed": {}, "claims": {},
	"also": {}, "just": {}, "very": {}, "really": {}, "actually": {},
	"some": {}, "any": {}, "all": {}, "not": {},
}

// Score computes a [0,1] overlap score between two claim strings.
// Exact normalized equality scores 1, substring containment 0.95, and
// everything else falls through to content-word overlap divided by the
// smaller token set. Using min instead of union keeps a short rephrasing
// fully contained in a longer claim's vocabulary scoring high.
func Score(a, b string) float64 {
	na := textnorm.Normalize(a)
	nb := textnorm.Normalize(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return exactScore
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return substringScore
	}

	ta := contentTokens(na)
	tb := contentTokens(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			shared++
		}
	}

	smaller := len(ta)
	if len(tb) < smaller {
		smaller = len(tb)
	}
	return float64(shared) / float64(smaller)
}

// contentTokens tokenizes normalized text, dropping short tokens and stop
// words.
func contentTokens(normalized string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}
