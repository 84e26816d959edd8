// Package schedule decides when accumulated transcript text is ripe for
// claim extraction. Firing too early splits sentences mid-thought; firing
// too late adds latency to every check.
package schedule

import (
	"strings"
	"time"

	"github.com/hearsay-live/hearsay/internal/model"
)

// Delays holds the debounce timings for the extraction scheduler.
type Delays struct {
	Base         time.Duration // No strong signal either way
	SentenceEnd  time.Duration // Fragment ends with terminal punctuation
	TrailingNum  time.Duration // Fragment ends in a digit, units may follow
	Continuation time.Duration // Fragment ends mid-phrase
}

// DelaysFromConfig pulls debounce timings out of the pipeline config.
func DelaysFromConfig(cfg model.PipelineConfig) Delays {
	return Delays{
		Base:         cfg.BaseDelay,
		SentenceEnd:  cfg.SentenceEndDelay,
		TrailingNum:  cfg.TrailingNumDelay,
		Continuation: cfg.ContinuationDelay,
	}
}

// continuationWords end fragments that are clearly mid-sentence; waiting
// longer lets the rest of the phrase arrive before extraction fires.
var continuationWords = map[string]struct{}{
	"of": {}, "that": {}, "and": {}, "with": {}, "per": {},
	"the": {}, "a": {}, "an": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"by": {}, "as": {}, "than": {}, "about": {}, "over": {},
	"under": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"has": {}, "have": {}, "from": {},
}

// DelayFor returns how long to debounce before firing extraction for the
// given fragment. Zero when an explicit verify request is pending anywhere
// in the accumulated buffer.
func DelayFor(fragment string, explicitVerifyPending bool, d Delays) time.Duration {
	if explicitVerifyPending {
		return 0
	}

	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return d.Base
	}

	last := trimmed[len(trimmed)-1]
	if last == '.' || last == '!' || last == '?' {
		return d.SentenceEnd
	}

	words := strings.Fields(strings.ToLower(trimmed))
	if len(words) > 0 {
		if _, ok := continuationWords[words[len(words)-1]]; ok {
			return d.Continuation
		}
	}

	if last >= '0' && last <= '9' {
		return d.TrailingNum
	}

	return d.Base
}
