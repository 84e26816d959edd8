// Package intent detects conversational cues that change how the pipeline
// schedules claim checks: disputes escalate priority, explicit verify
// requests skip the debounce entirely.
package intent

import (
	"regexp"
	"strings"
)

// disputePatterns match disagreement with something just said.
var disputePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bthat'?s\s+(just\s+)?(wrong|false|not\s+right|untrue)\b`),
	regexp.MustCompile(`(?i)\bthat\s+is\s+(wrong|false|untrue)\b`),
	regexp.MustCompile(`(?i)\bnot\s+true\b`),
	regexp.MustCompile(`(?i)\bincorrect\b`),
	regexp.MustCompile(`(?i)^no,?\s+(that|it)('s|\s+is)\b`),
	regexp.MustCompile(`(?i)\bi\s+disagree\b`),
	regexp.MustCompile(`(?i)\bthat'?s\s+a\s+lie\b`),
	regexp.MustCompile(`(?i)\bno\s+way\s+that'?s\b`),
}

// verifyPatterns match explicit requests to check a claim. Word boundaries
// matter: "fact-checkers" as a noun must not trigger.
var verifyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfact[\s-]?check\b`),
	regexp.MustCompile(`(?i)\bverify\b`),
	regexp.MustCompile(`(?i)\bis\s+(that|this|it)\s+(true|correct|right|accurate)\b`),
	regexp.MustCompile(`(?i)\bcheck\s+(that|this)\s+(claim|fact|statement)\b`),
	regexp.MustCompile(`(?i)\blook\s+(that|this|it)\s+up\b`),
}

// IsDisputeCue reports whether the text disputes a claim in play.
func IsDisputeCue(text string) bool {
	return matchAny(text, disputePatterns)
}

// IsExplicitVerifyCue reports whether the text explicitly asks for a
// fact check.
func IsExplicitVerifyCue(text string) bool {
	return matchAny(text, verifyPatterns)
}

func matchAny(text string, patterns []*regexp.Regexp) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, p := range patterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}
