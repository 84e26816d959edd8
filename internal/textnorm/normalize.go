// Package textnorm canonicalizes claim text for indexing and comparison.
// Normalized strings are never shown to users.
package textnorm

import (
	"regexp"
	"strings"
)

// unitExpansions map spoken unit words to the compact forms a transcript or
// a typed claim would otherwise disagree on ("five million dollars" vs
// "$5m"). Applied on lowercased text, word-boundary anchored.
var unitExpansions = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`\bper\s?cent\b`), "%"},
	{regexp.MustCompile(`\bpercentage\b`), "%"},
	{regexp.MustCompile(`\bmillions?\b`), "m"},
	{regexp.MustCompile(`\bbillions?\b`), "b"},
	{regexp.MustCompile(`\btrillions?\b`), "t"},
	{regexp.MustCompile(`\bthousands?\b`), "k"},
	{regexp.MustCompile(`\bdollars?\b`), "$"},
	{regexp.MustCompile(`\beuros?\b`), "eur"},
	{regexp.MustCompile(`\bgigabytes?\b`), "gb"},
	{regexp.MustCompile(`\bmegabytes?\b`), "mb"},
	{regexp.MustCompile(`\bterabytes?\b`), "tb"},
	{regexp.MustCompile(`\bkilobytes?\b`), "kb"},
	{regexp.MustCompile(`\bkilomet(?:er|re)s?\b`), "km"},
	{regexp.MustCompile(`\bkilograms?\b`), "kg"},
}

// strippedPunct is the punctuation removed from normalized text. Currency
// and percent symbols survive because unit expansion produces them.
var strippedPunct = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "", ":", "",
	`"`, "", "'", "", "(", "", ")", "", "[", "", "]", "",
	"{", "", "}", "", "“", "", "”", "", "‘", "", "’", "",
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a claim string for equality and duplicate
// comparisons. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, u := range unitExpansions {
		s = u.pattern.ReplaceAllString(s, u.repl)
	}
	s = strippedPunct.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
