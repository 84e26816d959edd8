// Package source classifies the publications a verdict cites into
// authority tiers. The verifier returns organization names, not URLs, so
// classification is keyword-based over the name.
package source

import "strings"

// Tier is a source authority tier
type Tier string

const (
	// TierPrimary is official/institutional sources (government agencies,
	// international organizations, academic institutions, journals)
	TierPrimary Tier = "primary"

	// TierSecondary is established news organizations and wire services
	TierSecondary Tier = "secondary"

	// TierTertiary is everything else
	TierTertiary Tier = "tertiary"
)

// Classifier classifies source names into authority tiers
type Classifier struct {
	overrides       map[string]Tier
	primaryKeywords []string
	secondaryNames  map[string]bool
}

// NewClassifier creates a classifier with the built-in keyword sets.
// Overrides map lowercased source names to tiers and win over keywords.
func NewClassifier(overrides map[string]Tier) *Classifier {
	c := &Classifier{
		overrides: make(map[string]Tier),
		primaryKeywords: []string{
			"government", "ministry", "department of", "bureau of",
			"census", "national institute", "federal reserve",
			"world health organization", "who", "united nations",
			"world bank", "imf", "international monetary fund",
			"oecd", "eurostat", "cdc", "nasa", "noaa",
			"university", "journal", "office for national statistics",
			"bureau of labor statistics", "congressional budget office",
		},
		secondaryNames: map[string]bool{
			"reuters":             true,
			"associated press":    true,
			"ap":                  true,
			"afp":                 true,
			"bbc":                 true,
			"bbc news":            true,
			"the new york times":  true,
			"new york times":      true,
			"the washington post": true,
			"washington post":     true,
			"the guardian":        true,
			"the economist":       true,
			"financial times":     true,
			"wall street journal": true,
			"the wall street journal": true,
			"npr":                 true,
			"politifact":          true,
			"factcheck.org":       true,
			"snopes":              true,
		},
	}
	for name, tier := range overrides {
		c.overrides[strings.ToLower(strings.TrimSpace(name))] = tier
	}
	return c
}

// Classify returns the authority tier for a source name
func (c *Classifier) Classify(name string) Tier {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return TierTertiary
	}

	if tier, ok := c.overrides[key]; ok {
		return tier
	}

	for _, kw := range c.primaryKeywords {
		if containsWord(key, kw) {
			return TierPrimary
		}
	}

	if c.secondaryNames[key] {
		return TierSecondary
	}

	return TierTertiary
}

// containsWord reports whether s contains kw on word boundaries, so "who"
// does not match inside "whoever".
func containsWord(s, kw string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		startOK := start == 0 || !isWordChar(s[start-1])
		endOK := end == len(s) || !isWordChar(s[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
		if idx >= len(s) {
			return false
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
