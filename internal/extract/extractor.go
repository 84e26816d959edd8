// Package extract turns accumulated transcript text into candidate claim
// strings. The registry remains the authoritative dedup; the extraction
// service only gets the tracked-claims list as a best-effort hint.
package extract

import "context"

// Request is the input to a single extraction round.
type Request struct {
	// NewText is the accumulated transcript text since the last round.
	NewText string

	// RecentContext is the surrounding transcript window.
	RecentContext string

	// CheckedClaims are claims already tracked, which the service should
	// treat as covered.
	CheckedClaims []string
}

// Response carries zero or more candidate claim strings. ForcedClaims are
// candidates the service itself recognized as explicit verify requests;
// they bypass dedup suppression downstream.
type Response struct {
	Claims       []string `json:"claims"`
	ForcedClaims []string `json:"forced_claims"`
}

// Extractor defines the claim extraction boundary.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*Response, error)
}
