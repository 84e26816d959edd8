// Package verify owns the verification boundary and the single-worker
// queue that drains it. Verification calls are strictly sequential;
// urgent items jump the line.
package verify

import (
	"context"

	"github.com/hearsay-live/hearsay/internal/model"
)

// CheckRequest is the input to one verification call.
type CheckRequest struct {
	Claim   string
	Context string

	// Fresh skips any cached verdict; set when the user explicitly asked
	// for a (re-)check.
	Fresh bool
}

// Checker defines the claim verification boundary.
type Checker interface {
	Check(ctx context.Context, req CheckRequest) (*model.VerificationResult, error)
}
