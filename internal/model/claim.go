package model

import "time"

// ClaimStatus tracks where a claim is in the verification lifecycle
type ClaimStatus string

const (
	StatusQueued   ClaimStatus = "queued"   // Waiting for a verification slot
	StatusChecking ClaimStatus = "checking" // Verification call in flight
	StatusDone     ClaimStatus = "done"     // Verification completed (possibly with error)
)

// ClaimRecord is the authoritative unit of claim identity. One record exists
// per logical claim; restatements update the record rather than creating a
// new one.
type ClaimRecord struct {
	ID             string      `json:"id"`              // Opaque unique identifier, stable for the record's lifetime
	ClaimText      string      `json:"claim_text"`      // Latest surface wording seen for this claim
	NormalizedText string      `json:"normalized_text"` // Index key for exact-match lookup
	Revision       int64       `json:"revision"`        // Bumped on every (re-)queue; guards against stale results
	Status         ClaimStatus `json:"status"`

	LastUpdatedAt time.Time `json:"last_updated_at"` // Most recent text/status change
	LastCheckedAt time.Time `json:"last_checked_at"` // Most recent completed verification (zero if never)

	// InFlightRevision is the revision currently being verified, 0 if none.
	InFlightRevision int64 `json:"in_flight_revision,omitempty"`

	Result *VerificationResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// VerificationResult is the verdict returned by the verification service.
// The verdict vocabulary is owned by that service; the pipeline treats it
// as opaque.
type VerificationResult struct {
	Verdict         string   `json:"verdict"`
	Confidence      float64  `json:"confidence"`
	EvidenceFor     []string `json:"evidence_for,omitempty"`
	EvidenceAgainst []string `json:"evidence_against,omitempty"`
	Sources         []string `json:"sources,omitempty"`
}

// QueuedVerification is an immutable point-in-time verification request.
// Text, context and revision are snapshots taken at enqueue time, not live
// views of the record.
type QueuedVerification struct {
	ID        string `json:"id"` // References the ClaimRecord
	ClaimText string `json:"claim_text"`
	Context   string `json:"context,omitempty"`
	Revision  int64  `json:"revision"`
	Urgent    bool   `json:"urgent"`
	Forced    bool   `json:"forced"` // Bypass result caches, the user asked for a fresh check
}

// TranscriptFragment is a piece of finalized transcribed speech.
type TranscriptFragment struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ClaimView is the published, consumer-facing projection of a ClaimRecord.
type ClaimView struct {
	ID            string              `json:"id"`
	ClaimText     string              `json:"claim_text"`
	Status        ClaimStatus         `json:"status"`
	Result        *VerificationResult `json:"result,omitempty"`
	Error         string              `json:"error,omitempty"`
	LastUpdatedAt time.Time           `json:"last_updated_at"`
}

// View returns the consumer-facing projection of the record.
func (r *ClaimRecord) View() ClaimView {
	return ClaimView{
		ID:            r.ID,
		ClaimText:     r.ClaimText,
		Status:        r.Status,
		Result:        r.Result,
		Error:         r.Error,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}
