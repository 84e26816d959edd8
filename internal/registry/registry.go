// Package registry maintains the authoritative mapping from logical claim
// identity to claim record. It decides whether new claim text restates a
// known claim or introduces a new one, and issues the revision numbers
// that guard every async verification result against staleness.
package registry

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hearsay-live/hearsay/internal/model"
	"github.com/hearsay-live/hearsay/internal/similarity"
	"github.com/hearsay-live/hearsay/internal/textnorm"
)

// CheckOptions qualifies a queueClaimCheck request.
type CheckOptions struct {
	// Context is the recent-transcript snapshot attached to the work item.
	Context string

	// Urgent puts the work item at the front of the verification queue and
	// bypasses duplicate suppression.
	Urgent bool

	// ForceCheck re-verifies even when a fresh result already exists.
	ForceCheck bool
}

// Decision is the outcome of a queueClaimCheck call.
type Decision struct {
	// View is the record's state after the call.
	View model.ClaimView

	// Item is the verification work item to enqueue, nil when the request
	// was suppressed as a duplicate.
	Item *model.QueuedVerification

	// Created reports whether a new record was minted.
	Created bool
}

// Registry is the claim state machine. All mutation goes through its
// methods under a single mutex, preserving the single-writer invariant the
// revision guard depends on.
type Registry struct {
	mu     sync.Mutex
	cfg    model.PipelineConfig
	now    func() time.Time
	newID  func() string
	byID   map[string]*model.ClaimRecord
	byNorm map[string]string // normalized text -> record id

	lastTouched string // id of the most recently queued/updated record
}

// New creates an empty registry with the given pipeline tuning.
func New(cfg model.PipelineConfig) *Registry {
	return &Registry{
		cfg:    cfg,
		now:    time.Now,
		newID:  uuid.NewString,
		byID:   make(map[string]*model.ClaimRecord),
		byNorm: make(map[string]string),
	}
}

// QueueClaimCheck matches claimText against known records and decides
// between creating a record, re-queueing an existing one, or suppressing
// the request as a duplicate. The returned Decision carries the work item
// to enqueue, if any. ok is false when the request was dropped entirely
// (malformed text or duplicate suppression).
func (r *Registry) QueueClaimCheck(claimText string, opts CheckOptions) (Decision, bool) {
	text := strings.TrimSpace(claimText)
	if len(text) < r.cfg.MinClaimLength {
		return Decision{}, false
	}
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return Decision{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()

	rec, score := r.matchLocked(normalized, text)
	if rec == nil {
		rec = &model.ClaimRecord{
			ID:             r.newID(),
			ClaimText:      text,
			NormalizedText: normalized,
			Revision:       1,
			Status:         model.StatusQueued,
			LastUpdatedAt:  now,
		}
		r.byID[rec.ID] = rec
		r.byNorm[normalized] = rec.ID
		r.lastTouched = rec.ID
		return Decision{View: rec.View(), Item: r.itemLocked(rec, opts), Created: true}, true
	}

	bypass := opts.Urgent || opts.ForceCheck
	recentlyDone := rec.Status == model.StatusDone &&
		now.Sub(rec.LastCheckedAt) < r.cfg.FreshnessTTL

	// A near-verbatim repeat of a claim verified moments ago carries no
	// new information.
	if recentlyDone && !bypass && score >= r.cfg.DuplicateThreshold {
		return Decision{}, false
	}

	// Identical wording already queued or in flight.
	if rec.Status != model.StatusDone && text == rec.ClaimText && !bypass {
		return Decision{}, false
	}

	r.reindexLocked(rec, text, normalized)
	rec.Revision++
	rec.Status = model.StatusQueued
	rec.LastUpdatedAt = now
	r.lastTouched = rec.ID
	return Decision{View: rec.View(), Item: r.itemLocked(rec, opts)}, true
}

// BeginCheck transitions a record to checking for the given revision.
// Returns false when the item is stale (the record has been re-queued
// since), in which case no verification call should be made.
func (r *Registry) BeginCheck(id string, revision int64) (model.ClaimView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok || rec.Revision != revision {
		return model.ClaimView{}, false
	}

	rec.Status = model.StatusChecking
	rec.InFlightRevision = revision
	rec.LastUpdatedAt = r.now()
	return rec.View(), true
}

// CompleteCheck applies a verification outcome for the given revision.
// Stale results (revision no longer current) are discarded without any
// visible state change; that discard is not an error. A failed
// verification still transitions the record to done so the pipeline never
// wedges on a permanently unverifiable claim.
func (r *Registry) CompleteCheck(id string, revision int64, result *model.VerificationResult, errMsg string) (model.ClaimView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok || rec.Revision != revision {
		return model.ClaimView{}, false
	}

	now := r.now()
	rec.Status = model.StatusDone
	rec.InFlightRevision = 0
	rec.LastCheckedAt = now
	rec.LastUpdatedAt = now
	if errMsg != "" {
		rec.Error = errMsg
	} else {
		rec.Result = result
		rec.Error = ""
	}
	return rec.View(), true
}

// Snapshot returns the published view of all records, most recently
// updated first.
func (r *Registry) Snapshot() []model.ClaimView {
	r.mu.Lock()
	defer r.mu.Unlock()

	views := make([]model.ClaimView, 0, len(r.byID))
	for _, rec := range r.byID {
		views = append(views, rec.View())
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].LastUpdatedAt.After(views[j].LastUpdatedAt)
	})
	return views
}

// TrackedClaims returns the current surface text of every record, for the
// extraction service's best-effort dedup hint.
func (r *Registry) TrackedClaims() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	texts := make([]string, 0, len(r.byID))
	for _, rec := range r.byID {
		texts = append(texts, rec.ClaimText)
	}
	return texts
}

// MostRecent returns the text of the most recently touched claim, for the
// dispute fallback ("check what we were just talking about").
func (r *Registry) MostRecent() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[r.lastTouched]
	if !ok {
		return "", false
	}
	return rec.ClaimText, true
}

// Len reports the number of records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// matchLocked finds the record matching normalized/text, exact-index first,
// then a linear fuzzy scan accepted at MatchThreshold. Returns nil when
// nothing matches. Caller holds the mutex.
func (r *Registry) matchLocked(normalized, text string) (*model.ClaimRecord, float64) {
	if id, ok := r.byNorm[normalized]; ok {
		return r.byID[id], 1.0
	}

	var best *model.ClaimRecord
	bestScore := 0.0
	for _, rec := range r.byID {
		s := similarity.Score(text, rec.ClaimText)
		if s > bestScore {
			best = rec
			bestScore = s
		}
	}
	if best == nil || bestScore < r.cfg.MatchThreshold {
		return nil, 0
	}
	return best, bestScore
}

// reindexLocked overwrites the record's text and keeps the normalized
// index in sync. Caller holds the mutex.
func (r *Registry) reindexLocked(rec *model.ClaimRecord, text, normalized string) {
	if rec.NormalizedText != normalized {
		delete(r.byNorm, rec.NormalizedText)
		r.byNorm[normalized] = rec.ID
	}
	rec.ClaimText = text
	rec.NormalizedText = normalized
}

// itemLocked snapshots the record into an immutable work item. Caller
// holds the mutex.
func (r *Registry) itemLocked(rec *model.ClaimRecord, opts CheckOptions) *model.QueuedVerification {
	return &model.QueuedVerification{
		ID:        rec.ID,
		ClaimText: rec.ClaimText,
		Context:   opts.Context,
		Revision:  rec.Revision,
		Urgent:    opts.Urgent,
		Forced:    opts.ForceCheck,
	}
}
