package registry

import (
	"testing"
	"time"

	"github.com/hearsay-live/hearsay/internal/model"
)

func testRegistry() (*Registry, *time.Time) {
	cfg := model.DefaultConfig().Pipeline
	r := New(cfg)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestQueueClaimCheck_NewClaim(t *testing.T) {
	r, _ := testRegistry()

	dec, ok := r.QueueClaimCheck("Unemployment hit 5 percent in March", CheckOptions{Context: "ctx"})
	if !ok {
		t.Fatal("Expected new claim to be accepted")
	}
	if !dec.Created {
		t.Error("Expected Created to be true")
	}
	if dec.Item == nil {
		t.Fatal("Expected a work item")
	}
	if dec.Item.Revision != 1 {
		t.Errorf("Expected revision 1, got %d", dec.Item.Revision)
	}
	if dec.Item.Context != "ctx" {
		t.Errorf("Expected context snapshot, got %q", dec.Item.Context)
	}
	if dec.View.Status != model.StatusQueued {
		t.Errorf("Expected status queued, got %s", dec.View.Status)
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 record, got %d", r.Len())
	}
}

func TestQueueClaimCheck_MalformedDropped(t *testing.T) {
	r, _ := testRegistry()

	for _, text := range []string{"", "   ", "short", "?!.,"} {
		if _, ok := r.QueueClaimCheck(text, CheckOptions{}); ok {
			t.Errorf("Expected %q to be dropped", text)
		}
	}
	if r.Len() != 0 {
		t.Errorf("Expected no records, got %d", r.Len())
	}
}

func TestQueueClaimCheck_IdenticalInFlightSuppressed(t *testing.T) {
	r, _ := testRegistry()

	dec, _ := r.QueueClaimCheck("The bridge was built in 1932", CheckOptions{})
	if dec.Item == nil {
		t.Fatal("Expected initial enqueue")
	}

	// Same wording again while still queued: no new work.
	if _, ok := r.QueueClaimCheck("The bridge was built in 1932", CheckOptions{}); ok {
		t.Error("Expected identical in-flight text to be suppressed")
	}
}

func TestQueueClaimCheck_DedupSuppressionWhenFresh(t *testing.T) {
	r, _ := testRegistry()

	text := "Indigenous Australians receive twice as much funding as white Australians per capita"
	dec, _ := r.QueueClaimCheck(text, CheckOptions{})
	if _, ok := r.CompleteCheck(dec.Item.ID, dec.Item.Revision, &model.VerificationResult{Verdict: "true"}, ""); !ok {
		t.Fatal("Expected completion to apply")
	}

	// Substring restatement scores 0.95 >= duplicate threshold.
	if _, ok := r.QueueClaimCheck("receive twice as much funding as white Australians", CheckOptions{}); ok {
		t.Error("Expected fresh near-duplicate to be suppressed")
	}

	views := r.Snapshot()
	if len(views) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(views))
	}
	if views[0].Status != model.StatusDone {
		t.Errorf("Expected record to stay done, got %s", views[0].Status)
	}
}

func TestQueueClaimCheck_UrgentBypassesSuppression(t *testing.T) {
	r, _ := testRegistry()

	text := "Indigenous Australians receive twice as much funding as white Australians per capita"
	dec, _ := r.QueueClaimCheck(text, CheckOptions{})
	r.CompleteCheck(dec.Item.ID, dec.Item.Revision, &model.VerificationResult{Verdict: "true"}, "")

	dec2, ok := r.QueueClaimCheck(text, CheckOptions{Urgent: true})
	if !ok || dec2.Item == nil {
		t.Fatal("Expected urgent request to bypass suppression")
	}
	if dec2.Created {
		t.Error("Expected existing record to be reused")
	}
	if dec2.Item.ID != dec.Item.ID {
		t.Error("Expected same logical claim id")
	}
	if dec2.Item.Revision != 2 {
		t.Errorf("Expected revision bump to 2, got %d", dec2.Item.Revision)
	}
	if !dec2.Item.Urgent {
		t.Error("Expected urgent flag on the work item")
	}
}

func TestQueueClaimCheck_FuzzyRewordUpdatesRecord(t *testing.T) {
	r, _ := testRegistry()

	a := "Sydney housing prices doubled since 2010 according to reports"
	dec, _ := r.QueueClaimCheck(a, CheckOptions{})
	r.CompleteCheck(dec.Item.ID, dec.Item.Revision, &model.VerificationResult{Verdict: "true"}, "")

	// Scores above match threshold but below duplicate threshold: same
	// claim, but enough new wording to warrant a re-check.
	b := "Sydney housing prices doubled recently"
	dec2, ok := r.QueueClaimCheck(b, CheckOptions{})
	if !ok || dec2.Item == nil {
		t.Fatal("Expected reworded claim to re-queue")
	}
	if dec2.Item.ID != dec.Item.ID {
		t.Error("Expected fuzzy match to reuse the record")
	}
	if dec2.View.ClaimText != b {
		t.Errorf("Expected claim text updated to %q, got %q", b, dec2.View.ClaimText)
	}
	if dec2.Item.Revision != 2 {
		t.Errorf("Expected revision 2, got %d", dec2.Item.Revision)
	}
	if r.Len() != 1 {
		t.Errorf("Expected a single record, got %d", r.Len())
	}

	// The normalized index must follow the new wording.
	dec3, ok := r.QueueClaimCheck(b, CheckOptions{ForceCheck: true})
	if !ok || dec3.Item.ID != dec.Item.ID {
		t.Error("Expected exact lookup on the new wording to hit the same record")
	}
}

func TestQueueClaimCheck_TTLExpiryAllowsRecheck(t *testing.T) {
	r, now := testRegistry()

	text := "The bridge was built in 1932 by state engineers"
	dec, _ := r.QueueClaimCheck(text, CheckOptions{})
	r.CompleteCheck(dec.Item.ID, dec.Item.Revision, &model.VerificationResult{Verdict: "true"}, "")

	// Within TTL: suppressed.
	if _, ok := r.QueueClaimCheck(text, CheckOptions{}); ok {
		t.Error("Expected suppression inside freshness TTL")
	}

	// After TTL: eligible again.
	*now = now.Add(6 * time.Minute)
	dec2, ok := r.QueueClaimCheck(text, CheckOptions{})
	if !ok || dec2.Item == nil {
		t.Fatal("Expected re-check after TTL expiry")
	}
	if dec2.Item.Revision != 2 {
		t.Errorf("Expected revision 2, got %d", dec2.Item.Revision)
	}
}

func TestCompleteCheck_StaleResultDiscarded(t *testing.T) {
	r, _ := testRegistry()

	dec, _ := r.QueueClaimCheck("The deficit reached 30 billion dollars", CheckOptions{})
	id := dec.Item.ID

	// Re-trigger before the first verification lands.
	dec2, ok := r.QueueClaimCheck("The deficit reached 30 billion dollars", CheckOptions{ForceCheck: true})
	if !ok || dec2.Item.Revision != 2 {
		t.Fatal("Expected forced re-queue to revision 2")
	}

	// Revision-1 result arrives late: must not touch visible state.
	if _, ok := r.CompleteCheck(id, 1, &model.VerificationResult{Verdict: "false"}, ""); ok {
		t.Error("Expected stale revision-1 result to be discarded")
	}
	views := r.Snapshot()
	if views[0].Result != nil {
		t.Error("Expected no visible result from the stale response")
	}
	if views[0].Status == model.StatusDone {
		t.Error("Expected record not to be marked done by the stale response")
	}
	if views[0].Error != "" {
		t.Errorf("Stale discard must not record an error, got %q", views[0].Error)
	}

	// Revision-2 result applies.
	view, ok := r.CompleteCheck(id, 2, &model.VerificationResult{Verdict: "true"}, "")
	if !ok {
		t.Fatal("Expected current-revision result to apply")
	}
	if view.Status != model.StatusDone || view.Result == nil || view.Result.Verdict != "true" {
		t.Errorf("Unexpected applied view: %+v", view)
	}
}

func TestBeginCheck_StaleItemSkipped(t *testing.T) {
	r, _ := testRegistry()

	dec, _ := r.QueueClaimCheck("The deficit reached 30 billion dollars", CheckOptions{})
	r.QueueClaimCheck("The deficit reached 30 billion dollars", CheckOptions{ForceCheck: true})

	if _, ok := r.BeginCheck(dec.Item.ID, dec.Item.Revision); ok {
		t.Error("Expected superseded item to be skipped without a network call")
	}
	if view, ok := r.BeginCheck(dec.Item.ID, 2); !ok || view.Status != model.StatusChecking {
		t.Error("Expected current revision to transition to checking")
	}
}

func TestCompleteCheck_ErrorStillTransitionsToDone(t *testing.T) {
	r, _ := testRegistry()

	dec, _ := r.QueueClaimCheck("Unemployment hit 5 percent in March", CheckOptions{})
	r.BeginCheck(dec.Item.ID, 1)

	view, ok := r.CompleteCheck(dec.Item.ID, 1, nil, "verification timed out")
	if !ok {
		t.Fatal("Expected error completion to apply")
	}
	if view.Status != model.StatusDone {
		t.Errorf("Expected done after failure, got %s", view.Status)
	}
	if view.Error != "verification timed out" {
		t.Errorf("Expected error to be recorded, got %q", view.Error)
	}
}

func TestSnapshot_MostRecentFirst(t *testing.T) {
	r, now := testRegistry()

	r.QueueClaimCheck("The bridge was built in 1932 by state engineers", CheckOptions{})
	*now = now.Add(time.Second)
	dec2, _ := r.QueueClaimCheck("Unemployment hit 5 percent in March", CheckOptions{})

	views := r.Snapshot()
	if len(views) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(views))
	}
	if views[0].ID != dec2.Item.ID {
		t.Error("Expected most recently updated record first")
	}
}

func TestMostRecent(t *testing.T) {
	r, now := testRegistry()

	if _, ok := r.MostRecent(); ok {
		t.Error("Expected no most-recent claim in an empty registry")
	}

	r.QueueClaimCheck("The bridge was built in 1932 by state engineers", CheckOptions{})
	*now = now.Add(time.Second)
	r.QueueClaimCheck("Unemployment hit 5 percent in March", CheckOptions{})

	text, ok := r.MostRecent()
	if !ok || text != "Unemployment hit 5 percent in March" {
		t.Errorf("Expected latest claim text, got %q (ok=%v)", text, ok)
	}
}
