package verify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hearsay-live/hearsay/internal/model"
	"github.com/hearsay-live/hearsay/internal/registry"
)

const defaultCheckTimeout = 30 * time.Second

// Worker drains the queue one item at a time, so at most one verification
// call is ever in flight. The revision guard runs twice: at pop, to skip
// superseded items before spending a network call, and at apply, to drop
// results that went stale while in flight.
type Worker struct {
	queue    *Queue
	registry *registry.Registry
	checker  Checker
	timeout  time.Duration
	log      *zap.SugaredLogger
	publish  func(model.ClaimView)
}

// NewWorker creates a verification worker. publish is called with every
// visible state change and may be nil.
func NewWorker(queue *Queue, reg *registry.Registry, checker Checker, timeout time.Duration, log *zap.SugaredLogger, publish func(model.ClaimView)) *Worker {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Worker{
		queue:    queue,
		registry: reg,
		checker:  checker,
		timeout:  timeout,
		log:      log,
		publish:  publish,
	}
}

// Run processes items until the context ends.
func (w *Worker) Run(ctx context.Context) {
	for {
		item, err := w.queue.Pop(ctx)
		if err != nil {
			return
		}
		w.process(ctx, item)
	}
}

func (w *Worker) process(ctx context.Context, item *model.QueuedVerification) {
	view, ok := w.registry.BeginCheck(item.ID, item.Revision)
	if !ok {
		// Superseded while waiting in line: no network call.
		w.log.Debugw("skipping superseded verification",
			"claim_id", item.ID, "revision", item.Revision)
		return
	}
	w.emit(view)

	checkCtx, cancel := context.WithTimeout(ctx, w.timeout)
	result, err := w.checker.Check(checkCtx, CheckRequest{
		Claim:   item.ClaimText,
		Context: item.Context,
		Fresh:   item.Urgent || item.Forced,
	})
	cancel()

	var errMsg string
	if err != nil {
		errMsg = err.Error()
		w.log.Warnw("verification failed",
			"claim_id", item.ID, "revision", item.Revision, "error", err)
	}

	done, ok := w.registry.CompleteCheck(item.ID, item.Revision, result, errMsg)
	if !ok {
		// The claim was re-queued while this call was in flight.
		w.log.Debugw("discarding stale verification result",
			"claim_id", item.ID, "revision", item.Revision)
		return
	}
	w.emit(done)
}

func (w *Worker) emit(view model.ClaimView) {
	if w.publish != nil {
		w.publish(view)
	}
}
