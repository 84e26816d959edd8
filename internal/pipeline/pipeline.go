// Package pipeline wires the streaming claim components together: the
// transcript window, the extraction debouncer, the claim registry, and
// the verification queue. One Pipeline exists per session and owns all
// of its state; nothing here is global.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hearsay-live/hearsay/internal/extract"
	"github.com/hearsay-live/hearsay/internal/model"
	"github.com/hearsay-live/hearsay/internal/registry"
	"github.com/hearsay-live/hearsay/internal/schedule"
	"github.com/hearsay-live/hearsay/internal/transcript"
	"github.com/hearsay-live/hearsay/internal/verify"
)

// Pipeline is the session orchestrator. Transcript fragments go in,
// claim-state updates come out.
type Pipeline struct {
	cfg *model.Config
	log *zap.SugaredLogger
	now func() time.Time

	window    *transcript.Window
	registry  *registry.Registry
	queue     *verify.Queue
	worker    *verify.Worker
	debouncer *schedule.Debouncer
	extractor extract.Extractor

	updates chan model.ClaimView

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeMu   sync.Mutex // serializes wg.Add in onFlush against Close
	closed    atomic.Bool
	closeOnce sync.Once
}

// New creates a pipeline for one session.
func New(cfg *model.Config, extractor extract.Extractor, checker verify.Checker, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	p := &Pipeline{
		cfg:       cfg,
		log:       log,
		now:       time.Now,
		window:    transcript.NewWindow(cfg.Pipeline.ContextWindow),
		registry:  registry.New(cfg.Pipeline),
		queue:     verify.NewQueue(),
		extractor: extractor,
		updates:   make(chan model.ClaimView, 64),
	}
	p.worker = verify.NewWorker(p.queue, p.registry, checker, cfg.LLM.Timeout, log, p.emit)
	p.debouncer = schedule.NewDebouncer(schedule.DelaysFromConfig(cfg.Pipeline), p.onFlush)
	p.ctx, p.cancel = context.WithCancel(context.Background())
	return p
}

// Start launches the verification worker. The pipeline runs until Close.
func (p *Pipeline) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.worker.Run(p.ctx)
	}()
}

// Ingest feeds one transcript event into the pipeline. Interim
// (non-final) fragments are display-only and never reach the claim
// pipeline.
func (p *Pipeline) Ingest(text string, isFinal bool) {
	if p.closed.Load() || !isFinal {
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	p.window.Append(text, p.now())
	p.debouncer.Add(text)
}

// SubmitClaim queues a manually entered claim. It goes through the same
// matching policy as extracted claims, so racing the extractor for the
// same logical claim is safe.
func (p *Pipeline) SubmitClaim(text string, urgent, force bool) bool {
	if p.closed.Load() {
		return false
	}
	return p.queueCheck(text, registry.CheckOptions{
		Context:    p.window.Recent(p.now()),
		Urgent:     urgent,
		ForceCheck: force,
	})
}

// Updates returns the claim-state change stream. Slow consumers may miss
// intermediate updates; Snapshot always has the current truth.
func (p *Pipeline) Updates() <-chan model.ClaimView {
	return p.updates
}

// Snapshot returns the published claim list, most recently updated first.
func (p *Pipeline) Snapshot() []model.ClaimView {
	return p.registry.Snapshot()
}

// Flush forces any debounced text through extraction immediately.
func (p *Pipeline) Flush() {
	p.debouncer.Flush()
}

// Close stops the debouncer and the worker and waits for in-flight work.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		p.closeMu.Lock()
		p.closed.Store(true)
		p.closeMu.Unlock()
		p.debouncer.Stop()
		p.cancel()
		p.wg.Wait()
	})
}

// onFlush receives a debounced batch and runs one extraction round.
// Extraction happens off the caller's goroutine; the debounce timer must
// not block on a network call.
func (p *Pipeline) onFlush(f schedule.Flush) {
	// The closed check and wg.Add must be atomic with respect to Close,
	// or a timer firing during shutdown could Add while Close is in Wait.
	p.closeMu.Lock()
	if p.closed.Load() {
		p.closeMu.Unlock()
		return
	}
	p.wg.Add(1)
	p.closeMu.Unlock()

	go func() {
		defer p.wg.Done()
		p.runExtraction(f)
	}()
}

func (p *Pipeline) runExtraction(f schedule.Flush) {
	recent := p.window.Recent(p.now())
	req := extract.Request{
		NewText:       f.Text,
		RecentContext: recent,
		CheckedClaims: p.registry.TrackedClaims(),
	}

	timeout := p.cfg.LLM.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	resp, err := p.extractor.Extract(ctx, req)
	if err != nil {
		// Transient extraction failure: this round yields no candidates,
		// the transcript stream is unaffected.
		p.log.Warnw("extraction failed", "error", err)
		resp = &extract.Response{}
	}
	if resp == nil {
		resp = &extract.Response{}
	}

	// An explicit verify request forces the check, and forced checks are
	// always urgent: the speaker is waiting on the answer.
	force := f.HasExplicitVerify
	candidates := 0
	for _, c := range resp.Claims {
		if !p.wellFormed(c) {
			continue
		}
		candidates++
		p.queueCheck(c, registry.CheckOptions{
			Context:    recent,
			Urgent:     f.HasDispute || force,
			ForceCheck: force,
		})
	}
	for _, c := range resp.ForcedClaims {
		if !p.wellFormed(c) {
			continue
		}
		candidates++
		p.queueCheck(c, registry.CheckOptions{
			Context:    recent,
			Urgent:     true,
			ForceCheck: true,
		})
	}

	// Dispute or verify request with nothing extractable: the speaker
	// means the claim we were just talking about.
	if candidates == 0 && (f.HasDispute || f.HasExplicitVerify) {
		if text, ok := p.registry.MostRecent(); ok {
			p.queueCheck(text, registry.CheckOptions{
				Context:    recent,
				Urgent:     true,
				ForceCheck: true,
			})
		}
	}
}

// queueCheck registers a claim and enqueues its verification work item,
// publishing the state change. Returns false when the registry suppressed
// the request.
func (p *Pipeline) queueCheck(text string, opts registry.CheckOptions) bool {
	dec, ok := p.registry.QueueClaimCheck(text, opts)
	if !ok || dec.Item == nil {
		return false
	}
	p.queue.Push(dec.Item)
	p.emit(dec.View)
	return true
}

func (p *Pipeline) wellFormed(candidate string) bool {
	return len(strings.TrimSpace(candidate)) >= p.cfg.Pipeline.MinClaimLength
}

// emit publishes a claim-state change without ever blocking the pipeline.
func (p *Pipeline) emit(view model.ClaimView) {
	select {
	case p.updates <- view:
	default:
		p.log.Debugw("dropping update for slow consumer", "claim_id", view.ID)
	}
}
