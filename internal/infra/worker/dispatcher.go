package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"legal-document-insight/internal/usecase"
)

// Compile-time check
var _ usecase.Dispatcher = (*Dispatcher)(nil)

// Dispatcher decouples processing from the upload request/response cycle.
// Submit schedules a pipeline run on the pool and returns immediately;
// pipeline failures are contained to the failed-status transition inside the
// processing use case and never surface to the submitter.
type Dispatcher struct {
	pool *Pool
	proc usecase.ProcessingUseCase
	log  *zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewDispatcher(pool *Pool, proc usecase.ProcessingUseCase, logger *zerolog.Logger) *Dispatcher {
	l := logger.With().Str("component", "dispatcher").Logger()
	return &Dispatcher{
		pool:     pool,
		proc:     proc,
		log:      &l,
		inflight: make(map[string]struct{}),
	}
}

func (d *Dispatcher) Submit(documentID string) {
	if documentID == "" {
		return
	}

	// At most one active run per identifier at submit time. Each upload mints
	// a fresh identifier, so a duplicate here is a repeated submit of the
	// same document.
	d.mu.Lock()
	if _, running := d.inflight[documentID]; running {
		d.mu.Unlock()
		d.log.Warn().Str("document_id", documentID).Msg("duplicate submit ignored; run already active")
		return
	}
	d.inflight[documentID] = struct{}{}
	d.mu.Unlock()

	task := func(ctx context.Context) error {
		d.run(ctx, documentID)
		return nil
	}

	if err := d.pool.Submit(task); err != nil {
		// Saturated pool: run on a dedicated goroutine rather than dropping
		// the document. Dispatch stays in-process either way.
		d.log.Warn().Err(err).Str("document_id", documentID).Msg("pool saturated, spawning dedicated worker")
		go func() { _ = task(context.Background()) }()
	}
}

func (d *Dispatcher) run(ctx context.Context, documentID string) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("document_id", documentID).Interface("panic", r).Msg("recovered panic in processing run")
		}
		d.mu.Lock()
		delete(d.inflight, documentID)
		d.mu.Unlock()
	}()

	// The use case converts pipeline failures into the failed status itself;
	// the returned error is already logged there.
	_ = d.proc.Process(ctx, documentID)
}

// Active reports whether a run for the identifier is currently in flight.
func (d *Dispatcher) Active(documentID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.inflight[documentID]
	return ok
}
