package journal

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const recordTimeout = 5 * time.Second

// Writer hands runs from the simulation goroutine to a Recorder on its own
// goroutine. Submit never blocks the caller.
type Writer struct {
	rec Recorder
	ch  chan Run
	log *zap.Logger
}

func NewWriter(rec Recorder, size int, log *zap.Logger) *Writer {
	if size <= 0 {
		size = 1
	}
	return &Writer{rec: rec, ch: make(chan Run, size), log: log}
}

// Submit queues r. It reports false and drops the run when the queue is full.
func (w *Writer) Submit(r Run) bool {
	select {
	case w.ch <- r:
		return true
	default:
		w.log.Warn("journal queue full, run dropped", zap.Stringer("run", r.ID))
		return false
	}
}

// Run records queued runs until ctx is cancelled, then drains whatever is
// still queued. Record failures are logged, never returned.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case r := <-w.ch:
			w.record(ctx, r)
		case <-ctx.Done():
			w.drain()
			return nil
		}
	}
}

func (w *Writer) drain() {
	for {
		select {
		case r := <-w.ch:
			w.record(context.Background(), r)
		default:
			return
		}
	}
}

func (w *Writer) record(ctx context.Context, r Run) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := w.rec.Record(rctx, r); err != nil {
		w.log.Error("record run", zap.Stringer("run", r.ID), zap.Error(err))
		return
	}
	w.log.Info("run recorded",
		zap.Stringer("run", r.ID),
		zap.Int("score", r.Score),
		zap.String("tier", r.Tier),
	)
}
