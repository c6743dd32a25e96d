package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Worker recomputes an output snapshot whenever its input changes. Inputs
// are edited with Update from any goroutine. While Run is active the
// computation happens on the Run goroutine, coalescing bursts of updates into
// a single recompute; otherwise Update computes synchronously.
type Worker[In any, Out any] struct {
	compute    func(In) *Out
	box        Box[Out]
	limiter    *rate.Limiter
	invalidate func()
	logger     *slog.Logger

	mu    sync.Mutex
	input In
	dirty bool

	wake    chan struct{}
	running atomic.Bool
}

// Option configures a Worker.
type Option func(*options)

type options struct {
	limiter    *rate.Limiter
	invalidate func()
	logger     *slog.Logger
}

// WithLimit caps how often Run recomputes. A zero limit leaves Run
// unthrottled.
func WithLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		if limit > 0 {
			o.limiter = rate.NewLimiter(limit, max(burst, 1))
		}
	}
}

// WithInvalidate registers a function invoked after each publication, such
// as a window's Invalidate.
func WithInvalidate(f func()) Option {
	return func(o *options) {
		o.invalidate = f
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewWorker returns a worker whose first snapshot is compute(initial).
func NewWorker[In any, Out any](initial In, compute func(In) *Out, opts ...Option) *Worker[In, Out] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	w := &Worker[In, Out]{
		compute:    compute,
		limiter:    o.limiter,
		invalidate: o.invalidate,
		logger:     o.logger,
		input:      initial,
		wake:       make(chan struct{}, 1),
	}
	w.box.Store(compute(initial))
	return w
}

// Load returns the latest snapshot. It never returns nil.
func (w *Worker[In, Out]) Load() *Out {
	return w.box.Load()
}

// Generation counts published snapshots.
func (w *Worker[In, Out]) Generation() uint64 {
	return w.box.Generation()
}

// Running reports whether Run is active.
func (w *Worker[In, Out]) Running() bool {
	return w.running.Load()
}

// Update applies mutate to the pending input. The mutation must replace
// reference-typed fields rather than editing what they point to, because the
// previous input may still be in use by a computation.
func (w *Worker[In, Out]) Update(mutate func(*In)) {
	w.mu.Lock()
	mutate(&w.input)
	w.dirty = true
	w.mu.Unlock()
	if !w.running.Load() {
		w.Flush()
		return
	}
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Input returns a copy of the pending input.
func (w *Worker[In, Out]) Input() In {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Flush computes and publishes a snapshot from the current input on the
// calling goroutine.
func (w *Worker[In, Out]) Flush() {
	w.mu.Lock()
	in := w.input
	w.dirty = false
	w.mu.Unlock()
	w.publish(in)
}

func (w *Worker[In, Out]) publish(in In) {
	w.box.Store(w.compute(in))
	if w.invalidate != nil {
		w.invalidate()
	}
}

// Run recomputes snapshots until ctx is done, returning ctx's error. At most
// one Run may be active at a time.
func (w *Worker[In, Out]) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		panic("snapshot: Worker.Run called concurrently")
	}
	defer w.running.Store(false)
	// Pick up anything queued between construction and now.
	select {
	case w.wake <- struct{}{}:
	default:
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.wake:
		}
		if w.limiter != nil {
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		w.mu.Lock()
		if !w.dirty {
			w.mu.Unlock()
			continue
		}
		in := w.input
		w.dirty = false
		w.mu.Unlock()
		w.publish(in)
		w.logger.Debug("snapshot: published", "generation", w.box.Generation())
	}
}
