package mark

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/markbuf/markbuf/buffer"
)

// Reaper defaults.
const (
	DefaultQueueSize      = 256
	DefaultAcquireTimeout = 5 * time.Second
)

// Reaper destroys marks outside the scope of whichever caller released
// the last reference. Requests are queued to a worker goroutine that
// acquires the buffer's write lock itself, so a Mark released while its
// buffer is locked elsewhere never blocks.
//
// The reaper is best effort: a full queue or a shutdown drops requests,
// and destruction failures are logged. The host reclaims whatever is left
// when the buffer itself goes away.
type Reaper struct {
	ch      chan request
	done    chan struct{}
	wg      sync.WaitGroup
	closing sync.Once
	log     *slog.Logger
	timeout time.Duration
}

type request struct {
	h  buffer.Handle
	id ID
}

// ReaperOption configures a Reaper.
type ReaperOption func(*Reaper)

// WithQueueSize sets the pending-destruction queue capacity.
func WithQueueSize(n int) ReaperOption {
	return func(r *Reaper) {
		if n > 0 {
			r.ch = make(chan request, n)
		}
	}
}

// WithLogger sets the logger for destruction failures.
func WithLogger(log *slog.Logger) ReaperOption {
	return func(r *Reaper) {
		if log != nil {
			r.log = log
		}
	}
}

// WithAcquireTimeout bounds how long the worker waits for a buffer's
// write lock before giving up on a destruction.
func WithAcquireTimeout(d time.Duration) ReaperOption {
	return func(r *Reaper) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewReaper creates a reaper and starts its worker.
func NewReaper(opts ...ReaperOption) *Reaper {
	r := &Reaper{
		ch:      make(chan request, DefaultQueueSize),
		done:    make(chan struct{}),
		log:     slog.Default(),
		timeout: DefaultAcquireTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.wg.Add(1)
	go r.run()

	return r
}

// Enqueue schedules destruction of the mark id in the buffer h. It never
// blocks: if the queue is full or the reaper is shut down the request is
// dropped and logged.
func (r *Reaper) Enqueue(h buffer.Handle, id ID) {
	select {
	case <-r.done:
		r.log.Debug("mark reaper closed, dropping destruction", "mark", string(id))
	case r.ch <- request{h: h, id: id}:
	default:
		r.log.Warn("mark reaper queue full, dropping destruction", "mark", string(id))
	}
}

// Close stops the worker. Requests still queued are dropped.
func (r *Reaper) Close() {
	r.closing.Do(func() {
		close(r.done)
	})
	r.wg.Wait()
}

func (r *Reaper) run() {
	defer r.wg.Done()

	for {
		select {
		case <-r.done:
			return
		case req := <-r.ch:
			r.destroy(req)
		}
	}
}

func (r *Reaper) destroy(req request) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	l, err := req.h.Write(ctx)
	if err != nil {
		r.log.Warn("failed to lock buffer for mark destruction",
			"mark", string(req.id), "error", err)
		return
	}
	defer l.Release()

	w, err := AsWriter(l)
	if err != nil {
		r.log.Warn("buffer lost mark capability", "mark", string(req.id), "error", err)
		return
	}

	if err := w.DestroyMark(req.id); err != nil {
		r.log.Warn("failed to destroy mark", "mark", string(req.id), "error", err)
	}
}

var (
	defaultReaper     *Reaper
	defaultReaperOnce sync.Once
)

// DefaultReaper returns the process-wide reaper, starting it on first
// use. Marks created without WithReaper use it.
func DefaultReaper() *Reaper {
	defaultReaperOnce.Do(func() {
		defaultReaper = NewReaper()
	})
	return defaultReaper
}
