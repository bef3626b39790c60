package tasks

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const defaultInterval = 30 * time.Second

// Status describes the recent health of a [Repeater].
type Status struct {
	Runs                int
	ConsecutiveFailures int
	LastError           string
	LastRun             time.Time
}

// Repeater runs a function now and then on every interval.
type Repeater struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   *log.Logger

	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// NewRepeater creates a stopped [Repeater]. A non-positive interval defaults to 30s.
func NewRepeater(name string, interval time.Duration, fn func(ctx context.Context) error, logger *log.Logger) *Repeater {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Repeater{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start begins the loop until ctx is cancelled or Stop is called. Calling it twice is a no-op.
func (r *Repeater) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	ticker := time.NewTicker(r.interval)

	go func() {
		defer close(r.exited)
		defer ticker.Stop()

		r.logger.Debug("repeater started", "name", r.name, "interval", r.interval)
		r.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.logger.Debug("repeater stopped", "name", r.name, "reason", ctx.Err())
				return
			case <-r.done:
				r.logger.Debug("repeater stopped", "name", r.name)
				return
			case <-ticker.C:
				select {
				case <-r.done:
					return
				default:
				}
				r.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit. A run in progress completes first.
func (r *Repeater) Stop() {
	r.stopOnce.Do(func() { close(r.done) })

	r.startMu.Lock()
	started := r.started
	r.startMu.Unlock()
	if started {
		<-r.exited
	}
}

// Status returns a snapshot of the repeater's health.
func (r *Repeater) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func (r *Repeater) runOnce(ctx context.Context) {
	err := r.fn(ctx)

	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.Runs++
	r.status.LastRun = time.Now()
	if err != nil {
		r.status.ConsecutiveFailures++
		r.status.LastError = err.Error()
		r.logger.Warn("repeater run failed", "name", r.name, "error", err, "failures", r.status.ConsecutiveFailures)
		return
	}
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
}
