package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// DefaultCaptureTimeout bounds a single triggered capture.
const DefaultCaptureTimeout = 30 * time.Second

// OwnerCapturer captures today's snapshot for one owner.
type OwnerCapturer interface {
	CaptureForUser(ctx context.Context, ownerID string) (model.PortfolioSnapshot, error)
}

// SnapshotDispatcher runs snapshot captures requested by writes on a
// background worker. Trigger never blocks; repeated triggers for an owner that
// is still queued collapse into one capture.
type SnapshotDispatcher struct {
	capturer OwnerCapturer
	log      zerolog.Logger
	timeout  time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	order   []string
	wake    chan struct{}
	errs    chan error

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSnapshotDispatcher creates a dispatcher. A non-positive timeout uses DefaultCaptureTimeout.
func NewSnapshotDispatcher(capturer OwnerCapturer, log zerolog.Logger, timeout time.Duration) *SnapshotDispatcher {
	if timeout <= 0 {
		timeout = DefaultCaptureTimeout
	}
	return &SnapshotDispatcher{
		capturer: capturer,
		log:      log,
		timeout:  timeout,
		pending:  make(map[string]struct{}),
		wake:     make(chan struct{}, 1),
		errs:     make(chan error, 16),
	}
}

// Trigger implements SnapshotTrigger.
func (d *SnapshotDispatcher) Trigger(ownerID string) {
	d.mu.Lock()
	if _, queued := d.pending[ownerID]; !queued {
		d.pending[ownerID] = struct{}{}
		d.order = append(d.order, ownerID)
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Errors publishes capture failures. Failures are dropped while the channel is full.
func (d *SnapshotDispatcher) Errors() <-chan error {
	return d.errs
}

// Start launches the worker. It stops when ctx is cancelled or Stop is called.
func (d *SnapshotDispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})

	go func() {
		defer close(d.done)
		for {
			select {
			case <-ctx.Done():
				d.drain(context.WithoutCancel(ctx))
				return
			case <-d.wake:
				d.drain(ctx)
			}
		}
	}()
}

// Stop runs the captures still queued and waits for the worker to exit.
func (d *SnapshotDispatcher) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
}

func (d *SnapshotDispatcher) drain(ctx context.Context) {
	for {
		ownerID, ok := d.next()
		if !ok {
			return
		}
		d.run(ctx, ownerID)
	}
}

func (d *SnapshotDispatcher) next() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.order) == 0 {
		return "", false
	}
	ownerID := d.order[0]
	d.order = d.order[1:]
	delete(d.pending, ownerID)
	return ownerID, true
}

func (d *SnapshotDispatcher) run(ctx context.Context, ownerID string) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if _, err := d.capturer.CaptureForUser(ctx, ownerID); err != nil {
		d.log.Warn().Err(err).Str("owner", ownerID).Msg("triggered snapshot failed")
		select {
		case d.errs <- fmt.Errorf("snapshot for %s: %w", ownerID, err):
		default:
		}
		return
	}
	d.log.Debug().Str("owner", ownerID).Msg("triggered snapshot captured")
}
