package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// blockingCapturer counts captures per owner. While gate is open captures run
// immediately; otherwise they wait for a receive on gate.
type blockingCapturer struct {
	mu    sync.Mutex
	calls map[string]int
	gate  chan struct{}
	fail  map[string]error
	seen  chan string
}

func newBlockingCapturer() *blockingCapturer {
	return &blockingCapturer{
		calls: make(map[string]int),
		fail:  make(map[string]error),
		seen:  make(chan string, 64),
	}
}

func (c *blockingCapturer) CaptureForUser(ctx context.Context, ownerID string) (model.PortfolioSnapshot, error) {
	if c.gate != nil {
		select {
		case <-c.gate:
		case <-ctx.Done():
			return model.PortfolioSnapshot{}, ctx.Err()
		}
	}
	c.mu.Lock()
	c.calls[ownerID]++
	err := c.fail[ownerID]
	c.mu.Unlock()
	c.seen <- ownerID
	return model.PortfolioSnapshot{UserID: ownerID}, err
}

func (c *blockingCapturer) count(ownerID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[ownerID]
}

func waitFor(t *testing.T, seen <-chan string, want string) {
	t.Helper()
	for {
		select {
		case got := <-seen:
			if got == want {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for capture of %s", want)
		}
	}
}

func TestSnapshotDispatcher(t *testing.T) {
	t.Run("captures triggered owners", func(t *testing.T) {
		capturer := newBlockingCapturer()
		d := service.NewSnapshotDispatcher(capturer, zerolog.Nop(), time.Second)
		d.Start(context.Background())
		defer d.Stop()

		d.Trigger("owner-1")
		waitFor(t, capturer.seen, "owner-1")

		if capturer.count("owner-1") != 1 {
			t.Errorf("Expected one capture, got %d", capturer.count("owner-1"))
		}
	})

	t.Run("coalesces triggers for a queued owner", func(t *testing.T) {
		capturer := newBlockingCapturer()
		capturer.gate = make(chan struct{})
		d := service.NewSnapshotDispatcher(capturer, zerolog.Nop(), 5*time.Second)
		d.Start(context.Background())
		defer d.Stop()

		// The first capture of "busy" holds the worker while the rest queue up.
		d.Trigger("busy")
		time.Sleep(20 * time.Millisecond)
		for range 5 {
			d.Trigger("queued")
		}

		close(capturer.gate)
		waitFor(t, capturer.seen, "queued")

		if n := capturer.count("queued"); n != 1 {
			t.Errorf("Expected 1 coalesced capture, got %d", n)
		}
	})

	t.Run("publishes failures on the error channel", func(t *testing.T) {
		capturer := newBlockingCapturer()
		boom := errors.New("valuation failed")
		capturer.fail["owner-2"] = boom
		d := service.NewSnapshotDispatcher(capturer, zerolog.Nop(), time.Second)
		d.Start(context.Background())
		defer d.Stop()

		d.Trigger("owner-2")

		select {
		case err := <-d.Errors():
			if !errors.Is(err, boom) {
				t.Errorf("Expected wrapped failure, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for capture error")
		}
	})

	t.Run("logs each failure once", func(t *testing.T) {
		capturer := newBlockingCapturer()
		capturer.fail["owner-3"] = errors.New("valuation failed")
		var buf bytes.Buffer
		d := service.NewSnapshotDispatcher(capturer, zerolog.New(&buf), time.Second)
		d.Start(context.Background())
		defer d.Stop()

		d.Trigger("owner-3")

		select {
		case <-d.Errors():
		case <-time.After(2 * time.Second):
			t.Fatal("Timed out waiting for capture error")
		}
		if n := strings.Count(buf.String(), "triggered snapshot failed"); n != 1 {
			t.Errorf("Expected one failure log line, got %d: %s", n, buf.String())
		}
	})

	t.Run("bounds each capture by the configured timeout", func(t *testing.T) {
		capturer := newBlockingCapturer()
		capturer.gate = make(chan struct{})
		d := service.NewSnapshotDispatcher(capturer, zerolog.Nop(), 50*time.Millisecond)
		d.Start(context.Background())
		defer d.Stop()

		d.Trigger("slow")

		select {
		case err := <-d.Errors():
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Expected deadline exceeded, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Expected the capture to time out")
		}
	})

	t.Run("stop runs queued captures", func(t *testing.T) {
		capturer := newBlockingCapturer()
		d := service.NewSnapshotDispatcher(capturer, zerolog.Nop(), time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		d.Start(ctx)

		d.Trigger("late")
		cancel()
		d.Stop()

		if capturer.count("late") != 1 {
			t.Errorf("Expected queued capture to run before exit, got %d", capturer.count("late"))
		}
	})

	t.Run("trigger does not block without a worker", func(t *testing.T) {
		d := service.NewSnapshotDispatcher(newBlockingCapturer(), zerolog.Nop(), 0)

		done := make(chan struct{})
		go func() {
			for range 100 {
				d.Trigger("owner")
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Trigger blocked")
		}
		d.Stop()
	})
}
