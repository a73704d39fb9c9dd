package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

type stubCapturer struct {
	calls atomic.Int32
	err   error
	ctxOK atomic.Bool
}

func (c *stubCapturer) CaptureSnapshots(ctx context.Context) (model.CaptureReport, error) {
	c.calls.Add(1)
	_, hasDeadline := ctx.Deadline()
	c.ctxOK.Store(hasDeadline)
	return model.CaptureReport{Date: "2024-01-02", Captured: 3}, c.err
}

func TestNew(t *testing.T) {
	t.Run("rejects malformed spec", func(t *testing.T) {
		if _, err := New("every day", &stubCapturer{}, 0, zerolog.Nop()); err == nil {
			t.Error("Expected error for malformed cron spec")
		}
	})

	t.Run("computes next midnight", func(t *testing.T) {
		s, err := New("0 0 * * *", &stubCapturer{}, 0, zerolog.Nop())
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}

		next := s.Next()
		if next.Hour() != 0 || next.Minute() != 0 {
			t.Errorf("Expected next run at midnight, got %s", next)
		}
		if !next.After(time.Now()) {
			t.Errorf("Expected next run in the future, got %s", next)
		}
	})
}

func TestScheduler_Run(t *testing.T) {
	t.Run("applies timeout and logs report", func(t *testing.T) {
		var buf bytes.Buffer
		capturer := &stubCapturer{}
		s, err := New("0 0 * * *", capturer, time.Minute, zerolog.New(&buf))
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}

		s.Run(context.Background())

		if capturer.calls.Load() != 1 {
			t.Errorf("Expected 1 capture, got %d", capturer.calls.Load())
		}
		if !capturer.ctxOK.Load() {
			t.Error("Expected capture context to carry a deadline")
		}
		if !strings.Contains(buf.String(), `"captured":3`) {
			t.Errorf("Expected report in log output, got %s", buf.String())
		}
	})

	t.Run("logs capture error", func(t *testing.T) {
		var buf bytes.Buffer
		capturer := &stubCapturer{err: errors.New("boom")}
		s, err := New("0 0 * * *", capturer, 0, zerolog.New(&buf))
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}

		s.Run(context.Background())

		if !strings.Contains(buf.String(), "boom") {
			t.Errorf("Expected error in log output, got %s", buf.String())
		}
	})
}

func TestScheduler_StartStop(t *testing.T) {
	capturer := &stubCapturer{}
	s, err := New("@every 10ms", capturer, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}

	s.Start()

	// cron rounds sub-second intervals up to one second.
	deadline := time.Now().Add(3 * time.Second)
	for capturer.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop() returned unexpected error: %v", err)
	}

	if capturer.calls.Load() == 0 {
		t.Error("Expected at least one scheduled capture")
	}
}
