package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/issuetracker/issues-service/internal/core/ports"
)

type countingKeepAlive struct {
	calls   atomic.Int32
	trigger atomic.Value
	err     error
}

func (c *countingKeepAlive) KeepAlive(_ context.Context, trigger string) error {
	c.calls.Add(1)
	c.trigger.Store(trigger)
	return c.err
}

func TestNewKeepAlive_InvalidSchedule(t *testing.T) {
	if _, err := NewKeepAlive("not a schedule", time.Second, &countingKeepAlive{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestKeepAlive_RunsOnSchedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := &countingKeepAlive{}
	k, err := NewKeepAlive("@every 1s", time.Second, svc, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewKeepAlive: %v", err)
	}
	k.Start()

	deadline := time.Now().Add(3 * time.Second)
	for svc.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	k.Stop(ctx)

	if svc.calls.Load() == 0 {
		t.Fatal("expected keep-alive to run at least once")
	}
	if got := svc.trigger.Load(); got != ports.TriggerCron {
		t.Errorf("expected trigger %q, got %v", ports.TriggerCron, got)
	}
}

func TestKeepAlive_RunLogsFailure(t *testing.T) {
	svc := &countingKeepAlive{err: errors.New("db asleep")}
	k, err := NewKeepAlive("@daily", time.Second, svc, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewKeepAlive: %v", err)
	}

	k.run()

	if svc.calls.Load() != 1 {
		t.Fatalf("expected one call, got %d", svc.calls.Load())
	}
}
