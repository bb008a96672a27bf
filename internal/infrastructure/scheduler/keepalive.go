// Package scheduler runs the keep-alive read on a cron schedule inside the
// server process.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/issuetracker/issues-service/internal/core/ports"
)

const defaultJobTimeout = 30 * time.Second

// KeepAlive triggers ports.KeepAliveService on a schedule such as "@daily".
type KeepAlive struct {
	svc     ports.KeepAliveService
	log     zerolog.Logger
	timeout time.Duration
	c       *cron.Cron
}

// NewKeepAlive registers the job. The schedule accepts standard five-field
// expressions and descriptors like "@daily" or "@every 1h".
func NewKeepAlive(schedule string, timeout time.Duration, svc ports.KeepAliveService, log zerolog.Logger) (*KeepAlive, error) {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	k := &KeepAlive{
		svc:     svc,
		log:     log,
		timeout: timeout,
		c:       cron.New(cron.WithLocation(time.UTC)),
	}
	if _, err := k.c.AddFunc(schedule, k.run); err != nil {
		return nil, fmt.Errorf("scheduler: invalid keep-alive schedule %q: %w", schedule, err)
	}
	return k, nil
}

func (k *KeepAlive) Start() { k.c.Start() }

// Stop halts the scheduler and waits for a running job to finish or ctx to end.
func (k *KeepAlive) Stop(ctx context.Context) {
	done := k.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		k.log.Warn().Msg("scheduler: keep-alive job still running at shutdown")
	}
}

func (k *KeepAlive) run() {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	if err := k.svc.KeepAlive(ctx, ports.TriggerCron); err != nil {
		k.log.Error().Err(err).Msg("scheduler: keep-alive failed")
		return
	}
	k.log.Info().Msg("scheduler: keep-alive ok")
}
