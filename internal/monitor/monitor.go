package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"geoping/internal/config"
	"geoping/internal/models"
)

// Monitor coordinates a probing pass over the target catalog
type Monitor struct {
	config config.Config
	prober models.Prober

	mu        sync.Mutex
	observers []func(models.Outcome)
}

// New creates a new Monitor
func New(cfg config.Config, prober models.Prober) *Monitor {
	return &Monitor{
		config: cfg,
		prober: prober,
	}
}

// OnResult registers fn to be called as each target completes. Calls are
// serialized but arrive in completion order, not catalog order.
func (m *Monitor) OnResult(fn func(models.Outcome)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Run probes every target and returns the completed run. Individual target
// failures are recorded as unreachable outcomes; only cancellation of ctx
// aborts the pass, in which case no run is returned.
func (m *Monitor) Run(ctx context.Context) (*models.Run, error) {
	targets := m.config.Targets
	log.WithFields(log.Fields{
		"targets":     len(targets),
		"probes":      m.config.ProbeCount,
		"concurrency": m.config.Concurrency,
	}).Info("starting probing pass")

	run := &models.Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		ProbeCount: m.config.ProbeCount,
		Results:    make(models.ResultsTable, len(targets)),
	}

	var g errgroup.Group
	g.SetLimit(m.config.Concurrency)
	for i, target := range targets {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// each worker owns exactly one slot
			run.Results[i] = m.probeTarget(ctx, target)
			return nil
		})
	}
	_ = g.Wait()
	run.Duration = time.Since(run.StartedAt)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "probing pass aborted")
	}

	log.WithFields(log.Fields{
		"run":       run.ID,
		"responded": len(run.Results.Responded()),
		"duration":  run.Duration.Round(time.Millisecond),
	}).Info("probing pass complete")

	return run, nil
}
