package monitor

import (
	"context"

	"github.com/apex/log"

	"geoping/internal/models"
	"geoping/internal/ping"
)

// probeTarget runs the probe facility against one target and evaluates its output
func (m *Monitor) probeTarget(ctx context.Context, target models.Target) models.Outcome {
	raw, err := m.prober.Probe(ctx, target.Address)
	outcome := ping.Evaluate(target, m.config.ProbeCount, raw, err)

	entry := log.WithFields(log.Fields{
		"target":  target.Name,
		"address": target.Address,
	})
	if outcome.Reachable() {
		entry.WithFields(log.Fields{
			"rtt_ms": outcome.AvgRTT,
			"loss":   outcome.LossPercent,
		}).Debug("target responded")
	} else {
		entry.WithFields(log.Fields{
			"status": outcome.Status,
			"detail": outcome.Detail,
		}).Warn("target unreachable")
	}

	m.notify(outcome)
	return outcome
}

// notify hands a completed outcome to the registered observers
func (m *Monitor) notify(outcome models.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, fn := range m.observers {
		fn(outcome)
	}
}
