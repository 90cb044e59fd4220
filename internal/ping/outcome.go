package ping

import (
	"errors"
	"math"

	"geoping/internal/models"
)

// Evaluate turns the raw result of one probe invocation into an outcome.
// Every failure mode resolves to an unreachable outcome; complete loss
// always wins over a spurious latency reading.
func Evaluate(target models.Target, count int, raw string, probeErr error) models.Outcome {
	if probeErr != nil {
		status := models.StatusInvocationError
		if errors.Is(probeErr, ErrTimeout) {
			status = models.StatusTimeout
		}
		return models.UnreachableOutcome(target, count, status, probeErr.Error())
	}

	summary, err := Parse(raw)
	if err != nil {
		return models.UnreachableOutcome(target, count, models.StatusParseAnomaly, err.Error())
	}

	var loss float64
	if summary.HasLoss {
		loss = summary.LossPercent
	}
	lost := LostFromPercent(count, loss)

	if !summary.HasRTT || lost == count {
		return models.UnreachableOutcome(target, count, models.StatusNoReply, "no reply")
	}

	return models.Outcome{
		Target:      target,
		AvgRTT:      summary.AvgRTT,
		LossPercent: loss,
		Sent:        count,
		Lost:        lost,
		Status:      models.StatusOK,
	}
}

// LostFromPercent derives the lost packet count from a reported loss
// percentage: count - round(count × (1 - loss/100)), clamped to [0, count].
func LostFromPercent(count int, lossPercent float64) int {
	received := int(math.Round(float64(count) * (1 - lossPercent/100)))
	lost := count - received
	if lost < 0 {
		return 0
	}
	if lost > count {
		return count
	}
	return lost
}
