// Package classify infers a locality conclusion from a completed results
// table. The closest responding target is the one with the lowest average
// RTT; ties go to the target that appears first in the catalog.
package classify

import (
	"sort"

	"geoping/internal/models"
)

// Band is one confidence tier and the strict upper bounds that admit it
type Band struct {
	Tier    models.Tier
	MaxRTT  float64 // milliseconds, exclusive
	MaxLoss float64 // percentage, exclusive
}

// Bands are evaluated top-down; the first matching band wins
var Bands = []Band{
	{Tier: models.TierSameRegion, MaxRTT: 50, MaxLoss: 5},
	{Tier: models.TierSameContinent, MaxRTT: 150, MaxLoss: 10},
	{Tier: models.TierCrossContinent, MaxRTT: 300, MaxLoss: 15},
}

// Classify selects the closest responding target and assigns its tier.
// When nothing responded the verdict is TierUndetermined with no closest
// target.
func Classify(results models.ResultsTable) models.Verdict {
	closest, ok := Closest(results)
	if !ok {
		return models.Verdict{Tier: models.TierUndetermined}
	}
	return models.Verdict{
		Tier:    TierFor(closest.AvgRTT, closest.LossPercent),
		Closest: &closest,
	}
}

// Closest returns the responding outcome with the lowest average RTT.
// Candidates are visited in catalog order, so the first minimum wins
// regardless of the order of results.
func Closest(results models.ResultsTable) (models.Outcome, bool) {
	responded := results.Responded()
	if len(responded) == 0 {
		return models.Outcome{}, false
	}
	sort.SliceStable(responded, func(i, j int) bool {
		return responded[i].Target.Ordinal < responded[j].Target.Ordinal
	})

	best := responded[0]
	for _, o := range responded[1:] {
		if o.AvgRTT < best.AvgRTT {
			best = o
		}
	}
	return best, true
}

// TierFor maps an average RTT and loss percentage to a confidence tier.
// It is total: anything outside every band is TierBestGuess.
func TierFor(avgRTT, lossPercent float64) models.Tier {
	for _, b := range Bands {
		if avgRTT < b.MaxRTT && lossPercent < b.MaxLoss {
			return b.Tier
		}
	}
	return models.TierBestGuess
}
