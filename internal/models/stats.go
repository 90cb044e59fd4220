package models

import "time"

// Tier is the confidence band of a locality conclusion
type Tier string

const (
	TierUndetermined   Tier = "undetermined"
	TierSameRegion     Tier = "same-region"
	TierSameContinent  Tier = "same-continent"
	TierCrossContinent Tier = "cross-continent"
	TierBestGuess      Tier = "best-guess"
)

// Verdict is the classification derived from a results table
type Verdict struct {
	Tier    Tier     `json:"tier"`
	Closest *Outcome `json:"closest,omitempty"`
}

// Determined reports whether at least one target responded
func (v Verdict) Determined() bool {
	return v.Tier != TierUndetermined && v.Closest != nil
}

// RunSummary is a recorded run as listed in the history
type RunSummary struct {
	ID              string        `json:"id"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration_ns"`
	ProbeCount      int           `json:"probe_count"`
	Tier            Tier          `json:"tier"`
	ClosestTarget   string        `json:"closest_target,omitempty"`
	ClosestLocation string        `json:"closest_location,omitempty"`
	ClosestRTT      float64       `json:"closest_rtt_ms,omitempty"`
	ClosestLoss     float64       `json:"closest_loss_percent,omitempty"`
}

// TargetStats represents aggregated history for a target
type TargetStats struct {
	Target         string  `json:"target"`
	Runs           int     `json:"runs"`
	ReachableRuns  int     `json:"reachable_runs"`
	AvgRTT         float64 `json:"avg_rtt_ms"`
	MinRTT         float64 `json:"min_rtt_ms"`
	AvgLossPercent float64 `json:"avg_loss_percent"`
}
