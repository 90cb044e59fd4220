package models

import (
	"encoding/json"
	"math"
)

// Unreachable is the average RTT of a target with no valid latency sample
var Unreachable = math.Inf(1)

// Status tags how an outcome was produced
type Status string

const (
	StatusOK              Status = "ok"
	StatusNoReply         Status = "no-reply"
	StatusTimeout         Status = "timeout"
	StatusInvocationError Status = "invocation-error"
	StatusParseAnomaly    Status = "parse-anomaly"
)

// Outcome represents the measurement of a single target during one pass
type Outcome struct {
	Target      Target  `json:"target"`
	AvgRTT      float64 `json:"avg_rtt_ms"`   // milliseconds
	LossPercent float64 `json:"loss_percent"` // percentage
	Sent        int     `json:"probes_sent"`
	Lost        int     `json:"probes_lost"`
	Status      Status  `json:"status"`
	Detail      string  `json:"detail,omitempty"`
}

// UnreachableOutcome builds the outcome of a target that produced no usable latency
func UnreachableOutcome(target Target, sent int, status Status, detail string) Outcome {
	return Outcome{
		Target:      target,
		AvgRTT:      Unreachable,
		LossPercent: 100,
		Sent:        sent,
		Lost:        sent,
		Status:      status,
		Detail:      detail,
	}
}

// Reachable reports whether the outcome carries a real latency value
func (o Outcome) Reachable() bool {
	return !math.IsInf(o.AvgRTT, 1)
}

// MarshalJSON encodes an unreachable average as null
func (o Outcome) MarshalJSON() ([]byte, error) {
	type plain Outcome
	out := struct {
		plain
		AvgRTT *float64 `json:"avg_rtt_ms"`
	}{plain: plain(o)}
	if o.Reachable() {
		avg := o.AvgRTT
		out.AvgRTT = &avg
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the unreachable sentinel from a null average
func (o *Outcome) UnmarshalJSON(data []byte) error {
	type plain Outcome
	in := struct {
		*plain
		AvgRTT *float64 `json:"avg_rtt_ms"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	o.AvgRTT = Unreachable
	if in.AvgRTT != nil {
		o.AvgRTT = *in.AvgRTT
	}
	return nil
}

// ResultsTable holds one outcome per target, indexed by catalog ordinal
type ResultsTable []Outcome

// Lookup returns the outcome recorded for the named target
func (t ResultsTable) Lookup(name string) (Outcome, bool) {
	for _, o := range t {
		if o.Target.Name == name {
			return o, true
		}
	}
	return Outcome{}, false
}

// Responded returns the reachable outcomes, preserving table order
func (t ResultsTable) Responded() []Outcome {
	var out []Outcome
	for _, o := range t {
		if o.Reachable() {
			out = append(out, o)
		}
	}
	return out
}
