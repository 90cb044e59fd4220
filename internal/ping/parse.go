package ping

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrParseAnomaly matches every AnomalyError
var ErrParseAnomaly = errors.New("unexpected probe output")

// AnomalyError describes output that does not follow the summary grammar
type AnomalyError struct {
	Line   string
	Reason string
}

func (e *AnomalyError) Error() string {
	return fmt.Sprintf("%s: %s in %q", ErrParseAnomaly, e.Reason, e.Line)
}

func (e *AnomalyError) Is(target error) bool { return target == ErrParseAnomaly }

// Summary holds the statistics extracted from ping output
type Summary struct {
	LossPercent float64
	HasLoss     bool
	AvgRTT      float64 // milliseconds
	HasRTT      bool
}

// Parse extracts the loss percentage and average RTT from ping output.
//
// Linux/Mac loss line: "3 packets transmitted, 2 received, 33% packet loss, time 2005ms"
// Linux RTT line:      "rtt min/avg/max/mdev = 44.130/45.289/46.853/1.121 ms"
// Mac RTT line:        "round-trip min/avg/max/stddev = 44.347/44.347/44.347/0.000 ms"
//
// Missing lines are reported through HasLoss and HasRTT; lines that are
// present but malformed yield an *AnomalyError.
func Parse(output string) (Summary, error) {
	var s Summary

	if line, ok := findLine(output, "transmitted"); ok {
		loss, err := parseLossLine(line)
		if err != nil {
			return Summary{}, err
		}
		s.LossPercent, s.HasLoss = loss, true
	}

	if line, ok := findLine(output, "min/avg/max"); ok {
		avg, err := parseRTTLine(line)
		if err != nil {
			return Summary{}, err
		}
		s.AvgRTT, s.HasRTT = avg, true
	}

	return s, nil
}

// findLine returns the first line containing marker
func findLine(output, marker string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, marker) {
			return strings.TrimRight(line, "\r"), true
		}
	}
	return "", false
}

func parseLossLine(line string) (float64, error) {
	loss, found := 0.0, false
	for _, part := range strings.Split(line, ", ") {
		if !strings.Contains(part, "loss") {
			continue
		}
		fields := strings.Fields(part)
		if len(fields) == 0 {
			return 0, &AnomalyError{Line: line, Reason: "empty loss segment"}
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], "%", ""), 64)
		if err != nil {
			return 0, &AnomalyError{Line: line, Reason: "non-numeric loss percentage"}
		}
		if math.IsNaN(v) || v < 0 || v > 100 {
			return 0, &AnomalyError{Line: line, Reason: "loss percentage out of range"}
		}
		loss, found = v, true
	}
	if !found {
		return 0, &AnomalyError{Line: line, Reason: "no loss segment"}
	}
	return loss, nil
}

func parseRTTLine(line string) (float64, error) {
	_, values, ok := strings.Cut(line, "=")
	if !ok {
		return 0, &AnomalyError{Line: line, Reason: "missing '='"}
	}
	fields := strings.Split(values, "/")
	if len(fields) < 2 {
		return 0, &AnomalyError{Line: line, Reason: "missing average field"}
	}
	avg, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, &AnomalyError{Line: line, Reason: "non-numeric average"}
	}
	if math.IsNaN(avg) || math.IsInf(avg, 0) || avg < 0 {
		return 0, &AnomalyError{Line: line, Reason: "average out of range"}
	}
	return avg, nil
}
