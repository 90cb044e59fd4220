package ping

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"geoping/internal/models"
)

var testTarget = models.Target{Name: "Cloudflare_EU", Address: "1.1.1.1", Location: "Frankfurt"}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
		want models.Outcome
	}{
		{
			name: "all replies",
			raw: "3 packets transmitted, 3 received, 0% packet loss, time 100ms\n" +
				"rtt min/avg/max/mdev = 10.0/12.5/15.0/1.0 ms\n",
			want: models.Outcome{
				Target: testTarget, AvgRTT: 12.5, LossPercent: 0, Sent: 3, Lost: 0, Status: models.StatusOK,
			},
		},
		{
			name: "complete loss without RTT line",
			raw:  "3 packets transmitted, 0 received, 100% packet loss, time 3000ms\n",
			want: models.UnreachableOutcome(testTarget, 3, models.StatusNoReply, ""),
		},
		{
			name: "timeout",
			err:  ErrTimeout,
			want: models.UnreachableOutcome(testTarget, 3, models.StatusTimeout, ""),
		},
		{
			name: "invocation error",
			err:  &InvocationError{Command: "ping", Err: errors.New("exit status 2")},
			want: models.UnreachableOutcome(testTarget, 3, models.StatusInvocationError, ""),
		},
		{
			name: "malformed RTT",
			raw:  "rtt min/avg/max/mdev = x/y/z ms",
			want: models.UnreachableOutcome(testTarget, 3, models.StatusParseAnomaly, ""),
		},
		{
			name: "RTT reported despite complete loss",
			raw: "3 packets transmitted, 0 received, 100% packet loss\n" +
				"rtt min/avg/max/mdev = 1.0/2.0/3.0/0.5 ms\n",
			want: models.UnreachableOutcome(testTarget, 3, models.StatusNoReply, ""),
		},
		{
			name: "missing loss line counts as no loss",
			raw:  "rtt min/avg/max/mdev = 1.0/2.0/3.0/0.5 ms\n",
			want: models.Outcome{
				Target: testTarget, AvgRTT: 2.0, LossPercent: 0, Sent: 3, Lost: 0, Status: models.StatusOK,
			},
		},
		{
			name: "partial loss",
			raw: "3 packets transmitted, 2 received, 33% packet loss, time 2005ms\n" +
				"rtt min/avg/max/mdev = 44.130/45.289/46.853/1.121 ms\n",
			want: models.Outcome{
				Target: testTarget, AvgRTT: 45.289, LossPercent: 33, Sent: 3, Lost: 1, Status: models.StatusOK,
			},
		},
		{
			name: "no output at all",
			raw:  "",
			want: models.UnreachableOutcome(testTarget, 3, models.StatusNoReply, ""),
		},
	}

	ignoreDetail := cmpopts.IgnoreFields(models.Outcome{}, "Detail")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(testTarget, 3, tt.raw, tt.err)
			if diff := cmp.Diff(tt.want, got, ignoreDetail); diff != "" {
				t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Every outcome carries the configured probe count, and unreachable
// outcomes always report full loss.
func TestEvaluateInvariants(t *testing.T) {
	inputs := []string{
		"",
		"garbage",
		"3 packets transmitted",
		"5 packets transmitted, 4 received, 20% packet loss",
		"5 packets transmitted, 4 received, 20% packet loss\nrtt min/avg/max/mdev = 1/2/3/4 ms",
		"5 packets transmitted, 0 received, 100% packet loss\nrtt min/avg/max/mdev = 1/2/3/4 ms",
		"rtt min/avg/max/mdev = 1/2",
		"rtt min/avg/max/mdev = ",
		"x, 12% loss\nrtt min/avg/max/mdev = 9/9/9/0 ms",
	}
	errs := []error{nil, ErrTimeout, &InvocationError{Command: "ping", Err: errors.New("boom")}}

	for _, count := range []int{1, 3, 5, 10} {
		for _, raw := range inputs {
			for _, probeErr := range errs {
				name := fmt.Sprintf("count=%d/%q/%v", count, raw, probeErr)
				got := Evaluate(testTarget, count, raw, probeErr)
				if got.Sent != count {
					t.Errorf("%s: Sent = %d, want %d", name, got.Sent, count)
				}
				if got.Lost < 0 || got.Lost > got.Sent {
					t.Errorf("%s: Lost = %d out of range", name, got.Lost)
				}
				if !got.Reachable() && (got.LossPercent != 100 || got.Lost != got.Sent) {
					t.Errorf("%s: unreachable outcome %+v without full loss", name, got)
				}
				if got.Reachable() && got.Status != models.StatusOK {
					t.Errorf("%s: reachable outcome with status %s", name, got.Status)
				}
			}
		}
	}
}

func TestLostFromPercent(t *testing.T) {
	tests := []struct {
		count int
		loss  float64
		want  int
	}{
		{3, 0, 0},
		{3, 33, 1},
		{3, 66, 2},
		{3, 66.6667, 2},
		{3, 100, 3},
		{4, 25, 1},
		{4, 50, 2},
		{10, 4, 0},
		{10, 12, 1},
		{1, 100, 1},
	}

	for _, tt := range tests {
		if got := LostFromPercent(tt.count, tt.loss); got != tt.want {
			t.Errorf("LostFromPercent(%d, %v) = %d, want %d", tt.count, tt.loss, got, tt.want)
		}
	}
}
