package ping

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"geoping/internal/config"
)

func TestRunnerArgs(t *testing.T) {
	tests := []struct {
		goos    string
		timeout time.Duration
		want    []string
	}{
		{"linux", 2 * time.Second, []string{"-c", "3", "-W", "2", "8.8.8.8"}},
		{"linux", 1500 * time.Millisecond, []string{"-c", "3", "-W", "2", "8.8.8.8"}},
		{"linux", 100 * time.Millisecond, []string{"-c", "3", "-W", "1", "8.8.8.8"}},
		{"darwin", 2 * time.Second, []string{"-c", "3", "-W", "2000", "8.8.8.8"}},
		{"windows", 2 * time.Second, []string{"-n", "3", "-w", "2000", "8.8.8.8"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.timeout.String(), func(t *testing.T) {
			r := &Runner{argv: []string{"ping"}, count: 3, packetTimeout: tt.timeout, goos: tt.goos}
			if diff := cmp.Diff(tt.want, r.args("8.8.8.8")); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := config.Config{
		ProbeCount:    3,
		PacketTimeout: 2 * time.Second,
		CommandMargin: 5 * time.Second,
		ProbeCommand:  `sudo -n "ping"`,
	}
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if diff := cmp.Diff([]string{"sudo", "-n", "ping"}, r.argv); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
	if r.commandTimeout != 11*time.Second {
		t.Errorf("commandTimeout = %v, want 11s", r.commandTimeout)
	}

	cfg.ProbeCommand = "   "
	if _, err := New(cfg); err == nil {
		t.Error("expected error for blank probe command")
	}
}

func shellRunner(t *testing.T, script string, timeout time.Duration) *Runner {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available on PATH")
	}
	return &Runner{
		argv:           []string{"sh", "-c", script, "--"},
		count:          1,
		packetTimeout:  time.Second,
		commandTimeout: timeout,
		goos:           "linux",
	}
}

func TestProbeReturnsOutputOnNonZeroExit(t *testing.T) {
	r := shellRunner(t, `echo "1 packets transmitted, 0 received, 100% packet loss"; exit 1`, 5*time.Second)

	out, err := r.Probe(context.Background(), "192.0.2.1")
	if err != nil {
		t.Fatalf("Probe() error: %v", err)
	}
	if !strings.Contains(out, "100% packet loss") {
		t.Errorf("Probe() output = %q", out)
	}
}

func TestProbeInvocationError(t *testing.T) {
	r := shellRunner(t, `echo "unknown host" >&2; exit 2`, 5*time.Second)

	_, err := r.Probe(context.Background(), "192.0.2.1")
	var invocation *InvocationError
	if !errors.As(err, &invocation) {
		t.Fatalf("Probe() error = %v, want *InvocationError", err)
	}
	if invocation.Stderr != "unknown host" {
		t.Errorf("Stderr = %q, want %q", invocation.Stderr, "unknown host")
	}
}

func TestProbeMissingBinary(t *testing.T) {
	r := &Runner{argv: []string{"/nonexistent/ping-binary"}, count: 1, packetTimeout: time.Second, commandTimeout: time.Second, goos: "linux"}

	_, err := r.Probe(context.Background(), "192.0.2.1")
	var invocation *InvocationError
	if !errors.As(err, &invocation) {
		t.Fatalf("Probe() error = %v, want *InvocationError", err)
	}
}

func TestProbeTimeout(t *testing.T) {
	r := shellRunner(t, `exec sleep 5`, 100*time.Millisecond)

	start := time.Now()
	_, err := r.Probe(context.Background(), "192.0.2.1")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Probe() error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Probe() took %v, expected the command timeout to bound it", elapsed)
	}
}

func TestPingerProbe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ping integration test in short mode")
	}

	if _, err := exec.LookPath("ping"); err != nil {
		t.Skip("ping binary not available on PATH")
	}

	r, err := New(config.Config{
		ProbeCount:    1,
		PacketTimeout: time.Second,
		CommandMargin: 5 * time.Second,
		ProbeCommand:  "ping",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	out, err := r.Probe(context.Background(), "127.0.0.1")
	if err != nil {
		t.Skipf("skipping due to unexpected ping failure: %v", err)
	}

	t.Logf("Ping output: %s", out)

	outcome := Evaluate(testTarget, 1, out, nil)
	if !outcome.Reachable() {
		t.Skipf("loopback unreachable in this environment: %+v", outcome)
	}
	if outcome.Sent != 1 || outcome.Lost != 0 {
		t.Errorf("unexpected loopback outcome %+v", outcome)
	}
}
