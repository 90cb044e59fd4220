package ping

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/shlex"

	"geoping/internal/config"
)

// ErrTimeout is returned when a probe invocation exceeds its overall timeout
var ErrTimeout = errors.New("probe command timed out")

// InvocationError reports that the probe command could not run or ended
// without producing any usable output
type InvocationError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("probe command %q failed: %v", e.Command, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Runner invokes the operating system ping command
type Runner struct {
	argv           []string
	count          int
	packetTimeout  time.Duration
	commandTimeout time.Duration
	goos           string
}

// New creates a Runner from the probe settings in cfg
func New(cfg config.Config) (*Runner, error) {
	argv, err := shlex.Split(cfg.ProbeCommand)
	if err != nil {
		return nil, fmt.Errorf("parsing probe command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("probe command is empty")
	}
	return &Runner{
		argv:           argv,
		count:          cfg.ProbeCount,
		packetTimeout:  cfg.PacketTimeout,
		commandTimeout: cfg.CommandTimeout(),
		goos:           runtime.GOOS,
	}, nil
}

// Probe runs the probe command against address and returns its standard output
func (r *Runner) Probe(ctx context.Context, address string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	args := append(r.argv[1:len(r.argv):len(r.argv)], r.args(address)...)
	cmd := exec.CommandContext(ctx, r.argv[0], args...)
	cmd.WaitDelay = time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.WithField("command", strings.Join(cmd.Args, " ")).Debug("starting probe")
	output, err := cmd.Output()

	if ctx.Err() == context.DeadlineExceeded {
		return "", ErrTimeout
	}
	if err != nil {
		// ping exits non-zero on total loss but still prints its summary
		if len(bytes.TrimSpace(output)) > 0 {
			return string(output), nil
		}
		return "", &InvocationError{
			Command: r.argv[0],
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return string(output), nil
}

// args builds the platform-specific ping arguments
func (r *Runner) args(address string) []string {
	count := strconv.Itoa(r.count)
	switch r.goos {
	case "windows":
		return []string{"-n", count, "-w", strconv.FormatInt(r.packetTimeout.Milliseconds(), 10), address}
	case "darwin":
		return []string{"-c", count, "-W", strconv.FormatInt(r.packetTimeout.Milliseconds(), 10), address}
	default:
		secs := int(math.Ceil(r.packetTimeout.Seconds()))
		if secs < 1 {
			secs = 1
		}
		return []string{"-c", count, "-W", strconv.Itoa(secs), address}
	}
}
