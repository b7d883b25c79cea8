package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	json "github.com/goccy/go-json"
)

// Forker runs one trial of a benchmark in isolation.
type Forker interface {
	Fork(ctx context.Context, r *Runner, b Benchmark, fork int) (TrialResult, error)
}

// InProcess runs the trial in the current process after a forced GC.
type InProcess struct{}

func (InProcess) Fork(ctx context.Context, r *Runner, b Benchmark, fork int) (TrialResult, error) {
	runtime.GC()
	return r.runTrial(ctx, b, fork)
}

// ExecForker runs every trial in a fresh child process, so heap state and
// warmed caches do not leak between forks. The child is expected to run the
// named benchmark once and print its TrialResult as JSON on stdout.
type ExecForker struct {
	// Path is the executable, usually os.Executable().
	Path string
	// Args builds the child's arguments.
	Args func(benchmark string, fork int, cfg Config) []string
	// Env is appended to the parent's environment.
	Env []string
	// Stderr, if set, receives the child's log output as it is written.
	Stderr io.Writer
}

func (f ExecForker) Fork(ctx context.Context, r *Runner, b Benchmark, fork int) (TrialResult, error) {
	cmd := exec.CommandContext(ctx, f.Path, f.Args(b.Name, fork, r.Config())...)
	cmd.Env = append(os.Environ(), f.Env...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if f.Stderr != nil {
		cmd.Stderr = io.MultiWriter(f.Stderr, &stderr)
	}

	out, err := cmd.Output()
	if err != nil {
		return TrialResult{}, fmt.Errorf("fork child: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	var tr TrialResult
	if err := json.Unmarshal(out, &tr); err != nil {
		return TrialResult{}, fmt.Errorf("decoding fork result: %w", err)
	}
	if tr.Benchmark != b.Name {
		return TrialResult{}, fmt.Errorf("fork child ran %q, expected %q", tr.Benchmark, b.Name)
	}
	tr.Fork = fork
	return tr, nil
}

// WriteTrial is the child side of ExecForker.
func WriteTrial(w io.Writer, tr TrialResult) error {
	return json.NewEncoder(w).Encode(tr)
}
