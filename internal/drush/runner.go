// Package drush invokes the external drush binary, Drupal's site CLI.
// drupkit shells out for exactly one concern: importing the configuration
// export into a live site after drupkit has edited it.
package drush

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrDrushNotFound indicates the drush binary is not on PATH (or the
// configured path does not exist).
var ErrDrushNotFound = errors.New("drush: drush binary not found")

// Runner executes drush commands.
type Runner interface {
	// Run executes drush with the given arguments and returns its combined
	// output. The returned output is meaningful even when err is non-nil.
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner is the exec-backed Runner used outside tests.
type ExecRunner struct {
	bin      string
	baseArgs []string
	dir      string
	logger   *slog.Logger
}

// RunnerOption configures an ExecRunner.
type RunnerOption func(*ExecRunner)

// WithBin sets the drush executable name or path.
func WithBin(bin string) RunnerOption {
	return func(r *ExecRunner) {
		if bin != "" {
			r.bin = bin
		}
	}
}

// WithBaseArgs sets arguments prepended to every invocation, such as an
// alias or --root.
func WithBaseArgs(args []string) RunnerOption {
	return func(r *ExecRunner) {
		r.baseArgs = args
	}
}

// WithDir sets the working directory for invocations.
func WithDir(dir string) RunnerOption {
	return func(r *ExecRunner) {
		r.dir = dir
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *ExecRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewExecRunner creates an ExecRunner. Without options it runs "drush" from
// PATH in the current directory.
func NewExecRunner(opts ...RunnerOption) *ExecRunner {
	r := &ExecRunner{
		bin:    "drush",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes drush with the runner's base arguments followed by args.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	path, err := exec.LookPath(r.bin)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDrushNotFound, r.bin)
	}

	full := append(append([]string{}, r.baseArgs...), args...)
	r.logger.Debug("running drush", "bin", path, "args", strings.Join(full, " "))

	cmd := exec.CommandContext(ctx, path, full...)
	cmd.Dir = r.dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("drush %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// ImportConfig runs the configuration import against the live site,
// auto-confirming the prompt the way an operator would after reviewing.
func ImportConfig(ctx context.Context, r Runner) (string, error) {
	return r.Run(ctx, "config:import", "-y")
}
