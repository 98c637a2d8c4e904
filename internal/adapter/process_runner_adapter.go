package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

// defects4jCommands is the set of defects4j subcommands the runner forwards.
var defects4jCommands = []string{
	"bids", "checkout", "compile", "coverage", "env", "export",
	"info", "monitor.test", "mutation", "pids", "query", "test",
}

// RunOptions controls which engine streams are forwarded to the console.
// Streams are always captured into the RunResult.
type RunOptions struct {
	Stdout bool
	Stderr bool
}

// RunResult is the outcome of a finished external process. A non-zero exit
// code is not an error: engines report their failures through their artifacts.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ProcessRunnerAdapter abstracts launching the external engines.
type ProcessRunnerAdapter interface {
	// RunScript runs a shell script with dir as working directory.
	RunScript(ctx context.Context, dir m.Path, script m.Path, opts RunOptions) (RunResult, error)

	// RunDefects4J runs an allow-listed defects4j subcommand inside dir.
	RunDefects4J(ctx context.Context, dir m.Path, opts RunOptions, command string, args ...string) (RunResult, error)

	// LookPath reports where an executable is installed.
	LookPath(name string) (string, error)
}

// LocalProcessRunnerAdapter runs processes with os/exec. It never changes the
// working directory of the current process and applies no timeout; callers
// cancel through the context.
type LocalProcessRunnerAdapter struct {
	shell     string
	defects4j string
	stdout    io.Writer
	stderr    io.Writer
}

// NewLocalProcessRunnerAdapter constructs a runner invoking defects4jBin for
// defects4j subcommands.
func NewLocalProcessRunnerAdapter(defects4jBin string) *LocalProcessRunnerAdapter {
	return &LocalProcessRunnerAdapter{
		shell:     "bash",
		defects4j: defects4jBin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// WithOutput redirects forwarded engine streams, mainly for tests.
func (a *LocalProcessRunnerAdapter) WithOutput(stdout, stderr io.Writer) *LocalProcessRunnerAdapter {
	a.stdout = stdout
	a.stderr = stderr

	return a
}

// RunScript runs script through bash inside dir. A relative script is
// resolved against dir.
func (a *LocalProcessRunnerAdapter) RunScript(ctx context.Context, dir m.Path, script m.Path, opts RunOptions) (RunResult, error) {
	return a.run(ctx, dir, opts, a.shell, string(script))
}

// RunDefects4J validates command against the allow-list before spawning anything.
func (a *LocalProcessRunnerAdapter) RunDefects4J(ctx context.Context, dir m.Path, opts RunOptions, command string, args ...string) (RunResult, error) {
	if err := ValidateDefects4JCommand(command); err != nil {
		return RunResult{}, err
	}

	return a.run(ctx, dir, opts, a.defects4j, append([]string{command}, args...)...)
}

// LookPath searches PATH for an executable.
func (a *LocalProcessRunnerAdapter) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (a *LocalProcessRunnerAdapter) run(ctx context.Context, dir m.Path, opts RunOptions, name string, args ...string) (RunResult, error) {
	// #nosec G204 - the binary is either bash or the configured defects4j executable
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = string(dir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	if opts.Stdout {
		cmd.Stdout = io.MultiWriter(&stdout, a.stdout)
	}

	cmd.Stderr = &stderr
	if opts.Stderr {
		cmd.Stderr = io.MultiWriter(&stderr, a.stderr)
	}

	err := cmd.Run()

	result := RunResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()

		return result, nil
	}

	if err != nil {
		return result, fmt.Errorf("running %s: %w", name, err)
	}

	return result, nil
}

// ValidateDefects4JCommand rejects subcommands outside the allow-list.
func ValidateDefects4JCommand(command string) error {
	if slices.Contains(defects4jCommands, command) {
		return nil
	}

	return fmt.Errorf("%w: %s. Valid commands are [%s]", m.ErrInvalidCommand, command, strings.Join(defects4jCommands, ", "))
}
