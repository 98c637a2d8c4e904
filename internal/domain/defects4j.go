package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"mutscore.dev/pkg/mutscore/internal/adapter"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

// ErrEnvironment indicates defects4j cannot be found.
var ErrEnvironment = errors.New("defects4j not found in PATH")

// Defects4J runs defects4j subcommands inside a checkout.
type Defects4J struct {
	fs     adapter.CheckoutFSAdapter
	runner adapter.ProcessRunnerAdapter
	bin    string
}

// NewDefects4J wraps the defects4j executable bin.
func NewDefects4J(fsAdapter adapter.CheckoutFSAdapter, runner adapter.ProcessRunnerAdapter, bin string) *Defects4J {
	if bin == "" {
		bin = "defects4j"
	}

	return &Defects4J{fs: fsAdapter, runner: runner, bin: bin}
}

// CheckEnvironment verifies defects4j is installed.
func (d *Defects4J) CheckEnvironment() error {
	path, err := d.runner.LookPath(d.bin)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEnvironment, err)
	}

	slog.Debug("defects4j found in PATH", "path", path)

	return nil
}

// Compile runs defects4j compile.
func (d *Defects4J) Compile(ctx context.Context, c *Checkout, opts adapter.RunOptions) error {
	return d.exec(ctx, c, opts, "compile")
}

// Coverage runs defects4j coverage, which writes coverage.xml into the checkout.
func (d *Defects4J) Coverage(ctx context.Context, c *Checkout, opts adapter.RunOptions) error {
	return d.exec(ctx, c, opts, "coverage")
}

func (d *Defects4J) exec(ctx context.Context, c *Checkout, opts adapter.RunOptions, command string) error {
	result, err := d.runner.RunDefects4J(ctx, c.Path, opts, command)
	if err != nil {
		return fmt.Errorf("defects4j %s: %w", command, err)
	}

	if result.ExitCode != 0 {
		slog.Warn("defects4j exited with non-zero status", "command", command, "exit_code", result.ExitCode, "checkout", c.Path)
	}

	return nil
}

// ModifiedClasses reads the classes the defects4j framework records as
// modified by the fix of bug in project.
func (d *Defects4J) ModifiedClasses(project, bug string) ([]string, error) {
	bin, err := d.runner.LookPath(d.bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvironment, err)
	}

	// <root>/framework/bin/defects4j
	root := filepath.Dir(filepath.Dir(filepath.Dir(bin)))
	file := d.fs.JoinPath(root, "framework", "projects", project, "modified_classes", bug+".src")

	data, err := d.fs.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("modified classes of %s %s: %w", project, bug, err)
	}

	return strings.Fields(string(data)), nil
}

// ModifiedClass is ModifiedClasses restricted to bugs touching exactly one class.
func (d *Defects4J) ModifiedClass(project, bug string) (string, error) {
	classes, err := d.ModifiedClasses(project, bug)
	if err != nil {
		return "", err
	}

	if len(classes) != 1 {
		return "", fmt.Errorf("%w: %s %s modifies %d classes [%s], exactly one is required",
			m.ErrAmbiguousTarget, project, bug, len(classes), strings.Join(classes, ", "))
	}

	return classes[0], nil
}
