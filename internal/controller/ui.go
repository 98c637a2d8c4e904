// Package controller provides output adapters for displaying mutation scores and reports.
package controller

import (
	"context"

	"github.com/spf13/cobra"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeReport
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to follow tool executions.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithReportMode sets the UI to present stored or parsed results only.
func WithReportMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeReport
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// RunInfo describes one action about to run against a checkout.
type RunInfo struct {
	RunID    string
	Action   string
	Checkout m.Path
	Project  string
	Bug      string
	Class    string
	Label    string
	Tools    []m.ToolKind
}

// ToolInfo describes what a supported engine needs and produces.
type ToolInfo struct {
	Kind      m.ToolKind
	Script    string
	Artifacts []string
}

// UI defines the interface for displaying runs and reports.
// Implementations can use different output methods (simple text, TUI, etc).
// Display methods may be called from several goroutines.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayRunInfo(ctx context.Context, info RunInfo)
	DisplayToolStarted(ctx context.Context, checkout m.Path, kind m.ToolKind, label string)
	DisplayToolCollected(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, dir m.Path)
	DisplayToolScore(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, report m.MutationReport)
	DisplayToolFailed(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, err error)
	DisplayScores(ctx context.Context, records []m.ScoreRecord) error
	DisplaySummary(ctx context.Context, summaries []m.ReportSummary, verbose bool) error
	DisplayDiffs(ctx context.Context, diffs []m.ReportDiff) error
	DisplayOutcomes(ctx context.Context, outcomes []m.Outcome) error
	DisplayTools(ctx context.Context, tools []ToolInfo) error
}

// NewUI picks the interactive TUI for terminals and the line-oriented
// SimpleUI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}
