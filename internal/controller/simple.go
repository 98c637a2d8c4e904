package controller

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayRunInfo prints what is about to run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Run %s: %s on %s %s (%s), class %s, tools %v\n",
		shortID(info.RunID), info.Action, info.Project, info.Bug, info.Checkout, info.Class, info.Tools)
}

// DisplayToolStarted prints a line when a tool begins its lifecycle.
func (s *SimpleUI) DisplayToolStarted(ctx context.Context, checkout m.Path, kind m.ToolKind, label string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Starting %s [%s] %s\n", kind, labelOrDash(label), checkout)
}

// DisplayToolCollected prints where a tool's reports were moved to.
func (s *SimpleUI) DisplayToolCollected(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, dir m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Completed %s [%s] %s -> %s\n", kind, labelOrDash(label), checkout, dir)
}

// DisplayToolScore prints the score a tool obtained.
func (s *SimpleUI) DisplayToolScore(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, report m.MutationReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Completed %s [%s] %s -> killed %d/%d, score %s\n",
		kind, labelOrDash(label), checkout, report.Killed, report.All, formatScore(report.Score))
}

// DisplayToolFailed prints the error a tool ended with.
func (s *SimpleUI) DisplayToolFailed(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("Failed %s [%s] %s: %v\n", kind, labelOrDash(label), checkout, err)
}

// DisplayScores prints the ledger rows.
func (s *SimpleUI) DisplayScores(ctx context.Context, records []m.ScoreRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(records) == 0 {
		s.printf("No scores recorded\n")
		return nil
	}

	s.printf("\n%s", renderTable(scoreHeader, scoreRows(records), []string{
		fmt.Sprintf("Total %d", len(records)), "", "", "", "", "", "", "", "",
	}))

	return nil
}

// DisplaySummary prints one row per report, and its mutants when verbose.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summaries []m.ReportSummary, verbose bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderTable(summaryHeader, summaryRows(summaries), nil))

	if !verbose {
		return nil
	}

	for _, summary := range summaries {
		if len(summary.Mutants) == 0 {
			s.printf("\n%s: no mutant details available\n", summary.Path)
			continue
		}

		s.printf("\n%s\n%s", summary.Path, renderTable(mutantHeader, mutantRows(summary.Mutants), nil))
	}

	return nil
}

// DisplayDiffs prints the unified diffs of a comparison.
func (s *SimpleUI) DisplayDiffs(ctx context.Context, diffs []m.ReportDiff) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, diff := range diffs {
		if diff.Diff == "" {
			s.printf("%s and %s describe the same mutants\n", diff.Base, diff.Other)
			continue
		}

		s.printf("%s\n", diff.Diff)
	}

	return nil
}

// DisplayOutcomes prints the result of every bulk combination.
func (s *SimpleUI) DisplayOutcomes(ctx context.Context, outcomes []m.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderTable(outcomeHeader, outcomeRows(outcomes), []string{
		fmt.Sprintf("Total %d", len(outcomes)), "", "", "", fmt.Sprintf("Failed %d", countFailures(outcomes)),
	}))

	return nil
}

// DisplayTools prints the supported engines.
func (s *SimpleUI) DisplayTools(ctx context.Context, tools []ToolInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderTable(toolHeader, toolRows(tools), nil))

	return nil
}

func renderTable(header []string, rows [][]string, footer []string) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)

	if footer != nil {
		table.SetFooter(footer)
	}

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
