package controller

import (
	"fmt"
	"sort"
	"strings"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

// Row builders shared by SimpleUI and TUI.

var (
	scoreHeader   = []string{"Run", "Project", "Bug", "Tool", "Label", "Killed", "Live", "All", "Score"}
	summaryHeader = []string{"Report", "Tool", "Class", "Killed", "Live", "All", "Score"}
	mutantHeader  = []string{"Status", "Line", "Operator", "Description"}
	outcomeHeader = []string{"Checkout", "Tool", "Combination", "Score", "Error"}
	toolHeader    = []string{"Tool", "Launcher", "Artifacts"}
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

func reportCells(report m.MutationReport) []string {
	return []string{
		fmt.Sprintf("%d", report.Killed),
		fmt.Sprintf("%d", report.Live),
		fmt.Sprintf("%d", report.All),
		formatScore(report.Score),
	}
}

func scoreRows(records []m.ScoreRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := []string{shortID(record.RunID), record.Project, record.Bug, record.Tool, labelOrDash(record.Label)}
		rows = append(rows, append(row, reportCells(record.Report)...))
	}

	return rows
}

func summaryRows(summaries []m.ReportSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		row := []string{string(summary.Path), summary.Tool.String(), summary.Class}
		rows = append(rows, append(row, reportCells(summary.Report)...))
	}

	return rows
}

// mutantRows lists live mutants first, then killed ones, each by line.
func mutantRows(mutants []m.Mutant) [][]string {
	sorted := make([]m.Mutant, len(mutants))
	copy(sorted, mutants)

	sort.SliceStable(sorted, func(i, j int) bool {
		if (sorted[i].Status == m.MutantLive) != (sorted[j].Status == m.MutantLive) {
			return sorted[i].Status == m.MutantLive
		}

		return sorted[i].Line < sorted[j].Line
	})

	rows := make([][]string, 0, len(sorted))
	for _, mutant := range sorted {
		rows = append(rows, []string{
			string(mutant.Status),
			fmt.Sprintf("%d", mutant.Line),
			mutant.Operator,
			mutantDescription(mutant),
		})
	}

	return rows
}

func mutantDescription(mutant m.Mutant) string {
	if mutant.Description != "" {
		return mutant.Description
	}

	if mutant.Original != "" || mutant.Mutated != "" {
		return mutant.Original + " -> " + mutant.Mutated
	}

	return mutant.Method
}

func outcomeRows(outcomes []m.Outcome) [][]string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		score := "-"
		if outcome.Report != nil {
			score = formatScore(outcome.Report.Score)
		}

		rows = append(rows, []string{
			string(outcome.Checkout),
			outcome.Tool.String(),
			outcome.Combination,
			score,
			firstLine(outcome.Err),
		})
	}

	return rows
}

func toolRows(tools []ToolInfo) [][]string {
	rows := make([][]string, 0, len(tools))
	for _, tool := range tools {
		launcher := tool.Script
		if launcher == "" {
			launcher = "defects4j mutation"
		}

		rows = append(rows, []string{tool.Kind.String(), launcher, strings.Join(tool.Artifacts, ", ")})
	}

	return rows
}

func countFailures(outcomes []m.Outcome) int {
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Failed() {
			failed++
		}
	}

	return failed
}

func labelOrDash(label string) string {
	if label == "" {
		return "-"
	}

	return label
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
