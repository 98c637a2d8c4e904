package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"mutscore.dev/pkg/mutscore/internal/domain/parsers"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const minCompareReports = 2

// SummaryArgs selects report files to summarize. The class under mutation is
// Class, or the single class defects4j records as modified for Project and Bug.
type SummaryArgs struct {
	Tool    string
	Class   string
	Project string
	Bug     string
	Reports []m.Path
	Verbose bool
}

// CompareArgs selects report files whose mutant sets are compared against
// the one at BaseIndex.
type CompareArgs struct {
	Tool      string
	Class     string
	Project   string
	Bug       string
	Reports   []m.Path
	BaseIndex int
	Killed    bool
}

// LoadReport parses the report of kind at path. Major reports are a directory
// holding kill.csv and mutants.log, the other engines a single file.
func (w *workflow) LoadReport(kind m.ToolKind, path m.Path, class string) (m.ReportSummary, error) {
	summary := m.ReportSummary{Path: path, Tool: kind, Class: class}

	info, err := w.fs.FileInfo(path)
	if err != nil {
		return summary, fmt.Errorf("report %s: %w", path, err)
	}

	if kind == m.ToolMajor {
		if !info.IsDir() {
			return summary, fmt.Errorf("report %s: a major report is a directory with kill.csv and mutants.log", path)
		}

		kill, err := w.fs.ReadFile(w.fs.JoinPath(string(path), "kill.csv"))
		if err != nil {
			return summary, err
		}

		log, err := w.fs.ReadFile(w.fs.JoinPath(string(path), "mutants.log"))
		if err != nil {
			return summary, err
		}

		if summary.Report, err = parsers.ParseMajor(kill, log); err != nil {
			return summary, err
		}

		summary.Mutants, err = parsers.MajorMutants(kill, log)

		return summary, err
	}

	if info.IsDir() {
		return summary, fmt.Errorf("report %s: a %s report is a file", path, kind)
	}

	data, err := w.fs.ReadFile(path)
	if err != nil {
		return summary, err
	}

	switch kind {
	case m.ToolJudy:
		if summary.Report, err = parsers.ParseJudy(data, class); err != nil {
			return summary, err
		}

		summary.Mutants, err = parsers.JudyMutants(data, class)
	case m.ToolJumble:
		if summary.Report, err = parsers.ParseJumble(string(data)); err != nil {
			return summary, err
		}

		summary.Mutants, err = parsers.JumbleMutants(string(data))
	case m.ToolPit:
		if summary.Report, err = parsers.ParsePit(data); err != nil {
			return summary, err
		}

		summary.Mutants, err = parsers.PitMutants(data)
	case m.ToolMajor:
	}

	return summary, err
}

// resolveClass picks the class under mutation. Only Judy reports need one.
func (w *workflow) resolveClass(kind m.ToolKind, class, project, bug string) (string, error) {
	if class != "" || kind != m.ToolJudy {
		return class, nil
	}

	if project == "" || bug == "" {
		return "", &m.ConfigurationError{Tool: kind.DisplayName(), Param: "class"}
	}

	return w.d4j.ModifiedClass(project, bug)
}

func (w *workflow) loadReports(kind m.ToolKind, class string, paths []m.Path) ([]m.ReportSummary, error) {
	summaries := make([]m.ReportSummary, 0, len(paths))

	for _, path := range paths {
		summary, err := w.LoadReport(kind, path, class)
		if err != nil {
			return nil, err
		}

		slog.Debug("report loaded", "path", path, "tool", kind, "all", summary.Report.All)
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (w *workflow) Summary(ctx context.Context, args SummaryArgs) error {
	kind, err := m.ParseToolKind(args.Tool)
	if err != nil {
		return err
	}

	if len(args.Reports) == 0 {
		return errors.New("no report provided")
	}

	class, err := w.resolveClass(kind, args.Class, args.Project, args.Bug)
	if err != nil {
		return err
	}

	summaries, err := w.loadReports(kind, class, args.Reports)
	if err != nil {
		return err
	}

	return w.report(ctx, func() error { return w.DisplaySummary(ctx, summaries, args.Verbose) })
}

func (w *workflow) Compare(ctx context.Context, args CompareArgs) error {
	kind, err := m.ParseToolKind(args.Tool)
	if err != nil {
		return err
	}

	if len(args.Reports) < minCompareReports {
		return fmt.Errorf("%w, please provide at least %d", m.ErrTooFewReports, minCompareReports)
	}

	class, err := w.resolveClass(kind, args.Class, args.Project, args.Bug)
	if err != nil {
		return err
	}

	summaries, err := w.loadReports(kind, class, args.Reports)
	if err != nil {
		return err
	}

	diffs, err := CompareReports(summaries, args.BaseIndex, args.Killed)
	if err != nil {
		return err
	}

	return w.report(ctx, func() error { return w.DisplayDiffs(ctx, diffs) })
}

// CompareReports diffs the live (or killed) mutants of every report against
// the report at base. base is clipped into range.
func CompareReports(summaries []m.ReportSummary, base int, killed bool) ([]m.ReportDiff, error) {
	if len(summaries) < minCompareReports {
		return nil, fmt.Errorf("%w, please provide at least %d", m.ErrTooFewReports, minCompareReports)
	}

	base = max(0, min(base, len(summaries)-1))

	lines := make([][]string, len(summaries))
	for i, summary := range summaries {
		set, err := mutantSet(summary, killed)
		if err != nil {
			return nil, err
		}

		lines[i] = set
	}

	diffs := make([]m.ReportDiff, 0, len(summaries)-1)

	for i, summary := range summaries {
		if i == base {
			continue
		}

		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        lines[base],
			B:        lines[i],
			FromFile: string(summaries[base].Path),
			ToFile:   string(summary.Path),
			Context:  1,
		})
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", summary.Path, err)
		}

		diffs = append(diffs, m.ReportDiff{Base: summaries[base].Path, Other: summary.Path, Killed: killed, Diff: text})
	}

	return diffs, nil
}

// mutantSet renders the wanted mutants of a report one per line, sorted by
// identity so equal mutants line up across reports.
func mutantSet(summary m.ReportSummary, killed bool) ([]string, error) {
	if killed && (summary.Tool == m.ToolJudy || summary.Tool == m.ToolJumble) {
		return nil, fmt.Errorf("%w: %s reports list live mutants only", m.ErrMutantsUnavailable, summary.Tool)
	}

	want := m.MutantLive
	if killed {
		want = m.MutantKilled
	}

	var set []string

	for _, mutant := range summary.Mutants {
		if mutant.Status != want {
			continue
		}

		set = append(set, fmt.Sprintf("%s %s:%d %s %s\n",
			shortIdentity(mutant.ID), mutant.Class, mutant.Line, mutant.Operator, describe(mutant)))
	}

	slices.Sort(set)

	return set, nil
}

func shortIdentity(id string) string {
	if len(id) > 12 {
		return id[:12]
	}

	return id
}

func describe(mutant m.Mutant) string {
	if mutant.Description != "" {
		return strings.TrimSpace(mutant.Description)
	}

	if mutant.Original == "" && mutant.Mutated == "" {
		return ""
	}

	return strings.TrimSpace(mutant.Original + " -> " + mutant.Mutated)
}
