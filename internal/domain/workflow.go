package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"mutscore.dev/pkg/mutscore/internal/adapter"
	"mutscore.dev/pkg/mutscore/internal/controller"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

// Action is an experiment step applied to a checkout.
type Action string

// Available actions.
const (
	ActionBackup   Action = "backup"
	ActionRestore  Action = "restore"
	ActionMutants  Action = "mutants"
	ActionCoverage Action = "coverage"
	ActionMutScore Action = "mutscore"
	ActionRun      Action = "run"
)

const (
	coverageFile = "coverage.xml"
	pitTests     = "*Test*"
)

// Actions returns every action in display order.
func Actions() []Action {
	return []Action{ActionBackup, ActionRestore, ActionMutants, ActionCoverage, ActionMutScore, ActionRun}
}

// ParseAction resolves an action name.
func ParseAction(name string) (Action, error) {
	for _, action := range Actions() {
		if string(action) == strings.ToLower(name) {
			return action, nil
		}
	}

	names := make([]string, 0, len(Actions()))
	for _, action := range Actions() {
		names = append(names, string(action))
	}

	return "", fmt.Errorf("invalid action provided: %s. Valid actions are [%s]", name, strings.Join(names, ", "))
}

// CheckoutArgs selects a checkout.
type CheckoutArgs struct {
	Checkout m.Path
}

// RunArgs contains the arguments of the tool-driving actions.
type RunArgs struct {
	Checkout  m.Path
	Tools     []string
	Suite     m.SuiteOptions
	Mutations string
	Stdout    bool
	Stderr    bool
}

// ViewArgs filters the score ledger.
type ViewArgs struct {
	Project string
	Tool    string
	RunID   string
}

// Workflow defines the experiment operations exposed by the CLI.
type Workflow interface {
	Backup(ctx context.Context, args CheckoutArgs) error
	Restore(ctx context.Context, args CheckoutArgs) error
	Mutants(ctx context.Context, args RunArgs) error
	Coverage(ctx context.Context, args RunArgs) error
	MutationScores(ctx context.Context, args RunArgs) error
	RunTools(ctx context.Context, args RunArgs) error
	Bulk(ctx context.Context, args BulkArgs) error
	View(ctx context.Context, args ViewArgs) error
	Summary(ctx context.Context, args SummaryArgs) error
	Compare(ctx context.Context, args CompareArgs) error
	Tools(ctx context.Context) error
}

type workflow struct {
	controller.UI
	fs        adapter.CheckoutFSAdapter
	store     adapter.ScoreStore
	revisions adapter.RevisionAdapter
	registry  *Registry
	suites    *SuiteManager
	d4j       *Defects4J
	newRunID  func() string
	now       func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
// store and revisions may be nil.
func NewWorkflow(
	fsAdapter adapter.CheckoutFSAdapter,
	store adapter.ScoreStore,
	revisions adapter.RevisionAdapter,
	ui controller.UI,
	registry *Registry,
	suites *SuiteManager,
	d4j *Defects4J,
) Workflow {
	return &workflow{
		UI:        ui,
		fs:        fsAdapter,
		store:     store,
		revisions: revisions,
		registry:  registry,
		suites:    suites,
		d4j:       d4j,
		newRunID:  uuid.NewString,
		now:       time.Now,
	}
}

// run is the state shared by every tool of one action on one checkout.
type run struct {
	id        string
	action    Action
	checkout  *Checkout
	revision  string
	mutations string
	output    adapter.RunOptions
}

// open loads the checkout and moves its developer tests aside.
func (w *workflow) open(dir m.Path) (*Checkout, error) {
	checkout, err := LoadCheckout(w.fs, dir)
	if err != nil {
		return nil, err
	}

	if err := w.suites.BackupTests(checkout); err != nil {
		return nil, err
	}

	return checkout, nil
}

func (w *workflow) Backup(ctx context.Context, args CheckoutArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	checkout, err := w.open(args.Checkout)
	if err != nil {
		return err
	}

	slog.Info("developer tests backed up", "checkout", checkout.String(), "backup", checkout.BackupDir())

	return nil
}

func (w *workflow) Restore(ctx context.Context, args CheckoutArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	checkout, err := LoadCheckout(w.fs, args.Checkout)
	if err != nil {
		return err
	}

	return w.suites.RestoreTests(checkout)
}

func (w *workflow) Mutants(ctx context.Context, args RunArgs) error {
	return w.execute(ctx, ActionMutants, args)
}

func (w *workflow) Coverage(ctx context.Context, args RunArgs) error {
	return w.execute(ctx, ActionCoverage, args)
}

func (w *workflow) MutationScores(ctx context.Context, args RunArgs) error {
	return w.execute(ctx, ActionMutScore, args)
}

func (w *workflow) RunTools(ctx context.Context, args RunArgs) error {
	return w.execute(ctx, ActionRun, args)
}

// execute runs action with every selected tool. A failing tool does not stop
// the others; the failures are returned joined.
func (w *workflow) execute(ctx context.Context, action Action, args RunArgs) error {
	checkout, err := w.open(args.Checkout)
	if err != nil {
		return err
	}

	if err := w.d4j.CheckEnvironment(); err != nil {
		return err
	}

	tools, err := w.registry.Tools(args.Tools, checkout.Path, checkout.RelevantClass)
	if err != nil {
		return err
	}

	suite := args.Suite
	if action == ActionCoverage && len(tools) > 1 && suite.Group != "" {
		slog.Warn("cannot select a students group with multiple tools, retry with a single tool; group ignored", "group", suite.Group)
		suite.Group = ""
	}

	r := w.newRun(action, checkout, args)

	ctx, span := adapter.StartRunSpan(ctx, r.id, string(action), string(checkout.Path))
	defer span.End()

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	kinds := make([]m.ToolKind, 0, len(tools))
	for _, tool := range tools {
		kinds = append(kinds, tool.Kind())
	}

	w.DisplayRunInfo(ctx, controller.RunInfo{
		RunID:    r.id,
		Action:   string(action),
		Checkout: checkout.Path,
		Project:  checkout.Project,
		Bug:      checkout.BugID(),
		Class:    checkout.RelevantClass,
		Label:    suite.Label(),
		Tools:    kinds,
	})

	var errs []error

	if action == ActionMutants {
		if err := w.prepareDummySuite(ctx, r); err != nil {
			w.Close(ctx)
			return fmt.Errorf("prepare dummy suite: %w", err)
		}
	}

	for _, tool := range tools {
		if _, err := w.runTool(ctx, r, tool, suite); err != nil {
			errs = append(errs, err)
		}
	}

	w.Wait(ctx)
	w.Close(ctx)

	return errors.Join(errs...)
}

func (w *workflow) newRun(action Action, checkout *Checkout, args RunArgs) run {
	r := run{
		id:        w.newRunID(),
		action:    action,
		checkout:  checkout,
		mutations: args.Mutations,
		output:    adapter.RunOptions{Stdout: args.Stdout, Stderr: args.Stderr},
	}

	if w.revisions != nil {
		revision, err := w.revisions.Revision(checkout.Path)
		if err != nil {
			slog.Warn("cannot read checkout revision", "checkout", checkout.Path, "error", err)
		}

		r.revision = revision
	}

	return r
}

func (w *workflow) prepareDummySuite(ctx context.Context, r run) error {
	if err := w.suites.SetDummySuite(r.checkout); err != nil {
		return err
	}

	if err := w.suites.Clean(r.checkout); err != nil {
		return err
	}

	if err := w.d4j.Compile(ctx, r.checkout, r.output); err != nil {
		return err
	}

	slog.Info("project cleaned and compiled", "checkout", r.checkout.Path)

	return nil
}

// runTool drives one tool through the steps of r.action. The report is nil
// for actions that do not compute a score.
func (w *workflow) runTool(ctx context.Context, r run, tool *Tool, suite m.SuiteOptions) (*m.MutationReport, error) {
	label := suite.Label()
	w.DisplayToolStarted(ctx, r.checkout.Path, tool.Kind(), label)
	slog.Info("start tool", "action", r.action, "tool", tool.Kind().DisplayName(), "label", label)

	report, err := w.runToolSteps(ctx, r, tool, suite)
	if err != nil {
		err = fmt.Errorf("%s %s [%s]: %w", r.action, tool.Kind(), label, err)
		slog.Error("tool failed", "action", r.action, "tool", tool.Kind().DisplayName(), "label", label, "error", err)
		w.DisplayToolFailed(ctx, r.checkout.Path, tool.Kind(), label, err)

		return nil, err
	}

	return report, nil
}

func (w *workflow) runToolSteps(ctx context.Context, r run, tool *Tool, suite m.SuiteOptions) (*m.MutationReport, error) {
	label := suite.Label()

	switch r.action {
	case ActionCoverage:
		return nil, w.coverage(ctx, r, tool, suite)
	case ActionMutants:
		params, err := w.toolParams(ctx, r, tool, w.suites.DummyTest(r.checkout))
		if err != nil {
			return nil, err
		}

		if err := w.lifecycle(ctx, tool, params, ""); err != nil {
			return nil, err
		}

		w.DisplayToolCollected(ctx, r.checkout.Path, tool.Kind(), label, tool.OutputDir(""))

		return nil, nil
	case ActionMutScore, ActionRun:
		if err := w.installSuite(ctx, r, tool, suite); err != nil {
			return nil, err
		}

		params, err := w.toolParams(ctx, r, tool, "")
		if err != nil {
			return nil, err
		}

		if r.action == ActionRun {
			if err := w.lifecycle(ctx, tool, params, label); err != nil {
				return nil, err
			}

			w.DisplayToolCollected(ctx, r.checkout.Path, tool.Kind(), label, tool.OutputDir(label))

			return nil, nil
		}

		if err := w.lifecycle(ctx, tool, params, ""); err != nil {
			return nil, err
		}

		report, err := tool.ComputeScore("", ScoreFileName(label))
		if err != nil {
			return nil, err
		}

		slog.Info("got mutation score", "tool", tool.Kind().DisplayName(), "label", label, "score", report.Score)
		w.DisplayToolScore(ctx, r.checkout.Path, tool.Kind(), label, report)

		if err := w.record(ctx, r, tool.Kind(), label, report); err != nil {
			return &report, err
		}

		return &report, nil
	case ActionBackup, ActionRestore:
		return nil, fmt.Errorf("%s does not run tools", r.action)
	default:
		return nil, fmt.Errorf("unknown action %q", r.action)
	}
}

// installSuite rebuilds the checkout against the suite of tool.
func (w *workflow) installSuite(ctx context.Context, r run, tool *Tool, suite m.SuiteOptions) error {
	if err := w.suites.Clean(r.checkout); err != nil {
		return err
	}

	if err := w.suites.SetToolSuite(r.checkout, tool.Kind(), suite); err != nil {
		return err
	}

	return w.d4j.Compile(ctx, r.checkout, r.output)
}

// toolParams fills the test selector and class the launcher templates need.
// An empty tests selects the active suite.
func (w *workflow) toolParams(ctx context.Context, r run, tool *Tool, tests string) (m.ToolParams, error) {
	params := m.ToolParams{
		Mutations: r.mutations,
		Stdout:    r.output.Stdout,
		Stderr:    r.output.Stderr,
	}

	switch tool.Kind() {
	case m.ToolJumble:
		params.Class = r.checkout.RelevantClass
		params.Tests = tests

		if tests == "" {
			names, err := w.suites.Tests(ctx, r.checkout)
			if err != nil {
				return params, fmt.Errorf("list tests: %w", err)
			}

			params.Tests = strings.Join(names, " ")
		}
	case m.ToolPit:
		params.Class = r.checkout.RelevantClass
		params.Tests = tests

		if tests == "" {
			params.Tests = pitTests
		}
	case m.ToolJudy, m.ToolMajor:
	}

	return params, nil
}

// lifecycle is setup, run and collect into OutputDir(group).
func (w *workflow) lifecycle(ctx context.Context, tool *Tool, params m.ToolParams, group string) error {
	if err := tool.Setup(ctx, params); err != nil {
		return err
	}

	if _, err := tool.Run(ctx, params); err != nil {
		return err
	}

	return tool.CollectOutput(group)
}

func (w *workflow) coverage(ctx context.Context, r run, tool *Tool, suite m.SuiteOptions) error {
	if suite.SkipSetup {
		slog.Info("skipping setup testsuite", "tool", tool.Kind().DisplayName())
	} else {
		if err := w.suites.Clean(r.checkout); err != nil {
			return err
		}

		if err := w.d4j.Compile(ctx, r.checkout, r.output); err != nil {
			return err
		}

		if err := w.suites.SetToolSuite(r.checkout, tool.Kind(), suite); err != nil {
			return err
		}
	}

	if err := w.d4j.Coverage(ctx, r.checkout, r.output); err != nil {
		return err
	}

	src := w.fs.JoinPath(string(r.checkout.Path), coverageFile)
	dst := w.fs.JoinPath(string(r.checkout.Path), fmt.Sprintf("%s_%s_%s", tool.Kind(), strings.ToUpper(suite.Group), coverageFile))

	ok, err := w.fs.Exists(src)
	if err != nil {
		return err
	}

	if !ok {
		slog.Warn("skipping tool because coverage was not produced, maybe there was an error?", "tool", tool.Kind().DisplayName(), "file", src)
		return nil
	}

	if err := w.fs.MoveFile(src, dst); err != nil {
		return err
	}

	slog.Info("generated coverage", "path", dst)
	w.DisplayToolCollected(ctx, r.checkout.Path, tool.Kind(), suite.Label(), dst)

	return nil
}

// record appends a computed score to the ledger.
func (w *workflow) record(ctx context.Context, r run, kind m.ToolKind, label string, report m.MutationReport) error {
	if w.store == nil {
		return nil
	}

	err := w.store.SaveScore(ctx, m.ScoreRecord{
		RunID:     r.id,
		Checkout:  r.checkout.Path,
		Project:   r.checkout.Project,
		Bug:       r.checkout.BugID(),
		Tool:      kind.String(),
		Label:     label,
		Revision:  r.revision,
		Report:    report,
		CreatedAt: w.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record score: %w", err)
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if w.store == nil {
		return errors.New("no score ledger configured")
	}

	records, err := w.store.ListScores(ctx, adapter.ScoreFilter{Project: args.Project, Tool: args.Tool, RunID: args.RunID})
	if err != nil {
		return fmt.Errorf("list scores: %w", err)
	}

	return w.report(ctx, func() error { return w.DisplayScores(ctx, records) })
}

func (w *workflow) Tools(ctx context.Context) error {
	infos := make([]controller.ToolInfo, 0, len(m.ToolKinds()))
	for _, kind := range m.ToolKinds() {
		spec := specFor(kind)
		infos = append(infos, controller.ToolInfo{Kind: kind, Script: spec.script, Artifacts: spec.artifacts})
	}

	return w.report(ctx, func() error { return w.DisplayTools(ctx, infos) })
}

// report wraps a display call in the UI start/wait/close cycle.
func (w *workflow) report(ctx context.Context, display func() error) error {
	if err := w.Start(ctx, controller.WithReportMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	if err := display(); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}
