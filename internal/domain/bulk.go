package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"mutscore.dev/pkg/mutscore/internal/adapter"
	"mutscore.dev/pkg/mutscore/internal/controller"
	m "mutscore.dev/pkg/mutscore/internal/model"
	"mutscore.dev/pkg/mutscore/pkg"
)

// BulkArgs contains the arguments of a bulk pass. Fields left empty are
// taken from the plan file, when one is given.
type BulkArgs struct {
	Action    Action
	Checkouts []m.Path
	Plan      m.Path
	Tools     []string
	Parallel  int
	Mutations string
	Stdout    bool
	Stderr    bool
}

// Plan is the YAML description of a bulk pass.
type Plan struct {
	Action    string   `yaml:"action"`
	Checkouts []string `yaml:"checkouts"`
	Tools     []string `yaml:"tools"`
	Parallel  int      `yaml:"parallel"`
	Mutations string   `yaml:"mutations"`
}

// LoadPlan reads a bulk plan.
func LoadPlan(fsAdapter adapter.CheckoutFSAdapter, path m.Path) (Plan, error) {
	data, err := fsAdapter.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("parse plan %s: %w", path, err)
	}

	return plan, nil
}

// merge fills the empty fields of args from the plan.
func (p Plan) merge(args BulkArgs) (BulkArgs, error) {
	if args.Action == "" && p.Action != "" {
		action, err := ParseAction(p.Action)
		if err != nil {
			return args, err
		}

		args.Action = action
	}

	if len(args.Checkouts) == 0 {
		for _, checkout := range p.Checkouts {
			args.Checkouts = append(args.Checkouts, m.Path(checkout))
		}
	}

	if len(args.Tools) == 0 {
		args.Tools = p.Tools
	}

	if args.Parallel <= 0 {
		args.Parallel = p.Parallel
	}

	if args.Mutations == "" {
		args.Mutations = p.Mutations
	}

	return args, nil
}

// Combinations lists the suites a bulk pass runs for one tool: the developer
// test alone, then each student group alone and with the developer test.
func Combinations(groups []string) []m.SuiteOptions {
	combinations := []m.SuiteOptions{{WithSingleDev: true, NoGroups: true}}
	for _, group := range groups {
		combinations = append(combinations,
			m.SuiteOptions{Group: group},
			m.SuiteOptions{Group: group, WithSingleDev: true},
		)
	}

	return combinations
}

// Bulk runs an action over every checkout and every suite combination.
// Checkouts run in parallel, tools within a checkout run one at a time.
// A failing combination is logged and recorded in the outcomes; only
// checkouts that cannot be processed at all make Bulk fail.
func (w *workflow) Bulk(ctx context.Context, args BulkArgs) error {
	if args.Plan != "" {
		plan, err := LoadPlan(w.fs, args.Plan)
		if err != nil {
			return err
		}

		if args, err = plan.merge(args); err != nil {
			return err
		}
	}

	if args.Action == "" {
		return errors.New("no action provided")
	}

	if len(args.Checkouts) == 0 {
		return errors.New("no checkout provided")
	}

	outcomes, err := pkg.NewFileSpill[m.Outcome]("")
	if err != nil {
		return fmt.Errorf("create outcome spill: %w", err)
	}

	defer func() {
		if err := outcomes.Remove(); err != nil {
			slog.Warn("cannot remove outcome spill", "path", outcomes.Path(), "error", err)
		}
	}()

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	var (
		group errgroup.Group
		mu    sync.Mutex
		errs  []error
	)

	group.SetLimit(max(1, args.Parallel))

	for _, checkout := range args.Checkouts {
		checkout := checkout
		group.Go(func() error {
			if err := w.bulkCheckout(ctx, args, checkout, outcomes); err != nil {
				slog.Error("bulk checkout failed", "checkout", checkout, "error", err)

				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", checkout, err))
				mu.Unlock()
			}

			return nil
		})
	}

	_ = group.Wait()

	collected := make([]m.Outcome, 0, outcomes.Len())

	err = outcomes.Range(func(_ uint64, outcome m.Outcome) error {
		collected = append(collected, outcome)
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("read outcomes: %w", err))
	}

	if len(collected) > 0 {
		if err := w.DisplayOutcomes(ctx, collected); err != nil {
			errs = append(errs, err)
		}
	}

	w.Wait(ctx)
	w.Close(ctx)

	return errors.Join(errs...)
}

func (w *workflow) bulkCheckout(ctx context.Context, args BulkArgs, dir m.Path, outcomes pkg.FileSpill[m.Outcome]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch args.Action {
	case ActionBackup:
		return w.Backup(ctx, CheckoutArgs{Checkout: dir})
	case ActionRestore:
		return w.Restore(ctx, CheckoutArgs{Checkout: dir})
	case ActionMutants, ActionCoverage, ActionMutScore, ActionRun:
	default:
		return fmt.Errorf("unknown action %q", args.Action)
	}

	checkout, err := w.open(dir)
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

	r := w.newRun(args.Action, checkout, RunArgs{Mutations: args.Mutations, Stdout: args.Stdout, Stderr: args.Stderr})

	ctx, span := adapter.StartRunSpan(ctx, r.id, "bulk."+string(args.Action), string(checkout.Path))
	defer span.End()

	w.DisplayRunInfo(ctx, controller.RunInfo{
		RunID:    r.id,
		Action:   "bulk " + string(args.Action),
		Checkout: checkout.Path,
		Project:  checkout.Project,
		Bug:      checkout.BugID(),
		Class:    checkout.RelevantClass,
	})

	for _, tool := range tools {
		slog.Info("working on tool", "tool", tool.Kind().DisplayName(), "checkout", checkout.Path)

		groups, err := w.suites.StudentGroups(checkout, tool.Kind())
		if err != nil {
			slog.Warn("cannot list student groups, running developer test only", "tool", tool.Kind().DisplayName(), "error", err)
		}

		slog.Info("found groups", "tool", tool.Kind().DisplayName(), "groups", groups)

		for _, suite := range Combinations(groups) {
			if err := ctx.Err(); err != nil {
				return err
			}

			slog.Debug("combination under test", "tool", tool.Kind().DisplayName(), "suite", suite)

			outcome := m.Outcome{Checkout: checkout.Path, Tool: tool.Kind(), Combination: suite.Label()}

			report, err := w.bulkCombination(ctx, r, tool, suite)
			if err != nil {
				outcome.Err = err.Error()
			}

			outcome.Report = report

			if err := outcomes.Append(outcome); err != nil {
				return fmt.Errorf("spill outcome: %w", err)
			}
		}
	}

	return nil
}

func (w *workflow) bulkCombination(ctx context.Context, r run, tool *Tool, suite m.SuiteOptions) (*m.MutationReport, error) {
	if r.action == ActionMutants {
		if err := w.prepareDummySuite(ctx, r); err != nil {
			return nil, err
		}
	}

	return w.runTool(ctx, r, tool, suite)
}
