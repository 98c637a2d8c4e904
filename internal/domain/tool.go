package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"mutscore.dev/pkg/mutscore/internal/adapter"
	"mutscore.dev/pkg/mutscore/internal/domain/parsers"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const (
	// DefaultOutputRoot is the directory, inside the checkout, that holds collected reports.
	DefaultOutputRoot = "tools_output"
	// DefaultMutations is the Jumble operator set used when none is given.
	DefaultMutations = "MUTATIONS_ALL"

	classesMutatedDir = ".classes_mutated"
	scriptPerm        = 0o755
)

// placeholder is a literal token in a launcher template and the value replacing it.
// Substitution is plain substring replacement, so a value that itself contains
// a later token would be rewritten too.
type placeholder struct {
	token string
	value string
	param string
}

// toolSpec is what a ToolKind statically determines.
type toolSpec struct {
	script    string
	artifacts []string
}

func specFor(kind m.ToolKind) toolSpec {
	switch kind {
	case m.ToolJudy:
		return toolSpec{script: "judy.sh", artifacts: []string{"result.json"}}
	case m.ToolJumble:
		return toolSpec{script: "jumble.sh", artifacts: []string{"jumble_output.txt"}}
	case m.ToolMajor:
		return toolSpec{artifacts: []string{"kill.csv", "mutants.log"}}
	case m.ToolPit:
		return toolSpec{script: "pit.sh", artifacts: []string{"pit_report/mutations.xml"}}
	default:
		return toolSpec{}
	}
}

// ToolAdapter is the setup, run, collect and score lifecycle shared by every
// engine. At most one adapter may be staged or running against a checkout at
// any time; callers run tools on one checkout sequentially.
type ToolAdapter interface {
	Kind() m.ToolKind
	Setup(ctx context.Context, params m.ToolParams) error
	Run(ctx context.Context, params m.ToolParams) (adapter.RunResult, error)
	CollectOutput(group string) error
	ComputeScore(group, persistAs string) (m.MutationReport, error)
	Mutants(group string) ([]m.Mutant, error)
	OutputDir(group string) m.Path
}

// ToolDeps are the infrastructure adapters every Tool drives.
type ToolDeps struct {
	FS         adapter.CheckoutFSAdapter
	Runner     adapter.ProcessRunnerAdapter
	Scripts    adapter.ScriptSource
	OutputRoot string
}

// Tool binds one engine kind to a checkout and a class under mutation.
type Tool struct {
	kind     m.ToolKind
	checkout m.Path
	class    string
	deps     ToolDeps
}

// NewTool builds the adapter for kind.
func NewTool(kind m.ToolKind, checkout m.Path, class string, deps ToolDeps) *Tool {
	if deps.OutputRoot == "" {
		deps.OutputRoot = DefaultOutputRoot
	}

	return &Tool{kind: kind, checkout: checkout, class: class, deps: deps}
}

// Kind returns the engine this adapter drives.
func (t *Tool) Kind() m.ToolKind {
	return t.kind
}

func (t *Tool) String() string {
	return t.kind.DisplayName()
}

// OutputDir is <checkout>/<output root>/<tool>[/<group>].
func (t *Tool) OutputDir(group string) m.Path {
	elems := []string{string(t.checkout), t.deps.OutputRoot, t.kind.String()}
	if group != "" {
		elems = append(elems, group)
	}

	return t.deps.FS.JoinPath(elems...)
}

func (t *Tool) placeholders(params m.ToolParams) []placeholder {
	class := params.Class
	if class == "" {
		class = t.class
	}

	switch t.kind {
	case m.ToolJumble:
		mutations := params.Mutations
		if mutations == "" {
			mutations = DefaultMutations
		}

		return []placeholder{
			{token: "<REPLACE_TESTS>", value: params.Tests, param: "tests"},
			{token: "<REPLACE_CLASS>", value: class, param: "class"},
			{token: "<REPLACE_MUTATIONS>", value: mutations, param: "mutations"},
		}
	case m.ToolPit:
		return []placeholder{
			{token: "<TEST_REGEXP>", value: params.Tests, param: "tests"},
			{token: "<CLASS_REGEXP>", value: class, param: "class"},
		}
	case m.ToolJudy, m.ToolMajor:
		return nil
	default:
		return nil
	}
}

// Setup stages the launcher script with its placeholders substituted and
// removes artifacts left by a previous run. Parameters are validated before
// anything is written.
func (t *Tool) Setup(ctx context.Context, params m.ToolParams) error {
	_, span := adapter.StartStageSpan(ctx, t.kind.String(), "setup")
	defer span.End()

	replacements := t.placeholders(params)
	for _, p := range replacements {
		if strings.TrimSpace(p.value) == "" {
			return &m.ConfigurationError{Tool: t.kind.DisplayName(), Param: p.param}
		}
	}

	spec := specFor(t.kind)

	if spec.script != "" {
		template, err := t.deps.Scripts.Template(spec.script)
		if err != nil {
			return fmt.Errorf("load %s: %w", spec.script, err)
		}

		script := string(template)
		for _, p := range replacements {
			script = strings.ReplaceAll(script, p.token, p.value)
		}

		if err := t.writeScript(spec.script, script); err != nil {
			return err
		}

		if t.kind == m.ToolJumble {
			verbose := strings.Replace(script, `VERBOSE=""`, `VERBOSE="--verbose"`, 1)
			if err := t.writeScript(parsers.JumbleVerboseScript, verbose); err != nil {
				return err
			}

			slog.Debug("verbose launcher created", "tool", t.kind.DisplayName(), "script", parsers.JumbleVerboseScript)
		}
	}

	for _, artifact := range spec.artifacts {
		if err := t.deps.FS.RemoveAll(t.deps.FS.JoinPath(string(t.checkout), artifact)); err != nil {
			return fmt.Errorf("remove stale %s: %w", artifact, err)
		}
	}

	if t.kind == m.ToolMajor {
		// A leftover mutated build makes defects4j skip mutant generation.
		if err := t.deps.FS.RemoveAll(t.deps.FS.JoinPath(string(t.checkout), classesMutatedDir)); err != nil {
			return fmt.Errorf("remove %s: %w", classesMutatedDir, err)
		}
	}

	slog.Info("setup completed", "tool", t.kind.DisplayName(), "checkout", t.checkout)

	return nil
}

func (t *Tool) writeScript(name, content string) error {
	target := t.deps.FS.JoinPath(string(t.checkout), name)
	if err := t.deps.FS.WriteFile(target, []byte(content), scriptPerm); err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}

	slog.Debug("launcher staged", "tool", t.kind.DisplayName(), "path", target)

	return nil
}

// Run blocks until the engine exits. The exit status is returned, not interpreted.
func (t *Tool) Run(ctx context.Context, params m.ToolParams) (adapter.RunResult, error) {
	ctx, span := adapter.StartStageSpan(ctx, t.kind.String(), "run")
	defer span.End()

	opts := adapter.RunOptions{Stdout: params.Stdout, Stderr: params.Stderr}

	var (
		result adapter.RunResult
		err    error
	)

	switch t.kind {
	case m.ToolMajor:
		result, err = t.deps.Runner.RunDefects4J(ctx, t.checkout, opts, "mutation")
	case m.ToolJudy, m.ToolJumble, m.ToolPit:
		// the runner starts inside the checkout, so the launcher is named relative to it
		script := m.Path("./" + specFor(t.kind).script)
		result, err = t.deps.Runner.RunScript(ctx, t.checkout, script, opts)
	default:
		return adapter.RunResult{}, &m.UnknownToolError{Name: t.kind.String(), Valid: m.ToolNames()}
	}

	if err != nil {
		return result, fmt.Errorf("%s run: %w", t.kind.DisplayName(), err)
	}

	slog.Info("execution completed", "tool", t.kind.DisplayName(), "exit_code", result.ExitCode)

	return result, nil
}

// CollectOutput moves the produced artifacts into OutputDir(group). Every
// artifact must exist; nothing is moved otherwise.
func (t *Tool) CollectOutput(group string) error {
	spec := specFor(t.kind)
	outDir := t.OutputDir(group)

	for _, artifact := range spec.artifacts {
		src := t.deps.FS.JoinPath(string(t.checkout), artifact)

		ok, err := t.deps.FS.Exists(src)
		if err != nil {
			return err
		}

		if !ok {
			return &m.MissingArtifactError{Path: src}
		}
	}

	if err := t.deps.FS.MkdirAll(outDir); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	for _, artifact := range spec.artifacts {
		src := t.deps.FS.JoinPath(string(t.checkout), artifact)
		dst := t.deps.FS.JoinPath(string(outDir), path.Base(artifact))

		if err := t.deps.FS.MoveFile(src, dst); err != nil {
			return fmt.Errorf("collect %s: %w", artifact, err)
		}

		slog.Info("artifact collected", "tool", t.kind.DisplayName(), "artifact", path.Base(artifact), "dir", outDir)
	}

	return nil
}

// ComputeScore parses the collected artifacts of OutputDir(group) and, when
// persistAs is set, records the score next to them.
func (t *Tool) ComputeScore(group, persistAs string) (m.MutationReport, error) {
	report, err := t.parse(group)
	if err != nil {
		return m.MutationReport{}, fmt.Errorf("%s score: %w", t.kind.DisplayName(), err)
	}

	slog.Debug("score computed", "tool", t.kind.DisplayName(), "killed", report.Killed, "live", report.Live, "all", report.All)

	if persistAs != "" {
		if _, err := WriteScore(t.deps.FS, t.OutputDir(group), persistAs, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (t *Tool) parse(group string) (m.MutationReport, error) {
	switch t.kind {
	case m.ToolJudy:
		data, err := t.readArtifact(group, "result.json")
		if err != nil {
			return m.MutationReport{}, err
		}

		return parsers.ParseJudy(data, t.class)
	case m.ToolJumble:
		data, err := t.readArtifact(group, "jumble_output.txt")
		if err != nil {
			return m.MutationReport{}, err
		}

		return parsers.ParseJumble(string(data))
	case m.ToolMajor:
		kill, mutants, err := t.readMajor(group)
		if err != nil {
			return m.MutationReport{}, err
		}

		return parsers.ParseMajor(kill, mutants)
	case m.ToolPit:
		data, err := t.readArtifact(group, "mutations.xml")
		if err != nil {
			return m.MutationReport{}, err
		}

		return parsers.ParsePit(data)
	default:
		return m.MutationReport{}, &m.UnknownToolError{Name: t.kind.String(), Valid: m.ToolNames()}
	}
}

// Mutants extracts the per-mutant records of the collected artifacts.
func (t *Tool) Mutants(group string) ([]m.Mutant, error) {
	switch t.kind {
	case m.ToolJudy:
		data, err := t.readArtifact(group, "result.json")
		if err != nil {
			return nil, err
		}

		return parsers.JudyMutants(data, t.class)
	case m.ToolJumble:
		data, err := t.readArtifact(group, "jumble_output.txt")
		if err != nil {
			return nil, err
		}

		return parsers.JumbleMutants(string(data))
	case m.ToolMajor:
		kill, mutants, err := t.readMajor(group)
		if err != nil {
			return nil, err
		}

		return parsers.MajorMutants(kill, mutants)
	case m.ToolPit:
		data, err := t.readArtifact(group, "mutations.xml")
		if err != nil {
			return nil, err
		}

		return parsers.PitMutants(data)
	default:
		return nil, &m.UnknownToolError{Name: t.kind.String(), Valid: m.ToolNames()}
	}
}

func (t *Tool) readMajor(group string) ([]byte, []byte, error) {
	kill, err := t.readArtifact(group, "kill.csv")
	if err != nil {
		return nil, nil, err
	}

	mutants, err := t.readArtifact(group, "mutants.log")
	if err != nil {
		return nil, nil, err
	}

	return kill, mutants, nil
}

func (t *Tool) readArtifact(group, name string) ([]byte, error) {
	target := t.deps.FS.JoinPath(string(t.OutputDir(group)), name)
	slog.Debug("reading artifact", "tool", t.kind.DisplayName(), "path", target)

	data, err := t.deps.FS.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &m.MissingArtifactError{Path: target}
	}

	return data, err
}
