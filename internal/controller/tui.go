package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const (
	maxColumnWidth     = 60
	defaultTableHeight = 10
	// header, footer and spacing around the focused table
	reservedLines = 8
	// column titles plus their bottom border
	tableHeaderLines = 2
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	killedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// TUI implements UI using Bubble Tea for interactive display.
// Display calls made before Start are dropped.
type TUI struct {
	output io.Writer
	input  io.Reader

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, input: os.Stdin}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newRunModel(newStartConfig(options...).mode)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(t.input), tea.WithContext(ctx))
	done := make(chan struct{})

	t.mu.Lock()
	t.program = program
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("tui stopped", "error", err)
		}
	}()

	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(ctx context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Quit()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Wait marks the run complete and blocks until the user quits.
func (t *TUI) Wait(ctx context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Send(doneMsg{})

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (t *TUI) current() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	if program, _ := t.current(); program != nil {
		program.Send(msg)
	}
}

// DisplayRunInfo adds a run header.
func (t *TUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if ctx.Err() != nil {
		return
	}

	t.send(runInfoMsg(info))
}

// DisplayToolStarted adds a running tool line.
func (t *TUI) DisplayToolStarted(ctx context.Context, checkout m.Path, kind m.ToolKind, label string) {
	if ctx.Err() != nil {
		return
	}

	t.send(toolEventMsg{key: eventKey{checkout, kind, label}, state: stateRunning})
}

// DisplayToolCollected completes the tool line with the output location.
func (t *TUI) DisplayToolCollected(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, dir m.Path) {
	if ctx.Err() != nil {
		return
	}

	t.send(toolEventMsg{key: eventKey{checkout, kind, label}, state: stateDone, detail: "collected in " + string(dir)})
}

// DisplayToolScore completes the tool line with its score.
func (t *TUI) DisplayToolScore(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, report m.MutationReport) {
	if ctx.Err() != nil {
		return
	}

	detail := fmt.Sprintf("killed %d/%d, score %s", report.Killed, report.All, formatScore(report.Score))
	t.send(toolEventMsg{key: eventKey{checkout, kind, label}, state: stateDone, detail: detail})
}

// DisplayToolFailed completes the tool line with its error.
func (t *TUI) DisplayToolFailed(ctx context.Context, checkout m.Path, kind m.ToolKind, label string, err error) {
	if ctx.Err() != nil {
		return
	}

	t.send(toolEventMsg{key: eventKey{checkout, kind, label}, state: stateFailed, detail: firstLine(err.Error())})
}

// DisplayScores shows the ledger rows as a scrollable table.
func (t *TUI) DisplayScores(ctx context.Context, records []m.ScoreRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(tableMsg{title: fmt.Sprintf("Scores (%d)", len(records)), header: scoreHeader, rows: scoreRows(records)})

	return nil
}

// DisplaySummary shows the report table, and one mutant table per report when verbose.
func (t *TUI) DisplaySummary(ctx context.Context, summaries []m.ReportSummary, verbose bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(tableMsg{title: "Reports", header: summaryHeader, rows: summaryRows(summaries)})

	if verbose {
		for _, summary := range summaries {
			t.send(tableMsg{title: string(summary.Path), header: mutantHeader, rows: mutantRows(summary.Mutants)})
		}
	}

	return nil
}

// DisplayDiffs shows the comparison diffs as text.
func (t *TUI) DisplayDiffs(ctx context.Context, diffs []m.ReportDiff) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, diff := range diffs {
		text := diff.Diff
		if text == "" {
			text = fmt.Sprintf("%s and %s describe the same mutants", diff.Base, diff.Other)
		}

		t.send(textMsg(text))
	}

	return nil
}

// DisplayOutcomes shows the bulk combinations as a table.
func (t *TUI) DisplayOutcomes(ctx context.Context, outcomes []m.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := fmt.Sprintf("Outcomes (%d, %d failed)", len(outcomes), countFailures(outcomes))
	t.send(tableMsg{title: title, header: outcomeHeader, rows: outcomeRows(outcomes)})

	return nil
}

// DisplayTools shows the supported engines.
func (t *TUI) DisplayTools(ctx context.Context, tools []ToolInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(tableMsg{title: "Tools", header: toolHeader, rows: toolRows(tools)})

	return nil
}

type eventState int

const (
	stateRunning eventState = iota
	stateDone
	stateFailed
)

type eventKey struct {
	checkout m.Path
	kind     m.ToolKind
	label    string
}

type (
	runInfoMsg   RunInfo
	textMsg      string
	doneMsg      struct{}
	toolEventMsg struct {
		key    eventKey
		state  eventState
		detail string
	}
	tableMsg struct {
		title  string
		header []string
		rows   [][]string
	}
)

type toolEvent struct {
	key    eventKey
	state  eventState
	detail string
}

type titledTable struct {
	title string
	table table.Model
}

// runModel is the Bubble Tea model behind TUI.
type runModel struct {
	mode     StartMode
	runs     []RunInfo
	events   []toolEvent
	tables   []titledTable
	texts    []string
	focus    int
	width    int
	height   int
	done     bool
	quitting bool
}

func newRunModel(mode StartMode) runModel {
	return runModel{mode: mode}
}

func (rm runModel) Init() tea.Cmd {
	return nil
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height

		for i := range rm.tables {
			rm.tables[i].table.SetHeight(rm.tableHeight(len(rm.tables[i].table.Rows())))
		}

		return rm, nil
	case runInfoMsg:
		rm.runs = append(rm.runs, RunInfo(msg))
		return rm, nil
	case toolEventMsg:
		return rm.applyEvent(msg), nil
	case tableMsg:
		return rm.addTable(msg), nil
	case textMsg:
		rm.texts = append(rm.texts, string(msg))
		return rm, nil
	case doneMsg:
		rm.done = true
		if len(rm.tables) == 0 && len(rm.texts) == 0 {
			return rm, tea.Quit
		}

		return rm, nil
	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

// applyEvent updates the latest running line with the same key, or appends one.
func (rm runModel) applyEvent(msg toolEventMsg) runModel {
	if msg.state != stateRunning {
		for i := len(rm.events) - 1; i >= 0; i-- {
			if rm.events[i].key == msg.key && rm.events[i].state == stateRunning {
				rm.events[i].state = msg.state
				rm.events[i].detail = msg.detail

				return rm
			}
		}
	}

	rm.events = append(rm.events, toolEvent(msg))

	return rm
}

func (rm runModel) addTable(msg tableMsg) runModel {
	columns := make([]table.Column, len(msg.header))
	for i, title := range msg.header {
		width := len(title)
		for _, row := range msg.rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}

		columns[i] = table.Column{Title: title, Width: min(width, maxColumnWidth)}
	}

	rows := make([]table.Row, len(msg.rows))
	for i, row := range msg.rows {
		rows[i] = table.Row(row)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithStyles(styles),
		table.WithHeight(rm.tableHeight(len(rows))),
	)

	rm.tables = append(rm.tables, titledTable{title: msg.title, table: tbl})
	rm.focus = len(rm.tables) - 1
	rm.focusTables()

	return rm
}

func (rm *runModel) focusTables() {
	for i := range rm.tables {
		if i == rm.focus {
			rm.tables[i].table.Focus()
		} else {
			rm.tables[i].table.Blur()
		}
	}
}

func (rm runModel) tableHeight(rows int) int {
	limit := defaultTableHeight
	if rm.height > reservedLines {
		limit = rm.height - reservedLines
	}

	return max(1, min(rows, limit)) + tableHeaderLines
}

func (rm runModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		rm.quitting = true
		return rm, tea.Quit
	case "tab":
		if len(rm.tables) > 0 {
			rm.focus = (rm.focus + 1) % len(rm.tables)
			rm.focusTables()
		}

		return rm, nil
	}

	if len(rm.tables) == 0 {
		return rm, nil
	}

	var cmd tea.Cmd

	rm.tables[rm.focus].table, cmd = rm.tables[rm.focus].table.Update(msg)

	return rm, cmd
}

func (rm runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mutscore"))
	b.WriteString("\n\n")

	for _, run := range rm.runs {
		fmt.Fprintf(&b, "%s %s %s %s (%s)\n", titleStyle.Render(run.Action), run.Project, run.Bug, run.Class, shortID(run.RunID))
	}

	for _, event := range rm.events {
		b.WriteString(renderEvent(event))
		b.WriteString("\n")
	}

	for i, tt := range rm.tables {
		title := tt.title
		if i == rm.focus && len(rm.tables) > 1 {
			title = "> " + title
		}

		fmt.Fprintf(&b, "\n%s\n%s\n", titleStyle.Render(title), tt.table.View())
	}

	for _, text := range rm.texts {
		fmt.Fprintf(&b, "\n%s\n", text)
	}

	b.WriteString("\n")

	switch {
	case rm.quitting:
	case rm.done:
		b.WriteString(helpStyle.Render("q: quit • tab: next table • ↑/↓: scroll"))
	case rm.mode == ModeRun:
		b.WriteString(helpStyle.Render("running… ctrl+c: abort"))
	}

	b.WriteString("\n")

	return b.String()
}

func renderEvent(event toolEvent) string {
	name := fmt.Sprintf("%-7s %-12s %s", event.key.kind, labelOrDash(event.key.label), event.key.checkout)

	switch event.state {
	case stateDone:
		return killedStyle.Render("✔ "+name) + "  " + event.detail
	case stateFailed:
		return failedStyle.Render("✘ "+name) + "  " + event.detail
	default:
		return runningStyle.Render("… " + name)
	}
}
