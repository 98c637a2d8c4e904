package model

import (
	"math"
	"time"
)

// MutationReport is the canonical score record every report parser produces.
type MutationReport struct {
	Killed    uint    `json:"killed"`
	Live      uint    `json:"live"`
	All       uint    `json:"all"`
	Score     float64 `json:"score"`
	ScoreFull float64 `json:"score_full"`
}

// NewMutationReport builds a record from killed and live counts. An empty
// mutant set scores zero.
func NewMutationReport(killed, live uint) MutationReport {
	report := MutationReport{
		Killed: killed,
		Live:   live,
		All:    killed + live,
	}

	if report.All > 0 {
		report.ScoreFull = float64(killed) / float64(report.All)
		report.Score = RoundScore(report.ScoreFull)
	}

	return report
}

// RoundScore rounds a score to three decimals.
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

// ScoreRecord is one persisted score in the ledger.
type ScoreRecord struct {
	RunID     string
	Checkout  Path
	Project   string
	Bug       string
	Tool      string
	Label     string
	Revision  string
	Report    MutationReport
	CreatedAt time.Time
}

// Outcome is the result of one tool run inside a bulk pass.
type Outcome struct {
	Checkout    Path
	Tool        ToolKind
	Combination string
	Report      *MutationReport
	Err         string
}

// Failed reports whether the run ended with an error.
func (o Outcome) Failed() bool {
	return o.Err != ""
}

// ReportSummary is one engine report loaded for analysis.
type ReportSummary struct {
	Path    Path
	Tool    ToolKind
	Class   string
	Report  MutationReport
	Mutants []Mutant
}

// ReportDiff is the unified diff of a report's mutant set against a base report.
type ReportDiff struct {
	Base   Path
	Other  Path
	Killed bool
	Diff   string
}
