package model

// MutantStatus tells whether a mutant was detected by the active suite.
type MutantStatus string

const (
	// MutantKilled marks a mutant detected by at least one test.
	MutantKilled MutantStatus = "killed"
	// MutantLive marks a mutant no test detected.
	MutantLive MutantStatus = "live"
)

// Mutant is a single mutant extracted from an engine report.
type Mutant struct {
	// ID is a SHA-256 identity over the engine-specific fields and Occurrence.
	ID          string
	Tool        ToolKind
	Status      MutantStatus
	Line        int
	Class       string
	Method      string
	Operator    string
	Original    string
	Mutated     string
	Description string
	Occurrence  int
}
