package parsers

import (
	"encoding/json"
	"fmt"
	"strconv"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

type judyReport struct {
	Classes []judyClass `json:"classes"`
}

type judyClass struct {
	Name               string       `json:"name"`
	MutantsCount       uint         `json:"mutantsCount"`
	MutantsKilledCount uint         `json:"mutantsKilledCount"`
	NotKilledMutants   []judyMutant `json:"notKilledMutant"`
}

type judyMutant struct {
	Operators []string `json:"operators"`
	Points    []int    `json:"points"`
	Lines     []int    `json:"lines"`
}

// ParseJudy scores the entry of class in a Judy result.json document.
func ParseJudy(data []byte, class string) (m.MutationReport, error) {
	entry, err := findJudyClass(data, class)
	if err != nil {
		return m.MutationReport{}, err
	}

	if entry.MutantsKilledCount > entry.MutantsCount {
		return m.MutationReport{}, fmt.Errorf("%w: %s has %d killed out of %d mutants",
			m.ErrMalformedReport, class, entry.MutantsKilledCount, entry.MutantsCount)
	}

	return reportFromCounts(entry.MutantsKilledCount, entry.MutantsCount-entry.MutantsKilledCount)
}

// JudyMutants returns the live mutants Judy lists for class. Judy does not
// describe killed mutants.
func JudyMutants(data []byte, class string) ([]m.Mutant, error) {
	entry, err := findJudyClass(data, class)
	if err != nil {
		return nil, err
	}

	seen := occurrences{}
	mutants := make([]m.Mutant, 0, len(entry.NotKilledMutants))

	for _, raw := range entry.NotKilledMutants {
		mutant := m.Mutant{
			Tool:   m.ToolJudy,
			Status: m.MutantLive,
			Class:  class,
		}

		if len(raw.Operators) > 0 {
			mutant.Operator = raw.Operators[0]
		}

		if len(raw.Lines) > 0 {
			mutant.Line = raw.Lines[0]
		}

		seen.identify(&mutant, strconv.Itoa(mutant.Line), mutant.Operator)
		mutants = append(mutants, mutant)
	}

	return mutants, nil
}

func findJudyClass(data []byte, class string) (judyClass, error) {
	var report judyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return judyClass{}, fmt.Errorf("%w: %w", m.ErrMalformedReport, err)
	}

	var (
		matches   []judyClass
		available = make([]string, 0, len(report.Classes))
	)

	for _, entry := range report.Classes {
		available = append(available, entry.Name)

		if entry.Name == class {
			matches = append(matches, entry)
		}
	}

	if len(matches) != 1 {
		return judyClass{}, &m.AmbiguousTargetError{Target: class, Matches: len(matches), Available: available}
	}

	return matches[0], nil
}
