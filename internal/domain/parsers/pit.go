package parsers

import (
	"encoding/xml"
	"fmt"
	"strconv"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

type pitReport struct {
	XMLName   xml.Name
	Mutations []pitMutation `xml:",any"`
}

type pitMutation struct {
	XMLName           xml.Name
	Detected          string `xml:"detected,attr"`
	Status            string `xml:"status,attr"`
	SourceFile        string `xml:"sourceFile"`
	MutatedClass      string `xml:"mutatedClass"`
	MutatedMethod     string `xml:"mutatedMethod"`
	MethodDescription string `xml:"methodDescription"`
	LineNumber        int    `xml:"lineNumber"`
	Mutator           string `xml:"mutator"`
	Index             int    `xml:"index"`
	Block             int    `xml:"block"`
	Description       string `xml:"description"`
}

func (p pitMutation) killed() (bool, error) {
	switch p.Detected {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: mutation on line %d has detected=%q", m.ErrMalformedReport, p.LineNumber, p.Detected)
	}
}

// ParsePit scores a Pit mutations.xml document. Each child of the root
// element is one mutant.
func ParsePit(data []byte) (m.MutationReport, error) {
	report, err := decodePit(data)
	if err != nil {
		return m.MutationReport{}, err
	}

	var killed, live uint

	for _, mutation := range report.Mutations {
		detected, err := mutation.killed()
		if err != nil {
			return m.MutationReport{}, err
		}

		if detected {
			killed++
		} else {
			live++
		}
	}

	return reportFromCounts(killed, live)
}

// PitMutants returns one record per mutation element.
func PitMutants(data []byte) ([]m.Mutant, error) {
	report, err := decodePit(data)
	if err != nil {
		return nil, err
	}

	seen := occurrences{}
	mutants := make([]m.Mutant, 0, len(report.Mutations))

	for _, raw := range report.Mutations {
		detected, err := raw.killed()
		if err != nil {
			return nil, err
		}

		status := m.MutantLive
		if detected {
			status = m.MutantKilled
		}

		mutant := m.Mutant{
			Tool:        m.ToolPit,
			Status:      status,
			Line:        raw.LineNumber,
			Class:       raw.MutatedClass,
			Method:      raw.MutatedMethod + raw.MethodDescription,
			Operator:    raw.Mutator,
			Description: raw.Description,
		}

		seen.identify(&mutant,
			strconv.Itoa(raw.LineNumber), raw.MutatedClass, raw.MutatedMethod, raw.MethodDescription,
			raw.Mutator, raw.Description, strconv.Itoa(raw.Index), strconv.Itoa(raw.Block))
		mutants = append(mutants, mutant)
	}

	return mutants, nil
}

func decodePit(data []byte) (pitReport, error) {
	var report pitReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return pitReport{}, fmt.Errorf("%w: %w", m.ErrMalformedReport, err)
	}

	return report, nil
}
