package parsers

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

const (
	majorLiveStatus   = "LIVE"
	majorMutantFields = 7
)

// majorMutant is one row of Major's colon-delimited mutants.log.
type majorMutant struct {
	id          string
	operator    string
	from        string
	to          string
	signature   string
	line        int
	description string
}

// ParseMajor scores Major's kill.csv against its mutants.log.
//
// An empty kill table means no test ran against the mutants, so every described
// mutant counts as live. Otherwise mutants whose status is LIVE are live and
// every other described mutant, including those absent from the kill table,
// is killed.
func ParseMajor(killCSV, mutantsLog []byte) (m.MutationReport, error) {
	statuses, err := readMajorKills(killCSV)
	if err != nil {
		return m.MutationReport{}, err
	}

	described, err := readMajorMutants(mutantsLog)
	if err != nil {
		return m.MutationReport{}, err
	}

	total := uint(len(described))
	if len(statuses) == 0 {
		return m.NewMutationReport(0, total), nil
	}

	var live uint

	for _, mutant := range described {
		if statuses[mutant.id] == majorLiveStatus {
			live++
		}
	}

	return m.NewMutationReport(total-live, live), nil
}

// MajorMutants joins the two Major artifacts into per-mutant records.
func MajorMutants(killCSV, mutantsLog []byte) ([]m.Mutant, error) {
	statuses, err := readMajorKills(killCSV)
	if err != nil {
		return nil, err
	}

	described, err := readMajorMutants(mutantsLog)
	if err != nil {
		return nil, err
	}

	seen := occurrences{}
	mutants := make([]m.Mutant, 0, len(described))

	for _, raw := range described {
		status := m.MutantKilled
		if len(statuses) == 0 || statuses[raw.id] == majorLiveStatus {
			status = m.MutantLive
		}

		mutant := m.Mutant{
			Tool:        m.ToolMajor,
			Status:      status,
			Line:        raw.line,
			Method:      raw.signature,
			Operator:    raw.operator,
			Original:    raw.from,
			Mutated:     raw.to,
			Description: raw.description,
		}

		seen.identify(&mutant, raw.operator, raw.from, raw.to, raw.signature, strconv.Itoa(raw.line), raw.description)
		mutants = append(mutants, mutant)
	}

	return mutants, nil
}

// readMajorKills maps mutant ids to their status. The first record is a header.
func readMajorKills(data []byte) (map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	statuses := make(map[string]string)
	header := true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: kill table: %w", m.ErrMalformedReport, err)
		}

		if header {
			header = false

			continue
		}

		if len(record) < 2 {
			return nil, fmt.Errorf("%w: kill table row %v has %d fields", m.ErrMalformedReport, record, len(record))
		}

		statuses[strings.TrimSpace(record[0])] = strings.TrimSpace(record[1])
	}

	return statuses, nil
}

func readMajorMutants(data []byte) ([]majorMutant, error) {
	var mutants []majorMutant

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		// The description is the last field and may itself contain colons.
		fields := strings.SplitN(text, ":", majorMutantFields)
		if len(fields) < majorMutantFields {
			return nil, fmt.Errorf("%w: mutants log line %d has %d fields", m.ErrMalformedReport, lineNo, len(fields))
		}

		line, err := strconv.Atoi(strings.TrimSpace(fields[5]))
		if err != nil {
			return nil, fmt.Errorf("%w: mutants log line %d: %w", m.ErrMalformedReport, lineNo, err)
		}

		mutants = append(mutants, majorMutant{
			id:          strings.TrimSpace(fields[0]),
			operator:    fields[1],
			from:        fields[2],
			to:          fields[3],
			signature:   fields[4],
			line:        line,
			description: fields[6],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: mutants log: %w", m.ErrMalformedReport, err)
	}

	return mutants, nil
}
