// Package parsers turns the raw reports of each mutation engine into the
// canonical score record and into per-mutant records.
package parsers

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

// occurrences numbers mutants sharing the same identifying fields within a
// single report, so repeated mutants on one line keep distinct identities.
type occurrences map[string]int

func (o occurrences) identify(mutant *m.Mutant, fields ...string) {
	key := mutant.Tool.String() + "_" + strings.Join(fields, "_")

	mutant.Occurrence = o[key]
	o[key]++

	sum := sha256.Sum256([]byte(key + "_" + strconv.Itoa(mutant.Occurrence)))
	mutant.ID = hex.EncodeToString(sum[:])
}

func reportFromCounts(killed, live uint) (m.MutationReport, error) {
	if killed+live == 0 {
		return m.MutationReport{}, m.ErrEmptyReport
	}

	return m.NewMutationReport(killed, live), nil
}
