package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

const judyResult = `{
  "classes": [
    {"name": "org.apache.commons.cli.Option", "mutantsCount": 10, "mutantsKilledCount": 7,
     "notKilledMutant": [
       {"operators": ["AIR_Add"], "points": [3], "lines": [42]},
       {"operators": ["AIR_Add"], "points": [3], "lines": [42]},
       {"operators": ["JIR_Ifeq"], "points": [9], "lines": [77]}
     ]},
    {"name": "org.apache.commons.cli.Options", "mutantsCount": 4, "mutantsKilledCount": 4}
  ]
}`

func TestParseJudy(t *testing.T) {
	t.Run("scores the requested class", func(t *testing.T) {
		report, err := ParseJudy([]byte(judyResult), "org.apache.commons.cli.Option")
		require.NoError(t, err)

		assert.Equal(t, m.MutationReport{Killed: 7, Live: 3, All: 10, Score: 0.7, ScoreFull: 0.7}, report)
	})

	t.Run("missing class lists the available ones", func(t *testing.T) {
		_, err := ParseJudy([]byte(judyResult), "org.apache.commons.cli.Parser")
		require.ErrorIs(t, err, m.ErrAmbiguousTarget)

		var target *m.AmbiguousTargetError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 0, target.Matches)
		assert.Contains(t, err.Error(), "org.apache.commons.cli.Options")
	})

	t.Run("duplicate class entries are ambiguous", func(t *testing.T) {
		doc := `{"classes":[{"name":"A","mutantsCount":1,"mutantsKilledCount":1},{"name":"A","mutantsCount":2,"mutantsKilledCount":0}]}`

		_, err := ParseJudy([]byte(doc), "A")
		require.ErrorIs(t, err, m.ErrAmbiguousTarget)
		assert.Contains(t, err.Error(), "appears 2 times")
	})

	t.Run("zero mutants is an empty report", func(t *testing.T) {
		doc := `{"classes":[{"name":"A","mutantsCount":0,"mutantsKilledCount":0}]}`

		_, err := ParseJudy([]byte(doc), "A")
		assert.ErrorIs(t, err, m.ErrEmptyReport)
	})

	t.Run("more killed than generated is malformed", func(t *testing.T) {
		doc := `{"classes":[{"name":"A","mutantsCount":2,"mutantsKilledCount":3}]}`

		_, err := ParseJudy([]byte(doc), "A")
		assert.ErrorIs(t, err, m.ErrMalformedReport)
	})

	t.Run("invalid json is malformed", func(t *testing.T) {
		_, err := ParseJudy([]byte("{"), "A")
		assert.ErrorIs(t, err, m.ErrMalformedReport)
	})
}

func TestJudyMutants(t *testing.T) {
	mutants, err := JudyMutants([]byte(judyResult), "org.apache.commons.cli.Option")
	require.NoError(t, err)
	require.Len(t, mutants, 3)

	assert.Equal(t, "AIR_Add", mutants[0].Operator)
	assert.Equal(t, 42, mutants[0].Line)
	assert.Equal(t, m.MutantLive, mutants[0].Status)

	// Identical mutants on one line keep distinct identities.
	assert.Equal(t, 0, mutants[0].Occurrence)
	assert.Equal(t, 1, mutants[1].Occurrence)
	assert.NotEqual(t, mutants[0].ID, mutants[1].ID)
	assert.Len(t, mutants[2].ID, 64)
}
