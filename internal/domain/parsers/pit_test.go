package parsers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

func pitDocument(detected ...string) string {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<mutations>\n")

	for i, d := range detected {
		fmt.Fprintf(&b, `<mutation detected='%s' status='%s' numberOfTestsRun='3'>`+
			`<sourceFile>Gson.java</sourceFile>`+
			`<mutatedClass>com.google.gson.Gson</mutatedClass>`+
			`<mutatedMethod>toJson</mutatedMethod>`+
			`<methodDescription>(Ljava/lang/Object;)Ljava/lang/String;</methodDescription>`+
			`<lineNumber>%d</lineNumber>`+
			`<mutator>org.pitest.mutationtest.engine.gregor.mutators.NegateConditionalsMutator</mutator>`+
			`<index>%d</index><block>0</block>`+
			`<description>negated conditional</description>`+
			"</mutation>\n", d, map[string]string{"true": "KILLED", "false": "SURVIVED"}[d], 100+i, i)
	}

	b.WriteString("</mutations>\n")

	return b.String()
}

func TestParsePit(t *testing.T) {
	t.Run("counts detected children", func(t *testing.T) {
		doc := pitDocument("true", "false", "true", "true", "false", "true")

		report, err := ParsePit([]byte(doc))
		require.NoError(t, err)

		assert.Equal(t, uint(4), report.Killed)
		assert.Equal(t, uint(2), report.Live)
		assert.Equal(t, uint(6), report.All)
		assert.InDelta(t, 0.667, report.Score, 1e-9)
		assert.InDelta(t, 4.0/6.0, report.ScoreFull, 1e-12)
	})

	t.Run("no mutations is an empty report", func(t *testing.T) {
		_, err := ParsePit([]byte(pitDocument()))
		assert.ErrorIs(t, err, m.ErrEmptyReport)
	})

	t.Run("unexpected detected value is malformed", func(t *testing.T) {
		_, err := ParsePit([]byte(pitDocument("maybe")))
		assert.ErrorIs(t, err, m.ErrMalformedReport)
	})

	t.Run("broken xml is malformed", func(t *testing.T) {
		_, err := ParsePit([]byte("<mutations><mutation"))
		assert.ErrorIs(t, err, m.ErrMalformedReport)
	})
}

func TestPitMutants(t *testing.T) {
	mutants, err := PitMutants([]byte(pitDocument("true", "false")))
	require.NoError(t, err)
	require.Len(t, mutants, 2)

	assert.Equal(t, m.MutantKilled, mutants[0].Status)
	assert.Equal(t, m.MutantLive, mutants[1].Status)
	assert.Equal(t, "com.google.gson.Gson", mutants[0].Class)
	assert.Equal(t, 100, mutants[0].Line)
	assert.Equal(t, "toJson(Ljava/lang/Object;)Ljava/lang/String;", mutants[0].Method)
	assert.NotEqual(t, mutants[0].ID, mutants[1].ID)
}
