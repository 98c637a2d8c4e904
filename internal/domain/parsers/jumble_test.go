package parsers

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

const jumbleTranscript = `Mutating org.apache.commons.lang3.text.StrTokenizer
Tests: org.apache.commons.lang3.text.StrTokenizerTest
Mutation points = 8, unit test time limit 2.53s
. .
M FAIL: org.apache.commons.lang3.text.StrTokenizer:312: negated conditional
M FAIL: org.apache.commons.lang3.text.StrTokenizer:312: negated conditional
.
M FAIL: org.apache.commons.lang3.text.StrTokenizer$Inner:77: -1 -> 0
. .
Jumbling took 41.9s
Score: 62%
`

func TestParseJumble(t *testing.T) {
	t.Run("counts live lines and killed dots", func(t *testing.T) {
		report, err := ParseJumble(jumbleTranscript)
		require.NoError(t, err)

		want := m.MutationReport{Killed: 5, Live: 3, All: 8, Score: 0.625, ScoreFull: 0.625}
		if diff := cmp.Diff(want, report); diff != "" {
			t.Errorf("ParseJumble() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("engine failure carries the reason", func(t *testing.T) {
		text := "Mutating Foo\nScore: 0% (engine crashed)\n"

		_, err := ParseJumble(text)
		require.ErrorIs(t, err, m.ErrExecutionFailed)

		var failed *m.ExecutionFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, "engine crashed", failed.Reason)
		assert.Contains(t, err.Error(), JumbleVerboseScript)
	})

	t.Run("missing end marker is a failure", func(t *testing.T) {
		text := strings.SplitN(jumbleTranscript, "Jumbling took", 2)[0]

		_, err := ParseJumble(text)
		assert.ErrorIs(t, err, m.ErrExecutionFailed)
	})

	t.Run("no markers and no score line", func(t *testing.T) {
		_, err := ParseJumble("java.lang.NoClassDefFoundError\n")

		var failed *m.ExecutionFailedError
		require.ErrorAs(t, err, &failed)
		assert.NotEmpty(t, failed.Reason)
	})

	t.Run("empty region is an empty report", func(t *testing.T) {
		text := "Mutation points = 0, unit test time limit 1.00s\n\nJumbling took 0.1s\n"

		_, err := ParseJumble(text)
		assert.ErrorIs(t, err, m.ErrEmptyReport)
	})
}

func TestJumbleMutants(t *testing.T) {
	mutants, err := JumbleMutants(jumbleTranscript)
	require.NoError(t, err)
	require.Len(t, mutants, 3)

	assert.Equal(t, "org.apache.commons.lang3.text.StrTokenizer", mutants[0].Class)
	assert.Equal(t, 312, mutants[0].Line)
	assert.Equal(t, "negated conditional", mutants[0].Description)
	assert.Equal(t, 1, mutants[1].Occurrence)
	assert.NotEqual(t, mutants[0].ID, mutants[1].ID)
	assert.Equal(t, "org.apache.commons.lang3.text.StrTokenizer$Inner", mutants[2].Class)
}
