package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

const majorLog = `1:ROR:<=(int,int):<(int,int):org.apache.commons.cli.Option@hasArg:120:a <= b |==> a < b
2:ROR:<=(int,int):FALSE(int,int):org.apache.commons.cli.Option@hasArg:120:a <= b |==> false
3:LVR:0:1:org.apache.commons.cli.Option@<init>:88:0 |==> 1
4:COR:&&(boolean,boolean):LHS(boolean,boolean):org.apache.commons.cli.Option@isValid:140:a && b |==> a
5:STD:<NO-OP>:<NO-OP>:org.apache.commons.cli.Option@clear:201:done = false; |==> <NO-OP>
`

const majorKills = `MutantNo,[FAIL | TIME | EXC | LIVE | UNCOV]
1,FAIL
2,LIVE
3,TIME
4,LIVE
5,EXC
`

func TestParseMajor(t *testing.T) {
	t.Run("joins statuses onto described mutants", func(t *testing.T) {
		report, err := ParseMajor([]byte(majorKills), []byte(majorLog))
		require.NoError(t, err)

		assert.Equal(t, m.MutationReport{Killed: 3, Live: 2, All: 5, Score: 0.6, ScoreFull: 0.6}, report)
	})

	t.Run("empty kill table makes every mutant live", func(t *testing.T) {
		log := `1:ROR:a:b:C@m:1:x
2:ROR:a:b:C@m:2:x
3:ROR:a:b:C@m:3:x
4:ROR:a:b:C@m:4:x
`
		for name, kills := range map[string]string{"zero bytes": "", "header only": "MutantNo,Status\n"} {
			t.Run(name, func(t *testing.T) {
				report, err := ParseMajor([]byte(kills), []byte(log))
				require.NoError(t, err)

				assert.Equal(t, m.MutationReport{Killed: 0, Live: 4, All: 4}, report)
			})
		}
	})

	t.Run("mutants missing from the kill table count as killed", func(t *testing.T) {
		report, err := ParseMajor([]byte("MutantNo,Status\n2,LIVE\n"), []byte(majorLog))
		require.NoError(t, err)

		assert.Equal(t, uint(4), report.Killed)
		assert.Equal(t, uint(1), report.Live)
	})

	t.Run("short log line is malformed", func(t *testing.T) {
		_, err := ParseMajor([]byte(majorKills), []byte("1:ROR:a\n"))
		assert.ErrorIs(t, err, m.ErrMalformedReport)
	})

	t.Run("non numeric line number is malformed", func(t *testing.T) {
		_, err := ParseMajor([]byte(majorKills), []byte("1:ROR:a:b:C@m:x:desc\n"))
		assert.ErrorIs(t, err, m.ErrMalformedReport)
	})
}

func TestMajorMutants(t *testing.T) {
	mutants, err := MajorMutants([]byte(majorKills), []byte(majorLog))
	require.NoError(t, err)
	require.Len(t, mutants, 5)

	assert.Equal(t, m.MutantKilled, mutants[0].Status)
	assert.Equal(t, m.MutantLive, mutants[1].Status)
	assert.Equal(t, "ROR", mutants[1].Operator)
	assert.Equal(t, "<=(int,int)", mutants[1].Original)
	assert.Equal(t, "FALSE(int,int)", mutants[1].Mutated)
	assert.Equal(t, "org.apache.commons.cli.Option@hasArg", mutants[1].Method)
	assert.Equal(t, 120, mutants[1].Line)
	assert.Equal(t, "a <= b |==> false", mutants[1].Description)
}
