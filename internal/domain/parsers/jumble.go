package parsers

import (
	"regexp"
	"strconv"
	"unicode"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

// JumbleVerboseScript is the launcher variant that prints Jumble's own diagnostics.
const JumbleVerboseScript = "jumble_verbose.sh"

var (
	jumbleStartPattern = regexp.MustCompile(`Mutation points = \d+, unit test time limit \d+(?:\.\d+)?s`)
	jumbleEndPattern   = regexp.MustCompile(`Jumbling took \d+(?:\.\d+)?s`)
	jumbleLivePattern  = regexp.MustCompile(`M FAIL:\s*([\w.$]+):(\d+):\s*(.+)`)
	jumbleErrorPattern = regexp.MustCompile(`Score: \d+% \(([\w ]+)`)
)

// ParseJumble scores a Jumble console transcript.
//
// Between the start and end markers Jumble prints one "M FAIL" line per live
// mutant and one dot per killed mutant. Live lines are counted and removed,
// then every remaining non-whitespace character counts as a killed mutant, so
// any other noise in that region inflates the killed count.
func ParseJumble(text string) (m.MutationReport, error) {
	region, err := jumbleRegion(text)
	if err != nil {
		return m.MutationReport{}, err
	}

	live := len(jumbleLivePattern.FindAllStringIndex(region, -1))
	leftover := jumbleLivePattern.ReplaceAllString(region, "")

	var killed uint

	for _, r := range leftover {
		if !unicode.IsSpace(r) {
			killed++
		}
	}

	return reportFromCounts(killed, uint(live))
}

// JumbleMutants returns the live mutants of a Jumble transcript. Killed
// mutants are printed as bare dots and carry no description.
func JumbleMutants(text string) ([]m.Mutant, error) {
	region, err := jumbleRegion(text)
	if err != nil {
		return nil, err
	}

	seen := occurrences{}
	matches := jumbleLivePattern.FindAllStringSubmatch(region, -1)
	mutants := make([]m.Mutant, 0, len(matches))

	for _, match := range matches {
		line, _ := strconv.Atoi(match[2])

		mutant := m.Mutant{
			Tool:        m.ToolJumble,
			Status:      m.MutantLive,
			Class:       match[1],
			Line:        line,
			Description: match[3],
		}

		seen.identify(&mutant, match[2], mutant.Description)
		mutants = append(mutants, mutant)
	}

	return mutants, nil
}

// jumbleRegion returns the text strictly between the start and end markers.
func jumbleRegion(text string) (string, error) {
	start := jumbleStartPattern.FindStringIndex(text)

	var end []int
	if start != nil {
		end = jumbleEndPattern.FindStringIndex(text[start[1]:])
	}

	if start == nil || end == nil {
		reason := "no failure reason reported"
		if match := jumbleErrorPattern.FindStringSubmatch(text); match != nil {
			reason = match[1]
		}

		return "", &m.ExecutionFailedError{Reason: reason, VerboseScript: JumbleVerboseScript}
	}

	return text[start[1] : start[1]+end[0]], nil
}
