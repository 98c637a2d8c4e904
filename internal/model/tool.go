package model

import "strings"

// ToolKind identifies one of the supported mutation engines. The set is
// closed: every switch over ToolKind handles all four values.
type ToolKind int

const (
	// ToolJudy writes a JSON class report (result.json).
	ToolJudy ToolKind = iota
	// ToolJumble writes a console transcript (jumble_output.txt).
	ToolJumble
	// ToolMajor is driven by defects4j and writes kill.csv plus mutants.log.
	ToolMajor
	// ToolPit writes an XML mutation list (pit_report/mutations.xml).
	ToolPit
)

var toolNames = [...]string{
	ToolJudy:   "judy",
	ToolJumble: "jumble",
	ToolMajor:  "major",
	ToolPit:    "pit",
}

func (k ToolKind) String() string {
	if k < 0 || int(k) >= len(toolNames) {
		return "unknown"
	}

	return toolNames[k]
}

// DisplayName returns the capitalized adapter name used in log lines.
func (k ToolKind) DisplayName() string {
	name := k.String()

	return strings.ToUpper(name[:1]) + name[1:] + "Tool"
}

// ToolKinds returns every engine in the fixed batch order.
func ToolKinds() []ToolKind {
	return []ToolKind{ToolJudy, ToolJumble, ToolMajor, ToolPit}
}

// ToolNames returns the identifiers of every engine in the fixed batch order.
func ToolNames() []string {
	kinds := ToolKinds()

	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}

	return names
}

// ParseToolKind resolves a tool identifier.
func ParseToolKind(name string) (ToolKind, error) {
	wanted := strings.ToLower(strings.TrimSpace(name))

	for _, kind := range ToolKinds() {
		if kind.String() == wanted {
			return kind, nil
		}
	}

	return 0, &UnknownToolError{Name: name, Valid: ToolNames()}
}

// ToolParams are the per-invocation parameters of one adapter lifecycle.
type ToolParams struct {
	// Tests is the test selector: a space-separated class list (Jumble) or a glob (Pit).
	Tests string
	// Class is the fully-qualified class under mutation; the adapter's class is used when empty.
	Class string
	// Mutations is the mutation-operator subset (Jumble only).
	Mutations string
	// Stdout forwards the engine's standard output.
	Stdout bool
	// Stderr forwards the engine's standard error.
	Stderr bool
}
