// Package model defines the data structures shared by the mutation-score pipeline.
package model

import "strings"

// Path represents a file system path.
type Path string

// BugStatus is the status of a checkout's bug version.
type BugStatus string

const (
	// BugBuggy marks a checkout of the buggy version.
	BugBuggy BugStatus = "b"
	// BugFixed marks a checkout of the fixed version.
	BugFixed BugStatus = "f"
)

// SuiteOptions select which test files make up the active suite of a checkout.
type SuiteOptions struct {
	// Group restricts the tool suite to a single student group.
	Group string
	// NoGroups drops every student group from the suite.
	NoGroups bool
	// WithDev adds the whole developer suite.
	WithDev bool
	// WithSingleDev adds only the developer test of the relevant class.
	WithSingleDev bool
	// WithRelevantDev adds the developer tests listed as relevant for the project.
	WithRelevantDev bool
	// SkipSetup reuses the current suite (coverage only).
	SkipSetup bool
}

// Label names the test-group identity used for output subdirectories and
// persisted scores, e.g. "G1", "G1_dev", "_single_dev".
func (o SuiteOptions) Label() string {
	label := strings.ToUpper(o.Group)

	switch {
	case o.WithDev:
		label += "_dev"
	case o.WithSingleDev:
		label += "_single_dev"
	}

	return label
}
