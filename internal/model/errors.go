package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration indicates a required tool parameter is missing.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnknownTool indicates an unrecognized tool identifier.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrAmbiguousTarget indicates the class under mutation matched zero or several report entries.
	ErrAmbiguousTarget = errors.New("ambiguous target")
	// ErrMissingArtifact indicates an engine did not produce an expected output file.
	ErrMissingArtifact = errors.New("missing artifact")
	// ErrExecutionFailed indicates an engine reported its own failure in its output.
	ErrExecutionFailed = errors.New("execution failed")
	// ErrEmptyReport indicates a report enumerated no mutants.
	ErrEmptyReport = errors.New("report contains no mutants")
	// ErrMalformedReport indicates a report could not be decoded.
	ErrMalformedReport = errors.New("malformed report")
	// ErrInvalidCommand indicates a defects4j subcommand outside the allow-list.
	ErrInvalidCommand = errors.New("invalid defects4j command")
	// ErrIncompatibleProject indicates a checkout of an unsupported project.
	ErrIncompatibleProject = errors.New("incompatible project")
	// ErrNoMatchingGroup indicates a student group matched zero or several suite files.
	ErrNoMatchingGroup = errors.New("no matching student group")
	// ErrMutantsUnavailable indicates a report format does not describe the requested mutants.
	ErrMutantsUnavailable = errors.New("report does not describe these mutants")
	// ErrTooFewReports indicates a comparison was requested with less than two reports.
	ErrTooFewReports = errors.New("too few reports were provided")
)

// ConfigurationError reports a parameter a tool cannot run without.
type ConfigurationError struct {
	Tool  string
	Param string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %q", e.Tool, e.Param)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// UnknownToolError reports an unrecognized tool identifier with the valid set.
type UnknownToolError struct {
	Name  string
	Valid []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("invalid tool provided: %s. Valid tools are [%s]", e.Name, strings.Join(e.Valid, ", "))
}

func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// AmbiguousTargetError reports a class lookup that did not match exactly one entry.
type AmbiguousTargetError struct {
	Target    string
	Matches   int
	Available []string
}

func (e *AmbiguousTargetError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("%s not found in report, available classes are [%s]", e.Target, strings.Join(e.Available, ", "))
	}

	return fmt.Sprintf("%s appears %d times in report", e.Target, e.Matches)
}

func (e *AmbiguousTargetError) Unwrap() error { return ErrAmbiguousTarget }

// MissingArtifactError reports an expected engine output that does not exist.
type MissingArtifactError struct {
	Path Path
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s not found.\n"+
		"If run was executed before, then the tool got an error.\n"+
		"Try re-executing with --stdout and --stderr", e.Path)
}

func (e *MissingArtifactError) Unwrap() error { return ErrMissingArtifact }

// ExecutionFailedError carries the failure reason an engine printed in-band.
type ExecutionFailedError struct {
	Reason        string
	VerboseScript string
}

func (e *ExecutionFailedError) Error() string {
	msg := "cannot find start marker. Engine message: " + e.Reason
	if e.VerboseScript != "" {
		msg += "\nTry running the verbose script to get more detailed information: " + e.VerboseScript
	}

	return msg
}

func (e *ExecutionFailedError) Unwrap() error { return ErrExecutionFailed }
