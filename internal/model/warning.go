package model

import "fmt"

// WarningKind classifies a recoverable condition collected during a run.
type WarningKind string

const (
	WarningUnresolvedDependency WarningKind = "unresolved-dependency"
	WarningMalformedModule      WarningKind = "malformed-module"
	WarningDependencyCycle      WarningKind = "dependency-cycle"
	WarningSelfDependency       WarningKind = "self-dependency"
	WarningMissingCategory      WarningKind = "missing-category"
	WarningEmptyOutput          WarningKind = "empty-output"
)

// Warning is a non-fatal issue reported once at the end of a run.
type Warning struct {
	Kind    WarningKind
	Tag     string
	Path    string
	Message string
	Err     error
}

// NewWarning builds a warning whose message is taken from err.
func NewWarning(kind WarningKind, tag, path string, err error) Warning {
	w := Warning{Kind: kind, Tag: tag, Path: path, Err: err}
	if err != nil {
		w.Message = err.Error()
	}
	return w
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// Informational reports whether the warning only exists for visibility.
func (w Warning) Informational() bool {
	return w.Kind == WarningDependencyCycle
}
