package errors

import (
	"fmt"
	"strings"
)

// Location identifies a position inside a scanned source module.
type Location struct {
	Path string
	Line int
}

func (l Location) String() string {
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.Path, l.Line)
	}
	return l.Path
}

// ParseError represents a parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DuplicateTagError is returned when two modules claim the same custom element tag.
type DuplicateTagError struct {
	Tag    string
	First  Location
	Second Location
}

func (e *DuplicateTagError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf(
		"duplicate tag %q declared in %s and %s\nHint: every custom element name may be defined only once",
		e.Tag, e.First, e.Second,
	)
}

// DuplicateTagsError aggregates every duplicate found in a single registry build.
type DuplicateTagsError struct {
	Errs []*DuplicateTagError
}

func (e *DuplicateTagsError) Error() string {
	if e == nil || len(e.Errs) == 0 {
		return ""
	}
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}

	lines := make([]string, 0, len(e.Errs))
	for _, dup := range e.Errs {
		lines = append(lines, fmt.Sprintf("%q declared in %s and %s", dup.Tag, dup.First, dup.Second))
	}
	return fmt.Sprintf(
		"%d duplicate tags:\n  %s\nHint: every custom element name may be defined only once",
		len(e.Errs), strings.Join(lines, "\n  "),
	)
}

// Unwrap exposes each duplicate so errors.As finds a *DuplicateTagError.
func (e *DuplicateTagsError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, len(e.Errs))
	for i, dup := range e.Errs {
		errs[i] = dup
	}
	return errs
}

// Tags lists the duplicated tag names in the order they were found.
func (e *DuplicateTagsError) Tags() []string {
	tags := make([]string, len(e.Errs))
	for i, dup := range e.Errs {
		tags[i] = dup.Tag
	}
	return tags
}

// UnresolvedDependencyError reports a dependency annotation naming an unknown tag.
type UnresolvedDependencyError struct {
	Tag        string
	Dependency string
	Source     Location
}

func (e *UnresolvedDependencyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf(
		"%q (%s) depends on unknown tag %q; import omitted",
		e.Tag, e.Source, e.Dependency,
	)
}

// MalformedModuleError reports a module whose annotations could not be turned into a descriptor.
type MalformedModuleError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedModuleError) Error() string {
	if e == nil {
		return ""
	}
	loc := Location{Path: e.Path, Line: e.Line}
	return fmt.Sprintf("malformed module %s: %s; module skipped", loc, e.Reason)
}

// CycleError describes a dependency cycle between tags.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	if e == nil || len(e.Cycle) == 0 {
		return "dependency cycle detected"
	}
	sequence := append(append([]string{}, e.Cycle...), e.Cycle[0])
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(sequence, " -> "))
}

// IOError represents a file-system failure while cleaning or emitting output.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// NewIOError constructs an IOError.
func NewIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

func (e *IOError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
