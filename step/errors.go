package step

import (
	"fmt"
	"strings"
)

// ErrMissingName indicates that a configuration fragment or a class lacks the required unique name.
type ErrMissingName struct {
	// Source describes where the name was expected.
	Source string
}

// Error returns the error message.
func (e ErrMissingName) Error() string {
	return fmt.Sprintf("no name provided for %s", e.Source)
}

// ErrDuplicateName indicates that a class reuses the base sentinel name or a name already taken by another class.
type ErrDuplicateName struct {
	Name   string
	Symbol string
	Path   string
}

// Error returns the error message.
func (e ErrDuplicateName) Error() string {
	if e.Name == DefaultTaskName || e.Name == DefaultContainerName {
		return fmt.Sprintf(
			"class %s from file %s does not have a unique name (%s is reserved for the base type), all custom "+
				"steps must declare a unique name that is used for future reference",
			e.Symbol,
			e.Path,
			e.Name,
		)
	}
	return fmt.Sprintf("class %s from file %s reuses the already registered name %s", e.Symbol, e.Path, e.Name)
}

// ErrMissingCapability indicates that a class lacks a capability it must provide.
type ErrMissingCapability struct {
	Name       string
	Capability string
}

// Error returns the error message.
func (e ErrMissingCapability) Error() string {
	return fmt.Sprintf("%s does not provide the %s capability", e.Name, e.Capability)
}

// ErrNotFound signals that a step name was not found among the registered or discovered entries.
type ErrNotFound struct {
	Kind       Kind
	Name       string
	ValidNames []string
}

// Error returns the error message.
func (e ErrNotFound) Error() string {
	kind := string(e.Kind)
	if kind == "" {
		kind = "step"
	}
	if len(e.ValidNames) == 0 {
		return fmt.Sprintf("%s %s not found", kind, e.Name)
	}
	return fmt.Sprintf(
		"%s %s not found (available: %s)",
		kind,
		e.Name,
		strings.Join(e.ValidNames, ", "),
	)
}

// ErrInstantiation indicates that constructing an instance of a class failed.
type ErrInstantiation struct {
	Name  string
	Cause error
}

// Error returns the error message.
func (e ErrInstantiation) Error() string {
	return fmt.Sprintf("failed to instantiate %s (%v)", e.Name, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ErrInstantiation) Unwrap() error {
	return e.Cause
}

// ErrUnknownKind indicates a kind name outside the sealed set of step kinds.
type ErrUnknownKind struct {
	Kind string
}

// Error returns the error message.
func (e ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown step kind %s (only %s and %s are supported)", e.Kind, KindTask, KindContainer)
}
