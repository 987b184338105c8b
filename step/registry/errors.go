package registry

import (
	"fmt"

	"go.flow.arcalot.io/assembler/step"
)

// ErrDuplicateTask indicates that two different task classes declare the same name.
type ErrDuplicateTask struct {
	Name        string
	FirstSymbol string
	FirstPath   string
	Symbol      string
	Path        string
}

// Error returns the error message.
func (e ErrDuplicateTask) Error() string {
	return fmt.Sprintf(
		"duplicate task name %s found (first: %s from %s, second: %s from %s)",
		e.Name,
		e.FirstSymbol,
		e.FirstPath,
		e.Symbol,
		e.Path,
	)
}

// Unwrap returns a step.ErrDuplicateName so callers can match every naming conflict the same way.
func (e ErrDuplicateTask) Unwrap() error {
	return &step.ErrDuplicateName{Name: e.Name, Symbol: e.Symbol, Path: e.Path}
}
