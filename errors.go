package assembler

import (
	"fmt"

	"go.flow.arcalot.io/assembler/step"
)

// ErrDuplicateContainer indicates that two executable container definitions share a name.
type ErrDuplicateContainer struct {
	Name string
}

// Error returns the error message.
func (e ErrDuplicateContainer) Error() string {
	return fmt.Sprintf("duplicate executable container name %s found", e.Name)
}

// Unwrap returns a step.ErrDuplicateName so callers can match every naming conflict the same way.
func (e ErrDuplicateContainer) Unwrap() error {
	return &step.ErrDuplicateName{Name: e.Name, Symbol: "executable_containers", Path: "configuration"}
}
