package plugin

import "fmt"

// ErrLoad indicates that a plugin file could not be loaded.
type ErrLoad struct {
	Path   string
	Reason string
	Cause  error
}

// Error returns the error message.
func (e ErrLoad) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to load plugin file %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("failed to load plugin file %s: %s (%v)", e.Path, e.Reason, e.Cause)
}

// Unwrap returns the underlying cause, if any.
func (e ErrLoad) Unwrap() error {
	return e.Cause
}

// ErrUnknownSymbol indicates that a plugin file references a symbol that is not compiled in.
type ErrUnknownSymbol struct {
	Symbol string
}

// Error returns the error message.
func (e ErrUnknownSymbol) Error() string {
	return fmt.Sprintf("symbol %s is not registered in the plugin catalog", e.Symbol)
}
