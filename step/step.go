package step

import (
	"context"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler/config"
)

// Kind is the sealed set of step variants.
type Kind string

const (
	// KindTask is a single executable unit.
	KindTask Kind = "task"
	// KindContainer is an executable container grouping other steps.
	KindContainer Kind = "executable_container"
)

// Kinds returns the default entry resolution order: tasks first, then containers.
func Kinds() []Kind {
	return []Kind{KindTask, KindContainer}
}

// Signal is the control value a step returns from Run.
type Signal int

const (
	// SignalContinue lets the enclosing container carry on as normal.
	SignalContinue Signal = iota
	// SignalBreak asks the nearest enclosing self-looping container to stop after its current pass.
	SignalBreak
)

// String returns the human-readable name of the signal.
func (s Signal) String() string {
	switch s {
	case SignalContinue:
		return "continue"
	case SignalBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Step is anything that can be placed in a pipeline.
type Step interface {
	// Name returns the unique name the step is referenced by.
	Name() string
	// Kind returns the variant of the step.
	Kind() Kind
	// Run executes the step. The passed Context gives access to the sibling steps and the configuration of the
	// orchestrator running the step.
	Run(ctx context.Context, c Context) (Signal, error)
}

// Context is the view of the orchestrator every step receives when it runs.
type Context interface {
	// GetTask returns the live task instance registered under name.
	GetTask(name string) (Step, error)
	// GetContainer returns the live executable container registered under name.
	GetContainer(name string) (Step, error)
	// Configuration returns the read-only configuration of the orchestrator.
	Configuration() *config.Config
	// Logger returns the logger of the orchestrator.
	Logger() log.Logger
}

// Lookup resolves name against the context for a single kind.
func Lookup(c Context, kind Kind, name string) (Step, error) {
	switch kind {
	case KindTask:
		return c.GetTask(name)
	case KindContainer:
		return c.GetContainer(name)
	default:
		return nil, &ErrUnknownKind{Kind: string(kind)}
	}
}
