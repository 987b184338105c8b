package step

import (
	"context"
	"fmt"
)

const (
	// DefaultTaskName is the sentinel name reported by BaseTask. Custom tasks must declare a different name.
	DefaultTaskName = "base_task"
	// DefaultContainerName is the sentinel name of the base executable container.
	DefaultContainerName = "executable_container"

	// BaseTaskSymbol is the catalog symbol of the base task class.
	BaseTaskSymbol = "step.BaseTask"
	// BaseContainerSymbol is the catalog symbol of the base executable container class.
	BaseContainerSymbol = "step.ExecutableContainer"
)

// Class is a constructible template for a step. Classes are registered in a plugin catalog under their Symbol and
// are listed by plugin files to make them discoverable.
type Class struct {
	// Symbol identifies the class in plugin files, e.g. "example.Counter".
	Symbol string
	// Kind is the variant of the steps this class constructs.
	Kind Kind
	// Name is the declared unique name of the step.
	Name string
	// New constructs a fresh instance. A nil constructor marks the class as abstract.
	New func() (Step, error)
}

// Abstract returns true if the class cannot be instantiated.
func (c Class) Abstract() bool {
	return c.New == nil
}

// IsBase returns true if the class is one of the two base classes every catalog carries.
func (c Class) IsBase() bool {
	return c.Symbol == BaseTaskSymbol || c.Symbol == BaseContainerSymbol
}

// String returns the symbol and name of the class for log messages.
func (c Class) String() string {
	return fmt.Sprintf("%s (%s %s)", c.Symbol, c.Kind, c.Name)
}

// BaseTaskClass returns the abstract base task class.
func BaseTaskClass() Class {
	return Class{
		Symbol: BaseTaskSymbol,
		Kind:   KindTask,
		Name:   DefaultTaskName,
	}
}

// BaseContainerClass returns the abstract class of the base executable container. Catalogs carry it so plugin files
// may list it without it ever being loaded as a custom container.
func BaseContainerClass() Class {
	return Class{
		Symbol: BaseContainerSymbol,
		Kind:   KindContainer,
		Name:   DefaultContainerName,
	}
}

// BaseTask is meant to be embedded into task implementations. It supplies the task kind and the sentinel name, which
// the embedding type must override.
type BaseTask struct{}

// Name returns the sentinel task name.
func (BaseTask) Name() string {
	return DefaultTaskName
}

// Kind returns KindTask.
func (BaseTask) Kind() Kind {
	return KindTask
}

// Run does nothing.
func (BaseTask) Run(_ context.Context, _ Context) (Signal, error) {
	return SignalContinue, nil
}
