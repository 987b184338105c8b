// Package container provides the executable container: a named, ordered group of steps that can repeat itself.
package container

import (
	"context"
	"errors"
	"fmt"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler/step"
)

// DefaultEntriesReference is the configuration key holding the entry names of a container.
const DefaultEntriesReference = "entries"

// DefaultSelfLoop is the self loop capability of containers whose configuration does not set one.
const DefaultSelfLoop = false

// Container is implemented by the executable container and by every custom container embedding it.
type Container interface {
	step.Step
	// Executable returns the underlying executable container.
	Executable() *ExecutableContainer
}

// Setuper is the capability custom containers loaded from plugin files must provide.
type Setuper interface {
	Setup() error
}

// ExecutableContainer runs its entries in order and, if allowed to, repeats them until an entry asks it to stop.
type ExecutableContainer struct {
	// ContainerName is the unique name of the container.
	ContainerName string
	// SelfLoop is the capability of the container to repeat its entries.
	SelfLoop bool
	// DoSelfLoop is set while repetition is active. Run sets it from SelfLoop and clears it once an entry returns
	// step.SignalBreak or calls StopLoop.
	DoSelfLoop bool
	// EntriesNames lists the names of the tasks and containers to run, in order.
	EntriesNames []string
	// Entries holds the entries resolved during the last pass.
	Entries []step.Step
	// EntriesTypeNames restricts and orders the kinds entry names are resolved against. Empty means tasks first,
	// then containers.
	EntriesTypeNames []step.Kind
	// Logger is an optional logger. If nil, the logger of the running context is used.
	Logger log.Logger
}

// New creates an executable container with default settings. An empty name is replaced by the base container name.
func New(name string) *ExecutableContainer {
	if name == "" {
		name = step.DefaultContainerName
	}
	return &ExecutableContainer{
		ContainerName:    name,
		SelfLoop:         DefaultSelfLoop,
		EntriesNames:     []string{},
		Entries:          []step.Step{},
		EntriesTypeNames: []step.Kind{},
	}
}

// Name returns the name of the container.
func (c *ExecutableContainer) Name() string {
	return c.ContainerName
}

// Kind returns step.KindContainer.
func (c *ExecutableContainer) Kind() step.Kind {
	return step.KindContainer
}

// Executable returns the container itself.
func (c *ExecutableContainer) Executable() *ExecutableContainer {
	return c
}

// StopLoop clears the repetition flag. The current pass still runs to completion.
func (c *ExecutableContainer) StopLoop() {
	c.DoSelfLoop = false
}

// Run resolves and executes all entries in order. A self-looping container repeats the whole sequence until a pass
// ends with the repetition flag cleared. The flag is sampled once per pass, after the last entry finished.
//
// A self-looping container consumes a step.SignalBreak from its entries, any other container passes it on to its
// parent.
func (c *ExecutableContainer) Run(ctx context.Context, sc step.Context) (step.Signal, error) {
	logger := c.logger(sc)
	c.DoSelfLoop = c.SelfLoop
	breakRequested := false
	for pass := 1; ; pass++ {
		logger.Debugf("Starting pass %d of container %s...", pass, c.ContainerName)
		entries, err := c.resolveEntries(sc)
		if err != nil {
			return step.SignalContinue, err
		}
		c.Entries = entries

		passBreak := false
		for _, entry := range entries {
			logger.Debugf("Running %s %s...", entry.Kind(), entry.Name())
			signal, err := entry.Run(ctx, sc)
			if err != nil {
				return step.SignalContinue, fmt.Errorf(
					"%s %s failed in container %s (%w)",
					entry.Kind(),
					entry.Name(),
					c.ContainerName,
					err,
				)
			}
			if signal == step.SignalBreak {
				passBreak = true
			}
		}
		if passBreak {
			breakRequested = true
			c.DoSelfLoop = false
		}
		if !c.SelfLoop || !c.DoSelfLoop {
			logger.Debugf("Container %s finished after %d pass(es).", c.ContainerName, pass)
			break
		}
		if err := ctx.Err(); err != nil {
			return step.SignalContinue, fmt.Errorf(
				"container %s cancelled after %d pass(es) (%w)",
				c.ContainerName,
				pass,
				err,
			)
		}
	}
	if breakRequested && !c.SelfLoop {
		return step.SignalBreak, nil
	}
	return step.SignalContinue, nil
}

func (c *ExecutableContainer) resolveEntries(sc step.Context) ([]step.Step, error) {
	kinds := c.EntriesTypeNames
	if len(kinds) == 0 {
		kinds = step.Kinds()
	}
	entries := make([]step.Step, 0, len(c.EntriesNames))
	for _, name := range c.EntriesNames {
		entry, err := resolve(sc, kinds, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve entry %s of container %s (%w)", name, c.ContainerName, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func resolve(sc step.Context, kinds []step.Kind, name string) (step.Step, error) {
	for _, kind := range kinds {
		entry, err := step.Lookup(sc, kind, name)
		if err == nil {
			return entry, nil
		}
		var notFound *step.ErrNotFound
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	if len(kinds) == 1 {
		return nil, &step.ErrNotFound{Kind: kinds[0], Name: name}
	}
	return nil, &step.ErrNotFound{Name: name}
}

func (c *ExecutableContainer) logger(sc step.Context) log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return sc.Logger()
}
