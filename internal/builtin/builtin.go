// Package builtin provides the tasks compiled into the assembler binary.
package builtin

import (
	"context"

	"go.flow.arcalot.io/assembler/step"
)

const (
	// EchoName is the name of the echo task.
	EchoName = "echo"
	// StopLoopName is the name of the stop_loop task.
	StopLoopName = "stop_loop"
)

// Classes returns the classes of all built-in tasks.
func Classes() []step.Class {
	return []step.Class{
		{
			Symbol: "builtin.Echo",
			Kind:   step.KindTask,
			Name:   EchoName,
			New: func() (step.Step, error) {
				return &Echo{}, nil
			},
		},
		{
			Symbol: "builtin.StopLoop",
			Kind:   step.KindTask,
			Name:   StopLoopName,
			New: func() (step.Step, error) {
				return &StopLoop{}, nil
			},
		},
	}
}

// Echo logs every invocation together with the configured output directory.
type Echo struct {
	step.BaseTask

	// Calls counts the invocations.
	Calls int
}

// Name returns the name of the echo task.
func (e *Echo) Name() string {
	return EchoName
}

// Run logs the invocation.
func (e *Echo) Run(_ context.Context, c step.Context) (step.Signal, error) {
	e.Calls++
	c.Logger().Infof("Echo call %d, output directory: %s", e.Calls, c.Configuration().Output.Directory)
	return step.SignalContinue, nil
}

// StopLoop ends the enclosing self-looping container after the current pass.
type StopLoop struct {
	step.BaseTask
}

// Name returns the name of the stop_loop task.
func (s *StopLoop) Name() string {
	return StopLoopName
}

// Run requests the loop to stop.
func (s *StopLoop) Run(_ context.Context, c step.Context) (step.Signal, error) {
	c.Logger().Debugf("Requesting the enclosing loop to stop.")
	return step.SignalBreak, nil
}
