package container_test

import (
	"context"
	"fmt"
	"testing"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler/config"
	"go.flow.arcalot.io/assembler/step"
)

// testContext is a minimal orchestrator backed by two maps.
type testContext struct {
	tasks      map[string]step.Step
	containers map[string]step.Step
	logger     log.Logger
}

func newTestContext(t *testing.T) *testContext {
	return &testContext{
		tasks:      map[string]step.Step{},
		containers: map[string]step.Step{},
		logger:     log.NewTestLogger(t),
	}
}

func (c *testContext) GetTask(name string) (step.Step, error) {
	if s, ok := c.tasks[name]; ok {
		return s, nil
	}
	return nil, &step.ErrNotFound{Kind: step.KindTask, Name: name}
}

func (c *testContext) GetContainer(name string) (step.Step, error) {
	if s, ok := c.containers[name]; ok {
		return s, nil
	}
	return nil, &step.ErrNotFound{Kind: step.KindContainer, Name: name}
}

func (c *testContext) Configuration() *config.Config {
	return config.Default()
}

func (c *testContext) Logger() log.Logger {
	return c.logger
}

// recordingTask appends its name to a shared trace on every run. It returns step.SignalBreak starting with the
// breakAt-th call if breakAt is positive, and calls onRun before returning.
type recordingTask struct {
	step.BaseTask
	name    string
	trace   *[]string
	calls   int
	breakAt int
	err     error
	onRun   func(c step.Context)
}

func (r *recordingTask) Name() string {
	return r.name
}

func (r *recordingTask) Run(_ context.Context, c step.Context) (step.Signal, error) {
	r.calls++
	*r.trace = append(*r.trace, r.name)
	if r.err != nil {
		return step.SignalContinue, r.err
	}
	if r.onRun != nil {
		r.onRun(c)
	}
	if r.breakAt > 0 && r.calls >= r.breakAt {
		return step.SignalBreak, nil
	}
	return step.SignalContinue, nil
}

func (c *testContext) addTask(name string, trace *[]string) *recordingTask {
	task := &recordingTask{name: name, trace: trace}
	c.tasks[name] = task
	return task
}

func (c *testContext) addContainer(s step.Step) {
	if _, ok := c.containers[s.Name()]; ok {
		panic(fmt.Errorf("duplicate container %s", s.Name()))
	}
	c.containers[s.Name()] = s
}
