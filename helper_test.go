package assembler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.arcalot.io/assert"
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler"
	"go.flow.arcalot.io/assembler/config"
	"go.flow.arcalot.io/assembler/internal/builtin"
	"go.flow.arcalot.io/assembler/plugin"
	"go.flow.arcalot.io/assembler/step"
	"go.flow.arcalot.io/assembler/step/container"
)

// countingTask counts its invocations and returns step.SignalBreak from the breakAt-th one on.
type countingTask struct {
	step.BaseTask
	name    string
	calls   int
	breakAt int
}

func (c *countingTask) Name() string {
	return c.name
}

func (c *countingTask) Run(_ context.Context, _ step.Context) (step.Signal, error) {
	c.calls++
	if c.breakAt > 0 && c.calls >= c.breakAt {
		return step.SignalBreak, nil
	}
	return step.SignalContinue, nil
}

// fileStage is a custom container loaded from a plugin file.
type fileStage struct {
	*container.ExecutableContainer
}

func (f *fileStage) Setup() error {
	f.EntriesNames = []string{builtin.EchoName}
	return nil
}

func taskClass(symbol string, name string, newFn func() (step.Step, error)) step.Class {
	return step.Class{Symbol: symbol, Kind: step.KindTask, Name: name, New: newFn}
}

// testClasses returns the built-in tasks and a few test classes. Constructed instances are recorded in instances.
func testClasses(instances map[string]*countingTask) []step.Class {
	counting := func(name string, breakAt int) func() (step.Step, error) {
		return func() (step.Step, error) {
			task := &countingTask{name: name, breakAt: breakAt}
			instances[name] = task
			return task, nil
		}
	}
	classes := builtin.Classes()
	return append(classes,
		taskClass("example.AOk", "a_ok", counting("a_ok", 0)),
		taskClass("example.BFail", "b_fail", func() (step.Step, error) {
			return nil, errors.New("missing credentials")
		}),
		taskClass("example.BPanic", "b_panic", func() (step.Step, error) {
			panic("constructor bug")
		}),
		taskClass("example.BWrongName", "b_wrong_name", counting("something_else", 0)),
		taskClass("example.COk", "c_ok", counting("c_ok", 0)),
		taskClass("example.Breaker", "breaker", counting("breaker", 3)),
		step.Class{
			Symbol: "example.FileStage",
			Kind:   step.KindContainer,
			Name:   "file_stage",
			New: func() (step.Step, error) {
				return &fileStage{ExecutableContainer: container.New("file_stage")}, nil
			},
		},
	)
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// newTestConfig returns the default configuration writing into a temporary directory and loading the passed
// manifest paths.
func newTestConfig(t *testing.T, paths ...string) *config.Config {
	cfg := config.Default()
	cfg.Output.Directory = filepath.Join(t.TempDir(), "output")
	cfg.Algorithm.Tasks.Paths = paths
	return cfg
}

func newTestManager(t *testing.T, cfg *config.Config) (assembler.AssemblyManager, map[string]*countingTask) {
	instances := map[string]*countingTask{}
	loader := plugin.NewLoader(plugin.NewCatalog(testClasses(instances)...))
	m := assert.NoErrorR[assembler.AssemblyManager](t)(assembler.New(cfg, loader, log.NewTestLogger(t)))
	return m, instances
}
