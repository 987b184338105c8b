package plugin_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.flow.arcalot.io/assembler/step"
)

type testTask struct {
	step.BaseTask
	name string
}

func (t *testTask) Name() string {
	return t.name
}

func (t *testTask) Run(_ context.Context, _ step.Context) (step.Signal, error) {
	return step.SignalContinue, nil
}

func taskClass(symbol string, name string) step.Class {
	return step.Class{
		Symbol: symbol,
		Kind:   step.KindTask,
		Name:   name,
		New: func() (step.Step, error) {
			return &testTask{name: name}, nil
		},
	}
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
