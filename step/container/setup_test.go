package container_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.arcalot.io/assert"
	"go.arcalot.io/lang"
	"go.flow.arcalot.io/assembler/plugin"
	"go.flow.arcalot.io/assembler/step"
	"go.flow.arcalot.io/assembler/step/container"
)

func TestSetupFromConfig(t *testing.T) {
	c, err := container.SetupFromConfig(map[string]any{"name": "stage"}, "")
	assert.NoError(t, err)
	assert.Equals(t, c.Name(), "stage")
	assert.Equals(t, c.SelfLoop, container.DefaultSelfLoop)
	assert.Equals(t, c.EntriesNames, []string{})
	assert.Equals(t, len(c.EntriesTypeNames), 0)

	c, err = container.SetupFromConfig(map[string]any{
		"name":               "loop",
		"self_loop":          true,
		"entries":            []any{"a", "b"},
		"entries_type_names": []any{"executable_container", "task"},
	}, "")
	assert.NoError(t, err)
	assert.Equals(t, c.SelfLoop, true)
	assert.Equals(t, c.EntriesNames, []string{"a", "b"})
	assert.Equals(t, c.EntriesTypeNames, []step.Kind{step.KindContainer, step.KindTask})
}

func TestSetupFromConfig_Reference(t *testing.T) {
	c, err := container.SetupFromConfig(map[string]any{
		"name":    "stage",
		"entries": []string{"ignored"},
		"stages":  []string{"a", "b"},
	}, "stages")
	assert.NoError(t, err)
	assert.Equals(t, c.EntriesNames, []string{"a", "b"})
}

func TestSetupFromConfig_Errors(t *testing.T) {
	t.Run("missing-name", func(t *testing.T) {
		_, err := container.SetupFromConfig(map[string]any{}, "")
		var missing *step.ErrMissingName
		if !errors.As(err, &missing) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
	})
	t.Run("empty-name", func(t *testing.T) {
		_, err := container.SetupFromConfig(map[string]any{"name": ""}, "")
		var missing *step.ErrMissingName
		if !errors.As(err, &missing) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
	})

	invalid := map[string]map[string]any{
		"self-loop": {"name": "stage", "self_loop": "yes"},
		"entries":   {"name": "stage", "entries": "a"},
		"entry":     {"name": "stage", "entries": []any{"a", 1}},
		"types":     {"name": "stage", "entries_type_names": 5},
	}
	for name, cfg := range invalid {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			_, err := container.SetupFromConfig(cfg, "")
			var invalidConfig *container.ErrInvalidConfig
			if !errors.As(err, &invalidConfig) {
				t.Fatalf("Incorrect error returned: %v", err)
			}
			assert.Equals(t, invalidConfig.Container, "stage")
		})
	}

	t.Run("unknown-kind", func(t *testing.T) {
		_, err := container.SetupFromConfig(map[string]any{
			"name":               "stage",
			"entries_type_names": []any{"job"},
		}, "")
		var unknown *step.ErrUnknownKind
		if !errors.As(err, &unknown) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
		assert.Equals(t, unknown.Kind, "job")
	})
}

// customStage is a plugin-provided container that configures itself in Setup.
type customStage struct {
	*container.ExecutableContainer
	setupCalls int
}

func (c *customStage) Setup() error {
	c.setupCalls++
	c.SelfLoop = true
	c.EntriesNames = []string{"a"}
	return nil
}

// plainStage is a container without a Setup method.
type plainStage struct {
	*container.ExecutableContainer
}

// failingStage fails to set itself up.
type failingStage struct {
	*container.ExecutableContainer
}

func (c *failingStage) Setup() error {
	return errors.New("no entries configured")
}

// notAContainer declares the container kind but does not implement it.
type notAContainer struct {
	step.BaseTask
}

func containerClass(symbol string, name string, newFn func() (step.Step, error)) step.Class {
	return step.Class{
		Symbol: symbol,
		Kind:   step.KindContainer,
		Name:   name,
		New:    newFn,
	}
}

func newTestLoader() plugin.Loader {
	return plugin.NewLoader(plugin.NewCatalog(
		containerClass("example.Custom", "custom", func() (step.Step, error) {
			return &customStage{ExecutableContainer: container.New("custom")}, nil
		}),
		containerClass("example.Plain", "plain", func() (step.Step, error) {
			return &plainStage{ExecutableContainer: container.New("plain")}, nil
		}),
		containerClass("example.Failing", "failing", func() (step.Step, error) {
			return &failingStage{ExecutableContainer: container.New("failing")}, nil
		}),
		containerClass("example.Broken", "broken", func() (step.Step, error) {
			return nil, errors.New("cannot construct")
		}),
		containerClass("example.Panicking", "panicking", func() (step.Step, error) {
			panic("stage registry not initialized")
		}),
		containerClass("example.Mismatch", "mismatch", func() (step.Step, error) {
			return &customStage{ExecutableContainer: container.New("")}, nil
		}),
		containerClass("example.Fake", "fake", func() (step.Step, error) {
			return &notAContainer{}, nil
		}),
		containerClass("example.Shadow", step.DefaultContainerName, func() (step.Step, error) {
			return container.New(""), nil
		}),
	))
}

func writeManifest(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSetupFromFile(t *testing.T) {
	path := writeManifest(t, "stages.yaml", `package: example
classes:
  - step.ExecutableContainer
  - example.Plain
  - example.Custom
`)
	c, err := container.SetupFromFile(newTestLoader(), path, "custom")
	assert.NoError(t, err)
	stage, ok := c.(*customStage)
	if !ok {
		t.Fatalf("Incorrect container type returned: %T", c)
	}
	assert.Equals(t, stage.setupCalls, 1)
	assert.Equals(t, c.Executable().SelfLoop, true)
	assert.Equals(t, c.Executable().EntriesNames, []string{"a"})
}

func TestSetupFromFile_Errors(t *testing.T) {
	loader := newTestLoader()

	t.Run("missing-file", func(t *testing.T) {
		_, err := container.SetupFromFile(loader, filepath.Join(t.TempDir(), "missing.yaml"), "custom")
		var loadErr *plugin.ErrLoad
		if !errors.As(err, &loadErr) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
	})
	t.Run("not-a-plugin", func(t *testing.T) {
		path := writeManifest(t, "stages.txt", "classes: []\n")
		_, err := container.SetupFromFile(loader, path, "custom")
		var loadErr *plugin.ErrLoad
		if !errors.As(err, &loadErr) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
	})
	t.Run("not-found", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Custom\n")
		_, err := container.SetupFromFile(loader, path, "other")
		var notFound *step.ErrNotFound
		if !errors.As(err, &notFound) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
		assert.Equals(t, notFound.Kind, step.KindContainer)
		assert.Equals(t, notFound.Name, "other")
	})
	t.Run("sentinel-name", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Shadow\n  - example.Custom\n")
		_, err := container.SetupFromFile(loader, path, "custom")
		var duplicate *step.ErrDuplicateName
		if !errors.As(err, &duplicate) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
		assert.Equals(t, duplicate.Symbol, "example.Shadow")
	})
	t.Run("no-setup", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Plain\n")
		_, err := container.SetupFromFile(loader, path, "plain")
		var missing *step.ErrMissingCapability
		if !errors.As(err, &missing) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
		assert.Equals(t, missing.Capability, "setup")
	})
	t.Run("not-a-container", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Fake\n")
		_, err := container.SetupFromFile(loader, path, "fake")
		var missing *step.ErrMissingCapability
		if !errors.As(err, &missing) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
		assert.Equals(t, missing.Capability, "executable container")
	})
	t.Run("constructor", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Broken\n")
		_, err := container.SetupFromFile(loader, path, "broken")
		var instantiation *step.ErrInstantiation
		if !errors.As(err, &instantiation) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
	})
	t.Run("constructor-panic", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Panicking\n")
		var err error
		assert.NoError(t, lang.Safe(func() {
			_, err = container.SetupFromFile(loader, path, "panicking")
		}))
		var instantiation *step.ErrInstantiation
		if !errors.As(err, &instantiation) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
		assert.Equals(t, instantiation.Name, "panicking")
	})
	t.Run("name-mismatch", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Mismatch\n")
		c, err := container.SetupFromFile(loader, path, "mismatch")
		assert.Equals(t, c == nil, true)
		var instantiation *step.ErrInstantiation
		if !errors.As(err, &instantiation) {
			t.Fatalf("Incorrect error returned: %v", err)
		}
		assert.Contains(t, err.Error(), step.DefaultContainerName)
	})
	t.Run("setup-failure", func(t *testing.T) {
		path := writeManifest(t, "stages.yaml", "classes:\n  - example.Failing\n")
		_, err := container.SetupFromFile(loader, path, "failing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no entries configured")
	})
}
