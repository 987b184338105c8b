package container

import (
	"fmt"

	"go.arcalot.io/lang"
	"go.flow.arcalot.io/assembler/plugin"
	"go.flow.arcalot.io/assembler/step"
)

// ErrInvalidConfig indicates that a container configuration holds a value of the wrong type.
type ErrInvalidConfig struct {
	Container string
	Key       string
	Reason    string
}

// Error returns the error message.
func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid %s value for container %s: %s", e.Key, e.Container, e.Reason)
}

// SetupFromConfig creates an executable container from a configuration fragment. The fragment must have a name; the
// entry names are read from the entriesReference key, or from "entries" if entriesReference is empty.
func SetupFromConfig(cfg map[string]any, entriesReference string) (*ExecutableContainer, error) {
	if entriesReference == "" {
		entriesReference = DefaultEntriesReference
	}
	rawName, ok := cfg["name"]
	if !ok {
		return nil, &step.ErrMissingName{Source: "executable container configuration"}
	}
	name, ok := rawName.(string)
	if !ok || name == "" {
		return nil, &step.ErrMissingName{Source: "executable container configuration"}
	}
	result := New(name)

	if rawSelfLoop, ok := cfg["self_loop"]; ok && rawSelfLoop != nil {
		selfLoop, ok := rawSelfLoop.(bool)
		if !ok {
			return nil, &ErrInvalidConfig{Container: name, Key: "self_loop", Reason: fmt.Sprintf("not a boolean (%T)", rawSelfLoop)}
		}
		result.SelfLoop = selfLoop
	}

	entriesNames, err := stringList(cfg[entriesReference])
	if err != nil {
		return nil, &ErrInvalidConfig{Container: name, Key: entriesReference, Reason: err.Error()}
	}
	result.EntriesNames = entriesNames

	typeNames, err := stringList(cfg["entries_type_names"])
	if err != nil {
		return nil, &ErrInvalidConfig{Container: name, Key: "entries_type_names", Reason: err.Error()}
	}
	for _, typeName := range typeNames {
		kind := step.Kind(typeName)
		if kind != step.KindTask && kind != step.KindContainer {
			return nil, &step.ErrUnknownKind{Kind: typeName}
		}
		result.EntriesTypeNames = append(result.EntriesTypeNames, kind)
	}
	return result, nil
}

// SetupFromFile loads the plugin file at path and creates the custom container class declaring the passed name. The
// container is set up before it is returned.
func SetupFromFile(loader plugin.Loader, path string, name string) (Container, error) {
	unit, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	for _, class := range unit.Classes {
		if class.Kind != step.KindContainer || class.IsBase() {
			continue
		}
		if class.Name == step.DefaultContainerName {
			return nil, &step.ErrDuplicateName{Name: class.Name, Symbol: class.Symbol, Path: unit.Path()}
		}
		if class.Name != name || class.Abstract() {
			continue
		}
		var instance step.Step
		if panicErr := lang.Safe(func() {
			instance, err = class.New()
		}); panicErr != nil {
			err = panicErr
		}
		if err != nil {
			return nil, &step.ErrInstantiation{Name: class.Name, Cause: err}
		}
		if instance == nil {
			return nil, &step.ErrInstantiation{
				Name:  class.Name,
				Cause: fmt.Errorf("class %s constructed no instance", class.Symbol),
			}
		}
		c, ok := instance.(Container)
		if !ok {
			return nil, &step.ErrMissingCapability{Name: class.Name, Capability: "executable container"}
		}
		setuper, ok := instance.(Setuper)
		if !ok {
			return nil, &step.ErrMissingCapability{Name: class.Name, Capability: "setup"}
		}
		if err := setuper.Setup(); err != nil {
			return nil, fmt.Errorf("setup of container %s from %s failed (%w)", class.Name, unit.Path(), err)
		}
		if c.Name() != name {
			return nil, &step.ErrInstantiation{
				Name:  class.Name,
				Cause: fmt.Errorf("class %s constructed a container named %s", class.Symbol, c.Name()),
			}
		}
		return c, nil
	}
	return nil, &step.ErrNotFound{Kind: step.KindContainer, Name: name}
}

func stringList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		result := make([]string, len(v))
		copy(result, v)
		return result, nil
	case []any:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d is not a string (%T)", i, item)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("not a list (%T)", value)
	}
}
