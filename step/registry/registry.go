// Package registry builds the task registry, joining the task classes of several plugin files together.
package registry

import (
	"fmt"

	"go.flow.arcalot.io/assembler/plugin"
	"go.flow.arcalot.io/assembler/step"
)

// LoadTasks loads every plugin file in paths and returns the concrete task classes they provide, mapped by name. It
// stops at the first structurally broken plugin file and returns no partial result.
func LoadTasks(loader plugin.Loader, paths []string) (map[string]step.Class, error) {
	result := map[string]step.Class{}
	origins := map[string]string{}
	for _, path := range paths {
		unit, err := loader.Load(path)
		if err != nil {
			return nil, err
		}
		for _, class := range unit.Classes {
			if class.Kind != step.KindTask || class.IsBase() || class.Abstract() {
				continue
			}
			if class.Name == "" {
				return nil, &step.ErrMissingName{Source: fmt.Sprintf("task class %s from file %s", class.Symbol, unit.Path())}
			}
			if class.Name == step.DefaultTaskName {
				return nil, &step.ErrDuplicateName{Name: class.Name, Symbol: class.Symbol, Path: unit.Path()}
			}
			if existing, ok := result[class.Name]; ok && existing.Symbol != class.Symbol {
				return nil, &ErrDuplicateTask{
					Name:        class.Name,
					FirstSymbol: existing.Symbol,
					FirstPath:   origins[class.Name],
					Symbol:      class.Symbol,
					Path:        unit.Path(),
				}
			}
			result[class.Name] = class
			origins[class.Name] = unit.Path()
		}
	}
	return result, nil
}
