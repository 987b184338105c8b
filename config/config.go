// Package config holds the configuration of the assembly manager.
package config

import (
	"fmt"

	"go.arcalot.io/log/v2"
)

// Config is the main configuration structure of the assembly manager. Keys the core does not know about are ignored.
type Config struct {
	// Algorithm configures task discovery, the instantiation failure policy and the pipeline.
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	// Output configures where tasks should place their results.
	Output Output `json:"output" yaml:"output"`
	// Logging configures the logger of the assembly manager.
	Logging Logging `json:"logging" yaml:"logging"`
}

// Algorithm is the section describing what to run.
type Algorithm struct {
	// Tasks configures where task classes are discovered.
	Tasks Tasks `json:"tasks" yaml:"tasks"`
	// IOSF (ignore on silent fail) skips tasks that fail to instantiate instead of aborting.
	IOSF bool `json:"iosf" yaml:"iosf"`
	// ExecutableContainers holds the container definitions. Each entry is a mapping with at least a name.
	ExecutableContainers []any `json:"executable_containers" yaml:"executable_containers"`
	// Pipeline is the definition of the top-level container.
	Pipeline any `json:"pipeline" yaml:"pipeline"`
}

// Tasks is the section configuring task discovery.
type Tasks struct {
	// Paths lists plugin files or directories containing plugin files.
	Paths []string `json:"paths" yaml:"paths"`
}

// Output is the section configuring the output location.
type Output struct {
	// Directory is the directory tasks write their results into.
	Directory string `json:"directory" yaml:"directory"`
}

// Logging is the section configuring the logger.
type Logging struct {
	// Name is the label attached to every message of the assembly manager.
	Name string `json:"name" yaml:"name"`
	// Level is the minimum level of messages to write.
	Level log.Level `json:"level" yaml:"level"`
	// Destination is where the messages are written.
	Destination log.Destination `json:"destination" yaml:"destination"`
}

// LogConfig converts the section into a logger configuration.
func (l Logging) LogConfig() log.Config {
	return log.Config{
		Level:       l.Level,
		Destination: l.Destination,
	}
}

// ContainerDefinitions returns the executable container definitions as mappings.
func (a Algorithm) ContainerDefinitions() ([]map[string]any, error) {
	result := make([]map[string]any, len(a.ExecutableContainers))
	for i, def := range a.ExecutableContainers {
		m, ok := Mapping(def)
		if !ok {
			return nil, fmt.Errorf("executable container definition %d is not a mapping (%T)", i, def)
		}
		result[i] = m
	}
	return result, nil
}

// PipelineDefinition returns the pipeline definition as a mapping. An absent pipeline yields an empty mapping.
func (a Algorithm) PipelineDefinition() (map[string]any, error) {
	if a.Pipeline == nil {
		return map[string]any{}, nil
	}
	m, ok := Mapping(a.Pipeline)
	if !ok {
		return nil, fmt.Errorf("the pipeline definition is not a mapping (%T)", a.Pipeline)
	}
	return m, nil
}

// Mapping converts the generic mapping types produced by YAML and JSON decoders into a string-keyed map.
func Mapping(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			k, ok := key.(string)
			if !ok {
				return nil, false
			}
			result[k] = val
		}
		return result, true
	default:
		return nil, false
	}
}
