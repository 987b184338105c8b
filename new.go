// Package assembler provides the assembly manager, the orchestrator that discovers tasks from plugin files,
// instantiates them under the configured failure policy and runs them inside executable containers.
package assembler

import (
	"fmt"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler/config"
	"go.flow.arcalot.io/assembler/plugin"
	"go.flow.arcalot.io/assembler/step"
	"go.flow.arcalot.io/assembler/step/container"
)

// New creates a new assembly manager. A nil configuration is replaced by the default configuration and a nil logger
// by one built from its logging section.
func New(
	cfg *config.Config,
	loader plugin.Loader,
	logger log.Logger,
) (AssemblyManager, error) {
	if loader == nil {
		return nil, fmt.Errorf("bug: no plugin loader passed to New")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(cfg.Logging.LogConfig())
	}
	name := cfg.Logging.Name
	if name == "" {
		name = config.DefaultLoggerName
	}
	return &assemblyManager{
		configuration:  cfg,
		logger:         logger.WithLabel("source", name),
		loader:         loader,
		tasksClasses:   map[string]step.Class{},
		tasksInstances: map[string]step.Step{},
		containers:     map[string]container.Container{},
	}, nil
}
