package assembler

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"go.arcalot.io/dgraph"
	"go.arcalot.io/lang"
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler/config"
	"go.flow.arcalot.io/assembler/plugin"
	"go.flow.arcalot.io/assembler/step"
	"go.flow.arcalot.io/assembler/step/container"
	"go.flow.arcalot.io/assembler/step/registry"
)

// AssemblyManager owns the configuration and the task and container registries. It is also the context every step
// receives when it runs.
type AssemblyManager interface {
	step.Context

	// InitiateTasks discovers the task classes from the configured plugin paths and stores them as the task classes.
	// Registry building is fail-fast regardless of the IOSF policy.
	InitiateTasks() error
	// InstantiateTasks constructs an instance of every task class, in name order. If IOSF is disabled the first
	// failure is returned and the instances built before it are kept. If IOSF is enabled, failing tasks are removed
	// from the task classes and skipped.
	InstantiateTasks() error
	// InitiateContainers builds the executable containers listed in the configuration.
	InitiateContainers() error
	// Prepare creates the output directory, then initiates and instantiates the tasks and initiates the containers.
	Prepare() error
	// Run builds the pipeline container from the configuration and runs it.
	Run(ctx context.Context) error

	// TaskClasses returns the task classes mapped by name. The map may be modified.
	TaskClasses() map[string]step.Class
	// TaskInstances returns the live task instances mapped by name. The map may be modified.
	TaskInstances() map[string]step.Step
	// Containers returns the live executable containers mapped by name.
	Containers() map[string]container.Container
	// Graph builds the graph of containers and the entries they reference. Additional root containers, such as the
	// pipeline, may be passed.
	Graph(roots ...container.Container) (dgraph.DirectedGraph[GraphItem], error)
}

type assemblyManager struct {
	configuration  *config.Config
	logger         log.Logger
	loader         plugin.Loader
	tasksClasses   map[string]step.Class
	tasksInstances map[string]step.Step
	containers     map[string]container.Container
}

func (m *assemblyManager) Configuration() *config.Config {
	return m.configuration
}

func (m *assemblyManager) Logger() log.Logger {
	return m.logger
}

func (m *assemblyManager) TaskClasses() map[string]step.Class {
	return m.tasksClasses
}

func (m *assemblyManager) TaskInstances() map[string]step.Step {
	return m.tasksInstances
}

func (m *assemblyManager) Containers() map[string]container.Container {
	return m.containers
}

func (m *assemblyManager) InitiateTasks() error {
	var paths []string
	for _, path := range m.configuration.Algorithm.Tasks.Paths {
		files, err := plugin.FindManifests(path)
		if err != nil {
			return err
		}
		paths = append(paths, files...)
	}
	m.logger.Debugf("Loading task classes from %d plugin file(s)...", len(paths))
	classes, err := registry.LoadTasks(m.loader, paths)
	if err != nil {
		return err
	}
	m.tasksClasses = classes
	m.logger.Infof("Discovered %d task class(es).", len(classes))
	return nil
}

func (m *assemblyManager) InstantiateTasks() error {
	iosf := m.configuration.Algorithm.IOSF
	for _, name := range sortedKeys(m.tasksClasses) {
		class := m.tasksClasses[name]
		instance, err := instantiate(name, class)
		if err != nil {
			if !iosf {
				return err
			}
			m.logger.Warningf("Skipping task %s, instantiation failed (%v)", name, err)
			delete(m.tasksClasses, name)
			delete(m.tasksInstances, name)
			continue
		}
		m.tasksInstances[name] = instance
		m.logger.Debugf("Task %s instantiated.", name)
	}
	return nil
}

func instantiate(name string, class step.Class) (instance step.Step, err error) {
	if class.Abstract() {
		return nil, &step.ErrInstantiation{Name: name, Cause: fmt.Errorf("class %s is abstract", class.Symbol)}
	}
	if panicErr := lang.Safe(func() {
		instance, err = class.New()
	}); panicErr != nil {
		err = panicErr
	}
	if err != nil {
		return nil, &step.ErrInstantiation{Name: name, Cause: err}
	}
	switch {
	case instance == nil:
		err = fmt.Errorf("class %s constructed no instance", class.Symbol)
	case instance.Kind() != step.KindTask:
		err = fmt.Errorf("class %s constructed a %s instead of a task", class.Symbol, instance.Kind())
	case instance.Name() != name:
		err = fmt.Errorf("class %s constructed an instance named %s", class.Symbol, instance.Name())
	}
	if err != nil {
		return nil, &step.ErrInstantiation{Name: name, Cause: err}
	}
	return instance, nil
}

func (m *assemblyManager) InitiateContainers() error {
	definitions, err := m.configuration.Algorithm.ContainerDefinitions()
	if err != nil {
		return err
	}
	containers := make(map[string]container.Container, len(definitions))
	for _, definition := range definitions {
		c, err := m.setupContainer(definition)
		if err != nil {
			return err
		}
		name := c.Name()
		if _, ok := containers[name]; ok {
			return &ErrDuplicateContainer{Name: name}
		}
		if _, ok := m.tasksInstances[name]; ok {
			m.logger.Warningf("Container %s shares its name with a task, entries resolve to the task first.", name)
		}
		containers[name] = c
		m.logger.Debugf("Container %s initiated with entries %v.", name, c.Executable().EntriesNames)
	}
	m.containers = containers
	return nil
}

func (m *assemblyManager) setupContainer(definition map[string]any) (container.Container, error) {
	rawPath, ok := definition["path"]
	if !ok {
		return container.SetupFromConfig(definition, entriesReference(definition))
	}
	path, ok := rawPath.(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("invalid executable container path: %v", rawPath)
	}
	name, _ := definition["name"].(string)
	if name == "" {
		return nil, &step.ErrMissingName{Source: fmt.Sprintf("executable container from %s", path)}
	}
	return container.SetupFromFile(m.loader, path, name)
}

func entriesReference(definition map[string]any) string {
	if reference, ok := definition["reference"].(string); ok {
		return reference
	}
	return container.DefaultEntriesReference
}

func (m *assemblyManager) GetTask(name string) (step.Step, error) {
	task, ok := m.tasksInstances[name]
	if !ok {
		return nil, &step.ErrNotFound{
			Kind:       step.KindTask,
			Name:       name,
			ValidNames: sortedKeys(m.tasksInstances),
		}
	}
	return task, nil
}

func (m *assemblyManager) GetContainer(name string) (step.Step, error) {
	c, ok := m.containers[name]
	if !ok {
		return nil, &step.ErrNotFound{
			Kind:       step.KindContainer,
			Name:       name,
			ValidNames: sortedKeys(m.containers),
		}
	}
	return c, nil
}

func (m *assemblyManager) Prepare() error {
	if dir := m.configuration.Output.Directory; dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory %s (%w)", dir, err)
		}
	}
	if err := m.InitiateTasks(); err != nil {
		return err
	}
	if err := m.InstantiateTasks(); err != nil {
		return err
	}
	return m.InitiateContainers()
}

func (m *assemblyManager) Run(ctx context.Context) error {
	definition, err := m.configuration.Algorithm.PipelineDefinition()
	if err != nil {
		return err
	}
	if len(definition) == 0 {
		m.logger.Warningf("No pipeline configured, execution not required.")
		return nil
	}
	pipeline, err := container.SetupFromConfig(definition, entriesReference(definition))
	if err != nil {
		return fmt.Errorf("invalid pipeline definition (%w)", err)
	}
	runLogger := m.logger.WithLabel("run", uuid.NewString())
	rc := &runContext{assemblyManager: m, logger: runLogger}

	graph, err := m.Graph(pipeline)
	if err != nil {
		return fmt.Errorf("failed to build the pipeline graph (%w)", err)
	}
	runLogger.Debugf("Pipeline graph Mermaid:\n%s", graph.Mermaid())
	if graph.HasCycles() {
		runLogger.Warningf("Nested containers reference each other in a cycle, the pipeline may not terminate.")
	}

	runLogger.Infof("Starting pipeline %s...", pipeline.Name())
	if _, err := pipeline.Run(ctx, rc); err != nil {
		runLogger.Errorf("Pipeline %s failed (%v)", pipeline.Name(), err)
		return fmt.Errorf("pipeline %s failed (%w)", pipeline.Name(), err)
	}
	runLogger.Infof("Pipeline %s finished.", pipeline.Name())
	return nil
}

// runContext is the context of a single pipeline run. Every step of the run logs with the run label.
type runContext struct {
	*assemblyManager
	logger log.Logger
}

func (r *runContext) Logger() log.Logger {
	return r.logger
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
