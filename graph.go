package assembler

import (
	"fmt"

	"go.arcalot.io/dgraph"
	"go.flow.arcalot.io/assembler/step"
	"go.flow.arcalot.io/assembler/step/container"
)

// GraphItem is a node of the pipeline graph.
type GraphItem struct {
	Kind     step.Kind
	Name     string
	SelfLoop bool
}

// String returns the node identifier of the item.
func (g GraphItem) String() string {
	return nodeID(g.Kind, g.Name)
}

func nodeID(kind step.Kind, name string) string {
	return fmt.Sprintf("%s.%s", kind, name)
}

func (m *assemblyManager) Graph(roots ...container.Container) (dgraph.DirectedGraph[GraphItem], error) {
	g := dgraph.New[GraphItem]()
	for _, name := range sortedKeys(m.tasksInstances) {
		if _, err := g.AddNode(nodeID(step.KindTask, name), GraphItem{Kind: step.KindTask, Name: name}); err != nil {
			return nil, fmt.Errorf("failed to add task node %s (%w)", name, err)
		}
	}
	containers := make([]container.Container, 0, len(m.containers)+len(roots))
	for _, name := range sortedKeys(m.containers) {
		containers = append(containers, m.containers[name])
	}
	for _, root := range roots {
		if _, ok := m.containers[root.Name()]; ok {
			return nil, &ErrDuplicateContainer{Name: root.Name()}
		}
		containers = append(containers, root)
	}
	for _, c := range containers {
		item := GraphItem{Kind: step.KindContainer, Name: c.Name(), SelfLoop: c.Executable().SelfLoop}
		if _, err := g.AddNode(item.String(), item); err != nil {
			return nil, fmt.Errorf("failed to add container node %s (%w)", c.Name(), err)
		}
	}
	for _, c := range containers {
		from := nodeID(step.KindContainer, c.Name())
		node, err := g.GetNodeByID(from)
		if err != nil {
			return nil, err
		}
		connected := map[string]struct{}{}
		for _, entryName := range c.Executable().EntriesNames {
			to, ok := m.graphTarget(c.Executable().EntriesTypeNames, entryName)
			if !ok {
				// Unresolvable entries fail when the container runs.
				continue
			}
			if _, ok := connected[to]; ok || to == from {
				continue
			}
			if err := node.Connect(to); err != nil {
				return nil, fmt.Errorf("failed to connect %s to %s (%w)", from, to, err)
			}
			connected[to] = struct{}{}
		}
	}
	return g, nil
}

func (m *assemblyManager) graphTarget(kinds []step.Kind, name string) (string, bool) {
	if len(kinds) == 0 {
		kinds = step.Kinds()
	}
	for _, kind := range kinds {
		switch kind {
		case step.KindTask:
			if _, ok := m.tasksInstances[name]; ok {
				return nodeID(kind, name), true
			}
		case step.KindContainer:
			if _, ok := m.containers[name]; ok {
				return nodeID(kind, name), true
			}
		}
	}
	return "", false
}
