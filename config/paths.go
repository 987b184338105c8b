package config

import (
	"go.flow.arcalot.io/assembler/loadfile"
)

// ResolvePaths rewrites the relative paths of the configuration against the context directory: the task paths, the
// path of every file-based container and the output directory.
func (c *Config) ResolvePaths(fc loadfile.Context) {
	c.Algorithm.Tasks.Paths = fc.ResolveAll(c.Algorithm.Tasks.Paths)
	for i, def := range c.Algorithm.ExecutableContainers {
		m, ok := Mapping(def)
		if !ok {
			// Reported by ContainerDefinitions.
			continue
		}
		if path, ok := m["path"].(string); ok {
			m["path"] = fc.Resolve(path)
		}
		c.Algorithm.ExecutableContainers[i] = m
	}
	c.Output.Directory = fc.Resolve(c.Output.Directory)
}
