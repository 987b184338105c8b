// Package plugin discovers step classes from plugin files. Step implementations are compiled in and registered in a
// Catalog under a symbol; a plugin file is a manifest listing the symbols it provides, so steps can still be selected
// by file path and name at run time without loading arbitrary code.
package plugin

import (
	"fmt"
	"sort"

	"go.flow.arcalot.io/assembler/step"
)

// Catalog is the compiled-in table of step classes, keyed by symbol.
type Catalog interface {
	// Register adds a class to the catalog. It panics if the symbol is empty or already registered.
	Register(class step.Class)
	// Lookup returns the class registered under the symbol.
	Lookup(symbol string) (step.Class, bool)
	// Symbols returns all registered symbols in sorted order.
	Symbols() []string
	// List returns all registered classes mapped by their symbols.
	List() map[string]step.Class
}

// NewCatalog creates a catalog seeded with the base task and base container classes and the passed classes.
func NewCatalog(classes ...step.Class) Catalog {
	c := &catalog{
		classes: make(map[string]step.Class, len(classes)+2),
	}
	c.Register(step.BaseTaskClass())
	c.Register(step.BaseContainerClass())
	for _, class := range classes {
		c.Register(class)
	}
	return c
}

type catalog struct {
	classes map[string]step.Class
}

func (c *catalog) Register(class step.Class) {
	if class.Symbol == "" {
		panic(fmt.Errorf("bug: step class %s has no symbol", class.Name))
	}
	if v, ok := c.classes[class.Symbol]; ok {
		panic(fmt.Errorf("duplicate step class symbol: %s (first: %s, second: %s)", class.Symbol, v, class))
	}
	switch class.Kind {
	case step.KindTask, step.KindContainer:
	default:
		panic(fmt.Errorf("bug: step class %s has an invalid kind: %q", class.Symbol, class.Kind))
	}
	c.classes[class.Symbol] = class
}

func (c *catalog) Lookup(symbol string) (step.Class, bool) {
	class, ok := c.classes[symbol]
	return class, ok
}

func (c *catalog) Symbols() []string {
	symbols := make([]string, 0, len(c.classes))
	for symbol := range c.classes {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (c *catalog) List() map[string]step.Class {
	return c.classes
}
