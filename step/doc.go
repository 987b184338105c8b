// Package step provides the abstract definition of a pipeline step. A step is either a task, a single named unit of
// work, or an executable container, an ordered and optionally self-repeating group of further steps. Implementations
// are compiled in and made discoverable by name through classes registered in a plugin catalog.
package step
