// Package loadfile resolves the files the assembler configuration refers to against a context directory.
package loadfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// ContextFile is a file referenced by the configuration, with its path resolved against the context directory.
type ContextFile struct {
	// ID is the path as it was written in the configuration.
	ID           string
	AbsolutePath string
	Content      []byte
}

// Context is a context (root) directory used in conjunction with paths that are not absolute.
type Context interface {
	// RootDir returns the absolute context directory.
	RootDir() string
	// Resolve returns path unchanged if it is absolute, joined to the context directory otherwise.
	Resolve(path string) string
	// ResolveAll resolves every passed path.
	ResolveAll(paths []string) []string
	// Load resolves path and reads its content.
	Load(path string) (ContextFile, error)
}

// NewContext creates a context for the passed directory.
func NewContext(rootDir string) (Context, error) {
	absDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("error determining context directory absolute path %s (%w)", rootDir, err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("error accessing context directory %s (%w)", absDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("context path %s is not a directory", absDir)
	}
	return &fileContext{rootDir: absDir}, nil
}

type fileContext struct {
	rootDir string
}

func (fc *fileContext) RootDir() string {
	return fc.rootDir
}

func (fc *fileContext) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(fc.rootDir, path)
}

func (fc *fileContext) ResolveAll(paths []string) []string {
	result := make([]string, len(paths))
	for i, path := range paths {
		result[i] = fc.Resolve(path)
	}
	return result
}

func (fc *fileContext) Load(path string) (ContextFile, error) {
	absPath := fc.Resolve(path)
	fileData, err := os.ReadFile(filepath.Clean(absPath))
	if err != nil {
		return ContextFile{}, fmt.Errorf("error reading file %s (%w)", absPath, err)
	}
	return ContextFile{
		ID:           path,
		AbsolutePath: absPath,
		Content:      fileData,
	}, nil
}
