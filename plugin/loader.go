package plugin

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.flow.arcalot.io/assembler/step"
)

// Unit is the result of loading a single plugin file.
type Unit struct {
	// FileName is the base name of the plugin file.
	FileName string
	// Dir is the absolute directory containing the plugin file.
	Dir string
	// Package is the optional package label declared in the file.
	Package string
	// Classes holds the classes the file provides, in declaration order.
	Classes []step.Class
}

// Path returns the absolute path of the plugin file.
func (u Unit) Path() string {
	return filepath.Join(u.Dir, u.FileName)
}

// Loader loads plugin files.
type Loader interface {
	// Load reads the plugin file at path and returns every class it provides. The file is read again on every call.
	Load(path string) (*Unit, error)
	// Catalog returns the catalog the loader resolves symbols against.
	Catalog() Catalog
}

// NewLoader creates a loader resolving plugin files against the passed catalog.
func NewLoader(catalog Catalog) Loader {
	return &loader{
		catalog: catalog,
	}
}

type loader struct {
	catalog Catalog
}

func (l *loader) Catalog() Catalog {
	return l.catalog
}

func (l *loader) Load(path string) (*Unit, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &ErrLoad{Path: path, Reason: "cannot determine absolute path", Cause: err}
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ErrLoad{Path: path, Reason: "file does not exist", Cause: err}
		}
		return nil, &ErrLoad{Path: path, Reason: "cannot access file", Cause: err}
	}
	if info.IsDir() {
		return nil, &ErrLoad{Path: path, Reason: "path is a directory"}
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	decode, ok := decoders[ext]
	if !ok {
		return nil, &ErrLoad{Path: path, Reason: "not a plugin file (expected .yaml, .yml or .hcl)"}
	}
	data, err := os.ReadFile(filepath.Clean(absPath))
	if err != nil {
		return nil, &ErrLoad{Path: path, Reason: "cannot read file", Cause: err}
	}
	m, err := decode(absPath, data)
	if err != nil {
		return nil, &ErrLoad{Path: path, Reason: "invalid plugin file", Cause: err}
	}

	classes := make([]step.Class, 0, len(m.Classes))
	for _, symbol := range m.Classes {
		class, ok := l.catalog.Lookup(symbol)
		if !ok {
			return nil, &ErrLoad{Path: path, Reason: "cannot import class", Cause: &ErrUnknownSymbol{Symbol: symbol}}
		}
		classes = append(classes, class)
	}
	return &Unit{
		FileName: filepath.Base(absPath),
		Dir:      filepath.Dir(absPath),
		Package:  m.Package,
		Classes:  classes,
	}, nil
}

// FindManifests expands path into a list of plugin files. A file path is returned as is, a directory is walked
// recursively for plugin files, which are returned in sorted order.
func FindManifests(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ErrLoad{Path: path, Reason: "file does not exist", Cause: err}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsManifest(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, &ErrLoad{Path: path, Reason: "cannot walk plugin directory", Cause: err}
	}
	sort.Strings(files)
	return files, nil
}
