// Package home manages the slab home directory layout.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the slab home directory.
	DefaultDirName = ".slab"

	// ChartsDirName is the subdirectory for rendered chart PNGs.
	ChartsDirName = "charts"

	// ExportsDirName is the subdirectory for tabular exports.
	ExportsDirName = "exports"

	// InputsDirName is the subdirectory for generated input bundles.
	InputsDirName = "inputs"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the slab home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.slab).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// ChartsDir returns the directory for rendered charts.
func (d *Dir) ChartsDir() string {
	return filepath.Join(d.path, ChartsDirName)
}

// ExportsDir returns the directory for tabular exports.
func (d *Dir) ExportsDir() string {
	return filepath.Join(d.path, ExportsDirName)
}

// InputsDir returns the directory for generated input bundles.
func (d *Dir) InputsDir() string {
	return filepath.Join(d.path, InputsDirName)
}

// InputBundleDir returns the directory for one generated bundle.
func (d *Dir) InputBundleDir(name string) string {
	return filepath.Join(d.InputsDir(), name)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.ChartsDir(), d.ExportsDir(), d.InputsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
