package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/slab-tools/slab/internal/vasp"
)

// DefaultMaxRuns caps how many discovered OUTCAR files a single discovery
// call returns.
const DefaultMaxRuns = 50

// Discovery lists OUTCAR files found below a root directory.
type Discovery struct {
	RootDir         string   `json:"root_dir"`
	Recursive       bool     `json:"recursive"`
	MaxRuns         int      `json:"max_runs"`
	TotalDiscovered int      `json:"total_discovered"`
	ReturnedCount   int      `json:"returned_count"`
	OutcarPaths     []string `json:"outcar_paths"`
	RunDirs         []string `json:"run_dirs"`
	Warnings        []string `json:"warnings"`
}

// Discover finds OUTCAR files under rootDir. Non-recursive mode checks the
// root itself plus its immediate child directories. Results are
// deduplicated, sorted, and truncated to maxRuns with a warning.
func Discover(rootDir string, recursive bool, maxRuns int) (*Discovery, error) {
	root, err := vasp.ValidateDirPath(rootDir, "root_dir", "Root directory")
	if err != nil {
		return nil, err
	}
	if maxRuns <= 0 {
		maxRuns = DefaultMaxRuns
	}

	seen := map[string]struct{}{}
	addCandidate := func(path string) {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return
		}
		if abs, err := filepath.Abs(path); err == nil {
			seen[abs] = struct{}{}
		}
	}

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && d.Name() == "OUTCAR" {
				addCandidate(path)
			}
			return nil
		})
		if err != nil {
			return nil, vasp.NewIOError("unable to scan directory tree", root, err)
		}
	} else {
		addCandidate(filepath.Join(root, "OUTCAR"))
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, vasp.NewIOError("unable to list directory", root, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				addCandidate(filepath.Join(root, entry.Name(), "OUTCAR"))
			}
		}
	}

	discovered := make([]string, 0, len(seen))
	for path := range seen {
		discovered = append(discovered, path)
	}
	sort.Strings(discovered)

	selected := discovered
	var warnings []string
	if len(discovered) > maxRuns {
		selected = discovered[:maxRuns]
		warnings = append(warnings, fmt.Sprintf(
			"Discovery truncated: found %d OUTCAR files, returning first %d",
			len(discovered), len(selected),
		))
	}

	runDirs := make([]string, 0, len(selected))
	for _, path := range selected {
		runDirs = append(runDirs, filepath.Dir(path))
	}

	return &Discovery{
		RootDir:         root,
		Recursive:       recursive,
		MaxRuns:         maxRuns,
		TotalDiscovered: len(discovered),
		ReturnedCount:   len(selected),
		OutcarPaths:     selected,
		RunDirs:         runDirs,
		Warnings:        warnings,
	}, nil
}
