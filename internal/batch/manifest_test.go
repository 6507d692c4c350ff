package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/slab-tools/slab/internal/vasp"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Run("valid manifest", func(t *testing.T) {
		path := writeManifest(t, `{"outcar_paths": ["/runs/a/OUTCAR", "/runs/b/OUTCAR"], "fail_fast": true}`)
		manifest, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(manifest.OutcarPaths) != 2 || manifest.OutcarPaths[0] != "/runs/a/OUTCAR" {
			t.Errorf("unexpected paths: %v", manifest.OutcarPaths)
		}
		if !manifest.FailFast {
			t.Error("expected fail_fast true")
		}
	})

	t.Run("fail_fast defaults to false", func(t *testing.T) {
		path := writeManifest(t, `{"outcar_paths": ["/runs/a/OUTCAR"]}`)
		manifest, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if manifest.FailFast {
			t.Error("expected fail_fast false")
		}
	})

	t.Run("not JSON", func(t *testing.T) {
		path := writeManifest(t, "outcar_paths:\n  - /runs/a/OUTCAR\n")
		_, err := LoadManifest(path)
		if !vasp.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("empty path list", func(t *testing.T) {
		path := writeManifest(t, `{"outcar_paths": []}`)
		_, err := LoadManifest(path)
		if !vasp.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("missing outcar_paths", func(t *testing.T) {
		path := writeManifest(t, `{"fail_fast": true}`)
		_, err := LoadManifest(path)
		if !vasp.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		path := writeManifest(t, `{"outcar_paths": ["a"], "parallel": 4}`)
		_, err := LoadManifest(path)
		if !vasp.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("non-string entry", func(t *testing.T) {
		path := writeManifest(t, `{"outcar_paths": [42]}`)
		_, err := LoadManifest(path)
		if !vasp.IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "none.json"))
		if !vasp.IsValidationError(err) {
			t.Errorf("expected validation-class error, got %v", err)
		}
	})
}
