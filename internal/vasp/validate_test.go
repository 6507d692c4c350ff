package vasp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "OUTCAR")
	if err := os.WriteFile(filePath, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("existing file resolves", func(t *testing.T) {
		resolved, err := ValidateFilePath(filePath, "outcar_path", "OUTCAR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved != filePath {
			t.Errorf("expected %s, got %s", filePath, resolved)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := ValidateFilePath("  ", "outcar_path", "OUTCAR")
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ValidateFilePath(filepath.Join(dir, "missing"), "outcar_path", "OUTCAR")
		if !IsValidationError(err) {
			t.Fatalf("expected validation-class error, got %v", err)
		}
		var e *Error
		if !errors.As(err, &e) || e.Code != CodeFileNotFound {
			t.Errorf("expected FILE_NOT_FOUND, got %v", err)
		}
	})

	t.Run("directory is not a file", func(t *testing.T) {
		_, err := ValidateFilePath(dir, "outcar_path", "OUTCAR")
		var e *Error
		if !errors.As(err, &e) || e.Code != CodeFileNotFile {
			t.Errorf("expected FILE_NOT_FILE, got %v", err)
		}
	})

	t.Run("details carry field and path", func(t *testing.T) {
		_, err := ValidateFilePath(filepath.Join(dir, "missing"), "doscar_path", "DOSCAR")
		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("expected a typed error, got %v", err)
		}
		if e.Details["field"] != "doscar_path" {
			t.Errorf("expected field detail doscar_path, got %v", e.Details)
		}
	})
}

func TestValidateDirPath(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file")
	if err := os.WriteFile(filePath, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("existing directory resolves", func(t *testing.T) {
		resolved, err := ValidateDirPath(dir, "root_dir", "Discovery root")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resolved != dir {
			t.Errorf("expected %s, got %s", dir, resolved)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := ValidateDirPath(filepath.Join(dir, "missing"), "root_dir", "Discovery root")
		var e *Error
		if !errors.As(err, &e) || e.Code != CodeFileNotFound {
			t.Errorf("expected FILE_NOT_FOUND, got %v", err)
		}
	})

	t.Run("file is not a directory", func(t *testing.T) {
		_, err := ValidateDirPath(filePath, "root_dir", "Discovery root")
		var e *Error
		if !errors.As(err, &e) || e.Code != CodeValidation {
			t.Errorf("expected VALIDATION_ERROR, got %v", err)
		}
	})
}

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	resolved, err := expandPath("~/runs/OUTCAR", "outcar_path")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := filepath.Join(home, "runs", "OUTCAR")
	if resolved != expected {
		t.Errorf("expected %s, got %s", expected, resolved)
	}
}
