package vasp

import (
	"os"
	"path/filepath"
	"strings"
)

// ValidateFilePath checks that path names an existing regular file and
// returns its resolved absolute form. field and label feed the error
// message so each adapter reports the parameter the caller actually set.
func ValidateFilePath(path, field, label string) (string, error) {
	resolved, err := expandPath(path, field)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", NewValidationError(CodeFileNotFound, "%s file does not exist: %s", label, resolved).
			WithDetails(map[string]string{"field": field, "path": resolved})
	}
	if info.IsDir() {
		return "", NewValidationError(CodeFileNotFile, "%s path is not a file: %s", label, resolved).
			WithDetails(map[string]string{"field": field, "path": resolved})
	}

	return resolved, nil
}

// ValidateDirPath checks that path names an existing directory and returns
// its resolved absolute form.
func ValidateDirPath(path, field, label string) (string, error) {
	resolved, err := expandPath(path, field)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", NewValidationError(CodeFileNotFound, "%s does not exist: %s", label, resolved).
			WithDetails(map[string]string{"field": field, "path": resolved})
	}
	if !info.IsDir() {
		return "", NewValidationError(CodeValidation, "%s is not a directory: %s", label, resolved).
			WithDetails(map[string]string{"field": field, "path": resolved})
	}

	return resolved, nil
}

func expandPath(path, field string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", NewValidationError(CodeValidation, "%s must be a non-empty string", field).
			WithDetails(map[string]string{"field": field})
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", NewValidationError(CodeValidation, "%s is not a resolvable path: %s", field, path)
	}
	return abs, nil
}
