package vasp

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorHelpers(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		err := NewParseError("bad block at line %d", 42)
		if !IsParseError(err) {
			t.Error("expected IsParseError to match")
		}
		if IsValidationError(err) || IsIOError(err) {
			t.Error("parse error matched the wrong class")
		}
		if err.Error() != "bad block at line 42" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("io error wraps its cause", func(t *testing.T) {
		cause := errors.New("disk gone")
		err := NewIOError("unable to read file", "/runs/OUTCAR", cause)
		if !IsIOError(err) {
			t.Error("expected IsIOError to match")
		}
		if !errors.Is(err, cause) {
			t.Error("expected the cause to unwrap")
		}
		if err.Details["path"] != "/runs/OUTCAR" {
			t.Errorf("expected path detail, got %v", err.Details)
		}
	})

	t.Run("validation class covers file codes", func(t *testing.T) {
		for _, code := range []Code{CodeValidation, CodeFileNotFound, CodeFileNotFile} {
			if !IsValidationError(NewValidationError(code, "boom")) {
				t.Errorf("expected %s to be validation-class", code)
			}
		}
	})

	t.Run("wrapped errors still match", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewParseError("inner"))
		if !IsParseError(err) {
			t.Error("expected IsParseError to match through wrapping")
		}
	})
}

func TestWithDetails(t *testing.T) {
	base := NewValidationError(CodeValidation, "bad input")
	detailed := base.WithDetails(map[string]string{"field": "outcar_path"})

	if detailed.Details["field"] != "outcar_path" {
		t.Errorf("expected details on the copy, got %v", detailed.Details)
	}
	if base.Details != nil {
		t.Error("expected the original to stay untouched")
	}
	if detailed.Code != base.Code || detailed.Message != base.Message {
		t.Error("expected code and message to carry over")
	}
}

func TestNormalizeError(t *testing.T) {
	t.Run("typed error keeps its code", func(t *testing.T) {
		app := NormalizeError(NewParseError("garbled input"))
		if app.Code != CodeParse {
			t.Errorf("expected PARSE_ERROR, got %s", app.Code)
		}
		if app.Message != "garbled input" {
			t.Errorf("unexpected message: %s", app.Message)
		}
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		app := NormalizeError(errors.New("something odd"))
		if app.Code != CodeInternal {
			t.Errorf("expected INTERNAL_ERROR, got %s", app.Code)
		}
	})
}

func TestDedupWarnings(t *testing.T) {
	in := []string{"a", "b", "a", "c", "b"}
	out := DedupWarnings(in)
	want := []string{"a", "b", "c"}
	if len(out) != len(want) {
		t.Fatalf("expected %d warnings, got %v", len(want), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], out[i])
		}
	}
}
