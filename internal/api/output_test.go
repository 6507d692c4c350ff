package api

import (
	"bytes"
	"strings"
	"testing"
)

type sampleOutput struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Errorf("expected json, got %s", GetOutputFormat())
	}

	SetOutputFormat("yaml")
	if GetOutputFormat() != OutputFormatYAML {
		t.Errorf("expected yaml, got %s", GetOutputFormat())
	}

	t.Run("unknown falls back to yaml", func(t *testing.T) {
		SetOutputFormat("xml")
		if GetOutputFormat() != OutputFormatYAML {
			t.Errorf("expected yaml fallback, got %s", GetOutputFormat())
		}
	})
}

func TestOutputTo(t *testing.T) {
	data := sampleOutput{Name: "si-relax", Value: -20.00005}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, `"name": "si-relax"`) {
			t.Errorf("expected indented JSON, got %q", out)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "name: si-relax") {
			t.Errorf("expected YAML, got %q", out)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormat("xml"), data); err == nil {
			t.Error("expected an error for an unknown format")
		}
	})
}
