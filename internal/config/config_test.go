package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("unexpected default addr: %s", cfg.Server.Addr)
	}
	if cfg.Analysis.EnergyToleranceEV != 1e-4 {
		t.Errorf("unexpected energy tolerance: %v", cfg.Analysis.EnergyToleranceEV)
	}
	if cfg.Analysis.ForceToleranceEVPerA != 0.02 {
		t.Errorf("unexpected force tolerance: %v", cfg.Analysis.ForceToleranceEVPerA)
	}
	if cfg.Dos.EnergyWindowEV != 5.0 || cfg.Dos.MaxPoints != 400 {
		t.Errorf("unexpected DOS defaults: %+v", cfg.Dos)
	}
	if cfg.Batch.TopN != 5 || cfg.Batch.MaxRuns != 50 || cfg.Batch.FailFast {
		t.Errorf("unexpected batch defaults: %+v", cfg.Batch)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if !strings.HasPrefix(string(raw), "# Slab configuration") {
		t.Error("expected the comment header")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if cfg.Analysis.EnergyToleranceEV != 1e-4 || cfg.Dos.MaxPoints != 400 {
		t.Errorf("written config does not round-trip the defaults: %+v", cfg)
	}
}

func TestNewManager_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  addr: 0.0.0.0:9000
analysis:
  energy_tolerance_ev: 0.001
  force_tolerance_ev_per_a: 0.05
dos:
  energy_window_ev: 8.0
  max_points: 200
batch:
  top_n: 10
  max_runs: 25
  fail_fast: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	cfg := mgr.Get()
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected addr from file, got %s", cfg.Server.Addr)
	}
	if cfg.Analysis.EnergyToleranceEV != 0.001 || cfg.Analysis.ForceToleranceEVPerA != 0.05 {
		t.Errorf("expected tolerances from file, got %+v", cfg.Analysis)
	}
	if cfg.Dos.EnergyWindowEV != 8.0 || cfg.Dos.MaxPoints != 200 {
		t.Errorf("expected DOS settings from file, got %+v", cfg.Dos)
	}
	if cfg.Batch.TopN != 10 || cfg.Batch.MaxRuns != 25 || !cfg.Batch.FailFast {
		t.Errorf("expected batch settings from file, got %+v", cfg.Batch)
	}
}
