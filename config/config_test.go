package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hacatu/nut/factor"
)

func TestDefaultFactorConfig(t *testing.T) {
	cfg := DefaultFactorConfig()
	if cfg.PollardMax == 0 || cfg.PollardStride == 0 || cfg.LenstraMax == 0 || cfg.LenstraBFac == 0 {
		t.Errorf("DefaultFactorConfig has a zero field: %+v", cfg)
	}
}

func TestLoadFactorConfigJSONOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factor.json")
	partial := map[string]uint64{"pollard_max": 42}
	buf, err := json.Marshal(partial)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := LoadFactorConfigJSON(path)
	if err != nil {
		t.Fatalf("LoadFactorConfigJSON: %v", err)
	}
	want := DefaultFactorConfig()
	want.PollardMax = 42
	if cfg != want {
		t.Errorf("LoadFactorConfigJSON = %+v, want %+v", cfg, want)
	}
}

func TestLoadFactorConfigJSONMissingFile(t *testing.T) {
	if _, err := LoadFactorConfigJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("LoadFactorConfigJSON on a missing file returned nil error")
	}
}

func TestToFactorConfigMatchesDefault(t *testing.T) {
	got := DefaultFactorConfig().ToFactorConfig()
	want := factor.DefaultConfig()
	if got != want {
		t.Errorf("ToFactorConfig() = %+v, want %+v", got, want)
	}
}
