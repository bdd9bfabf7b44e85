package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/structure"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Kind != structure.KindArray {
		t.Errorf("expected kind array, got %s", cfg.Kind)
	}
	if cfg.Interval() != 800*time.Millisecond {
		t.Errorf("expected 800ms interval, got %v", cfg.Interval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	cfg := DefaultConfig()
	cfg.Operation = "heap_sort"
	cfg.Playback.Speed = 2
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Operation != "heap_sort" || got.Playback.Speed != 2 {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("operation: dfs\nkind: graph\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Playback.IntervalMS != 800 || cfg.Random.GraphNodes == 0 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad kind":  "kind: matrix\n",
		"bad speed": "playback:\n  speed: -1\n",
		"not yaml":  "kind: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStructure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input = "3, 1, 2"
	s, err := cfg.Structure()
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 values, got %d", s.Len())
	}

	cfg.Input = "3, x"
	if _, err := cfg.Structure(); err == nil {
		t.Error("expected parse error")
	}

	cfg.Input = ""
	cfg.Kind = structure.KindGraph
	s, err = cfg.Structure()
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != cfg.Random.GraphNodes {
		t.Errorf("expected %d nodes, got %d", cfg.Random.GraphNodes, s.Len())
	}
}

func TestParamMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = map[string]string{"value": "7", "note": "x"}
	m := cfg.ParamMap()
	if m["value"] != 7 {
		t.Errorf("expected int 7, got %#v", m["value"])
	}
	if m["note"] != "x" {
		t.Errorf("expected passthrough, got %#v", m["note"])
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset(structure.KindArray, "binary")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Operation != "binary_search" {
		t.Errorf("expected binary_search, got %s", cfg.Operation)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset(structure.KindArray, "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset(structure.Kind("matrix"), "classic") != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets(structure.KindArray)
	if len(names) == 0 {
		t.Error("expected presets for array")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	if ListPresets(structure.Kind("matrix")) != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestPresets_AreRunnable(t *testing.T) {
	reg := algo.NewRegistry()
	for kind, byName := range Presets {
		for name, cfg := range byName {
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", kind, name, err)
			}
			if _, ok := reg.Lookup(cfg.Kind, cfg.Operation); !ok {
				t.Errorf("%s/%s: unknown operation %s", kind, name, cfg.Operation)
			}
			if _, err := cfg.Structure(); err != nil {
				t.Errorf("%s/%s: %v", kind, name, err)
			}
		}
	}
}
