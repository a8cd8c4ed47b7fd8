package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "point" {
		t.Errorf("expected model point, got %s", cfg.Model)
	}
	if cfg.Render.Width <= 0 || cfg.Render.Height <= 0 {
		t.Error("frame size should be positive")
	}
	if cfg.Table.Bins != 8192 || cfg.Table.Steps != 1000 {
		t.Errorf("unexpected table size %+v", cfg.Table)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("hsw", "typical")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.Model != lens.HSWVoid || p.HSWDeltaC != -0.8 || p.HSWBeta != 15 {
		t.Errorf("unexpected params %+v", p)
	}

	// Aliases resolve to the canonical model key.
	if GetPreset("HSWVoid", "typical") == nil {
		t.Error("expected alias lookup to succeed")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("nfw", "halo")
	a.Lens.Mass = 99
	if b := GetPreset("nfw", "halo"); b.Lens.Mass == 99 {
		t.Error("GetPreset exposed the shared preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nfw", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "halo"); cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
	if _, err := LookupPreset("nfw", "nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	for _, m := range lens.ListModels() {
		if len(ListPresets(m)) == 0 {
			t.Errorf("expected presets for %s", m)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}

	names := ListPresets("void")
	if len(names) != 2 || names[0] != "deep" || names[1] != "shallow" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestPresetsValid(t *testing.T) {
	for model, presets := range Presets {
		for name, cfg := range presets {
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
			p, err := cfg.Params()
			if err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
				continue
			}
			if p.Model.String() != model {
				t.Errorf("%s/%s: model %s", model, name, p.Model)
			}
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lens.yaml")

	cfg := DefaultConfig()
	cfg.SetParams(lens.DefaultParams(lens.VoidToy))
	cfg.Render.Sources = []string{"a.png", "b.png"}
	cfg.Table.Bins = 2048

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Model != "void" || got.Lens.Mass != 0.2 || got.Table.Bins != 2048 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if len(got.Render.Sources) != 2 {
		t.Errorf("expected 2 sources, got %v", got.Render.Sources)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lens.yaml")
	if err := os.WriteFile(path, []byte("model: nfw\nlens:\n  mass: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Model != "nfw" || got.Lens.Mass != 1.5 {
		t.Errorf("explicit fields not applied: %+v", got.Lens)
	}
	if got.Lens.Spread != 1.0 || got.Render.Width != DefaultWidth || got.Table.Bins != lens.DefaultTableBins {
		t.Errorf("missing keys should keep defaults: %+v", got)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("model: [nfw\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadRejectsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	data := "model: hsw\nlens:\n  hsw:\n    alpha: .nan\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(cfg.Lens.HSW.Alpha) {
		t.Fatalf("alpha = %v, want NaN from yaml", cfg.Lens.HSW.Alpha)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"bad model", func(c *Config) { c.Model = "sis" }, lens.ErrUnknownModel},
		{"zero width", func(c *Config) { c.Render.Width = 0 }, ErrInvalidSize},
		{"too many layers", func(c *Config) { c.Render.Layers = 9 }, render.ErrTooManyLayers},
		{"empty table", func(c *Config) { c.Table.Steps = 0 }, lens.ErrTableSize},
		{"nan alpha", func(c *Config) { c.Lens.HSW.Alpha = math.NaN() }, ErrNonFinite},
		{"inf mass", func(c *Config) { c.Lens.Mass = math.Inf(1) }, ErrNonFinite},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.err) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.err, err)
		}
	}
}

func TestRenderer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Width, cfg.Render.Height = 32, 16
	cfg.Render.StarSize = 32

	r, err := cfg.Renderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if w, h := r.Size(); w != 32 || h != 16 {
		t.Errorf("size = %dx%d", w, h)
	}
	if r.Compositor().LayerCount() != DefaultLayers {
		t.Errorf("layers = %d", r.Compositor().LayerCount())
	}

	cfg.Render.Sources = []string{filepath.Join(t.TempDir(), "missing.png")}
	if _, err := cfg.Renderer(); err == nil {
		t.Error("expected error for a missing source image")
	}
}

func TestControlsReproduceParams(t *testing.T) {
	cfg := GetPreset("nfw", "galaxy")
	ctrl, err := cfg.Controls()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := cfg.Params()
	got := ctrl.Params()
	// Only the hsw model reads delta_c.
	want.HSWDeltaC = got.HSWDeltaC
	if got != want {
		t.Errorf("controls give %+v, want %+v", got, want)
	}

	cfg = GetPreset("hsw", "typical")
	ctrl, err = cfg.Controls()
	if err != nil {
		t.Fatal(err)
	}
	if got := ctrl.Params().HSWDeltaC; math.Abs(got-cfg.Lens.HSW.DeltaC) > 1e-12 {
		t.Errorf("delta_c = %v, want %v", got, cfg.Lens.HSW.DeltaC)
	}

	cfg.Model = "sis"
	if _, err := cfg.Controls(); !errors.Is(err, lens.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}
