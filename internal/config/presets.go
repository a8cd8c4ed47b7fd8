package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/lensim/internal/lens"
)

// Presets holds named lens setups per model.
var Presets = map[string]map[string]*Config{
	"point": {
		"star":    preset(lens.PointMass, LensConfig{Mass: 0.4, Spread: 0.5}),
		"cluster": preset(lens.PointMass, LensConfig{Mass: 2.0, Spread: 1.5}),
	},
	"nfw": {
		"galaxy": preset(lens.NFW, LensConfig{Mass: 0.8, Spread: 0.6}),
		"halo":   preset(lens.NFW, LensConfig{Mass: 1.6, Spread: 1.4}),
	},
	"void": {
		"shallow": preset(lens.VoidToy, LensConfig{Mass: 0.6, Spread: 1.0, WallDensity: 0.2, WallWidth: 0.3}),
		"deep":    preset(lens.VoidToy, LensConfig{Mass: 0.05, Spread: 1.2, WallDensity: 0.5, WallWidth: 0.2}),
	},
	"hsw": {
		"typical":     preset(lens.HSWVoid, LensConfig{Mass: 0.2, Spread: 1.0, HSW: HSWConfig{DeltaC: -0.8, Rs: 0.9, Alpha: 4.0, Beta: 15.0}}),
		"compensated": preset(lens.HSWVoid, LensConfig{Mass: 0.1, Spread: 1.2, HSW: HSWConfig{DeltaC: -0.9, Rs: 0.95, Alpha: 2.0, Beta: 9.0}}),
	},
}

func preset(m lens.Model, l LensConfig) *Config {
	cfg := DefaultConfig()
	cfg.Model = m.String()
	def := cfg.Lens
	if l.WallWidth == 0 {
		l.WallDensity, l.WallWidth = def.WallDensity, def.WallWidth
	}
	if l.HSW == (HSWConfig{}) {
		l.HSW = def.HSW
	}
	cfg.Lens = l
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, name string) *Config {
	if m, err := lens.ParseModel(model); err == nil {
		model = m.String()
	}
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// LookupPreset is GetPreset with an error for CLI use.
func LookupPreset(model, name string) (*Config, error) {
	cfg := GetPreset(model, name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, model, name)
	}
	return cfg, nil
}

func ListPresets(model string) []string {
	if m, err := lens.ParseModel(model); err == nil {
		model = m.String()
	}
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
