package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
)

const (
	DefaultWidth       = 640
	DefaultHeight      = 360
	DefaultLayers      = 3
	DefaultSeed        = 1
	DefaultStarSize    = 512
	DefaultStarDensity = 0.004
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalidSize   = errors.New("config: width and height must be positive")
	ErrNonFinite     = errors.New("config: lens parameter is not finite")
)

type Config struct {
	Model  string       `yaml:"model"`
	Lens   LensConfig   `yaml:"lens"`
	Render RenderConfig `yaml:"render"`
	Table  TableConfig  `yaml:"table"`
}

type LensConfig struct {
	Mass        float64   `yaml:"mass"`
	Spread      float64   `yaml:"spread"`
	WallDensity float64   `yaml:"wall_density"`
	WallWidth   float64   `yaml:"wall_width"`
	HSW         HSWConfig `yaml:"hsw"`
}

type HSWConfig struct {
	DeltaC float64 `yaml:"delta_c"`
	Rs     float64 `yaml:"rs"`
	Alpha  float64 `yaml:"alpha"`
	Beta   float64 `yaml:"beta"`
}

type RenderConfig struct {
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	Layers      int      `yaml:"layers"`
	CenterX     float64  `yaml:"center_x"`
	CenterY     float64  `yaml:"center_y"`
	Brightness  float64  `yaml:"brightness"`
	Seed        int64    `yaml:"seed"`
	StarSize    int      `yaml:"star_size"`
	StarDensity float64  `yaml:"star_density"`
	Sources     []string `yaml:"sources,omitempty"`
	Overlay     bool     `yaml:"overlay"`
}

type TableConfig struct {
	Bins  int `yaml:"bins"`
	Steps int `yaml:"steps"`
}

func DefaultConfig() *Config {
	p := lens.DefaultParams(lens.PointMass)
	return &Config{
		Model: lens.PointMass.String(),
		Lens: LensConfig{
			Mass:        p.Mass,
			Spread:      p.Spread,
			WallDensity: p.WallDensity,
			WallWidth:   p.WallWidth,
			HSW: HSWConfig{
				DeltaC: p.HSWDeltaC,
				Rs:     p.HSWRs,
				Alpha:  p.HSWAlpha,
				Beta:   p.HSWBeta,
			},
		},
		Render: RenderConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			Layers:      DefaultLayers,
			CenterX:     0.5,
			CenterY:     0.5,
			Brightness:  1.0,
			Seed:        DefaultSeed,
			StarSize:    DefaultStarSize,
			StarDensity: DefaultStarDensity,
			Overlay:     true,
		},
		Table: TableConfig{
			Bins:  lens.DefaultTableBins,
			Steps: lens.DefaultTableSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields that cannot be clamped silently.
func (c *Config) Validate() error {
	if _, err := lens.ParseModel(c.Model); err != nil {
		return err
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Render.Width, c.Render.Height)
	}
	if c.Render.Layers > render.MaxLayers || len(c.Render.Sources) > render.MaxLayers {
		return fmt.Errorf("%w: max %d", render.ErrTooManyLayers, render.MaxLayers)
	}
	if c.Table.Bins <= 0 || c.Table.Steps <= 0 {
		return lens.ErrTableSize
	}
	l := c.Lens
	for name, v := range map[string]float64{
		"mass":         l.Mass,
		"spread":       l.Spread,
		"wall_density": l.WallDensity,
		"wall_width":   l.WallWidth,
		"hsw.delta_c":  l.HSW.DeltaC,
		"hsw.rs":       l.HSW.Rs,
		"hsw.alpha":    l.HSW.Alpha,
		"hsw.beta":     l.HSW.Beta,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFinite, name, v)
		}
	}
	return nil
}

// Params converts the lens section into evaluator parameters.
func (c *Config) Params() (lens.Params, error) {
	m, err := lens.ParseModel(c.Model)
	if err != nil {
		return lens.Params{}, err
	}
	p := lens.Params{
		Model:       m,
		Mass:        c.Lens.Mass,
		Spread:      c.Lens.Spread,
		WallDensity: c.Lens.WallDensity,
		WallWidth:   c.Lens.WallWidth,
		HSWDeltaC:   c.Lens.HSW.DeltaC,
		HSWRs:       c.Lens.HSW.Rs,
		HSWAlpha:    c.Lens.HSW.Alpha,
		HSWBeta:     c.Lens.HSW.Beta,
	}
	return p.Normalize(), nil
}

// Controls returns the slider state that reproduces the lens section.
func (c *Config) Controls() (lens.Controls, error) {
	p, err := c.Params()
	if err != nil {
		return lens.Controls{}, err
	}
	return lens.ControlsFor(p), nil
}

// SetParams writes p back into the lens section.
func (c *Config) SetParams(p lens.Params) {
	c.Model = p.Model.String()
	c.Lens = LensConfig{
		Mass:        p.Mass,
		Spread:      p.Spread,
		WallDensity: p.WallDensity,
		WallWidth:   p.WallWidth,
		HSW: HSWConfig{
			DeltaC: p.HSWDeltaC,
			Rs:     p.HSWRs,
			Alpha:  p.HSWAlpha,
			Beta:   p.HSWBeta,
		},
	}
}

func (c *Config) TableConfig() lens.TableConfig {
	return lens.TableConfig{Bins: c.Table.Bins, Steps: c.Table.Steps}
}

func (c *Config) Center() lens.Vec2 {
	return lens.Vec2{X: c.Render.CenterX, Y: c.Render.CenterY}
}

// LayerSources returns the layer sources: the configured images, or a seeded
// starfield when none are configured.
func (c *Config) LayerSources() ([]render.Source, error) {
	if len(c.Render.Sources) > 0 {
		return render.LoadSources(c.Render.Sources, c.Render.Width, c.Render.Height)
	}
	return []render.Source{render.NewStarfield(c.Render.StarSize, c.Render.StarDensity, c.Render.Seed)}, nil
}

// Renderer builds the compositor and renderer described by the render section.
func (c *Config) Renderer() (*render.Renderer, error) {
	sources, err := c.LayerSources()
	if err != nil {
		return nil, err
	}
	comp, err := render.NewCompositor(sources, c.Render.Layers)
	if err != nil {
		return nil, err
	}
	comp.SetBrightness(c.Render.Brightness)
	return render.NewRenderer(comp, c.Render.Width, c.Render.Height), nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Render.Sources = append([]string(nil), c.Render.Sources...)
	return &out
}
