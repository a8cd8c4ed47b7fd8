package automation

import (
	"context"
	"fmt"
	"image"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lensim/internal/analysis"
	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
)

// Scenario defines a scripted sequence of lens setups rendered in order.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Delay       int            `yaml:"delay"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one keyframe. Params are slider names as accepted by
// lens.Controls.SetParam. Frames > 1 interpolates sliders linearly from the
// previous step.
type ScenarioStep struct {
	Model   string             `yaml:"model"`
	Params  map[string]float64 `yaml:"params"`
	CenterX float64            `yaml:"center_x"`
	CenterY float64            `yaml:"center_y"`
	Frames  int                `yaml:"frames"`
	SaveAs  string             `yaml:"save_as"`
}

// Frame is one rendered scenario or sweep frame.
type Frame struct {
	Params  lens.Params
	Image   *image.RGBA
	Rebuilt bool
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// stepControls resolves a step's model and sliders.
func stepControls(step ScenarioStep) (lens.Controls, error) {
	m, err := lens.ParseModel(step.Model)
	if err != nil {
		return lens.Controls{}, err
	}
	c := lens.DefaultControls(m)
	for k, v := range step.Params {
		if err := c.SetParam(k, v); err != nil {
			return lens.Controls{}, err
		}
	}
	return c, nil
}

func lerpControls(a, b lens.Controls, t float64) lens.Controls {
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	out := b
	if a.Model == b.Model {
		out.Mass = mix(a.Mass, b.Mass)
		out.Spread = mix(a.Spread, b.Spread)
		out.WallDensity = mix(a.WallDensity, b.WallDensity)
		out.WallWidth = mix(a.WallWidth, b.WallWidth)
		out.HSWRs = mix(a.HSWRs, b.HSWRs)
		out.HSWAlpha = mix(a.HSWAlpha, b.HSWAlpha)
		out.HSWBeta = mix(a.HSWBeta, b.HSWBeta)
	}
	return out
}

// RunScenario renders every step of a scenario with r.
func RunScenario(ctx context.Context, scenario *Scenario, r *render.Renderer, table lens.TableConfig) ([]Frame, error) {
	session, err := lens.NewSession(lens.DefaultParams(lens.PointMass), table)
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, 0, len(scenario.Steps))
	var prev *lens.Controls
	prevCenter := lens.Vec2{X: 0.5, Y: 0.5}

	for i, step := range scenario.Steps {
		lens.Logger().Info("scenario step", "step", i+1, "of", len(scenario.Steps), "model", step.Model)

		ctrl, err := stepControls(step)
		if err != nil {
			return frames, fmt.Errorf("step %d: %w", i+1, err)
		}
		center := lens.Vec2{X: step.CenterX, Y: step.CenterY}
		if step.CenterX == 0 && step.CenterY == 0 {
			center = prevCenter
		}

		n := max(step.Frames, 1)
		for f := 1; f <= n; f++ {
			if err := ctx.Err(); err != nil {
				return frames, err
			}
			t := float64(f) / float64(n)
			c := ctrl
			if prev != nil {
				c = lerpControls(*prev, ctrl, t)
			}
			cen := prevCenter.Add(center.Sub(prevCenter).Scale(t))

			rebuilt, err := session.Apply(c.Params())
			if err != nil {
				return frames, fmt.Errorf("step %d: %w", i+1, err)
			}
			frames = append(frames, Frame{
				Params:  session.Params(),
				Image:   r.Render(session.Evaluator(), cen),
				Rebuilt: rebuilt,
			})
		}

		if step.SaveAs != "" {
			if err := SavePNG(step.SaveAs, frames[len(frames)-1].Image); err != nil {
				return frames, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		prev = &ctrl
		prevCenter = center
	}

	return frames, nil
}

// ParameterSweep varies one slider of a model across a range.
type ParameterSweep struct {
	Model     string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Base      map[string]float64
	Center    lens.Vec2
	ProfileR  float64
}

// SweepResult holds one sweep sample.
type SweepResult struct {
	ParamValue   float64
	Params       lens.Params
	Peak         analysis.ProfilePoint
	Compensation float64
	Compensated  bool
	Frame        *image.RGBA
	Rebuilt      bool
}

// RunSweep executes a parameter sweep. r may be nil to skip rendering.
func RunSweep(ctx context.Context, sweep *ParameterSweep, r *render.Renderer, table lens.TableConfig) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	ctrl, err := stepControls(ScenarioStep{Model: sweep.Model, Params: sweep.Base})
	if err != nil {
		return nil, err
	}
	if _, ok := ctrl.GetParams()[sweep.ParamName]; !ok {
		return nil, fmt.Errorf("%w: %s does not respond to %s", lens.ErrUnknownParam, sweep.Model, sweep.ParamName)
	}

	session, err := lens.NewSession(ctrl.Params(), table)
	if err != nil {
		return nil, err
	}
	profileR := sweep.ProfileR
	if !(profileR > 0) {
		profileR = 1.0
	}
	center := sweep.Center
	if center == (lens.Vec2{}) {
		center = lens.Vec2{X: 0.5, Y: 0.5}
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		paramVal := sweep.ParamMin + float64(i)*paramStep
		if err := ctrl.SetParam(sweep.ParamName, paramVal); err != nil {
			return results, err
		}

		rebuilt, err := session.Apply(ctrl.Params())
		if err != nil {
			return results, err
		}
		ev := session.Evaluator()
		prof := analysis.RadialProfile(ev, profileR, 256)

		res := SweepResult{
			ParamValue: paramVal,
			Params:     session.Params(),
			Peak:       prof.Peak,
			Rebuilt:    rebuilt,
		}
		res.Compensation, res.Compensated = prof.CompensationRadius()
		if r != nil {
			res.Frame = r.Render(ev, center)
		}
		results = append(results, res)

		lens.Logger().Info("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// SweepFrames returns the rendered frames of a sweep.
func SweepFrames(results []SweepResult) []*image.RGBA {
	frames := make([]*image.RGBA, 0, len(results))
	for _, r := range results {
		if r.Frame != nil {
			frames = append(frames, r.Frame)
		}
	}
	return frames
}

// MonteCarloConfig defines a randomized robustness run: slider values are
// perturbed around a base and the deflection field is probed at random sky
// offsets.
type MonteCarloConfig struct {
	Model        string
	Base         map[string]float64
	Perturbation float64
	NumTrials    int
	Samples      int
	Seed         int64
	Table        lens.TableConfig
}

// MonteCarloResult holds one trial.
type MonteCarloResult struct {
	TrialID      int
	Params       lens.Params
	MaxMagnitude float64
	Stable       bool // every probe finite and within MaxDeflection
}

// RunMonteCarlo executes multiple trials with random perturbations
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	base, err := stepControls(ScenarioStep{Model: cfg.Model, Params: cfg.Base})
	if err != nil {
		return nil, err
	}
	session, err := lens.NewSession(base.Params(), cfg.Table)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	samples := max(cfg.Samples, 1)

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		ctrl := base
		for _, k := range ctrl.ParamKeys() {
			v := ctrl.GetParams()[k]
			if err := ctrl.SetParam(k, v+(rng.Float64()-0.5)*2*cfg.Perturbation); err != nil {
				return results, fmt.Errorf("trial %d: %w", trial, err)
			}
		}
		if _, err := session.Apply(ctrl.Params()); err != nil {
			return results, err
		}
		ev := session.Evaluator()

		stable := true
		maxMag := 0.0
		for s := 0; s < samples; s++ {
			// Log-uniform radii probe both the core and the far field.
			r := math.Pow(10, -6+rng.Float64()*6.5)
			theta := rng.Float64() * 2 * math.Pi
			d := ev.Deflect(lens.Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}, 1.0)
			mag := d.Len()
			if !d.IsFinite() || mag > lens.MaxDeflection*(1+1e-12) {
				stable = false
			}
			maxMag = math.Max(maxMag, mag)
		}

		results = append(results, MonteCarloResult{
			TrialID:      trial,
			Params:       session.Params(),
			MaxMagnitude: maxMag,
			Stable:       stable,
		})

		if (trial+1)%10 == 0 {
			lens.Logger().Info("monte carlo", "trials", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
