package automation

import (
	"context"
	"errors"
	"image"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
)

var testTable = lens.TableConfig{Bins: 128, Steps: 64}

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	comp, err := render.NewCompositor([]render.Source{render.NewStarfield(32, 0.05, 1)}, 2)
	if err != nil {
		t.Fatal(err)
	}
	return render.NewRenderer(comp, 16, 12)
}

const scenarioYAML = `name: grow
description: point mass growing into a halo
delay: 4
steps:
  - model: point
    params:
      mass: 0.5
  - model: point
    frames: 3
    center_x: 0.6
    center_y: 0.4
    params:
      mass: 1.5
  - model: hsw
    params:
      hsw_alpha: 3
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "grow" || sc.Delay != 4 || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Frames != 3 || sc.Steps[1].Params["mass"] != 1.5 {
		t.Errorf("unexpected step %+v", sc.Steps[1])
	}

	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	frames, err := RunScenario(context.Background(), sc, testRenderer(t), testTable)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(frames))
	}

	// Interpolated mass climbs toward the keyframe.
	for i := 2; i <= 3; i++ {
		if frames[i].Params.Mass <= frames[i-1].Params.Mass {
			t.Errorf("frame %d mass %v not increasing", i, frames[i].Params.Mass)
		}
	}
	if frames[3].Params.Mass != 1.5 {
		t.Errorf("last interpolated mass = %v, want 1.5", frames[3].Params.Mass)
	}

	last := frames[4]
	if last.Params.Model != lens.HSWVoid || !last.Rebuilt {
		t.Errorf("expected hsw frame with a table build, got %s rebuilt=%v", last.Params.Model, last.Rebuilt)
	}
	for i, f := range frames {
		if f.Image == nil || f.Image.Bounds().Dx() != 16 {
			t.Errorf("frame %d missing image", i)
		}
	}
}

func TestRunScenarioErrors(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Model: "sis"}}}
	if _, err := RunScenario(context.Background(), sc, testRenderer(t), testTable); !errors.Is(err, lens.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}

	sc = &Scenario{Steps: []ScenarioStep{{Model: "nfw", Params: map[string]float64{"gravity": 1}}}}
	if _, err := RunScenario(context.Background(), sc, testRenderer(t), testTable); !errors.Is(err, lens.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc = &Scenario{Steps: []ScenarioStep{{Model: "nfw"}}}
	if _, err := RunScenario(ctx, sc, testRenderer(t), testTable); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunScenarioSaveAs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "step.png")
	sc := &Scenario{Steps: []ScenarioStep{{Model: "nfw", SaveAs: out}}}
	if _, err := RunScenario(context.Background(), sc, testRenderer(t), testTable); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected saved frame: %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Model:     "nfw",
		ParamName: "mass",
		ParamMin:  0.5,
		ParamMax:  1.5,
		NumSteps:  3,
	}
	results, err := RunSweep(context.Background(), sweep, testRenderer(t), testTable)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Peak.Magnitude <= results[i-1].Peak.Magnitude {
			t.Errorf("peak should grow with mass: %v", results)
		}
	}
	if results[2].ParamValue != 1.5 {
		t.Errorf("last value = %v", results[2].ParamValue)
	}
	if len(SweepFrames(results)) != 3 {
		t.Error("expected a frame per step")
	}
}

func TestRunSweepHSWRebuilds(t *testing.T) {
	sweep := &ParameterSweep{
		Model:     "hsw",
		ParamName: "hsw_alpha",
		ParamMin:  2,
		ParamMax:  4,
		NumSteps:  3,
	}
	results, err := RunSweep(context.Background(), sweep, nil, testTable)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	// The first step matches the session's initial table only if alpha is
	// unchanged; every later step needs a fresh table.
	for i := 1; i < len(results); i++ {
		if !results[i].Rebuilt {
			t.Errorf("step %d did not rebuild the table", i)
		}
		if results[i].Frame != nil {
			t.Error("nil renderer should skip frames")
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	bad := &ParameterSweep{Model: "nfw", ParamName: "wall_width", NumSteps: 3}
	if _, err := RunSweep(context.Background(), bad, nil, testTable); !errors.Is(err, lens.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	short := &ParameterSweep{Model: "nfw", ParamName: "mass", NumSteps: 1}
	if _, err := RunSweep(context.Background(), short, nil, testTable); err == nil {
		t.Error("expected error for a single-step sweep")
	}
}

func TestSaveAnimatedGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.gif")
	frames := []*image.RGBA{
		image.NewRGBA(image.Rect(0, 0, 8, 8)),
		image.NewRGBA(image.Rect(0, 0, 8, 8)),
	}
	if err := SaveAnimatedGIF(path, frames, 5); err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 2 || g.Delay[0] != 5 {
		t.Errorf("gif has %d frames, delay %v", len(g.Image), g.Delay)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	for _, m := range lens.ListModels() {
		cfg := &MonteCarloConfig{
			Model:        m,
			Perturbation: 0.5,
			NumTrials:    5,
			Samples:      200,
			Seed:         7,
			Table:        testTable,
		}
		results, err := RunMonteCarlo(context.Background(), cfg)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		stable, unstable := MonteCarloStats(results)
		if stable != 5 || unstable != 0 {
			t.Errorf("%s: %d stable, %d unstable", m, stable, unstable)
		}
	}
}

func TestRunMonteCarloRejectsNonFinitePerturbation(t *testing.T) {
	cfg := &MonteCarloConfig{Model: "point", Perturbation: math.Inf(1), NumTrials: 2, Samples: 10, Seed: 3, Table: testTable}
	results, err := RunMonteCarlo(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected error for infinite perturbation")
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want none", len(results))
	}
}

func TestRunMonteCarloSeeded(t *testing.T) {
	cfg := &MonteCarloConfig{Model: "nfw", Perturbation: 0.3, NumTrials: 3, Samples: 10, Seed: 11, Table: testTable}
	a, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Params != b[i].Params || a[i].MaxMagnitude != b[i].MaxMagnitude {
			t.Errorf("trial %d differs between seeded runs", i)
		}
	}
}
