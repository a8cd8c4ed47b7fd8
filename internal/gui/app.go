package gui

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lensim/internal/analysis"
	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
	"github.com/san-kum/lensim/internal/storage"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColRing    = rl.NewColor(255, 210, 120, 160) // Lens boundary
)

const (
	windowWidth  = 1280
	windowHeight = 720
	profilePts   = 160
)

// Options configures the window.
type Options struct {
	Controls    lens.Controls
	Center      lens.Vec2
	Sources     []render.Source
	Layers      int
	Table       lens.TableConfig
	Width       int // render resolution, scaled to the window
	Height      int
	SnapshotDir string
	Interactive bool // start in the model menu
}

type App struct {
	Session  *lens.Session
	Comp     *render.Compositor
	Renderer *render.Renderer
	Store    *storage.Store
	Ctrl     lens.Controls
	Initial  lens.Controls
	Center   lens.Vec2
	Profile  *analysis.Profile
	Frame    *image.RGBA

	InMenu    bool
	InConfig  bool
	Models    []lens.Model
	Selected  int
	ParamKeys []string
	ParamSel  int

	ShowOverlay bool
	Dragging    bool
	Dirty       bool
	Status      string
	Font        rl.Font

	Tex    rl.Texture2D
	pixels []color.RGBA
}

// initWindow initializes the Raylib window with size 1280×720 and title "lensim", sets the target FPS to 60, and disables the default exit key.
func initWindow() {
	rl.InitWindow(windowWidth, windowHeight, "lensim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables bilinear texture filtering.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the session, compositor and frame texture. The window must
// already be open.
func NewApp(opts Options) (*App, error) {
	sources := opts.Sources
	if len(sources) == 0 {
		sources = []render.Source{render.NewStarfield(512, 0.004, 1)}
	}
	comp, err := render.NewCompositor(sources, opts.Layers)
	if err != nil {
		return nil, err
	}
	session, err := lens.NewSession(opts.Controls.Params(), opts.Table)
	if err != nil {
		return nil, err
	}
	w, h := opts.Width, opts.Height
	if w < 1 || h < 1 {
		w, h = windowWidth/2, windowHeight/2
	}
	center := opts.Center
	if center == (lens.Vec2{}) {
		center = lens.Vec2{X: 0.5, Y: 0.5}
	}
	snapDir := opts.SnapshotDir
	if snapDir == "" {
		snapDir = "snapshots"
	}

	app := &App{
		Session:     session,
		Comp:        comp,
		Renderer:    render.NewRenderer(comp, w, h),
		Store:       storage.New(snapDir),
		Ctrl:        opts.Controls,
		Initial:     opts.Controls,
		Center:      center,
		Models:      lens.Models(),
		InMenu:      opts.Interactive,
		ShowOverlay: true,
		Font:        loadFont(),
	}
	app.Selected = int(opts.Controls.Model)
	app.ParamKeys = app.Ctrl.ParamKeys()

	img := rl.GenImageColor(w, h, rl.Black)
	app.Tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(app.Tex, rl.FilterBilinear)

	app.apply()
	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	initWindow()
	defer rl.CloseWindow()
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer rl.UnloadTexture(app.Tex)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// apply pushes the sliders into the session. It runs only when a slider or
// the model changed, so HSW tables are never rebuilt per frame.
func (a *App) apply() {
	rebuilt, err := a.Session.Apply(a.Ctrl.Params())
	if err != nil {
		a.Status = err.Error()
		return
	}
	if rebuilt {
		a.Status = fmt.Sprintf("hsw table #%d", a.Session.Builds())
	}
	a.ParamKeys = a.Ctrl.ParamKeys()
	if a.ParamSel >= len(a.ParamKeys) {
		a.ParamSel = 0
	}
	a.Profile = analysis.RadialProfile(a.Session.Evaluator(), 1.0, profilePts)
	a.Dirty = true
}

func (a *App) nudge(key string, steps float64) {
	if err := a.Ctrl.Nudge(key, steps); err != nil {
		a.Status = err.Error()
		return
	}
	a.apply()
}

func (a *App) setLayers(n int) {
	err := a.Comp.SetLayerCount(n)
	switch {
	case errors.Is(err, render.ErrLayersPinned):
		a.Status = fmt.Sprintf("layers fixed by %d sources", a.Comp.LayerCount())
	case err != nil:
		a.Status = err.Error()
	default:
		a.Dirty = true
	}
}

func (a *App) snapshot() {
	if err := a.Store.Init(); err != nil {
		a.Status = err.Error()
		return
	}
	id, err := a.Store.Save(storage.Snapshot{
		Params:  a.Session.Params(),
		Frame:   a.Frame,
		Profile: a.Profile,
		Layers:  a.Comp.LayerCount(),
	})
	if err != nil {
		a.Status = err.Error()
		return
	}
	a.Status = "saved " + id
}

// screenToUV maps window pixels to frame coordinates.
func screenToUV(p rl.Vector2) lens.Vec2 {
	u := float64(p.X) / float64(rl.GetScreenWidth())
	v := float64(p.Y) / float64(rl.GetScreenHeight())
	return lens.Vec2{X: clamp01(u), Y: clamp01(v)}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Update handles input for one frame. It returns false when the user quits.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	if a.InMenu {
		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
			a.Selected++
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.Selected--
		}

		// Wrap selection
		if a.Selected >= len(a.Models) {
			a.Selected = 0
		}
		if a.Selected < 0 {
			a.Selected = len(a.Models) - 1
		}

		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
			a.Ctrl = lens.DefaultControls(a.Models[a.Selected])
			a.Initial = a.Ctrl
			a.ParamSel = 0
			a.apply()
			a.InMenu = false
			a.InConfig = true
		}
		return true
	}

	if a.InConfig {
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.InMenu = true
			a.InConfig = false
			return true
		}
		if rl.IsKeyPressed(rl.KeyEnter) {
			a.InConfig = false
			return true
		}
		a.sliderKeys(rl.KeyRight, rl.KeyLeft)
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		return true
	}

	// Drag the lens with the left button.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Dragging = false
	}
	if a.Dragging {
		if uv := screenToUV(rl.GetMousePosition()); uv != a.Center {
			a.Center = uv
			a.Dirty = true
		}
	}

	// Wheel adjusts mass.
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.nudge("mass", float64(wheel))
	}

	if rl.IsKeyPressed(rl.KeyTab) && len(a.ParamKeys) > 0 {
		a.ParamSel = (a.ParamSel + 1) % len(a.ParamKeys)
	}
	a.sliderKeys(rl.KeyUp, rl.KeyDown)

	if rl.IsKeyPressed(rl.KeyM) {
		a.Ctrl.Model = a.Ctrl.Model.Next()
		a.Selected = int(a.Ctrl.Model)
		a.apply()
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.setLayers(a.Comp.LayerCount() + 1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.setLayers(a.Comp.LayerCount() - 1)
	}
	if rl.IsKeyPressed(rl.KeyO) {
		a.ShowOverlay = !a.ShowOverlay
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.snapshot()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Ctrl = a.Initial
		a.Center = lens.Vec2{X: 0.5, Y: 0.5}
		a.apply()
	}
	return true
}

// sliderKeys tunes the selected slider; shift moves five steps at a time.
func (a *App) sliderKeys(up, down int32) {
	if len(a.ParamKeys) == 0 {
		return
	}
	// The config screen selects with Up/Down; the live view tunes with them.
	if a.InConfig {
		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
			a.ParamSel = (a.ParamSel + 1) % len(a.ParamKeys)
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.ParamSel = (a.ParamSel - 1 + len(a.ParamKeys)) % len(a.ParamKeys)
		}
	}

	step := 1.0
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 5.0
	}
	key := a.ParamKeys[a.ParamSel]
	if rl.IsKeyPressed(up) {
		a.nudge(key, step)
	}
	if rl.IsKeyPressed(down) {
		a.nudge(key, -step)
	}
}
