package viz

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lensim/internal/analysis"
	"github.com/san-kum/lensim/internal/automation"
	"github.com/san-kum/lensim/internal/compute"
	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
)

const (
	defaultCols    = 64
	defaultRows    = 22
	panelWidth     = 50
	tickRate       = time.Second / 15
	driftPeriod    = 240
	maxRecorded    = 300
	profileRadius  = 1.0
	profileSamples = 120
	recordingFile  = "lensim.gif"
)

var modelInfo = map[lens.Model]string{
	lens.PointMass: "compact mass, einstein ring",
	lens.NFW:       "cusped dark-matter halo",
	lens.VoidToy:   "toy void with compensating wall",
	lens.HSWVoid:   "hsw void profile, tabulated",
}

type TickMsg time.Time

// Options configures a live view.
type Options struct {
	Controls  lens.Controls
	Center    lens.Vec2
	Sources   []render.Source
	Layers    int
	Table     lens.TableConfig
	Threshold float64
	Theme     string
}

// DefaultOptions returns a live view of model m over a starfield.
func DefaultOptions(m lens.Model) Options {
	return Options{
		Controls:  lens.DefaultControls(m),
		Center:    lens.Vec2{X: 0.5, Y: 0.5},
		Layers:    3,
		Table:     lens.DefaultTableConfig(),
		Threshold: 0.3,
	}
}

// Model is the live lens view: a Braille rendering of the lensed sky next to
// a panel of sliders and the radial deflection profile.
type Model struct {
	session  *lens.Session
	comp     *render.Compositor
	renderer *render.Renderer
	canvas   *Canvas
	frame    *image.RGBA
	profile  *analysis.Profile

	ctrl, initialCtrl     lens.Controls
	center, initialCenter lens.Vec2
	paramKeys             []string
	selected              int
	threshold             float64

	tick      int
	drifting  bool
	ring      bool
	showHelp  bool
	recording bool
	frames    []*image.RGBA
	dirty     bool
	status    string
	err       error
}

// NewModel builds the session and compositor for opts and draws the first
// frame.
func NewModel(opts Options) (Model, error) {
	sources := opts.Sources
	if len(sources) == 0 {
		sources = []render.Source{render.NewStarfield(96, 0.03, 1)}
	}
	comp, err := render.NewCompositor(sources, opts.Layers)
	if err != nil {
		return Model{}, err
	}
	session, err := lens.NewSession(opts.Controls.Params(), opts.Table)
	if err != nil {
		return Model{}, err
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	center := opts.Center
	if center == (lens.Vec2{}) {
		center = lens.Vec2{X: 0.5, Y: 0.5}
	}
	threshold := opts.Threshold
	if !(threshold > 0) {
		threshold = 0.3
	}

	m := Model{
		session:       session,
		comp:          comp,
		ctrl:          opts.Controls,
		initialCtrl:   opts.Controls,
		center:        center,
		initialCenter: center,
		threshold:     threshold,
		ring:          true,
	}
	m.resize(defaultCols, defaultRows)
	m.apply()
	m.draw()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and redraws when the lens changed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(max(msg.Width-panelWidth-6, 16), max(msg.Height-4, 8))
	case TickMsg:
		m.tick++
		if m.drifting {
			m.center = driftCenter(m.initialCenter, m.tick)
			m.dirty = true
		}
		if m.dirty {
			m.draw()
		}
		if m.recording && len(m.frames) < maxRecorded {
			m.frames = append(m.frames, m.frame)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.cycleParam(1)
	case "shift+tab":
		m.cycleParam(-1)
	case "up", "k":
		m.adjustParam(1)
	case "down", "j":
		m.adjustParam(-1)
	case "m":
		m.ctrl.Model = m.ctrl.Model.Next()
		m.selected = 0
		m.apply()
	case "w":
		m.moveLens(0, -0.02)
	case "s":
		m.moveLens(0, 0.02)
	case "a":
		m.moveLens(-0.02, 0)
	case "d":
		m.moveLens(0.02, 0)
	case "+", "=":
		m.setLayers(m.comp.LayerCount() + 1)
	case "-", "_":
		m.setLayers(m.comp.LayerCount() - 1)
	case "[":
		m.threshold = math.Max(0.02, m.threshold-0.05)
		m.dirty = true
	case "]":
		m.threshold = math.Min(0.95, m.threshold+0.05)
		m.dirty = true
	case " ":
		m.drifting = !m.drifting
		if !m.drifting {
			m.initialCenter = m.center
		}
	case "o":
		m.ring = !m.ring
		m.dirty = true
	case "r":
		m.reset()
	case "t":
		NextTheme()
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) cycleParam(dir int) {
	if len(m.paramKeys) == 0 {
		return
	}
	n := len(m.paramKeys)
	m.selected = ((m.selected+dir)%n + n) % n
}

func (m *Model) adjustParam(steps float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	if err := m.ctrl.Nudge(m.paramKeys[m.selected], steps); err != nil {
		m.err = err
		return
	}
	m.apply()
}

func (m *Model) moveLens(dx, dy float64) {
	m.center.X = math.Max(0, math.Min(1, m.center.X+dx))
	m.center.Y = math.Max(0, math.Min(1, m.center.Y+dy))
	m.initialCenter = m.center
	m.dirty = true
}

func (m *Model) setLayers(n int) {
	err := m.comp.SetLayerCount(n)
	switch {
	case errors.Is(err, render.ErrLayersPinned):
		m.status = fmt.Sprintf("layer count fixed by %d sources", m.comp.LayerCount())
	case errors.Is(err, render.ErrTooManyLayers):
		m.status = fmt.Sprintf("at most %d layers", render.MaxLayers)
	case err != nil:
		m.err = err
	default:
		m.status = ""
		m.dirty = true
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = m.frames[:0]
		return
	}
	m.recording = false
	if len(m.frames) == 0 {
		return
	}
	if err := automation.SaveAnimatedGIF(recordingFile, m.frames, 7); err != nil {
		m.err = err
	} else {
		m.status = fmt.Sprintf("saved %s (%d frames)", recordingFile, len(m.frames))
	}
	m.frames = nil
}

// reset restores the initial sliders and lens position.
func (m *Model) reset() {
	m.ctrl = m.initialCtrl
	m.center = m.initialCenter
	m.drifting = false
	m.selected = 0
	m.status = ""
	m.apply()
}

// apply pushes the sliders into the session. HSW table rebuilds happen here,
// never on redraw.
func (m *Model) apply() {
	rebuilt, err := m.session.Apply(m.ctrl.Params())
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	if rebuilt {
		m.status = fmt.Sprintf("hsw table rebuilt (#%d)", m.session.Builds())
	}
	m.paramKeys = m.ctrl.ParamKeys()
	if m.selected >= len(m.paramKeys) {
		m.selected = 0
	}
	m.profile = analysis.RadialProfile(m.session.Evaluator(), profileRadius, profileSamples)
	m.dirty = true
}

func (m *Model) resize(cols, rows int) {
	m.canvas = NewCanvas(cols, rows)
	w, h := m.canvas.Dots()
	m.renderer = render.NewRenderer(m.comp, w, h)
	m.dirty = true
}

// draw renders the lensed frame and thresholds it onto the canvas.
func (m *Model) draw() {
	m.frame = m.renderer.Render(m.session.Evaluator(), m.center)
	w, h := m.canvas.Dots()
	m.canvas.Clear()
	m.canvas.Threshold(render.Luminance(m.frame), w, h, m.threshold)
	if m.ring {
		m.drawMarkers()
	}
	m.dirty = false
}

// drawMarkers toggles the lens center and its characteristic radius so they
// stay visible over stars.
func (m *Model) drawMarkers() {
	p := m.session.Params()
	_, h := m.canvas.Dots()
	cx, cy := m.renderer.ToPixel(lens.Vec2{}, m.center)
	ix, iy := int(cx), int(cy)
	for d := 2; d <= 3; d++ {
		m.canvas.Toggle(ix-d, iy)
		m.canvas.Toggle(ix+d, iy)
		m.canvas.Toggle(ix, iy-d)
		m.canvas.Toggle(ix, iy+d)
	}

	scale := p.Scale() * float64(h)
	m.canvas.ToggleRing(cx, cy, scale, 3)
	if p.Model == lens.VoidToy {
		m.canvas.ToggleRing(cx, cy, scale*(1+p.WallWidth), 6)
	}
}

func driftCenter(base lens.Vec2, tick int) lens.Vec2 {
	a := 2 * math.Pi * float64(tick) / driftPeriod
	return lens.Vec2{X: base.X + 0.2*math.Cos(a), Y: base.Y + 0.12*math.Sin(2*a)}
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.dirty {
		m.draw()
	}
	p := m.session.Params()

	var s strings.Builder
	s.WriteString(GradientText("LENSIM", CurrentTheme.Secondary, CurrentTheme.Accent) + "  " +
		activeStyle().Render(strings.ToUpper(p.Model.String())) + "\n")
	s.WriteString(labelStyle().Width(0).Render(modelInfo[p.Model]) + "\n\n")

	status := "STATIC"
	if m.drifting {
		status = AnimatedSpinner(m.tick) + " DRIFTING"
	}
	if m.recording {
		status += warnStyle().Render(fmt.Sprintf("  ● REC %d", len(m.frames)))
	}
	s.WriteString(valueStyle().Render(status) + "\n")
	if m.err != nil {
		s.WriteString(warnStyle().Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		s.WriteString(activeStyle().Render(m.status) + "\n")
	}

	if m.profile != nil && len(m.profile.Points) > 1 {
		chart := asciigraph.Plot(m.profile.Magnitudes(),
			asciigraph.Height(6),
			asciigraph.Width(32),
			asciigraph.Caption("deflection vs radius"))
		s.WriteString(graphStyle().Render(chart) + "\n")

		s.WriteString(labelStyle().Render("Peak") +
			valueStyle().Render(fmt.Sprintf("%+.4f @ r=%.3f", m.profile.Peak.Magnitude, m.profile.Peak.R)) + "\n")
		if r, ok := m.profile.CompensationRadius(); ok {
			s.WriteString(labelStyle().Render("Zero") + valueStyle().Render(fmt.Sprintf("r=%.3f", r)) + "\n")
		}
	}

	s.WriteString(labelStyle().Render("Center") + valueStyle().Render(fmt.Sprintf("%.2f, %.2f", m.center.X, m.center.Y)) + "\n")
	layers := fmt.Sprintf("%d", m.comp.LayerCount())
	if m.comp.Pinned() {
		layers += " (pinned)"
	}
	weights := make([]float64, 0, m.comp.LayerCount())
	for _, l := range m.comp.Layers() {
		weights = append(weights, l.Weight())
	}
	s.WriteString(labelStyle().Render("Layers") + valueStyle().Render(layers+"  "+SparklineChart(weights, len(weights))) + "\n")
	s.WriteString(labelStyle().Render("Threshold") + valueStyle().Render(fmt.Sprintf("%.2f", m.threshold)) + "\n")
	if p.Model == lens.HSWVoid {
		s.WriteString(labelStyle().Render("Tables") + valueStyle().Render(fmt.Sprintf("%d built", m.session.Builds())) + "\n")
	}
	s.WriteString(labelStyle().Render("Backend") + valueStyle().Render(compute.GetBackend().Name()) + "\n")

	s.WriteString("\n" + Separator(40) + "\n")
	for i, k := range m.paramKeys {
		v := m.ctrl.GetParams()[k]
		lo, hi, _ := lens.SliderRange(k)
		line := fmt.Sprintf("%-12s %s %.3f", k, SliderBar(v, lo, hi, 10), v)
		if i == m.selected {
			s.WriteString(activeStyle().Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle().Width(0).Render(line) + "\n")
		}
	}
	s.WriteString(hintStyle().Render("TAB:Slider ↑↓:Tune M:Model WASD:Move\n+/-:Layers SP:Drift T:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, skyStyle().Render(m.canvas.String()), panelStyle().Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Tab      - Next slider              ║
║  Up/K     - Increase slider          ║
║  Down/J   - Decrease slider          ║
║  M        - Next lens model          ║
║  W/A/S/D  - Move the lens            ║
║  + / -    - More / fewer layers      ║
║  [ / ]    - Star threshold           ║
║  Space    - Drift the lens           ║
║  O        - Toggle lens markers      ║
║  R        - Reset                    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts a live view in the alternate screen.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
