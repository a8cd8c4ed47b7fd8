package gui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lensim/internal/lens"
)

// toPixels copies img into dst as raylib texels, reusing dst when it is large
// enough.
func toPixels(img *image.RGBA, dst []color.RGBA) []color.RGBA {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			o := x * 4
			dst[i] = color.RGBA{row[o], row[o+1], row[o+2], 255}
			i++
		}
	}
	return dst
}

// refresh re-renders the lensed frame and uploads it when something changed.
func (a *App) refresh() {
	if !a.Dirty && a.Frame != nil {
		return
	}
	a.Frame = a.Renderer.Render(a.Session.Evaluator(), a.Center)
	a.pixels = toPixels(a.Frame, a.pixels)
	rl.UpdateTexture(a.Tex, a.pixels)
	a.Dirty = false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else if a.InConfig {
		a.drawConfig()
	} else {
		a.drawSky()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawSky() {
	a.refresh()
	sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	src := rl.NewRectangle(0, 0, float32(a.Tex.Width), float32(a.Tex.Height))
	dst := rl.NewRectangle(0, 0, sw, sh)
	rl.DrawTexturePro(a.Tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)

	if a.ShowOverlay {
		a.drawLensMarkers(sw, sh)
	}
}

// drawLensMarkers outlines the characteristic radius and, for the toy void,
// the outer edge of the wall. One sky unit is the window height.
func (a *App) drawLensMarkers(sw, sh float32) {
	p := a.Session.Params()
	cx, cy := int32(float32(a.Center.X)*sw), int32(float32(a.Center.Y)*sh)
	radius := float32(p.Scale()) * sh

	rl.DrawCircleLines(cx, cy, radius, ColRing)
	if p.Model == lens.VoidToy {
		rl.DrawCircleLines(cx, cy, radius*float32(1+p.WallWidth), rl.ColorAlpha(ColRing, 0.4))
	}
	rl.DrawLine(cx-6, cy, cx+6, cy, ColRing)
	rl.DrawLine(cx, cy-6, cx, cy+6, ColRing)
}

func (a *App) DrawHUD() {
	p := a.Session.Params()
	a.drawText("lensim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", p.Model), 140, 34, 16, ColText)

	layers := fmt.Sprintf("%d LAYERS", a.Comp.LayerCount())
	if a.Comp.Pinned() {
		layers += " (PINNED)"
	}
	a.drawText(layers, 1100, 30, 16, ColAccent)

	y := 80
	for i, key := range a.ParamKeys {
		val := a.Ctrl.GetParams()[key]
		col := ColText
		prefix := "  "
		if i == a.ParamSel {
			col, prefix = ColSelect, "> "
		}
		a.drawText(fmt.Sprintf("%s%-13s %6.3f", prefix, key, val), 30, y, 16, col)
		y += 22
	}

	a.DrawProfile()

	if a.Status != "" {
		a.drawText(a.Status, 30, 620, 14, ColAccent)
	}
	a.drawText("[DRAG] MOVE  [WHEEL] MASS  [TAB] SLIDER  [M] MODEL  [+/-] LAYERS  [P] SNAPSHOT  [ESC] MENU  [Q] QUIT", 330, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

// DrawProfile plots the signed radial deflection with a zero axis.
func (a *App) DrawProfile() {
	if a.Profile == nil || len(a.Profile.Points) < 2 {
		return
	}
	rectX, rectY := 30, 520
	width, height := 400, 80

	mags := a.Profile.Magnitudes()
	lo, hi := 0.0, 0.0
	for _, v := range mags {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	toY := func(v float64) float32 {
		return float32(rectY+height) - float32((v-lo)/(hi-lo))*float32(height)
	}
	points := make([]rl.Vector2, len(mags))
	for i, v := range mags {
		px := float32(rectX) + float32(i)/float32(len(mags)-1)*float32(width)
		points[i] = rl.NewVector2(px, toY(v))
	}

	zero := toY(0)
	rl.DrawLineV(rl.NewVector2(float32(rectX), zero), rl.NewVector2(float32(rectX+width), zero), ColTextDim)
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("peak %+.3f @ r=%.3f", a.Profile.Peak.Magnitude, a.Profile.Peak.R), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("lensim", 50, 50, 40, ColSelect)
	a.drawText("Select Lens Model", 50, 100, 16, ColTextDim)

	y := 160
	for i, m := range a.Models {
		name := strings.ToUpper(m.String())
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}

func (a *App) drawConfig() {
	a.drawText("lensim", 50, 50, 40, ColTextDim)
	a.drawText("configure", 220, 65, 20, ColSelect)
	a.drawText(fmt.Sprintf("Target: %s", a.Ctrl.Model), 50, 110, 16, ColAccent)

	y := 180
	params := a.Ctrl.GetParams()
	for i, key := range a.ParamKeys {
		if i == a.ParamSel {
			a.drawText(fmt.Sprintf("> %-15s %.3f", key, params[key]), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %-15s %.3f", key, params[key]), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: ADJUST  ENTER: RUN  ESC: BACK", 880, 680, 14, ColTextDim)
}
