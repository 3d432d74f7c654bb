package ebiten

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/gameplay"
	"dropgrid/pkg/game/renderer"
)

// Draw renders the scene to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	// Fill background first
	screen.Fill(colorBackground)

	if e.scene == nil || e.fontSource == nil {
		return
	}
	now := e.now()

	e.drawGrid(screen)
	e.drawVisuals(screen)
	e.drawEffects(screen, now)
	e.drawPalette(screen, now)
	e.drawHeader(screen)
	e.drawMessages(screen, now)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.0f  FPS %0.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 4, e.windowHeight-18)
}

// project maps a world position to screen pixels through the scene camera
func (e *EbitenRenderer) project(p world.Vec3) (float32, float32) {
	s := e.scene.Camera.WorldToScreen(p)
	return float32(s.X), float32(s.Y)
}

// drawGrid asks the grid view for this frame's outline and strokes it
func (e *EbitenRenderer) drawGrid(screen *ebiten.Image) {
	e.ClearLines()
	if err := e.scene.View.Draw(e); err != nil {
		if !e.viewErrLogged {
			e.viewErrLogged = true
			log.Printf("grid view: %v", err)
		}
		return
	}

	ppu := e.scene.Camera.PixelsPerUnit
	for _, l := range e.Lines() {
		x0, y0 := e.project(l.From)
		x1, y1 := e.project(l.To)
		width := float32(math.Max(1, l.Width*ppu))
		vector.StrokeLine(screen, x0, y0, x1, y1, width, l.Color, true)
	}
}

// drawVisuals draws every retained visual as a square with its initial.
// Preview ghosts are drawn as outlines.
func (e *EbitenRenderer) drawVisuals(screen *ebiten.Image) {
	ppu := e.scene.Camera.PixelsPerUnit
	face := e.getLabelFontFace()

	for _, v := range e.Visuals() {
		scale := v.Scale
		if scale == 0 {
			scale = 1
		}
		size := float32(visualSize * ppu * scale)
		cx, cy := e.project(v.Position)
		x, y := cx-size/2, cy-size/2

		if v.SortOrder == drag.GhostSortOrder {
			vector.StrokeRect(screen, x, y, size, size, 2, v.Color, true)
			continue
		}
		vector.DrawFilledRect(screen, x, y, size, size, v.Color, true)

		label := initial(v.Sprite)
		if label == "" {
			continue
		}
		w, h := text.Measure(label, face, 0)
		e.drawText(screen, label, float64(cx)-w/2, float64(cy)-h/2, colorBackground, face)
	}
}

// initial returns the upper-cased first letter of a sprite name
func initial(sprite string) string {
	r, _ := utf8.DecodeRuneInString(sprite)
	if r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}

// drawEffects draws each running effect as an expanding, fading ring
func (e *EbitenRenderer) drawEffects(screen *ebiten.Image, now time.Time) {
	ppu := e.scene.Camera.PixelsPerUnit
	for _, fx := range e.effects {
		p := effectProgress(fx.Started, now)
		cx, cy := e.project(fx.At)
		radius := float32(ppu * (0.2 + 0.4*p))
		col := e.applyAlpha(colorEffect, 1-p)
		vector.StrokeCircle(screen, cx, cy, radius, 2, col, true)
	}
}

// drawPalette draws the draggable widgets at their current screen
// positions. A dimmed widget is being dragged.
func (e *EbitenRenderer) drawPalette(screen *ebiten.Image, now time.Time) {
	face := e.getUIFontFace()
	half := float32(gameplay.WidgetSize / 2)

	for i, c := range e.scene.Widgets {
		w := c.Widget()
		state, ok := e.Widget(w.ID)
		if !ok {
			state = renderer.Widget{Position: w.Origin, Alpha: 1, Interactive: true}
		}
		x, y := float32(state.Position.X)-half, float32(state.Position.Y)-half
		size := 2 * half

		vector.DrawFilledRect(screen, x, y, size, size, e.applyAlpha(w.Item.Color, state.Alpha), true)
		if i == e.scene.Selected {
			vector.StrokeRect(screen, x-2, y-2, size+4, size+4, 2, pulseColor(colorAction, now), true)
		}

		nameW, _ := text.Measure(w.Item.Name, face, 0)
		labelCol := colorText
		if !state.Interactive {
			labelCol = colorSubtle
		}
		e.drawText(screen, w.Item.Name, w.Origin.X-nameW/2, w.Origin.Y+float64(half)+4, labelCol, face)
	}
}

// drawHeader draws the grid summary along the top edge
func (e *EbitenRenderer) drawHeader(screen *ebiten.Image) {
	s := e.scene
	line := fmt.Sprintf("%v grid   origin CELL{%v}   policy ACTION{%s}",
		s.Grid.Layout().Shape, s.Grid.Origin(), gameplay.PolicyName(s.Grid.Policy()))
	if b, err := s.Grid.Bounds(); err == nil {
		line += "   bounds " + b.String()
	}
	line += fmt.Sprintf("   %s %d", gotext.Get("PLACED_COUNT"), len(s.Spawner.Placed()))

	segments := e.parseMarkup(line)
	width := 0.0
	for _, seg := range segments {
		width += e.getTextWidth(seg.text)
	}
	x := (float64(e.windowWidth) - width) / 2
	if x < 10 {
		x = 10
	}
	e.drawColoredTextSegments(screen, segments, x, 10, 1)
}

// drawMessages draws the most recent messages in a panel at the bottom of
// the window. Messages fade out over their last three seconds.
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, now time.Time) {
	if len(e.trackedMessages) == 0 {
		return
	}

	fontSize := uiFontSize
	lineHeight := fontSize + 4

	type visibleMessage struct {
		segments []textSegment
		alpha    float64
	}
	visible := make([]visibleMessage, 0, maxVisibleLines)

	fadeStart := messageLifetime * 7 / 10
	for _, m := range e.trackedMessages {
		age := now.Sub(m.Added)
		if age >= messageLifetime {
			continue
		}
		alpha := 1.0
		if age > fadeStart {
			alpha = 1.0 - float64(age-fadeStart)/float64(messageLifetime-fadeStart)
		}
		visible = append(visible, visibleMessage{segments: e.parseMarkup(m.Text), alpha: alpha})
	}
	if len(visible) == 0 {
		return
	}

	headerText := "─── " + gotext.Get("MESSAGES") + " ───"
	maxTextWidth := e.getTextWidth(headerText)
	for _, vm := range visible {
		msgWidth := 0.0
		for _, seg := range vm.segments {
			msgWidth += e.getTextWidth(seg.text)
		}
		maxTextWidth = math.Max(maxTextWidth, msgWidth)
	}

	headerHeight := fontSize + 8
	panelHeight := headerHeight + float64(len(visible))*lineHeight + 10
	panelWidth := math.Max(maxTextWidth+20, 100)
	panelWidth = math.Min(panelWidth, float64(e.windowWidth-40))

	// Bottom of the window, centered horizontally
	const marginBottom = 20
	bgX := (float64(e.windowWidth) - panelWidth) / 2
	bgY := math.Max(0, float64(e.windowHeight)-marginBottom-panelHeight)

	// Border
	vector.DrawFilledRect(screen, float32(bgX-1), float32(bgY-1), float32(panelWidth+2), float32(panelHeight+2), colorPanelBorder, false)
	// Background
	vector.DrawFilledRect(screen, float32(bgX), float32(bgY), float32(panelWidth), float32(panelHeight), colorPanelBackground, false)

	x := bgX + 10
	e.drawText(screen, headerText, x, bgY+4, colorSubtle, e.getUIFontFace())

	for i, vm := range visible {
		e.drawColoredTextSegments(screen, vm.segments, x, bgY+headerHeight+float64(i)*lineHeight, vm.alpha)
	}
}

// ensure the frontend satisfies the core's renderer contract
var _ renderer.Renderer = (*EbitenRenderer)(nil)
