package ebiten

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "dropgrid/pkg/engine/input"
	"dropgrid/pkg/engine/world"
)

// keyCode ties an Ebiten key to the raw code the bindings know about.
// Repeating keys fire every keyRepeatInterval while held.
type keyCode struct {
	key    ebiten.Key
	code   string
	repeat bool
}

var keyCodes = []keyCode{
	// Arrow keys / vim-style panning with key repeat
	{ebiten.KeyArrowUp, "arrow_up", true},
	{ebiten.KeyArrowDown, "arrow_down", true},
	{ebiten.KeyArrowLeft, "arrow_left", true},
	{ebiten.KeyArrowRight, "arrow_right", true},
	{ebiten.KeyK, "k", true},
	{ebiten.KeyJ, "j", true},
	{ebiten.KeyH, "h", true},
	{ebiten.KeyL, "l", true},

	{ebiten.KeyQ, "q", false},
	{ebiten.KeyEscape, "escape", false},
	{ebiten.KeyF8, "f8", false},
	{ebiten.KeyF12, "f12", false},
	{ebiten.KeyG, "g", false},
	{ebiten.KeyR, "r", false},
	{ebiten.KeyF5, "f5", false},
	{ebiten.KeyB, "b", false},
	{ebiten.KeyTab, "tab", false},
}

// pollFrame samples the mouse and keyboard for one tick
func (e *EbitenRenderer) pollFrame() engineinput.Frame {
	now := e.now()
	x, y := ebiten.CursorPosition()
	pointer := world.Vec2{X: float64(x), Y: float64(y)}

	f := engineinput.Frame{
		Pointer:  pointer,
		Delta:    pointer.Sub(e.lastPointer),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Held:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Dt:       e.clock.Step(now),
	}
	e.lastPointer = pointer

	var codes []string
	for _, k := range keyCodes {
		if inpututil.IsKeyJustPressed(k.key) || (k.repeat && ebiten.IsKeyPressed(k.key)) {
			codes = append(codes, k.code)
		}
	}
	// Any other letter or digit, so rebound keys work too
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if name := k.String(); len(name) == 1 {
			codes = append(codes, strings.ToLower(name))
		}
	}

	for _, code := range codes {
		ev, ok := e.debouncer.Accept(engineinput.RawInput{
			Device:    engineinput.DeviceKeyboard,
			Code:      code,
			Timestamp: now,
		})
		if !ok {
			continue
		}
		if intent := engineinput.MapToIntent(ev); intent.Action != engineinput.ActionNone {
			f.Intents = append(f.Intents, intent)
		}
	}
	return f
}
