package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	engineinput "dropgrid/pkg/engine/input"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/renderer"
	"dropgrid/pkg/game/state"
)

// messageEntry represents a message with timestamp for fade-out
type messageEntry struct {
	Text  string
	Added time.Time
}

// activeEffect is a one-shot effect being played
type activeEffect struct {
	renderer.Effect
	Started time.Time
}

// EbitenRenderer is the Ebiten-based graphical renderer. It retains every
// visual the scene creates and draws them each frame; each tick drives the
// scene from mouse and keyboard input.
type EbitenRenderer struct {
	*renderer.Retained

	scene *state.Scene

	// Window dimensions
	windowWidth  int
	windowHeight int

	// Font source and cached faces
	fontSource      *text.GoTextFaceSource
	cachedUIFace    *text.GoTextFace
	cachedLabelFace *text.GoTextFace
	cachedLabelSize float64

	// Input layering: raw key codes go through the debouncer before
	// being mapped to intents
	debouncer   *engineinput.Debouncer
	lastPointer world.Vec2
	clock       engineinput.Clock // real time between ticks

	// Messages to display with timestamps for fade-out
	trackedMessages []messageEntry
	seenMessages    []string

	effects []activeEffect

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
	viewErrLogged      bool

	now func() time.Time
}
