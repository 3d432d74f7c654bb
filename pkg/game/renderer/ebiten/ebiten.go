package ebiten

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/image/font/gofont/goregular"

	engineinput "dropgrid/pkg/engine/input"
	"dropgrid/pkg/game/gameplay"
	"dropgrid/pkg/game/renderer"
	"dropgrid/pkg/game/state"
)

// New creates a new Ebiten renderer for a window of the given size
func New(width, height int) *EbitenRenderer {
	return &EbitenRenderer{
		Retained:     renderer.NewRetained(),
		windowWidth:  width,
		windowHeight: height,
		debouncer:    engineinput.NewDebouncer(keyRepeatInterval),
		now:          time.Now,
	}
}

// Init loads the font and sets up the window
func (e *EbitenRenderer) Init() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	e.fontSource = src

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(gotext.Get("WINDOW_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Attach sets the scene Update drives and Draw shows
func (e *EbitenRenderer) Attach(s *state.Scene) {
	e.scene = s
}

// Run starts the Ebiten game loop and blocks until the window closes or
// the scene asks to quit
func (e *EbitenRenderer) Run() error {
	if e.scene == nil {
		return errors.New("ebiten: no scene attached")
	}
	err := ebiten.RunGame(windowGame{e})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// windowGame is the ebiten.Game view of the renderer. Its Update would
// otherwise shadow the visual Update the placement core calls.
type windowGame struct {
	e *EbitenRenderer
}

func (g windowGame) Update() error             { return g.e.tick() }
func (g windowGame) Draw(screen *ebiten.Image) { g.e.Draw(screen) }
func (g windowGame) Layout(w, h int) (int, int) { return g.e.Layout(w, h) }

// tick handles input and advances the scene by one frame
func (e *EbitenRenderer) tick() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	gameplay.ProcessFrame(e.scene, e.pollFrame())

	now := e.now()
	e.syncMessages(now)
	e.collectEffects(now)

	if e.scene.Quit {
		return ebiten.Termination
	}
	return nil
}

// Layout follows the window size and keeps the camera viewport in step
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
	if e.scene != nil {
		e.scene.Camera.Width = outsideWidth
		e.scene.Camera.Height = outsideHeight
	}
	return outsideWidth, outsideHeight
}

// syncMessages timestamps messages the scene logged since the last frame
func (e *EbitenRenderer) syncMessages(now time.Time) {
	msgs := e.scene.Messages
	if slices.Equal(msgs, e.seenMessages) {
		return
	}
	// the scene keeps a sliding window; find how much of what we saw is
	// still at its front
	fresh := msgs
	for k := min(len(e.seenMessages), len(msgs)); k > 0; k-- {
		if slices.Equal(e.seenMessages[len(e.seenMessages)-k:], msgs[:k]) {
			fresh = msgs[k:]
			break
		}
	}
	for _, m := range fresh {
		e.trackedMessages = append(e.trackedMessages, messageEntry{Text: m, Added: now})
	}
	if len(e.trackedMessages) > maxVisibleLines {
		e.trackedMessages = e.trackedMessages[len(e.trackedMessages)-maxVisibleLines:]
	}
	e.seenMessages = slices.Clone(msgs)
}

// collectEffects starts effects requested this frame and drops finished ones
func (e *EbitenRenderer) collectEffects(now time.Time) {
	for _, fx := range e.TakeEffects() {
		e.effects = append(e.effects, activeEffect{Effect: fx, Started: now})
	}
	e.effects = slices.DeleteFunc(e.effects, func(fx activeEffect) bool {
		return now.Sub(fx.Started) >= effectLifetime
	})
}
