// Package drag runs the drag gesture of one palette widget: begin, move,
// and end with either a committed spawn or a refused drop.
package drag

import (
	"errors"
	"fmt"
	"log"
	"time"

	"dropgrid/pkg/engine/audio"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/feedback"
	"dropgrid/pkg/game/placement"
	"dropgrid/pkg/game/renderer"
)

var (
	// ErrBusy is returned by Begin while the widget's previous gesture,
	// including its reject animation, has not finished
	ErrBusy = errors.New("drag: widget is busy")
	// ErrNotDragging is returned by Move and End outside a drag
	ErrNotDragging = errors.New("drag: no drag in progress")
	// ErrDestroyed is returned once the widget has been destroyed
	ErrDestroyed = errors.New("drag: widget destroyed")
)

// Draw orders for the drag visuals; spawned objects stay below them
const (
	CloneSortOrder = 1 << 20
	GhostSortOrder = CloneSortOrder - 1
)

// Phase of a controller
type Phase int

// Phases
const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseRejecting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseRejecting:
		return "rejecting"
	default:
		return "unknown"
	}
}

// Outcome of End
type Outcome int

// Outcomes
const (
	OutcomeNone Outcome = iota
	OutcomeCommitted
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Options tune one widget's gesture
type Options struct {
	SnapToGrid    bool
	ShowGhost     bool
	SpawnOnCommit bool
	FailureEffect string // empty for none
	DimAlpha      float64
	SuccessVolume float64
	FailureVolume float64
}

// DefaultOptions snaps, shows a ghost and spawns on commit
func DefaultOptions() Options {
	return Options{
		SnapToGrid:    true,
		ShowGhost:     true,
		SpawnOnCommit: true,
		FailureEffect: "puff",
		DimAlpha:      0.6,
		SuccessVolume: 0.8,
		FailureVolume: 0.8,
	}
}

// Widget is a draggable palette entry
type Widget struct {
	ID     world.ObjectID
	Item   world.Item
	Origin world.Vec2 // screen position at rest
}

// Snapper returns the nearest cell center
type Snapper interface {
	SnappedPosition(pos world.Vec3) world.Vec3
}

// Deps are the collaborators a controller drives
type Deps struct {
	Canvas    *world.Canvas
	Grid      Snapper
	Validator *placement.Validator
	Renderer  renderer.Renderer
	Audio     audio.Out
	Spawner   *Spawner
}

// Session is the state of one gesture
type Session struct {
	Item         world.Item
	OriginScreen world.Vec2
	Screen       world.Vec2 // latest pointer sample
	Pointer      world.Vec3 // Screen resolved to the world
	Preview      world.Vec3 // Pointer, snapped when snapping is on
	Verdict      placement.Verdict
	Resolved     bool // false while the pointer cannot be resolved to the world

	Clone world.ObjectID
	Ghost world.ObjectID
}

// Controller runs gestures for one widget
type Controller struct {
	widget Widget
	opts   Options
	deps   Deps
	fb     *feedback.Controller

	phase     Phase
	session   *Session
	destroyed bool

	// LastPlaced is the object spawned by the most recent commit
	LastPlaced Placed
}

// NewController creates an idle controller and shows its widget at rest
func NewController(w Widget, opts Options, fbCfg feedback.Config, deps Deps) *Controller {
	if deps.Audio == nil {
		deps.Audio = audio.Discard{}
	}
	c := &Controller{
		widget: w,
		opts:   opts,
		deps:   deps,
		fb:     feedback.NewController(fbCfg, deps.Renderer),
	}
	c.showWidget(false)
	return c
}

// Widget returns the widget this controller drags
func (c *Controller) Widget() Widget {
	return c.widget
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// Feedback returns the current feedback state
func (c *Controller) Feedback() feedback.State {
	return c.fb.State()
}

// Session returns the active session, or nil
func (c *Controller) Session() *Session {
	return c.session
}

// Begin starts a drag at a screen position
func (c *Controller) Begin(screen world.Vec2) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.session != nil {
		return ErrBusy
	}

	s := &Session{
		Item:         c.widget.Item,
		OriginScreen: c.widget.Origin,
		Screen:       screen,
	}
	c.resolve(s)

	c.showWidget(true)
	s.Clone = c.deps.Renderer.Instantiate(c.cloneVisual(s))
	if c.opts.ShowGhost {
		s.Ghost = c.deps.Renderer.Instantiate(renderer.Visual{
			Sprite:    s.Item.Sprite,
			Position:  s.Preview,
			Color:     c.fb.Config().InvalidColor,
			SortOrder: GhostSortOrder,
		})
	}

	c.session = s
	c.phase = PhaseDragging
	c.deps.Audio.PlayOneShot(audio.ClipPickup, c.opts.SuccessVolume*0.5)

	if err := c.classify(s); err != nil {
		c.abort()
		c.showWidget(false)
		return fmt.Errorf("begin drag of %s: %w", s.Item.Name, err)
	}
	return nil
}

// Move updates the drag with a new pointer position
func (c *Controller) Move(screen world.Vec2) error {
	if c.phase != PhaseDragging {
		return ErrNotDragging
	}
	s := c.session
	s.Screen = screen
	c.resolve(s)
	if err := c.classify(s); err != nil {
		return fmt.Errorf("move drag of %s: %w", s.Item.Name, err)
	}
	return nil
}

// MoveBy moves the pointer by a raw device delta, scaled by the canvas
func (c *Controller) MoveBy(delta world.Vec2) error {
	if c.phase != PhaseDragging {
		return ErrNotDragging
	}
	return c.Move(c.session.Screen.Add(c.deps.Canvas.DeltaToCanvas(delta)))
}

// End drops the item at the last preview position
func (c *Controller) End() (Outcome, error) {
	if c.phase != PhaseDragging {
		return OutcomeNone, ErrNotDragging
	}
	s := c.session
	c.showWidget(false)

	if err := c.classify(s); err != nil {
		c.abort()
		return OutcomeNone, fmt.Errorf("end drag of %s: %w", s.Item.Name, err)
	}

	if s.Verdict.Valid {
		if c.opts.SpawnOnCommit && c.deps.Spawner != nil {
			c.LastPlaced = c.deps.Spawner.Spawn(s.Item, s.Verdict.Cell, s.Verdict.Snapped)
		}
		c.deps.Audio.PlayOneShot(audio.ClipSuccess, c.opts.SuccessVolume)
		c.abort()
		return OutcomeCommitted, nil
	}

	c.deps.Audio.PlayOneShot(audio.ClipFailure, c.opts.FailureVolume)
	if c.opts.FailureEffect != "" {
		c.deps.Renderer.PlayEffect(c.opts.FailureEffect, s.Pointer)
	}
	c.releaseGhost(s)
	c.fb.StartReject(s.Clone, c.cloneVisual(s))
	s.Clone = world.NoObject
	c.phase = PhaseRejecting
	return OutcomeRejected, nil
}

// Cancel drops an active drag without placing anything or playing a cue.
// A reject animation already running is left to finish.
func (c *Controller) Cancel() bool {
	if c.phase != PhaseDragging {
		return false
	}
	c.showWidget(false)
	c.abort()
	return true
}

// Tick advances time-driven feedback by dt. It returns true on the tick a
// reject animation finishes and the widget becomes free again.
func (c *Controller) Tick(dt time.Duration) bool {
	if c.phase != PhaseRejecting {
		return false
	}
	if !c.fb.Advance(dt) {
		return false
	}
	c.session = nil
	c.phase = PhaseIdle
	return true
}

// Destroy tears the widget down. Any clone and ghost are released before
// it returns and no animation is played.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.abort()
	c.destroyed = true
}

func (c *Controller) resolve(s *Session) {
	pos, err := world.ScreenToWorld(s.Screen, c.deps.Canvas)
	if err != nil {
		if s.Resolved || c.session == nil {
			log.Printf("drag %s: cannot resolve pointer %v: %v", s.Item.Name, s.Screen, err)
		}
		s.Resolved = false
		return
	}
	s.Resolved = true
	s.Pointer = pos
	s.Preview = pos
	if c.opts.SnapToGrid && c.deps.Grid != nil {
		s.Preview = c.deps.Grid.SnappedPosition(pos)
	}
}

// classify validates the preview position and updates clone, ghost and
// feedback to match
func (c *Controller) classify(s *Session) error {
	if !s.Resolved {
		s.Verdict = placement.Invalid(placement.ReasonMissingCollaborator, s.Verdict.Cell, s.Preview)
	} else {
		v, err := c.deps.Validator.Validate(s.Preview, s.Item.ID, s.Ghost, s.Clone)
		if err != nil {
			return err
		}
		s.Verdict = v
	}

	tint := c.fb.Preview(s.Verdict.Valid)
	if !s.Clone.IsZero() {
		c.deps.Renderer.Update(s.Clone, c.cloneVisual(s))
	}
	if !s.Ghost.IsZero() {
		c.deps.Renderer.Update(s.Ghost, renderer.Visual{
			Sprite:    s.Item.Sprite,
			Position:  s.Verdict.Snapped,
			Color:     tint,
			SortOrder: GhostSortOrder,
		})
	}
	return nil
}

func (c *Controller) cloneVisual(s *Session) renderer.Visual {
	return renderer.Visual{
		Sprite:    s.Item.Sprite,
		Position:  s.Pointer,
		Color:     s.Item.Color,
		SortOrder: CloneSortOrder,
	}
}

func (c *Controller) showWidget(dragging bool) {
	w := renderer.Widget{Position: c.widget.Origin, Alpha: 1, Interactive: true}
	if dragging {
		w.Alpha = c.opts.DimAlpha
		w.Interactive = false
	}
	c.deps.Renderer.SetWidget(c.widget.ID, w)
}

func (c *Controller) releaseGhost(s *Session) {
	if !s.Ghost.IsZero() {
		c.deps.Renderer.Destroy(s.Ghost)
		s.Ghost = world.NoObject
	}
}

// abort releases everything the session holds and returns to idle
func (c *Controller) abort() {
	if s := c.session; s != nil {
		c.releaseGhost(s)
		if !s.Clone.IsZero() {
			c.deps.Renderer.Destroy(s.Clone)
			s.Clone = world.NoObject
		}
	}
	c.fb.Cancel()
	c.session = nil
	c.phase = PhaseIdle
}
