package renderer

import (
	"image/color"
	"sort"

	"dropgrid/pkg/engine/world"
)

// Line is a queued world-space segment
type Line struct {
	From, To world.Vec3
	Color    color.RGBA
	Width    float64
}

// Effect is a one-shot effect request
type Effect struct {
	Name string
	At   world.Vec3
}

// Retained is an in-memory Renderer that keeps every visual, widget, line
// and effect it is given. Frontends embed it and draw from its contents;
// headless runs use it directly.
type Retained struct {
	visuals map[world.ObjectID]Visual
	widgets map[world.ObjectID]Widget
	lines   []Line
	effects []Effect

	// Destroyed counts Destroy calls on live handles
	Destroyed int
}

// NewRetained creates an empty retained renderer
func NewRetained() *Retained {
	return &Retained{
		visuals: make(map[world.ObjectID]Visual),
		widgets: make(map[world.ObjectID]Widget),
	}
}

func (r *Retained) DrawLine(from, to world.Vec3, col color.RGBA, width float64) {
	r.lines = append(r.lines, Line{From: from, To: to, Color: col, Width: width})
}

func (r *Retained) Instantiate(v Visual) world.ObjectID {
	id := world.NewObjectID()
	r.visuals[id] = v
	return id
}

func (r *Retained) Update(h world.ObjectID, v Visual) {
	if _, ok := r.visuals[h]; ok {
		r.visuals[h] = v
	}
}

func (r *Retained) Destroy(h world.ObjectID) {
	if _, ok := r.visuals[h]; ok {
		delete(r.visuals, h)
		r.Destroyed++
	}
}

func (r *Retained) SetWidget(id world.ObjectID, w Widget) {
	r.widgets[id] = w
}

func (r *Retained) PlayEffect(name string, at world.Vec3) {
	r.effects = append(r.effects, Effect{Name: name, At: at})
}

// Visual returns a live visual
func (r *Retained) Visual(h world.ObjectID) (Visual, bool) {
	v, ok := r.visuals[h]
	return v, ok
}

// Widget returns the last state set for a widget
func (r *Retained) Widget(id world.ObjectID) (Widget, bool) {
	w, ok := r.widgets[id]
	return w, ok
}

// Len returns the number of live visuals
func (r *Retained) Len() int {
	return len(r.visuals)
}

// Visuals returns live visuals ordered by sort order, back to front
func (r *Retained) Visuals() []Visual {
	out := make([]Visual, 0, len(r.visuals))
	for _, v := range r.visuals {
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		if out[i].Position.Y != out[j].Position.Y {
			return out[i].Position.Y > out[j].Position.Y
		}
		return out[i].Position.X < out[j].Position.X
	})
	return out
}

// Lines returns the segments queued since the last ClearLines
func (r *Retained) Lines() []Line {
	return r.lines
}

// ClearLines drops queued segments; called once per frame
func (r *Retained) ClearLines() {
	r.lines = r.lines[:0]
}

// TakeEffects returns and clears pending effects
func (r *Retained) TakeEffects() []Effect {
	out := r.effects
	r.effects = nil
	return out
}
