// Package gameplay wires the placement scene together and drives it from
// input frames, intents and terminal commands.
package gameplay

import (
	"image/color"
	"log"

	"dropgrid/pkg/engine/audio"
	"dropgrid/pkg/engine/spatial"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/config"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/gridview"
	"dropgrid/pkg/game/placement"
	"dropgrid/pkg/game/renderer"
	"dropgrid/pkg/game/state"
)

// Palette widget layout in screen pixels
const (
	WidgetSize    = 48
	widgetMargin  = 40
	widgetSpacing = 64
)

// ObstacleRadius is the collider radius of authored obstacles
const ObstacleRadius = 0.25

// paletteItems are the items the demo palette hands out
var paletteItems = []struct {
	name  string
	color color.RGBA
}{
	{"crate", color.RGBA{R: 170, G: 120, B: 70, A: 255}},
	{"barrel", color.RGBA{R: 90, G: 140, B: 200, A: 255}},
	{"plant", color.RGBA{R: 70, G: 170, B: 90, A: 255}},
}

// demoObstacles are authored blockers, as cell offsets from the playfield minimum
var demoObstacles = []world.CellIndex{{X: 2, Y: 2}, {X: 5, Y: 3}, {X: 1, Y: 5}}

// BuildScene creates a scene from cfg drawing to out. A nil cfg uses
// config.Current(); a nil audio output plays nothing.
func BuildScene(cfg *config.Config, out renderer.Renderer, au audio.Out) *state.Scene {
	if cfg == nil {
		cfg = config.Current()
	}
	if au == nil {
		au = audio.Discard{}
	}
	s := &state.Scene{
		Config: cfg,
		Out:    out,
		Audio:  au,
	}

	s.Tiles = world.NewTilemap()
	s.Tiles.Resize(cfg.PlayfieldBounds())
	s.Grid = world.NewGrid(cfg.Layout())
	s.Grid.Bind(s.Tiles)
	s.Grid.SetPolicy(cfg.BoundsPolicy())
	if msg := s.Grid.Validate(); msg != "" {
		log.Printf("grid: %s", msg)
	}

	layout := cfg.Layout()
	s.Index = spatial.NewIndex(max(layout.CellSize.X, layout.CellSize.Y))
	s.Validator = placement.NewValidator(s.Grid, s.Index, cfg.BlockingMask())
	s.Validator.Radius = cfg.Grid.Radius

	s.Camera = world.NewCamera(playfieldCenter(s.Grid, cfg.PlayfieldBounds()), float64(cfg.View.TileSize), cfg.View.Width, cfg.View.Height)
	s.Canvas = &world.Canvas{Mode: world.CanvasOverlay, Camera: s.Camera, ScaleFactor: cfg.View.UIScale}

	s.Counter = drag.NewSortCounter(cfg.Drag.SortCeiling)
	s.Spawner = drag.NewSpawner(out, s.Index, s.Counter, cfg.SpawnLayer(), cfg.Drag.SpawnRadius)
	s.Spawner.VerticalOffset = cfg.Drag.VerticalOffset

	s.View = gridview.New(s.Grid, gridview.Options{
		ShowEmptyCells: cfg.Grid.ShowEmptyCells,
		LineWidth:      cfg.Grid.LineWidth,
		LineColor:      cfg.Grid.LineColor.Color(),
	})

	seedTiles(s, cfg.PlayfieldBounds())
	seedObstacles(s, cfg.PlayfieldBounds())
	buildPalette(s)

	s.ClearMessages()
	logMessage(s, "GT{WELCOME}")
	return s
}

// playfieldCenter is the world point halfway between the corner cells
func playfieldCenter(g *world.Grid, b world.Bounds) world.Vec3 {
	return g.CellCenterWorld(b.Min).Add(g.CellCenterWorld(b.Max)).Scale(0.5)
}

// seedTiles floors the playfield except one corner, which stays empty so
// drops there skip the collider probe
func seedTiles(s *state.Scene, b world.Bounds) {
	b.ForEach(func(c world.CellIndex) {
		if c.X >= b.Max.X-1 && c.Y <= b.Min.Y+1 {
			return
		}
		s.Tiles.SetTile(c, world.Tile{Name: "floor", Sprite: "floor"})
	})
}

func seedObstacles(s *state.Scene, b world.Bounds) {
	for _, off := range demoObstacles {
		c := b.Min.Add(off)
		if !b.Contains(c) {
			continue
		}
		AddObstacle(s, "rock", c)
	}
}

// AddObstacle authors a blocker on cell: a visual plus a collider on the
// obstacle layer
func AddObstacle(s *state.Scene, name string, c world.CellIndex) state.Obstacle {
	center := s.Grid.CellCenterWorld(c)
	v := renderer.Visual{
		Sprite:   name,
		Position: center,
		Color:    color.RGBA{R: 120, G: 120, B: 130, A: 255},
	}
	o := state.Obstacle{Name: name, Cell: c, Visual: v}
	o.ID = s.Out.Instantiate(v)
	s.Index.Add(spatial.Collider{Owner: o.ID, Layer: spatial.LayerObstacle, Center: center, Radius: ObstacleRadius})
	s.Obstacles = append(s.Obstacles, o)
	return o
}

// buildPalette creates one drag controller per palette item, stacked down
// the left edge of the screen
func buildPalette(s *state.Scene) {
	opts := s.Config.DragOptions()
	fb := s.Config.FeedbackConfig()
	deps := drag.Deps{
		Canvas:    s.Canvas,
		Grid:      s.Grid,
		Validator: s.Validator,
		Renderer:  s.Out,
		Audio:     s.Audio,
		Spawner:   s.Spawner,
	}
	for i, p := range paletteItems {
		item := world.NewItem(p.name, p.name, p.color)
		w := drag.Widget{
			ID:     world.NewObjectID(),
			Item:   *item,
			Origin: world.Vec2{X: widgetMargin, Y: widgetMargin + float64(i*widgetSpacing)},
		}
		s.Widgets = append(s.Widgets, drag.NewController(w, opts, fb, deps))
	}
}

// DestroyScene tears down every widget, releasing any drag visuals
func DestroyScene(s *state.Scene) {
	for _, w := range s.Widgets {
		w.Destroy()
	}
}
