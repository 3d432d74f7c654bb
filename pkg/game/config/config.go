// Package config holds the tunables of the placement scene and the
// player's preferences, stored as a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"dropgrid/pkg/engine/spatial"
	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/drag"
	"dropgrid/pkg/game/feedback"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

const maxFileSize = 1 * 1024 * 1024 // 1MB

// RGBA is a color stored as [r, g, b, a]
type RGBA [4]uint8

// Color converts to image/color
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// GridConfig describes the grid and its bounds policy
type GridConfig struct {
	Shape          string     `json:"shape"`
	CellWidth      float64    `json:"cell_width"`
	CellHeight     float64    `json:"cell_height"`
	Bounds         string     `json:"bounds"` // "derived" or "manual"
	Min            [2]int     `json:"min"`
	Max            [2]int     `json:"max"`
	Offset         [3]float64 `json:"offset"` // in cells
	Radius         float64    `json:"radius"`
	Blocking       []string   `json:"blocking"`
	ShowEmptyCells bool       `json:"show_empty_cells"`
	LineWidth      float64    `json:"line_width"`
	LineColor      RGBA       `json:"line_color"`
}

// DragConfig tunes the gesture
type DragConfig struct {
	SnapToGrid     bool    `json:"snap_to_grid"`
	ShowGhost      bool    `json:"show_ghost"`
	SpawnOnCommit  bool    `json:"spawn_on_commit"`
	FailureEffect  string  `json:"failure_effect"`
	DimAlpha       float64 `json:"dim_alpha"`
	SortCeiling    int     `json:"sort_ceiling"`
	VerticalOffset float64 `json:"vertical_offset"`
	SpawnLayer     string  `json:"spawn_layer"`
	SpawnRadius    float64 `json:"spawn_radius"`
}

// FeedbackConfig tunes preview tints and the reject animation
type FeedbackConfig struct {
	ValidColor     RGBA    `json:"valid_color"`
	InvalidColor   RGBA    `json:"invalid_color"`
	DurationMs     int     `json:"duration_ms"`
	ShakeAmplitude float64 `json:"shake_amplitude"`
	ShakeSpeed     float64 `json:"shake_speed"`
	FlashSpeed     float64 `json:"flash_speed"`
}

// AudioConfig controls cue playback
type AudioConfig struct {
	Enabled       bool    `json:"enabled"`
	SuccessVolume float64 `json:"success_volume"`
	FailureVolume float64 `json:"failure_volume"`
}

// ViewConfig is the window size and scale
type ViewConfig struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	TileSize int     `json:"tile_size"` // pixels per world unit
	UIScale  float64 `json:"ui_scale"`  // canvas scale; drag deltas are divided by it
}

// Config is the whole settings file
type Config struct {
	Grid     GridConfig     `json:"grid"`
	Drag     DragConfig     `json:"drag"`
	Feedback FeedbackConfig `json:"feedback"`
	Audio    AudioConfig    `json:"audio"`
	View     ViewConfig     `json:"view"`

	path string
	mu   sync.Mutex
}

var (
	current   *Config
	currentMu sync.Mutex
)

// Current returns the active configuration, the defaults if none was set
func Current() *Config {
	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = Default()
	}
	return current
}

// SetCurrent makes cfg the active configuration
func SetCurrent(cfg *Config) {
	currentMu.Lock()
	current = cfg
	currentMu.Unlock()
}

// Default returns the built-in settings: an isometric 8x8 playfield
func Default() *Config {
	fb := feedback.DefaultConfig()
	opts := drag.DefaultOptions()
	return &Config{
		Grid: GridConfig{
			Shape:          "isometric",
			CellWidth:      1,
			CellHeight:     0.5,
			Bounds:         "derived",
			Min:            [2]int{0, 0},
			Max:            [2]int{7, 7},
			Radius:         0.2,
			Blocking:       []string{"obstacle", "placed"},
			ShowEmptyCells: true,
			LineWidth:      0.05,
			LineColor:      RGBA{255, 255, 255, 255},
		},
		Drag: DragConfig{
			SnapToGrid:     opts.SnapToGrid,
			ShowGhost:      opts.ShowGhost,
			SpawnOnCommit:  opts.SpawnOnCommit,
			FailureEffect:  opts.FailureEffect,
			DimAlpha:       opts.DimAlpha,
			SortCeiling:    1000,
			VerticalOffset: 0.1,
			SpawnLayer:     "placed",
			SpawnRadius:    0.15,
		},
		Feedback: FeedbackConfig{
			ValidColor:     rgba(fb.ValidColor),
			InvalidColor:   rgba(fb.InvalidColor),
			DurationMs:     int(fb.Duration / time.Millisecond),
			ShakeAmplitude: fb.ShakeAmplitude,
			ShakeSpeed:     fb.ShakeSpeed,
			FlashSpeed:     fb.FlashSpeed,
		},
		Audio: AudioConfig{
			Enabled:       true,
			SuccessVolume: opts.SuccessVolume,
			FailureVolume: opts.FailureVolume,
		},
		View: ViewConfig{
			Width:    1024,
			Height:   720,
			TileSize: 64,
			UIScale:  1,
		},
	}
}

func rgba(c color.RGBA) RGBA {
	return RGBA{c.R, c.G, c.B, c.A}
}

// DefaultPath returns the per-user settings file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dropgrid.json"
	}
	return filepath.Join(dir, "dropgrid", "config.json")
}

// Load reads a JSON settings file over the defaults. Fields omitted from
// the file keep their default values.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.path = cleanPath
	return cfg, nil
}

// LoadOrDefault loads path, or returns defaults that will save to path
// when the file does not exist yet
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		cfg.path = filepath.Clean(path)
		return cfg, nil
	}
	return cfg, err
}

// Path returns the file the config saves to, empty if none
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to its file
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save()
}

func (c *Config) save() error {
	if c.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetBoundsPolicy stores the bounds policy preference ("derived" or
// "manual") and saves it
func (c *Config) SetBoundsPolicy(name string) error {
	switch name {
	case "derived", "manual":
	default:
		return fmt.Errorf("%w: unknown bounds policy %q", ErrInvalid, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Grid.Bounds = name
	return c.save()
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	if _, err := world.ParseShape(c.Grid.Shape); err != nil {
		return fmt.Errorf("%w: grid shape: %v", ErrInvalid, err)
	}
	if c.Grid.CellWidth <= 0 || c.Grid.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %vx%v", ErrInvalid, c.Grid.CellWidth, c.Grid.CellHeight)
	}
	switch strings.ToLower(c.Grid.Bounds) {
	case "derived", "":
	case "manual":
		if c.Grid.Min[0] > c.Grid.Max[0] || c.Grid.Min[1] > c.Grid.Max[1] {
			return fmt.Errorf("%w: manual bounds min %v exceeds max %v", ErrInvalid, c.Grid.Min, c.Grid.Max)
		}
	default:
		return fmt.Errorf("%w: unknown bounds policy %q", ErrInvalid, c.Grid.Bounds)
	}
	if c.Grid.Radius < 0 {
		return fmt.Errorf("%w: negative probe radius %v", ErrInvalid, c.Grid.Radius)
	}
	for _, name := range c.Grid.Blocking {
		if _, ok := spatial.ParseLayer(name); !ok {
			return fmt.Errorf("%w: unknown blocking layer %q", ErrInvalid, name)
		}
	}
	if _, ok := spatial.ParseLayer(c.Drag.SpawnLayer); !ok {
		return fmt.Errorf("%w: unknown spawn layer %q", ErrInvalid, c.Drag.SpawnLayer)
	}
	if c.Drag.DimAlpha < 0 || c.Drag.DimAlpha > 1 {
		return fmt.Errorf("%w: dim alpha %v outside [0,1]", ErrInvalid, c.Drag.DimAlpha)
	}
	if c.Feedback.DurationMs <= 0 {
		return fmt.Errorf("%w: reject duration must be positive, got %dms", ErrInvalid, c.Feedback.DurationMs)
	}
	if c.View.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalid, c.View.TileSize)
	}
	if c.View.UIScale <= 0 {
		return fmt.Errorf("%w: ui scale must be positive, got %v", ErrInvalid, c.View.UIScale)
	}
	return nil
}

// Layout builds the grid layout
func (c *Config) Layout() world.Layout {
	shape, _ := world.ParseShape(c.Grid.Shape)
	return world.NewLayout(shape, c.Grid.CellWidth, c.Grid.CellHeight)
}

// PlayfieldBounds is the Min/Max rectangle, used both as the manual
// bounds and as the authored region of a fresh tilemap
func (c *Config) PlayfieldBounds() world.Bounds {
	return world.NewBounds(world.Cell(c.Grid.Min[0], c.Grid.Min[1]), world.Cell(c.Grid.Max[0], c.Grid.Max[1]))
}

// BoundsPolicy builds the configured policy
func (c *Config) BoundsPolicy() world.BoundsPolicy {
	if strings.ToLower(c.Grid.Bounds) != "manual" {
		return world.DerivedBounds{}
	}
	o := c.Grid.Offset
	return world.ManualBounds{Rect: c.PlayfieldBounds(), Offset: world.Vec3{X: o[0], Y: o[1], Z: o[2]}}
}

// BlockingMask builds the layer mask drops are tested against
func (c *Config) BlockingMask() spatial.LayerMask {
	var layers []spatial.Layer
	for _, name := range c.Grid.Blocking {
		if l, ok := spatial.ParseLayer(name); ok {
			layers = append(layers, l)
		}
	}
	return spatial.Mask(layers...)
}

// SpawnLayer is the layer committed objects collide on
func (c *Config) SpawnLayer() spatial.Layer {
	l, ok := spatial.ParseLayer(c.Drag.SpawnLayer)
	if !ok {
		return spatial.LayerPlaced
	}
	return l
}

// FeedbackConfig converts to the feedback controller's settings
func (c *Config) FeedbackConfig() feedback.Config {
	return feedback.Config{
		ValidColor:     c.Feedback.ValidColor.Color(),
		InvalidColor:   c.Feedback.InvalidColor.Color(),
		Duration:       time.Duration(c.Feedback.DurationMs) * time.Millisecond,
		ShakeAmplitude: c.Feedback.ShakeAmplitude,
		ShakeSpeed:     c.Feedback.ShakeSpeed,
		FlashSpeed:     c.Feedback.FlashSpeed,
	}
}

// DragOptions converts to a widget's drag options
func (c *Config) DragOptions() drag.Options {
	return drag.Options{
		SnapToGrid:    c.Drag.SnapToGrid,
		ShowGhost:     c.Drag.ShowGhost,
		SpawnOnCommit: c.Drag.SpawnOnCommit,
		FailureEffect: c.Drag.FailureEffect,
		DimAlpha:      c.Drag.DimAlpha,
		SuccessVolume: c.Audio.SuccessVolume,
		FailureVolume: c.Audio.FailureVolume,
	}
}
