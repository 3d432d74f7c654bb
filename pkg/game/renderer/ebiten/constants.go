// Package ebiten provides an Ebiten-based 2D graphical renderer for the placement scene.
package ebiten

import (
	"image/color"
	"time"
)

// Color palette
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorCell            = color.RGBA{100, 150, 255, 255} // Bright blue
	colorValid           = color.RGBA{100, 255, 150, 255} // Green
	colorDenied          = color.RGBA{255, 100, 100, 255} // Bright red
	colorEffect          = color.RGBA{230, 230, 240, 255}
	colorPanelBackground = color.RGBA{30, 30, 50, 220} // Semi-transparent dark
	colorPanelBorder     = color.RGBA{80, 80, 100, 255}
)

// Text sizes
const (
	uiFontSize       = 14.0
	minLabelFontSize = 8.0
)

// visualSize is the drawn size of an object, in cells
const visualSize = 0.35

const (
	keyRepeatInterval = 120 * time.Millisecond
	messageLifetime   = 10 * time.Second
	effectLifetime    = 400 * time.Millisecond
	maxVisibleLines   = 4
)
