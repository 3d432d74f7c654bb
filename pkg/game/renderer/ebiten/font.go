package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// getUIFontFace returns a cached font face for header, palette and messages
func (e *EbitenRenderer) getUIFontFace() *text.GoTextFace {
	if e.cachedUIFace == nil {
		e.cachedUIFace = &text.GoTextFace{
			Source: e.fontSource,
			Size:   uiFontSize,
		}
	}
	return e.cachedUIFace
}

// getLabelFontSize returns the size of the letters drawn on objects, scaled to the camera
func (e *EbitenRenderer) getLabelFontSize() float64 {
	size := e.scene.Camera.PixelsPerUnit * 0.3
	if size < minLabelFontSize {
		size = minLabelFontSize
	}
	return size
}

// getLabelFontFace returns a cached font face for object labels
func (e *EbitenRenderer) getLabelFontFace() *text.GoTextFace {
	size := e.getLabelFontSize()
	if e.cachedLabelFace == nil || e.cachedLabelSize != size {
		e.cachedLabelSize = size
		e.cachedLabelFace = &text.GoTextFace{
			Source: e.fontSource,
			Size:   size,
		}
	}
	return e.cachedLabelFace
}
