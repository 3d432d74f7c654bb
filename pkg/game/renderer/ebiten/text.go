package ebiten

import (
	"image/color"
	"regexp"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/leonelquinteros/gotext"
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

var markupRegex = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^}]*)\}`)

// textSegment represents a segment of text with a specific color
type textSegment struct {
	text  string
	color color.Color
}

// parseMarkup parses a message string with markup (GT{}, CELL{}, ACTION{},
// VALID{}, DENIED{}) and returns colored segments
func (e *EbitenRenderer) parseMarkup(msg string) []textSegment {
	var segments []textSegment

	lastIndex := 0
	for _, match := range markupRegex.FindAllStringSubmatchIndex(msg, -1) {
		// Add text before the markup
		if match[0] > lastIndex {
			segments = append(segments, textSegment{text: msg[lastIndex:match[0]], color: colorText})
		}

		function := msg[match[2]:match[3]]
		content := msg[match[4]:match[5]]

		var segColor color.Color
		switch function {
		case "GT":
			content = dynamicGet(content)
			segColor = colorText
		case "CELL":
			segColor = colorCell
		case "ACTION":
			segColor = colorAction
		case "VALID":
			content = dynamicGet(content)
			segColor = colorValid
		case "DENIED":
			content = dynamicGet(content)
			segColor = colorDenied
		default:
			segColor = colorText
		}

		segments = append(segments, textSegment{text: content, color: segColor})
		lastIndex = match[1]
	}

	// Add remaining text after last markup
	if lastIndex < len(msg) {
		segments = append(segments, textSegment{text: msg[lastIndex:], color: colorText})
	}

	if len(segments) == 0 {
		segments = append(segments, textSegment{text: msg, color: colorText})
	}
	return segments
}

// applyAlpha applies an alpha value to a color
func (e *EbitenRenderer) applyAlpha(c color.Color, alpha float64) color.Color {
	if alpha <= 0 {
		alpha = 0
	}
	if alpha > 1.0 {
		alpha = 1.0
	}

	r, g, b, a := c.RGBA()
	// RGBA returns values in 0-65535 range, convert to 0-255
	r8 := uint8(r >> 8)
	g8 := uint8(g >> 8)
	b8 := uint8(b >> 8)
	a8 := uint8(a >> 8)

	// Premultiplied: fade to transparent black, not transparent bright colors
	return color.RGBA{
		uint8(float64(r8) * alpha),
		uint8(float64(g8) * alpha),
		uint8(float64(b8) * alpha),
		uint8(float64(a8) * alpha),
	}
}

// drawText draws a single-colored string with its top-left at x, y
func (e *EbitenRenderer) drawText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

// drawColoredTextSegments draws segments left to right starting at x, y
func (e *EbitenRenderer) drawColoredTextSegments(screen *ebiten.Image, segments []textSegment, x, y float64, alpha float64) {
	face := e.getUIFontFace()
	currentX := x

	for _, seg := range segments {
		if seg.text == "" {
			continue
		}
		e.drawText(screen, seg.text, currentX, y, e.applyAlpha(seg.color, alpha), face)

		w, _ := text.Measure(seg.text, face, 0)
		currentX += w
	}
}

// getTextWidth returns the width of a string in pixels at UI font size
func (e *EbitenRenderer) getTextWidth(str string) float64 {
	w, _ := text.Measure(str, e.getUIFontFace(), 0)
	return w
}
