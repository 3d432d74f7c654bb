package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
)

// Glyphs used by text frontends
const (
	IconEmpty   = "·"
	IconTile    = "▒"
	IconPlaced  = "■"
	IconObject  = "◆"
	IconGhostOK = "○"
	IconGhostNo = "×"
	IconVoid    = " "
)

var (
	ColorCell    color.Style
	ColorTile    color.Style
	ColorPlaced  color.Style
	ColorValid   color.Style
	ColorDenied  color.Style
	ColorAction  color.Style
	ColorSubtle  color.Style
	ColorHeading color.Style

	regexpStringFunctions = regexp.MustCompile(`([A-Z_]*){([a-z A-Z0-9_,:.()\-]+)}`)
)

// InitColors initializes the color styles
func InitColors() {
	ColorCell = color.Style{color.FgGray}
	ColorTile = color.Style{color.FgBlue}
	ColorPlaced = color.Style{color.FgYellow, color.OpBold}
	ColorValid = color.Style{color.FgGreen, color.OpBold}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorAction = color.Style{color.FgMagenta, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorHeading = color.Style{color.FgCyan, color.OpBold}
}

// translate looks up keys named inside markup at runtime
var translate = gotext.Get

// FormatString formats a string and expands markup of the form FUNC{operand}:
// GT translates, CELL/VALID/DENIED/ACTION colorize.
func FormatString(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = translate(operand)
		case "CELL":
			val = ColorTile.Sprint(operand)
		case "VALID":
			val = ColorValid.Sprint(translate(operand))
		case "DENIED":
			val = ColorDenied.Sprint(translate(operand))
		case "ACTION":
			val = ColorAction.Sprint(operand)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// StripMarkup removes color codes, for width calculations and plain logs
func StripMarkup(s string) string {
	return color.ClearCode(FormatString("%s", s))
}
