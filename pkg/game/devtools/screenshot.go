package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dropgrid/pkg/engine/world"
	"dropgrid/pkg/game/renderer"
	"dropgrid/pkg/game/state"
)

// SaveScreenshotHTML saves the grid, the placed objects and the message log
// as an HTML file in dir and returns its path
func SaveScreenshotHTML(s *state.Scene, dir string) (string, error) {
	if s.Grid == nil || s.Tiles == nil {
		return "", world.ErrNotInitialized
	}
	bounds, err := s.Grid.Bounds()
	if err != nil {
		return "", err
	}
	view := bounds
	if region := s.Tiles.CellBounds(); !region.IsEmpty() {
		view = view.Encapsulate(region.Min).Encapsulate(region.Max)
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("screenshot-%s.html", timestamp))

	// Build the HTML
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Drop Grid - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .meta {
            color: #888;
            margin-bottom: 20px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .empty { color: #444; }
        .tile { color: #6496ff; }
        .obstacle { color: #888; font-weight: bold; }
        .placed { color: #64ff96; font-weight: bold; }
        .void { color: #1a1a2e; }
        .axis { color: #555; }
        .placed-list {
            margin-top: 20px;
            color: #888;
        }
        .placed-item { color: #bb86fc; }
        .messages {
            margin-top: 20px;
            border-top: 1px solid #333;
            padding-top: 10px;
        }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)

	// Header
	fmt.Fprintf(&b, `    <div class="header">%v grid</div>`+"\n", s.Grid.Layout().Shape)
	fmt.Fprintf(&b, `    <div class="meta">origin %v, policy %s, bounds %s</div>`+"\n",
		s.Grid.Origin(), html.EscapeString(fmt.Sprint(s.Grid.Policy())), html.EscapeString(bounds.String()))

	// Map, north at the top
	b.WriteString(`    <div class="map-container">` + "\n")
	if !view.IsEmpty() {
		for y := view.Max.Y; y >= view.Min.Y; y-- {
			fmt.Fprintf(&b, `        <div class="map-row"><span class="axis">%4d </span>`, y)
			for x := view.Min.X; x <= view.Max.X; x++ {
				c := world.Cell(x, y)
				sym := cellSymbol(s, c, bounds.Contains(c))
				fmt.Fprintf(&b, `<span class="%s">%c</span>`, symbolClass(sym), sym)
			}
			b.WriteString("</div>\n")
		}
	}
	b.WriteString(`    </div>` + "\n")

	// Placed objects
	b.WriteString(`    <div class="placed-list">Placed: `)
	placed := s.Spawner.Placed()
	if len(placed) == 0 {
		b.WriteString(`<span style="color:#666">(none)</span>`)
	}
	for i, p := range placed {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `<span class="placed-item">%s %v</span>`, html.EscapeString(p.Item.Name), p.Cell)
	}
	b.WriteString(`</div>` + "\n")

	// Messages
	if len(s.Messages) > 0 {
		b.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range s.Messages {
			clean := renderer.StripMarkup(msg)
			fmt.Fprintf(&b, `        <div class="message">%s</div>`+"\n", html.EscapeString(clean))
		}
		b.WriteString(`    </div>` + "\n")
	}

	b.WriteString(`</body>
</html>
`)

	if err := os.WriteFile(filename, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	return filename, nil
}

// symbolClass returns the CSS class for a map symbol
func symbolClass(sym rune) string {
	switch sym {
	case SymbolEmpty:
		return "empty"
	case SymbolTile:
		return "tile"
	case SymbolObstacle:
		return "obstacle"
	case SymbolPlaced:
		return "placed"
	default:
		return "void"
	}
}
