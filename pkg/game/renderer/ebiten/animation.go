package ebiten

import (
	"image/color"
	"math"
	"time"
)

// pulseColor returns base pulsing between 50% and 100% brightness over a
// two second period. Used for the selected palette widget.
func pulseColor(base color.RGBA, now time.Time) color.RGBA {
	// Pulse period: 2 seconds (2000ms)
	const pulsePeriod = 2000.0

	pulsePhase := float64(now.UnixMilli()%int64(pulsePeriod)) / pulsePeriod
	pulseValue := (math.Sin(pulsePhase*2*math.Pi) + 1.0) / 2.0 // 0.0 to 1.0

	minBrightness := 0.5
	maxBrightness := 1.0
	brightness := minBrightness + (maxBrightness-minBrightness)*pulseValue

	return color.RGBA{
		uint8(float64(base.R) * brightness),
		uint8(float64(base.G) * brightness),
		uint8(float64(base.B) * brightness),
		base.A,
	}
}

// effectProgress returns how far an effect has run, 0 to 1
func effectProgress(started, now time.Time) float64 {
	p := float64(now.Sub(started)) / float64(effectLifetime)
	return math.Max(0, math.Min(1, p))
}
