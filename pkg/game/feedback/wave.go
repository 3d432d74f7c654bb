package feedback

import (
	"image/color"
	"math"
	"time"

	"dropgrid/pkg/engine/world"
)

// PingPong folds t into a triangle wave between 0 and length
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	m := math.Mod(t, 2*length)
	if m < 0 {
		m += 2 * length
	}
	return length - math.Abs(m-length)
}

// ShakeOffset is the clone's displacement from its drop position after
// elapsed. X and Y run at different speeds and phases so the motion
// does not collapse onto a diagonal.
func ShakeOffset(cfg Config, elapsed time.Duration) world.Vec3 {
	t := elapsed.Seconds()
	return world.Vec3{
		X: math.Sin(t*cfg.ShakeSpeed) * cfg.ShakeAmplitude,
		Y: math.Cos(t*cfg.ShakeSpeed*1.3+math.Pi/2) * cfg.ShakeAmplitude * 0.5,
	}
}

// FlashColor interpolates from the original color to the invalid tint and
// back, FlashSpeed round trips per second
func FlashColor(cfg Config, original color.RGBA, elapsed time.Duration) color.RGBA {
	k := PingPong(elapsed.Seconds()*cfg.FlashSpeed*2, 1)
	return lerpRGBA(original, cfg.InvalidColor, k)
}

func lerpRGBA(a, b color.RGBA, k float64) color.RGBA {
	k = math.Max(0, math.Min(1, k))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*k))
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}
