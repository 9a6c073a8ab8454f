package document

import "math"

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// rgb255 scales components to the engine's 8-bit channels, clamping out of
// range values instead of wrapping.
func (c Color) rgb255() (int, int, int) {
	return clamp255(c.R), clamp255(c.G), clamp255(c.B)
}

func clamp255(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(math.Round(v * 255))
}
