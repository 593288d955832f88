package control

import (
	"joydisplay-go/types"
	"joydisplay-go/x/mathx"
)

// Display geometry. The panel and marker sizes are fixed for this board.
const (
	ScreenWidth  = 128
	ScreenHeight = 64
	MarkerSize   = 8

	maxLevel = 255
)

// MapPosition converts a raw joystick pair into the marker's top-left corner.
//
// The axes are cross-wired to match how the stick is mounted: the Y channel
// drives the horizontal coordinate and the X channel drives the vertical one,
// inverted. Results are always inside the panel.
func MapPosition(joyX, joyY types.AxisSample) types.ScreenPosition {
	jx := uint32(clampSample(joyX))
	jy := uint32(clampSample(joyY))
	full := uint32(types.AxisMax)

	x := jy * (ScreenWidth - MarkerSize) / full
	y := (full - jx) * (ScreenHeight - MarkerSize) / full

	if x+MarkerSize > ScreenWidth {
		x = ScreenWidth - MarkerSize
	}
	if y+MarkerSize > ScreenHeight {
		y = ScreenHeight - MarkerSize
	}
	return types.ScreenPosition{X: uint16(x), Y: uint16(y)}
}

// MapIntensity converts a raw joystick pair into PWM levels.
//
// Red follows the X axis and blue the Y axis, without the swap or inversion
// MapPosition applies. A channel is dark when its axis sits on either hard
// stop, and both are dark when enabled is false.
func MapIntensity(joyX, joyY types.AxisSample, enabled bool) types.IntensityPair {
	if !enabled {
		return types.IntensityPair{}
	}
	return types.IntensityPair{
		R: axisLevel(joyX),
		B: axisLevel(joyY),
	}
}

func axisLevel(s types.AxisSample) uint8 {
	s = clampSample(s)
	if s == types.AxisMin || s == types.AxisMax {
		return 0
	}
	return deviationLevel(mathx.AbsDiff(uint32(s), uint32(types.AxisMid)))
}

// deviationLevel scales a distance from the midpoint to 0..255.
func deviationLevel(dev uint32) uint8 {
	lvl := dev * maxLevel / uint32(types.AxisMid)
	return uint8(mathx.Min(lvl, maxLevel))
}

func clampSample(s types.AxisSample) types.AxisSample {
	return mathx.Clamp(s, types.AxisMin, types.AxisMax)
}
