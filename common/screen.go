package common

// Sandbox logical resolution.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// PixelsPerMeter scales physics units to screen pixels in the side view.
const PixelsPerMeter = 48.0
