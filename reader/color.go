package reader

import "image/color"

// colorFrom16Bit downconverts the 16-bit-per-channel color LAS point
// records carry into the 8-bit color this module stores, the same /256
// conversion the teacher's NewFromLASFile performs.
func colorFrom16Bit(r, g, b uint16) color.NRGBA {
	return color.NRGBA{
		R: uint8(r / 256),
		G: uint8(g / 256),
		B: uint8(b / 256),
		A: 255,
	}
}
