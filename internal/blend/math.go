package blend

// mulDiv255 multiplies two bytes and divides by 255 with rounding.
// Uses Alvy Ray Smith's exact division without a divide instruction.
func mulDiv255(a, b byte) byte {
	t := uint16(a)*uint16(b) + 128
	return byte((t + (t >> 8)) >> 8)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// toUnit converts a byte to [0, 1].
func toUnit(b byte) float64 {
	return float64(b) / 255
}

// toByte converts [0, 1] to a byte with rounding and clamping.
func toByte(f float64) byte {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return byte(f*255 + 0.5)
}
