package raster

// PixelDiff returns the color distance between two pixels as the sum of
// the absolute per-channel differences: |dR| + |dG| + |dB|, in 0..765.
func PixelDiff(a, b RGB) int64 {
	return absDiff(a.R, b.R) + absDiff(a.G, b.G) + absDiff(a.B, b.B)
}

func absDiff(a, b uint8) int64 {
	if a > b {
		return int64(a - b)
	}
	return int64(b - a)
}

// MaxPageDiff is the largest diff sum a width x height page can produce.
// It fits comfortably in an int64 for any realistic page size.
func MaxPageDiff(width, height int) int64 {
	return int64(width) * int64(height) * 3 * 255
}
