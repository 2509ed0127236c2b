package gallery

import "math"

// Next returns the index after i with circular wrap. n must be positive.
func Next(i, n int) int {
	return (i + 1 + n) % n
}

// Prev returns the index before i with circular wrap. n must be positive.
func Prev(i, n int) int {
	return (i - 1 + n) % n
}

// IndexFromOffset infers the item nearest to a scroll offset on a track where
// items of itemWidth are separated by gap. ok is false when the inferred index
// falls outside [0, n) or the geometry is degenerate.
func IndexFromOffset(offset, itemWidth, gap float64, n int) (index int, ok bool) {
	pitch := itemWidth + gap
	if n <= 0 || pitch <= 0 || math.IsNaN(offset) {
		return 0, false
	}
	index = int(math.Round(offset / pitch))
	if index < 0 || index >= n {
		return 0, false
	}
	return index, true
}

// OffsetOf is the track offset at which item i starts.
func OffsetOf(i int, itemWidth, gap float64) float64 {
	return float64(i) * (itemWidth + gap)
}
