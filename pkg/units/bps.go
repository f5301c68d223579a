package units

import "math"

// MaxBps is the number of basis points in 100%.
const MaxBps uint16 = 10000

// BpsToPercent converts basis points to a percentage.
func BpsToPercent(bps uint16) float64 {
	return float64(bps) / 100
}

// PercentToBps converts a percentage to basis points, rounding to the nearest
// integer. Sub-basis-point precision is lost, so the conversion round-trips
// exactly only for inputs produced by BpsToPercent.
func PercentToBps(percent float64) uint16 {
	scaled := math.Round(percent * 100)
	if scaled <= 0 || math.IsNaN(scaled) {
		return 0
	}
	if scaled >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(scaled)
}
