package dda

import "golang.org/x/exp/constraints"

// IntSqr returns the exact square of a widened to 64 bits. Micrometre
// coordinates square to values well past 32 bits (200,000 um squared needs
// 35 bits), so the widening is not optional for kinematics callers.
func IntSqr(a int32) int64 {
	return int64(a) * int64(a)
}

// Msbloc returns the position of the most significant set bit of v, so that
// 1 << Msbloc(v) <= v < 1 << (Msbloc(v) + 1). It is an ultra-crude floor
// log2, good enough where only the order of magnitude matters. Msbloc(0)
// returns 0.
func Msbloc(v uint32) uint8 {
	c := uint32(0x80000000)
	for i := uint8(31); i != 0; i-- {
		if v&c != 0 {
			return i
		}
		c >>= 1
	}
	return 0
}

// AccRampLen returns the number of steps needed to accelerate an axis from
// standstill to feedrate (mm/min) at the given constant acceleration
// (mm/s^2), for an axis calibrated to stepsPerM steps per metre.
//
// s = 1/2 * a * t^2, v = a * t ==> s = v^2 / (2 * a)
// 7200000 = 60 * 60 * 1000 * 2 (mm/min -> mm/s, steps/m -> steps/mm, factor 2)
//
// Note: this formula has shown to be accurate between 10 and 10'000 mm/s2
// and 2000 to 4096000 steps/m (and higher). The numbers are a few percent
// too high at very low acceleration. That envelope is a property of the
// formula and is kept as is; calibrations downstream depend on it.
//
// The internal unit factor 7200000 * acceleration must itself fit in 32
// bits, which caps acceleration at 596 mm/s^2. The configuration layer
// rejects values past that.
func AccRampLen(feedrate, stepsPerM, acceleration uint32) uint32 {
	return (feedrate * feedrate) / ((7200000 * acceleration) / stepsPerM)
}

// abs returns the magnitude of v as the same signed type.
func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
