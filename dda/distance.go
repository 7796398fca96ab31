package dda

// ApproxDistance returns a linear approximation of sqrt(dx*dx + dy*dy)
// using only multiplies, shifts and adds. The coefficients give a maximum
// error of about 1.7% against the true norm.
//
// See http://www.flipcode.com/archives/Fast_Approximate_Distance_Functions.shtml
func ApproxDistance(dx, dy uint32) uint32 {
	// With one axis zero the norm is exact.
	if dx == 0 || dy == 0 {
		return dx + dy
	}

	var min, max uint32
	if dx < dy {
		min, max = dx, dy
	} else {
		min, max = dy, dx
	}

	approx := max*1007 + min*441
	if max < min<<4 {
		approx -= max * 40
	}

	// add 512 for proper rounding
	return (approx + 512) >> 10
}

// ApproxDistance3 returns a linear approximation of
// sqrt(dx*dx + dy*dy + dz*dz). The result depends only on the sorted
// magnitudes, so it is unchanged under any permutation of the arguments.
//
// See http://www.oroboro.com/rafael/docserv.php/index/programming/article/distance
func ApproxDistance3(dx, dy, dz uint32) uint32 {
	var min, med, max uint32

	if dx < dy {
		min, med = dx, dy
	} else {
		min, med = dy, dx
	}

	if dz < min {
		max = med
		med = min
		min = dz
	} else if dz < med {
		max = med
		med = dz
	} else {
		max = dz
	}

	approx := max*860 + med*851 + min*520
	if max < med<<1 {
		approx -= max * 294
	}
	if max < min<<2 {
		approx -= max * 113
	}
	if med < min<<2 {
		approx -= med * 40
	}

	// add 512 for proper rounding
	return (approx + 512) >> 10
}
