package dda

// MulDivQR returns the rounded value of multiplicand * multiplier / divisor,
// where the multiplier is supplied as a precomputed quotient and remainder:
// qn = multiplier / divisor, rn = multiplier % divisor.
//
// Computing a * b / c the obvious way can overflow 32 bits even when the
// final quotient fits. This routine never forms the full product: it walks
// the bits of the multiplicand from least to most significant, accumulating
// quotient and remainder separately and folding the remainder back into the
// quotient whenever it reaches the divisor. The result is valid whenever the
// multiplicand, multiplier, divisor and true result each fit in 32 bits.
//
// divisor must be non-zero. The caller guarantees this; there is no runtime
// check because the routine runs inside the step interrupt path.
func MulDivQR(multiplicand int32, qn, rn, divisor uint32) int32 {
	var quotient, remainder uint32
	negative := false

	if multiplicand < 0 {
		negative = true
		multiplicand = -multiplicand
	}

	m := uint32(multiplicand)
	for m != 0 {
		if m&1 != 0 {
			quotient += qn
			remainder += rn
			if remainder >= divisor {
				quotient++
				remainder -= divisor
			}
		}
		m >>= 1
		qn <<= 1
		rn <<= 1
		if rn >= divisor {
			qn++
			rn -= divisor
		}
	}

	// Round to nearest.
	if remainder > divisor/2 {
		quotient++
	}

	if negative {
		return -int32(quotient)
	}
	return int32(quotient)
}

// MulDiv returns the rounded value of multiplicand * multiplier / divisor
// without intermediate overflow. Callers that reuse the same multiplier and
// divisor across many calls should build a ScaledRatio instead, which caches
// the division done here.
func MulDiv(multiplicand int32, multiplier, divisor uint32) int32 {
	return MulDivQR(multiplicand, multiplier/divisor, multiplier%divisor, divisor)
}

// ScaledRatio is a rational scale factor multiplier/divisor with the
// division precomputed, so repeated scaling of different values by the same
// ratio pays for the divide only once. A typical instance is an axis
// steps-per-metre over micrometres-per-metre ratio applied to every segment.
type ScaledRatio struct {
	Quotient  uint32 // multiplier / divisor
	Remainder uint32 // multiplier % divisor
	Divisor   uint32
}

// NewScaledRatio precomputes the quotient and remainder of
// multiplier / divisor. divisor must be non-zero.
func NewScaledRatio(multiplier, divisor uint32) ScaledRatio {
	return ScaledRatio{
		Quotient:  multiplier / divisor,
		Remainder: multiplier % divisor,
		Divisor:   divisor,
	}
}

// Scale returns the rounded value of v * multiplier / divisor.
func (r ScaledRatio) Scale(v int32) int32 {
	return MulDivQR(v, r.Quotient, r.Remainder, r.Divisor)
}
