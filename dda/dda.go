package dda

// NumAxes is the number of motion axes a segment carries.
const NumAxes = 3

// maxEventShift bounds how far ahead a single step event may be scheduled.
// Intervals at or past 1<<maxEventShift ticks are split into equal slices so
// the timer comparator never has to span more than 2^24 ticks.
const maxEventShift = 24

// Config carries the machine-wide constants a DDA needs. They come from the
// configuration layer once at startup and are shared by every segment.
type Config struct {
	TimerFreq    uint32 // step timer ticks per second
	Acceleration uint32 // mm/s^2, applied to every segment
}

// DDA converts one line segment into per-axis step programs. All fields are
// fixed at creation; Step only advances the bresenham accumulators, so a DDA
// is safe to drive from the step interrupt without allocation.
type DDA struct {
	TotalSteps uint32          // steps on the leading axis
	Leading    int             // index of the leading axis
	Steps      [NumAxes]uint32 // absolute step counts per axis
	Dir        [NumAxes]int8   // +1 or -1 per axis, +1 for idle axes

	Distance       uint32 // segment length in micrometres (approximated)
	RampSteps      uint32 // steps spent accelerating (and decelerating)
	CruiseInterval uint32 // leading-axis step interval at full feedrate, ticks
	C0             uint32 // first acceleration step interval, ticks

	invC ScaledRatio // C0 over the 4096 inverse-sqrt scale

	step uint32             // leading-axis steps issued so far
	err  [NumAxes - 1]int32 // bresenham accumulators for the other axes
}

// New plans a segment. delta is the signed displacement per axis in steps
// (already through kinematics), deltaUM the per-axis micrometre displacement
// used for the length estimate, and feedrate the target speed in mm/min.
//
// feedrate must be non-zero and the leading axis must move at least one
// step; zero-length segments are the planner's problem, not the DDA's.
func New(delta [NumAxes]int32, deltaUM [NumAxes]int32, feedrate uint32, stepsPerM [NumAxes]uint32, cfg Config) *DDA {
	d := &DDA{Leading: 0}

	for i := 0; i < NumAxes; i++ {
		d.Dir[i] = 1
		if delta[i] < 0 {
			d.Dir[i] = -1
		}
		d.Steps[i] = uint32(abs(delta[i]))
		if d.Steps[i] > d.Steps[d.Leading] {
			d.Leading = i
		}
	}
	d.TotalSteps = d.Steps[d.Leading]

	// The 3D estimator underestimates degenerate moves badly, so single
	// and dual axis segments use the cheaper exact forms.
	adx := uint32(abs(deltaUM[0]))
	ady := uint32(abs(deltaUM[1]))
	adz := uint32(abs(deltaUM[2]))
	switch {
	case adx == 0 && ady == 0:
		d.Distance = adz
	case adz == 0:
		d.Distance = ApproxDistance(adx, ady)
	default:
		d.Distance = ApproxDistance3(adx, ady, adz)
	}

	// Segment duration in microseconds: um * 60000 / (mm/min).
	duration := uint32(MulDiv(int32(d.Distance), 60000, feedrate))

	// Leading-axis cruise interval in timer ticks.
	ticksPerUS := cfg.TimerFreq / 1000000
	if d.TotalSteps > 0 {
		d.CruiseInterval = uint32(MulDiv(int32(duration), ticksPerUS, d.TotalSteps))
	}

	d.RampSteps = AccRampLen(feedrate, stepsPerM[d.Leading], cfg.Acceleration)
	if d.RampSteps > d.TotalSteps/2 {
		d.RampSteps = d.TotalSteps / 2
	}

	// First-step interval c0 = f / sqrt(2 * a), with a in steps/s^2.
	accelSteps := uint32(MulDiv(int32(cfg.Acceleration), stepsPerM[d.Leading], 1000))
	if accelSteps > 0 {
		d.C0 = cfg.TimerFreq / uint32(IntSqrt(2*accelSteps))
	}
	if d.C0 < d.CruiseInterval {
		d.C0 = d.CruiseInterval
	}
	d.invC = NewScaledRatio(d.C0, 4096)

	for i := range d.err {
		d.err[i] = -int32(d.TotalSteps) / 2
	}
	return d
}

// Interval returns the tick interval before leading-axis step n (counted
// from 1). During ramp-up it follows c0 / sqrt(n) using the fixed-point
// inverse square root; during ramp-down the mirror image; in between the
// cruise interval.
func (d *DDA) Interval(n uint32) uint32 {
	if n == 0 || n > d.TotalSteps {
		return d.C0
	}
	remaining := d.TotalSteps - n
	switch {
	case n <= d.RampSteps:
		// accelerating
	case remaining < d.RampSteps:
		n = remaining + 1
	default:
		return d.CruiseInterval
	}
	if n == 1 {
		return d.C0
	}
	if n > 0xFFFF {
		n = 0xFFFF
	}
	c := uint32(d.invC.Scale(int32(IntInvSqrt(uint16(n)))))
	if c < d.CruiseInterval {
		c = d.CruiseInterval
	}
	return c
}

// Step advances the segment by one leading-axis step. It returns a bitmask
// of the axes that step now (bit i set for axis i), the tick interval to
// wait before the next step, and whether the segment is finished.
// Allocation free.
func (d *DDA) Step() (axes uint8, interval uint32, done bool) {
	if d.step >= d.TotalSteps {
		return 0, 0, true
	}
	d.step++
	axes = 1 << uint(d.Leading)

	e := 0
	for i := 0; i < NumAxes; i++ {
		if i == d.Leading {
			continue
		}
		d.err[e] += int32(d.Steps[i])
		if d.err[e] > 0 {
			axes |= 1 << uint(i)
			d.err[e] -= int32(d.TotalSteps)
		}
		e++
	}

	return axes, d.Interval(d.step + 1), d.step >= d.TotalSteps
}

// Remaining returns how many leading-axis steps are still to be issued.
func (d *DDA) Remaining() uint32 {
	return d.TotalSteps - d.step
}

// EventSlices returns how many equal timer slices an interval must be split
// into so that each slice stays below the scheduler horizon. Almost always 1;
// only pathologically slow segments (sub-mm/min feedrates) need slicing.
func EventSlices(interval uint32) uint32 {
	if interval < 1<<maxEventShift {
		return 1
	}
	return 1 << (Msbloc(interval) - maxEventShift + 1)
}
