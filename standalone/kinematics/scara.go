package kinematics

import (
	"errors"
	"fmt"
	"math"

	"stepgo/dda"
	"stepgo/standalone"
)

// radToMillideg converts radians to millidegrees. 4068/71 approximates
// 180/pi more accurately than the float constant on small FPUs.
const radToMillideg = 4068.0 / 71.0 * 1000.0

// Scara maps XY positions onto a two-joint arm. The shoulder and elbow
// angles are non-linear functions of position, so every segment needs the
// joint angles at both endpoints. This is the only floating-point user in
// the motion path; Z stays a plain linear axis.
//
// Joint axes are calibrated like linear ones with one degree standing in
// for one millimetre: StepsPerM on x and y is steps per thousand degrees
// of joint rotation, and a micrometre of joint travel is a millidegree.
type Scara struct {
	geo    standalone.ScaraConfig
	axes   [dda.NumAxes]standalone.AxisConfig
	ratios [dda.NumAxes]dda.ScaledRatio

	minReach2 int64 // squared micrometres
	maxReach2 int64
}

// NewScara builds scara kinematics from the configured geometry.
func NewScara(cfg *standalone.MachineConfig) (*Scara, error) {
	if cfg.Scara.InnerArmLength <= 0 || cfg.Scara.OuterArmLength <= 0 {
		return nil, errors.New("kinematics: scara arm lengths must be positive")
	}

	k := &Scara{geo: cfg.Scara}
	for i, name := range axisNames {
		axis, ok := cfg.Axes[name]
		if !ok {
			return nil, fmt.Errorf("kinematics: axis %s not configured", name)
		}
		k.axes[i] = axis
		k.ratios[i] = dda.NewScaledRatio(axis.StepsPerM, 1000000)
	}

	inner, outer := cfg.Scara.InnerArmLength, cfg.Scara.OuterArmLength
	k.maxReach2 = dda.IntSqr(inner + outer)
	k.minReach2 = dda.IntSqr(inner - outer)
	return k, nil
}

// PhiTheta solves the arm pose for a point, via the law of cosines for the
// elbow and atan2 for the shoulder. x and y are micrometres relative to
// machine origin; the returned angles are radians.
func (k *Scara) PhiTheta(x, y int32) (phi, theta float64) {
	px := x - k.geo.TowerOffsetX
	py := y - k.geo.TowerOffsetY

	// Squaring micrometre values needs 64 bits.
	num := dda.IntSqr(px) + dda.IntSqr(py) -
		dda.IntSqr(k.geo.InnerArmLength) - dda.IntSqr(k.geo.OuterArmLength)
	den := 2 * int64(k.geo.InnerArmLength) * int64(k.geo.OuterArmLength)

	c2 := float64(num) / float64(den)
	if c2 > 1 {
		c2 = 1
	} else if c2 < -1 {
		c2 = -1
	}
	s2 := math.Sqrt(1 - c2*c2)

	phi = math.Atan2(s2, c2)

	k1 := float64(k.geo.InnerArmLength) + float64(k.geo.OuterArmLength)*c2
	k2 := float64(k.geo.OuterArmLength) * s2
	theta = math.Atan2(float64(py), float64(px)) - math.Atan2(k2, k1)
	return phi, theta
}

// StepsFor solves the arm pose at both endpoints and converts the angular
// deltas to steps. The elbow motor rides on the shoulder, so its step count
// includes the shoulder's rotation.
func (k *Scara) StepsFor(start, end standalone.Position) ([dda.NumAxes]int32, error) {
	phiStart, thetaStart := k.PhiTheta(start.X, start.Y)
	phiEnd, thetaEnd := k.PhiTheta(end.X, end.Y)

	thetaDelta := thetaEnd - thetaStart
	phiDelta := phiEnd - phiStart

	var steps [dda.NumAxes]int32
	steps[0] = k.ratios[0].Scale(int32(math.Trunc(thetaDelta * radToMillideg)))
	steps[1] = k.ratios[1].Scale(int32(math.Trunc((thetaDelta + phiDelta) * radToMillideg)))
	steps[2] = k.ratios[2].Scale(end.Z) - k.ratios[2].Scale(start.Z)
	return steps, nil
}

// StepsPerM returns the per-motor calibration.
func (k *Scara) StepsPerM() [dda.NumAxes]uint32 {
	var out [dda.NumAxes]uint32
	for i, axis := range k.axes {
		out[i] = axis.StepsPerM
	}
	return out
}

// CheckLimits verifies the point is inside the arm's annular reach and the
// Z travel. The reach test stays in integer arithmetic.
func (k *Scara) CheckLimits(pos standalone.Position) error {
	px := pos.X - k.geo.TowerOffsetX
	py := pos.Y - k.geo.TowerOffsetY

	r2 := dda.IntSqr(px) + dda.IntSqr(py)
	if r2 > k.maxReach2 {
		return errors.New("position beyond arm reach")
	}
	if r2 < k.minReach2 {
		return errors.New("position inside arm dead zone")
	}
	if pos.Z < k.axes[2].MinPosition || pos.Z > k.axes[2].MaxPosition {
		return errors.New("z position out of limits")
	}
	return nil
}
