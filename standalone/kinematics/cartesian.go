package kinematics

import (
	"errors"
	"fmt"

	"stepgo/dda"
	"stepgo/standalone"
)

// Cartesian maps axes to motors one to one. Each axis carries a cached
// steps-per-metre over micrometres-per-metre ratio, so converting a
// position costs one MulDivQR per axis and no division.
type Cartesian struct {
	axes   [dda.NumAxes]standalone.AxisConfig
	ratios [dda.NumAxes]dda.ScaledRatio
}

var axisNames = [dda.NumAxes]string{"x", "y", "z"}

// NewCartesian builds cartesian kinematics from the configured axes.
func NewCartesian(cfg *standalone.MachineConfig) (*Cartesian, error) {
	k := &Cartesian{}
	for i, name := range axisNames {
		axis, ok := cfg.Axes[name]
		if !ok {
			return nil, fmt.Errorf("kinematics: axis %s not configured", name)
		}
		if axis.StepsPerM == 0 {
			return nil, fmt.Errorf("kinematics: axis %s has zero steps-per-metre", name)
		}
		k.axes[i] = axis
		k.ratios[i] = dda.NewScaledRatio(axis.StepsPerM, 1000000)
	}
	return k, nil
}

// StepsFor converts both endpoints to absolute step positions and returns
// the difference. Scaling the absolute positions rather than the deltas
// keeps rounding from accumulating across segments.
func (k *Cartesian) StepsFor(start, end standalone.Position) ([dda.NumAxes]int32, error) {
	s := [dda.NumAxes]int32{start.X, start.Y, start.Z}
	e := [dda.NumAxes]int32{end.X, end.Y, end.Z}

	var steps [dda.NumAxes]int32
	for i := range steps {
		steps[i] = k.ratios[i].Scale(e[i]) - k.ratios[i].Scale(s[i])
	}
	return steps, nil
}

// StepsPerM returns the per-axis calibration.
func (k *Cartesian) StepsPerM() [dda.NumAxes]uint32 {
	var out [dda.NumAxes]uint32
	for i, axis := range k.axes {
		out[i] = axis.StepsPerM
	}
	return out
}

// CheckLimits validates the position against the configured travel box.
func (k *Cartesian) CheckLimits(pos standalone.Position) error {
	p := [dda.NumAxes]int32{pos.X, pos.Y, pos.Z}
	for i, axis := range k.axes {
		if p[i] < axis.MinPosition || p[i] > axis.MaxPosition {
			return errors.New(axisNames[i] + " position out of limits")
		}
	}
	return nil
}
