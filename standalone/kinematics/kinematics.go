package kinematics

import (
	"stepgo/dda"
	"stepgo/standalone"
)

// Kinematics maps machine coordinates to motor steps. Implementations keep
// whatever precomputed scale factors they need; the integer hot path only
// ever sees the step counts they return.
type Kinematics interface {
	// StepsFor returns the signed per-motor step displacement for a move
	// between two machine positions.
	StepsFor(start, end standalone.Position) ([dda.NumAxes]int32, error)

	// StepsPerM returns each motor channel's calibration in steps per
	// metre of its native unit, for ramp length planning.
	StepsPerM() [dda.NumAxes]uint32

	// CheckLimits reports whether a position is reachable.
	CheckLimits(pos standalone.Position) error
}

// New builds the kinematics named in the configuration.
func New(cfg *standalone.MachineConfig) (Kinematics, error) {
	switch cfg.Kinematics {
	case "scara":
		return NewScara(cfg)
	default:
		return NewCartesian(cfg)
	}
}
