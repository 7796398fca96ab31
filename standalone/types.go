package standalone

// Position is a point in machine coordinates, in micrometres. Integer
// micrometres keep the whole motion path in 32-bit arithmetic; a signed 32
// bit micrometre count spans +-2.1km of travel.
type Position struct {
	X int32
	Y int32
	Z int32
}

// Add returns p offset by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}

// Sub returns the displacement from q to p.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Move is one queued line segment.
type Move struct {
	Start    Position
	End      Position
	Feedrate uint32 // mm/min
}

// AxisConfig holds the calibration for a single axis.
type AxisConfig struct {
	StepsPerM   uint32 // steps per metre of travel
	MinPosition int32  // micrometres
	MaxPosition int32  // micrometres
}

// ScaraConfig holds the geometry of a Scara arm pair. All lengths are in
// micrometres; steps-per-unit for the shoulder and elbow motors is in steps
// per thousand degrees (millidegrees).
type ScaraConfig struct {
	TowerOffsetX   int32
	TowerOffsetY   int32
	InnerArmLength int32
	OuterArmLength int32
}

// MachineConfig is the full machine description loaded at startup.
type MachineConfig struct {
	Kinematics   string                // "cartesian" or "scara"
	Axes         map[string]AxisConfig // "x", "y", "z"
	Acceleration uint32                // mm/s^2, global
	Feedrate     uint32                // default feedrate, mm/min
	Scara        ScaraConfig
}

// MachineState tracks the interpreter-visible machine state.
type MachineState struct {
	Position     Position
	Feedrate     uint32
	AbsoluteMode bool
}
