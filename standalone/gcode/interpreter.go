package gcode

import (
	"fmt"

	"stepgo/standalone"
	"stepgo/standalone/planner"
)

// Interpreter applies parsed commands to the motion planner. Coordinates
// arrive in millimetres and feedrates in mm/min per G-code convention; they
// are converted to the controller's integer micrometre units here, at the
// outermost boundary.
type Interpreter struct {
	planner *planner.Planner
	state   standalone.MachineState
}

// NewInterpreter creates an interpreter bound to a planner.
func NewInterpreter(p *planner.Planner) *Interpreter {
	return &Interpreter{
		planner: p,
		state: standalone.MachineState{
			AbsoluteMode: true,
		},
	}
}

// State returns the interpreter's view of the machine.
func (in *Interpreter) State() standalone.MachineState {
	return in.state
}

// Execute parses and applies one line. Unsupported commands are ignored,
// as firmware conventionally does, so host slicers can emit their usual
// preamble.
func (in *Interpreter) Execute(line string) error {
	cmd, err := ParseLine(line)
	if err != nil {
		return err
	}
	if cmd == nil || cmd.Letter != 'G' {
		return nil
	}

	switch cmd.Number {
	case 0, 1:
		return in.move(cmd)
	case 28:
		return in.home(cmd)
	case 90:
		in.state.AbsoluteMode = true
	case 91:
		in.state.AbsoluteMode = false
	case 92:
		return in.setPosition(cmd)
	}
	return nil
}

// mmToUM converts a millimetre word to integer micrometres.
func mmToUM(mm float64) int32 {
	if mm < 0 {
		return int32(mm*1000 - 0.5)
	}
	return int32(mm*1000 + 0.5)
}

func (in *Interpreter) target(cmd *Command) standalone.Position {
	pos := in.state.Position
	if in.state.AbsoluteMode {
		if cmd.Has('X') {
			pos.X = mmToUM(cmd.Value('X', 0))
		}
		if cmd.Has('Y') {
			pos.Y = mmToUM(cmd.Value('Y', 0))
		}
		if cmd.Has('Z') {
			pos.Z = mmToUM(cmd.Value('Z', 0))
		}
		return pos
	}
	return pos.Add(standalone.Position{
		X: mmToUM(cmd.Value('X', 0)),
		Y: mmToUM(cmd.Value('Y', 0)),
		Z: mmToUM(cmd.Value('Z', 0)),
	})
}

func (in *Interpreter) move(cmd *Command) error {
	if cmd.Has('F') {
		f := cmd.Value('F', 0)
		if f <= 0 {
			return fmt.Errorf("gcode: feedrate %v out of range", f)
		}
		in.state.Feedrate = uint32(f)
	}

	end := in.target(cmd)
	err := in.planner.QueueMove(&standalone.Move{
		End:      end,
		Feedrate: in.state.Feedrate,
	})
	if err != nil {
		return err
	}
	in.state.Position = end
	return nil
}

// home drives the named axes back to the machine origin; a bare G28 homes
// all of them. There is no endstop hardware here, so homing is a plain move
// to zero in whatever frame G92 or a previous home established. Always
// absolute, regardless of G91.
func (in *Interpreter) home(cmd *Command) error {
	end := in.state.Position
	all := !cmd.Has('X') && !cmd.Has('Y') && !cmd.Has('Z')
	if all || cmd.Has('X') {
		end.X = 0
	}
	if all || cmd.Has('Y') {
		end.Y = 0
	}
	if all || cmd.Has('Z') {
		end.Z = 0
	}
	if end == in.state.Position {
		return nil
	}

	err := in.planner.QueueMove(&standalone.Move{
		End:      end,
		Feedrate: in.state.Feedrate,
	})
	if err != nil {
		return err
	}
	in.state.Position = end
	return nil
}

func (in *Interpreter) setPosition(cmd *Command) error {
	pos := in.state.Position
	if cmd.Has('X') {
		pos.X = mmToUM(cmd.Value('X', 0))
	}
	if cmd.Has('Y') {
		pos.Y = mmToUM(cmd.Value('Y', 0))
	}
	if cmd.Has('Z') {
		pos.Z = mmToUM(cmd.Value('Z', 0))
	}
	if len(cmd.Words) == 0 {
		pos = standalone.Position{}
	}

	if err := in.planner.SetPosition(pos); err != nil {
		return err
	}
	in.state.Position = pos
	return nil
}
