package planner

import (
	"errors"

	"stepgo/core"
	"stepgo/dda"
	"stepgo/standalone"
	"stepgo/standalone/kinematics"
)

// QueueDepth is the number of segments the lookahead queue holds. Small
// 8-bit-class controllers run fine with a shallow queue; the host side
// throttles on ErrQueueFull.
const QueueDepth = 32

var (
	ErrQueueFull = errors.New("planner: move queue full")
	ErrNoMotion  = errors.New("planner: zero-length move")
)

// Planner turns queued moves into DDA segments and feeds them to the step
// scheduler one at a time.
type Planner struct {
	cfg    *standalone.MachineConfig
	kin    kinematics.Kinematics
	ddaCfg dda.Config

	queue []*standalone.Move
	pos   standalone.Position

	current *dda.DDA
	stepper StepSink
	event   core.Event
	sched   *core.Scheduler

	slices uint32 // timer slices left before the next step fires
	wait   uint32 // tick length of each remaining slice
}

// StepSink receives the step pulses the planner generates. On hardware this
// toggles step and direction pins; tests record the pulses.
type StepSink interface {
	// SetDirections latches the direction of every axis before a segment
	// starts. dirs[i] is +1 or -1.
	SetDirections(dirs [dda.NumAxes]int8)

	// Step pulses the axes set in the mask.
	Step(axes uint8)
}

// New creates a planner bound to a scheduler and a step sink.
func New(cfg *standalone.MachineConfig, kin kinematics.Kinematics, sched *core.Scheduler, sink StepSink) *Planner {
	return &Planner{
		cfg: cfg,
		kin: kin,
		ddaCfg: dda.Config{
			TimerFreq:    core.TimerFreq,
			Acceleration: cfg.Acceleration,
		},
		queue:   make([]*standalone.Move, 0, QueueDepth),
		sched:   sched,
		stepper: sink,
	}
}

// Position returns the planner's current end-of-queue position.
func (p *Planner) Position() standalone.Position {
	return p.pos
}

// SetPosition teaches the planner where the machine is, e.g. after homing.
// Only valid while the queue is empty.
func (p *Planner) SetPosition(pos standalone.Position) error {
	if len(p.queue) > 0 || p.current != nil {
		return errors.New("planner: cannot set position while moving")
	}
	p.pos = pos
	return nil
}

// QueueMove validates a move, plans it, and appends it to the queue. The
// move's Start field is overwritten with the queue's current end position.
func (p *Planner) QueueMove(move *standalone.Move) error {
	if len(p.queue) >= QueueDepth {
		return ErrQueueFull
	}
	if err := p.kin.CheckLimits(move.End); err != nil {
		return err
	}
	if move.Feedrate == 0 {
		move.Feedrate = p.cfg.Feedrate
	}

	move.Start = p.pos
	p.queue = append(p.queue, move)
	p.pos = move.End

	if p.current == nil {
		p.startNext()
	}
	return nil
}

// QueueLen returns the number of queued but unstarted moves.
func (p *Planner) QueueLen() int {
	return len(p.queue)
}

// Busy reports whether a segment is executing or waiting.
func (p *Planner) Busy() bool {
	return p.current != nil || len(p.queue) > 0
}

// startNext pops the next queued move and schedules its first step event.
func (p *Planner) startNext() {
	for len(p.queue) > 0 {
		move := p.queue[0]
		p.queue = p.queue[1:]

		steps, err := p.kin.StepsFor(move.Start, move.End)
		if err != nil {
			continue
		}

		delta := move.End.Sub(move.Start)
		d := dda.New(steps,
			[dda.NumAxes]int32{delta.X, delta.Y, delta.Z},
			move.Feedrate, p.kin.StepsPerM(), p.ddaCfg)
		if d.TotalSteps == 0 {
			continue
		}

		p.current = d
		p.stepper.SetDirections(d.Dir)
		p.event = core.Event{
			WakeTime: p.sched.Now() + p.splitWait(d.Interval(1)),
			Handler:  p.stepEvent,
		}
		p.sched.Schedule(&p.event)
		return
	}
	p.current = nil
}

// splitWait arms the slice counter for the wait before the next step.
// Intervals past the timer comparator horizon are delivered as several
// equal-length events; the division remainder rides on the first slice so
// the summed wait stays exact.
func (p *Planner) splitWait(interval uint32) uint32 {
	p.slices = dda.EventSlices(interval)
	p.wait = interval / p.slices
	return interval - p.wait*(p.slices-1)
}

// stepEvent runs from the step timer. One call, one slice; the step itself
// fires on the last slice of its wait.
func (p *Planner) stepEvent(e *core.Event) uint8 {
	if p.slices > 1 {
		p.slices--
		e.WakeTime += p.wait
		return core.Reschedule
	}

	axes, interval, done := p.current.Step()
	if axes != 0 {
		p.stepper.Step(axes)
	}
	if !done {
		e.WakeTime += p.splitWait(interval)
		return core.Reschedule
	}

	p.current = nil
	p.startNext()
	return core.Done
}
