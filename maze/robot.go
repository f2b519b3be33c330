package maze

import (
	"errors"
	"fmt"
)

var ErrBlocked = errors.New("maze: robot walked off the path")

// Action is a single robot command.
type Action string

const (
	ActionMove      Action = "move"
	ActionTurnLeft  Action = "turn_left"
	ActionTurnRight Action = "turn_right"
)

// Step is the robot state after one action, kept for playback.
type Step struct {
	Action  Action
	Pos     Coord
	Heading Heading
	Crashed bool
}

// Robot walks a maze and records every action it takes.
type Robot struct {
	m       *Maze
	pos     Coord
	heading Heading
	steps   []Step
	crashed bool
}

func NewRobot(m *Maze) *Robot {
	return &Robot{m: m, pos: m.Start(), heading: m.Facing()}
}

func (r *Robot) Pos() Coord       { return r.pos }
func (r *Robot) Heading() Heading { return r.heading }
func (r *Robot) Crashed() bool    { return r.crashed }
func (r *Robot) AtGoal() bool     { return r.pos == r.m.Goal() }

// Steps returns a copy of the recorded steps.
func (r *Robot) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Move steps forward. Moving onto a wall or void records a crash step and
// returns ErrBlocked; the robot stays where it was.
func (r *Robot) Move() error {
	next := r.pos.Neighbor(r.heading)
	if !r.m.Open(next) {
		r.crashed = true
		r.steps = append(r.steps, Step{Action: ActionMove, Pos: r.pos, Heading: r.heading, Crashed: true})
		return fmt.Errorf("%w: %v -> %v is %v", ErrBlocked, r.pos, next, r.m.At(next))
	}
	r.pos = next
	r.record(ActionMove)
	return nil
}

func (r *Robot) TurnLeft() {
	r.heading = r.heading.Left()
	r.record(ActionTurnLeft)
}

func (r *Robot) TurnRight() {
	r.heading = r.heading.Right()
	r.record(ActionTurnRight)
}

// PathAhead, PathLeft and PathRight look at the neighbouring tile without moving.
func (r *Robot) PathAhead() bool { return r.m.Open(r.pos.Neighbor(r.heading)) }
func (r *Robot) PathLeft() bool  { return r.m.Open(r.pos.Neighbor(r.heading.Left())) }
func (r *Robot) PathRight() bool { return r.m.Open(r.pos.Neighbor(r.heading.Right())) }

func (r *Robot) record(a Action) {
	r.steps = append(r.steps, Step{Action: a, Pos: r.pos, Heading: r.heading})
}
