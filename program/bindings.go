package program

import (
	"github.com/d5/tengo/v2"

	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/maze"
)

// session is the state shared by one run's bound commands.
type session struct {
	robot    *maze.Robot
	maxSteps int
	actions  int
	limitHit bool
}

// bindings returns the tengo functions for every toolbox command.
func (s *session) bindings(toolbox levels.Toolbox) map[string]*tengo.UserFunction {
	all := map[string]tengo.CallableFunc{
		levels.CmdMove: s.action(func() error { return s.robot.Move() }),
		levels.CmdTurnLeft: s.action(func() error {
			s.robot.TurnLeft()
			return nil
		}),
		levels.CmdTurnRight: s.action(func() error {
			s.robot.TurnRight()
			return nil
		}),
		levels.CmdPathAhead: sensor(s.robot.PathAhead),
		levels.CmdPathLeft:  sensor(s.robot.PathLeft),
		levels.CmdPathRight: sensor(s.robot.PathRight),
		levels.CmdAtGoal:    sensor(s.robot.AtGoal),
	}

	out := make(map[string]*tengo.UserFunction, len(toolbox))
	for _, name := range toolbox {
		fn, ok := all[name]
		if !ok {
			continue
		}
		out[name] = &tengo.UserFunction{Name: name, Value: fn}
	}
	return out
}

// action wraps a robot command with the step limit. Returning an error stops
// the VM.
func (s *session) action(do func() error) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 0 {
			return nil, tengo.ErrWrongNumArguments
		}
		if s.actions >= s.maxSteps {
			s.limitHit = true
			return nil, ErrStepLimit
		}
		s.actions++
		if err := do(); err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, nil
	}
}

func sensor(read func() bool) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 0 {
			return nil, tengo.ErrWrongNumArguments
		}
		if read() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}
}
