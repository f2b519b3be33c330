// Package program runs player-written tengo programs against a maze.
package program

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/maze"
)

const (
	DefaultMaxSteps = 200
	DefaultTimeout  = 2 * time.Second
	defaultAllocs   = 1 << 20
)

var (
	ErrStepLimit = errors.New("program: step limit reached")
	ErrCrashed   = errors.New("program: robot crashed")
	ErrTimeout   = errors.New("program: timed out")
)

// Outcome classifies how a run ended.
type Outcome int

const (
	Success Outcome = iota
	Crashed
	Unfinished
	StepLimit
	Timeout
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Crashed:
		return "crashed"
	case Unfinished:
		return "unfinished"
	case StepLimit:
		return "step-limit"
	case Timeout:
		return "timeout"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what a run hands back to presenters.
type Result struct {
	Outcome  Outcome
	Steps    []maze.Step
	Err      error
	Duration time.Duration
}

// Runner executes programs for one maze and toolbox.
type Runner struct {
	Maze     *maze.Maze
	Toolbox  levels.Toolbox
	MaxSteps int
	Timeout  time.Duration
	// Modules lists the tengo stdlib modules programs may import.
	Modules []string
}

// NewRunner builds a runner for a level, taking the step limit from the level
// when it sets one.
func NewRunner(lvl *levels.Level, maxSteps int, timeout time.Duration) *Runner {
	if lvl.MaxSteps > 0 {
		maxSteps = lvl.MaxSteps
	}
	return &Runner{
		Maze:     lvl.Maze(),
		Toolbox:  lvl.Toolbox,
		MaxSteps: maxSteps,
		Timeout:  timeout,
		Modules:  []string{"math", "text", "rand"},
	}
}

// Execute runs src on its own goroutine and calls onResult exactly once.
func (r *Runner) Execute(ctx context.Context, src string, onResult func(Result)) {
	go func() {
		res := r.Run(ctx, src)
		if onResult != nil {
			onResult(res)
		}
	}()
}

// Run executes src synchronously.
func (r *Runner) Run(ctx context.Context, src string) Result {
	start := time.Now()
	if r == nil || r.Maze == nil {
		return Result{Outcome: Failed, Err: errors.New("program: no maze")}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s := &session{robot: maze.NewRobot(r.Maze), maxSteps: r.MaxSteps}
	if s.maxSteps <= 0 {
		s.maxSteps = DefaultMaxSteps
	}

	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap(r.Modules...))
	script.SetMaxAllocs(defaultAllocs)
	for name, fn := range s.bindings(r.Toolbox) {
		if err := script.Add(name, fn); err != nil {
			return Result{Outcome: Failed, Err: fmt.Errorf("program: bind %s: %w", name, err), Duration: time.Since(start)}
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return Result{Outcome: Failed, Err: fmt.Errorf("program: compile: %w", err), Duration: time.Since(start)}
	}
	runErr := compiled.RunContext(ctx)

	res := Result{Steps: s.robot.Steps(), Duration: time.Since(start)}
	switch {
	case s.robot.Crashed():
		res.Outcome, res.Err = Crashed, ErrCrashed
	case s.limitHit:
		res.Outcome, res.Err = StepLimit, ErrStepLimit
	case ctx.Err() != nil:
		res.Outcome, res.Err = Timeout, ErrTimeout
	case runErr != nil:
		res.Outcome, res.Err = Failed, fmt.Errorf("program: run: %w", runErr)
	case s.robot.AtGoal():
		res.Outcome = Success
	default:
		res.Outcome = Unfinished
	}
	return res
}
