package program

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/maze"
)

func corridorRunner(t *testing.T, toolbox levels.Toolbox) *Runner {
	t.Helper()
	m, err := maze.Parse([]string{"S..#", " #.G"}, maze.East)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return &Runner{Maze: m, Toolbox: toolbox, MaxSteps: 20, Timeout: 500 * time.Millisecond}
}

func allCommands() levels.Toolbox {
	return levels.Toolbox(levels.KnownCommands)
}

func TestRunOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    Outcome
		wantErr error
		steps   int
	}{
		{"success", "move()\nmove()\nturn_right()\nmove()\nturn_left()\nmove()", Success, nil, 6},
		{"sensor_loop", `
for !at_goal() {
	if path_ahead() { move() } else if path_right() { turn_right(); move(); turn_left() } else { turn_left() }
}`, Success, nil, 6},
		{"crash", "turn_left()\nturn_left()\nturn_left()\nmove()", Crashed, ErrCrashed, 4},
		{"unfinished", "move()", Unfinished, nil, 1},
		{"step_limit", "for { turn_left() }", StepLimit, ErrStepLimit, 20},
		{"timeout", "for { x := 1 }", Timeout, ErrTimeout, 0},
		{"compile_error", "move(", Failed, nil, 0},
		{"runtime_error", "move(1)", Failed, nil, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := corridorRunner(t, allCommands())
			res := r.Run(context.Background(), tc.src)
			if res.Outcome != tc.want {
				t.Fatalf("expected %v, got %v (err %v)", tc.want, res.Outcome, res.Err)
			}
			if tc.wantErr != nil && !errors.Is(res.Err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, res.Err)
			}
			if tc.want == Failed && res.Err == nil {
				t.Fatalf("expected an error for a failed run")
			}
			if len(res.Steps) != tc.steps {
				t.Fatalf("expected %d steps, got %d", tc.steps, len(res.Steps))
			}
		})
	}
}

func TestToolboxLimitsCommands(t *testing.T) {
	r := corridorRunner(t, levels.Toolbox{levels.CmdMove})
	res := r.Run(context.Background(), "turn_left()")
	if res.Outcome != Failed {
		t.Fatalf("expected compile failure for a command outside the toolbox, got %v", res.Outcome)
	}
}

func TestEveryKnownCommandIsBound(t *testing.T) {
	s := &session{robot: maze.NewRobot(corridorRunner(t, nil).Maze), maxSteps: 1}
	b := s.bindings(allCommands())
	for _, cmd := range levels.KnownCommands {
		if _, ok := b[cmd]; !ok {
			t.Fatalf("command %q has no binding", cmd)
		}
	}
}

func TestExecuteCallsBackOnce(t *testing.T) {
	r := corridorRunner(t, allCommands())
	done := make(chan Result, 2)
	r.Execute(context.Background(), "move()\nmove()\nturn_right()\nmove()\nturn_left()\nmove()", func(res Result) {
		done <- res
	})

	select {
	case res := <-done:
		if res.Outcome != Success {
			t.Fatalf("expected success, got %v (%v)", res.Outcome, res.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for result")
	}
	select {
	case <-done:
		t.Fatalf("expected a single callback")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelledContext(t *testing.T) {
	r := corridorRunner(t, allCommands())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := r.Run(ctx, "for { x := 1 }")
	if res.Outcome != Timeout {
		t.Fatalf("expected timeout for a cancelled context, got %v", res.Outcome)
	}
}

func TestNewRunnerUsesLevelLimit(t *testing.T) {
	lvl, err := levels.Parse([]byte("max_steps: 7\nmap: [\"SG\"]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := NewRunner(lvl, 100, time.Second)
	if r.MaxSteps != 7 {
		t.Fatalf("expected level step limit 7, got %d", r.MaxSteps)
	}
	if res := r.Run(context.Background(), "move()"); res.Outcome != Success {
		t.Fatalf("expected success, got %v (%v)", res.Outcome, res.Err)
	}
}

func TestNilRunner(t *testing.T) {
	var r *Runner
	if res := r.Run(context.Background(), "move()"); res.Outcome != Failed {
		t.Fatalf("expected failure for nil runner")
	}
}
