// Package ui is the authoring side panel: level info, the toolbox, the
// player's program and the run controls.
package ui

import (
	"fmt"
	"strings"

	"github.com/milk9111/hexpath/layout"
	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/program"
)

// Labels for the portrait toggle.
const (
	LabelShowTools    = "<<"
	LabelShowPlayArea = "Show play area"
)

// Model is the panel's state, kept apart from the widgets that show it.
type Model struct {
	Title   string
	Hint    string
	Toolbox levels.Toolbox
	Status  string

	lines    []string
	frame    layout.Frame
	tutorial bool
}

// SetLevel resets the model for a newly selected level.
func (m *Model) SetLevel(lvl *levels.Level, starter string) {
	m.Title = lvl.DisplayTitle()
	m.Hint = strings.TrimSpace(lvl.Tutorial)
	m.Toolbox = append(levels.Toolbox(nil), lvl.Toolbox...)
	m.tutorial = m.Hint != ""
	m.Status = ""
	m.SetProgram(starter)
}

// Program joins the program lines into tengo source.
func (m *Model) Program() string {
	if len(m.lines) == 0 {
		return ""
	}
	return strings.Join(m.lines, "\n") + "\n"
}

// SetProgram replaces the program. Blank lines are dropped.
func (m *Model) SetProgram(src string) {
	m.lines = m.lines[:0]
	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m.lines = append(m.lines, strings.TrimRight(line, " \t\r"))
	}
}

// Lines returns a copy of the program lines.
func (m *Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

// AppendLine adds one statement. Empty input is ignored.
func (m *Model) AppendLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	m.lines = append(m.lines, line)
	return true
}

// UndoLine removes the last statement.
func (m *Model) UndoLine() bool {
	if len(m.lines) == 0 {
		return false
	}
	m.lines = m.lines[:len(m.lines)-1]
	return true
}

func (m *Model) ClearProgram() {
	m.lines = m.lines[:0]
}

// Snippet is the statement a toolbox entry inserts.
func Snippet(cmd string) string {
	switch cmd {
	case levels.CmdMove, levels.CmdTurnLeft, levels.CmdTurnRight:
		return cmd + "()"
	case levels.CmdAtGoal:
		return "for !at_goal() { move() }"
	case levels.CmdPathLeft:
		return "if path_left() { turn_left() }"
	case levels.CmdPathRight:
		return "if path_right() { turn_right() }"
	case levels.CmdPathAhead:
		return "for path_ahead() { move() }"
	default:
		return ""
	}
}

// UseCommand appends the snippet for a toolbox command. Commands outside the
// level's toolbox are refused.
func (m *Model) UseCommand(cmd string) bool {
	if !m.Toolbox.Has(cmd) {
		return false
	}
	return m.AppendLine(Snippet(cmd))
}

// Dismiss hides the tutorial hint for the rest of the level.
func (m *Model) Dismiss() {
	m.tutorial = false
}

func (m *Model) TutorialVisible() bool {
	return m.tutorial
}

// ApplyLayout records the latest frame.
func (m *Model) ApplyLayout(f layout.Frame) {
	m.frame = f
}

func (m *Model) Frame() layout.Frame {
	return m.frame
}

// Collapsed reports whether the panel is squeezed to the edge strip.
func (m *Model) Collapsed() bool {
	return m.frame.State == layout.VisiblePortraitShown
}

// ToggleLabel is the portrait toggle text, or "" when the toggle is hidden.
func (m *Model) ToggleLabel() string {
	switch m.frame.State {
	case layout.VisiblePortraitShown:
		return LabelShowTools
	case layout.VisiblePortraitHidden:
		return LabelShowPlayArea
	default:
		return ""
	}
}

// ShowResult turns a run result into the status line.
func (m *Model) ShowResult(r program.Result) {
	m.Status = StatusText(r)
}

func StatusText(r program.Result) string {
	n := len(r.Steps)
	switch r.Outcome {
	case program.Success:
		return fmt.Sprintf("Goal reached in %d steps!", n)
	case program.Crashed:
		return fmt.Sprintf("Crashed into a wall after %d steps.", n)
	case program.Unfinished:
		return fmt.Sprintf("Stopped after %d steps without reaching the goal.", n)
	case program.StepLimit:
		return fmt.Sprintf("Gave up after %d steps.", n)
	case program.Timeout:
		return "Program took too long."
	case program.Failed:
		if r.Err != nil {
			return "Error: " + r.Err.Error()
		}
		return "Error."
	default:
		return ""
	}
}

// wrapText breaks s into lines of at most cols characters on word boundaries.
// Words longer than cols get a line of their own.
func wrapText(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		switch {
		case n == 0:
		case n+1+len(word) > cols:
			b.WriteByte('\n')
			n = 0
		default:
			b.WriteByte(' ')
			n++
		}
		b.WriteString(word)
		n += len(word)
	}
	return b.String()
}
