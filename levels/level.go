// Package levels holds puzzle definitions: the hex map, the commands the
// player may use, and the optional starter program.
package levels

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/hexpath/maze"
)

var ErrInvalidLevel = errors.New("levels: invalid level")

// Commands every toolbox may draw from.
const (
	CmdMove      = "move"
	CmdTurnLeft  = "turn_left"
	CmdTurnRight = "turn_right"
	CmdPathAhead = "path_ahead"
	CmdPathLeft  = "path_left"
	CmdPathRight = "path_right"
	CmdAtGoal    = "at_goal"
)

var KnownCommands = []string{CmdMove, CmdTurnLeft, CmdTurnRight, CmdPathAhead, CmdPathLeft, CmdPathRight, CmdAtGoal}

// Toolbox is the set of commands a level exposes, in display order.
type Toolbox []string

func (t Toolbox) Has(cmd string) bool {
	for _, c := range t {
		if c == cmd {
			return true
		}
	}
	return false
}

type Level struct {
	Name     string   `yaml:"-"`
	Title    string   `yaml:"title"`
	Map      []string `yaml:"map"`
	Facing   string   `yaml:"facing"`
	Toolbox  Toolbox  `yaml:"toolbox"`
	Tutorial string   `yaml:"tutorial"`
	Starter  string   `yaml:"starter"`
	MaxSteps int      `yaml:"max_steps"`
	// Viewport is nil when the level leaves it out, which shows the map.
	Viewport *bool    `yaml:"viewport"`

	maze *maze.Maze
}

// Parse decodes and validates a level document. Unknown keys are rejected.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&lvl); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidLevel)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	facing, err := maze.ParseHeading(l.Facing)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	m, err := maze.Parse(l.Map, facing)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	if len(l.Toolbox) == 0 {
		l.Toolbox = Toolbox{CmdMove, CmdTurnLeft, CmdTurnRight}
	}
	for i, cmd := range l.Toolbox {
		cmd = strings.TrimSpace(cmd)
		if !Toolbox(KnownCommands).Has(cmd) {
			return fmt.Errorf("%w: unknown toolbox command %q", ErrInvalidLevel, cmd)
		}
		l.Toolbox[i] = cmd
	}
	if l.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must not be negative", ErrInvalidLevel)
	}
	l.maze = m
	return nil
}

// Maze returns the parsed board.
func (l *Level) Maze() *maze.Maze {
	return l.maze
}

// UsesViewport reports whether the level shows the gameplay viewport.
func (l *Level) UsesViewport() bool {
	return l.Viewport == nil || *l.Viewport
}

// DisplayTitle falls back to the level name.
func (l *Level) DisplayTitle() string {
	if t := strings.TrimSpace(l.Title); t != "" {
		return t
	}
	return l.Name
}
