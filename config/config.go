// Package config provides YAML-based game configuration loading.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/hexpath/layout"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the whole game configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Layout  LayoutConfig  `yaml:"layout"`
	Program ProgramConfig `yaml:"program"`
	Levels  LevelsConfig  `yaml:"levels"`
}

// WindowConfig is the initial OS window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LayoutConfig feeds the viewport layout engine.
type LayoutConfig struct {
	TileSize           float64 `yaml:"tile_size"`
	TileMarginFraction float64 `yaml:"tile_margin_fraction"`
	SidePanelMinWidth  float64 `yaml:"side_panel_min_width"`
	SidePanelWidth     float64 `yaml:"side_panel_width"` // toolbox demand
	EdgeMinWidth       float64 `yaml:"edge_min_width"`
}

// ProgramConfig bounds player programs.
type ProgramConfig struct {
	MaxSteps int           `yaml:"max_steps"`
	Timeout  time.Duration `yaml:"timeout"`
}

// LevelsConfig locates levels on disk.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
	Start string `yaml:"start"`
}

// Geometry converts the layout section for the engine.
func (c LayoutConfig) Geometry() layout.Geometry {
	return layout.Geometry{
		TileSize:           c.TileSize,
		TileMarginFraction: c.TileMarginFraction,
		SidePanelMinWidth:  c.SidePanelMinWidth,
		EdgeMinWidth:       c.EdgeMinWidth,
	}
}

// Validate checks values the game cannot start with. Layout constraints get a
// full check once a level's grid size is known.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Layout.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive", ErrInvalid)
	case c.Layout.TileMarginFraction < 0:
		return fmt.Errorf("%w: tile_margin_fraction must not be negative", ErrInvalid)
	case c.Layout.SidePanelWidth < 0:
		return fmt.Errorf("%w: side_panel_width must not be negative", ErrInvalid)
	case c.Program.MaxSteps < 0:
		return fmt.Errorf("%w: max_steps must not be negative", ErrInvalid)
	case c.Program.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	}
	// A 1x1 grid is the smallest board; if that fails, every board does.
	if err := layout.NewConstraints(c.Layout.Geometry(), 1, 1).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
