package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "hexpath", Width: 1600, Height: 900},
		Layout: LayoutConfig{
			TileSize:           10,
			TileMarginFraction: 0.3,
			SidePanelMinWidth:  400,
			SidePanelWidth:     250,
			EdgeMinWidth:       40,
		},
		Program: ProgramConfig{MaxSteps: 200, Timeout: 2 * time.Second},
		Levels:  LevelsConfig{Dir: "levels", Start: "01_first_steps"},
	}
}

// Load reads the configuration.
// Search order: customPath -> ~/.hexpath/config.yaml -> ./configs/config.yaml -> embedded default.
// Files only need the keys they change; the rest keep their defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		cfg = Default()
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		return decode(cfg, data, customPath)
	}

	for _, p := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "config.yaml")} {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			return decode(cfg, data, p)
		}
	}
	return cfg, cfg.Validate()
}

func decode(base Config, data []byte, path string) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexpath", filename)
}
