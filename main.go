// hexpath is a hex-maze programming puzzle: write a small program that walks
// the robot from the start tile to the flag.
//
// Usage:
//
//	hexpath [play]              - Open the game window
//	hexpath levels              - List available levels
//	hexpath layout <WxH>...     - Print the viewport layout for window sizes
//	hexpath run [program]       - Run a program against a level without a window
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.hexpath/config.yaml, ./configs/config.yaml)
//	--verbose, -v    - Debug logging
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/hexpath/config"
)

var (
	flagConfig  string
	flagVerbose bool

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "hexpath",
	Short:        "Program a robot through hex mazes",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if flagVerbose {
			level = log.DebugLevel
		}
		logger = newLogger(os.Stderr, level)

		c, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = c
		logger.Debug("config loaded", "window", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height), "levels", cfg.Levels.Dir)
		return nil
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(runCmd)
}
