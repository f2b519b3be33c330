package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/hexpath/config"
	"github.com/milk9111/hexpath/layout"
	"github.com/milk9111/hexpath/levels"
	"github.com/milk9111/hexpath/program"
)

var (
	flagLevel       string
	flagDebug       bool
	flagBaseMonitor bool
	flagWatch       bool
	flagPanelWidth  float64
	flagMaxSteps    int
)

var errRunFailed = errors.New("program did not reach the goal")

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevel, "level", "", "Level name in levels/ (basename, .yaml optional)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Show layout debug overlay")
	cmd.Flags().BoolVarP(&flagBaseMonitor, "monitor", "m", false, "Use base monitor instead of primary (for multi-monitor setups)")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload levels and programs from disk when they change")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)

	layoutCmd.Flags().StringVar(&flagLevel, "level", "", "Level whose grid sizes the layout")
	layoutCmd.Flags().Float64Var(&flagPanelWidth, "panel", -1, "Side panel width demand (default from config)")

	runCmd.Flags().StringVar(&flagLevel, "level", "", "Level to run against")
	runCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step limit (default from level or config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagBaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg, flagLevel, flagWatch || cfg.Levels.Watch, flagDebug, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listLevels(cmd.OutOrStdout(), &levels.Store{Dir: cfg.Levels.Dir})
	},
}

func listLevels(w io.Writer, store *levels.Store) error {
	names, err := store.List()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tGRID\tVIEWPORT\tSOURCE")
	for _, name := range names {
		source := "embedded"
		if mod, ok := store.ModTime(name); ok {
			source = "disk " + mod.Format("2006-01-02 15:04")
		}
		lvl, err := store.Load(name)
		if err != nil {
			fmt.Fprintf(tw, "%s\t(invalid: %v)\t\t\t%s\n", name, err, source)
			continue
		}
		m := lvl.Maze()
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%v\t%s\n", name, lvl.DisplayTitle(), m.Cols(), m.Rows(), lvl.UsesViewport(), source)
	}
	return tw.Flush()
}

var layoutCmd = &cobra.Command{
	Use:   "layout <WxH>...",
	Short: "Print the viewport layout for window sizes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sizes := make([][2]float64, 0, len(args))
		for _, a := range args {
			w, h, err := parseSize(a)
			if err != nil {
				return err
			}
			sizes = append(sizes, [2]float64{w, h})
		}
		store := &levels.Store{Dir: cfg.Levels.Dir}
		name := flagLevel
		if name == "" {
			name = cfg.Levels.Start
		}
		lvl, err := store.Load(name)
		if err != nil {
			return err
		}
		panel := flagPanelWidth
		if panel < 0 {
			panel = cfg.Layout.SidePanelWidth
		}
		return layoutReport(cmd.OutOrStdout(), cfg, lvl, panel, sizes)
	},
}

// parseSize reads "1600x900".
func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	return w, h, nil
}

func layoutReport(w io.Writer, cfg config.Config, lvl *levels.Level, panel float64, sizes [][2]float64) error {
	m := lvl.Maze()
	c := layout.NewConstraints(cfg.Layout.Geometry(), m.Cols(), m.Rows())
	e, err := layout.New(c)
	if err != nil {
		return err
	}
	e.SetVisible(lvl.UsesViewport())

	fmt.Fprintf(w, "level %s (%dx%d) tiles x %.2f..%.2f y %.2f..%.2f aspect %.3f..%.3f\n",
		lvl.Name, m.Cols(), m.Rows(), c.MinTilesX, c.MaxTilesX, c.MinTilesY, c.MaxTilesY, c.MinAspect(), c.MaxAspect())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDOW\tSTATE\tWIDTH\tSCALE\tVIEWPORT")
	for _, s := range sizes {
		e.Recompute(s[0], s[1], panel, true)
		f := e.Frame()
		fmt.Fprintf(tw, "%.0fx%.0f\t%s\t%.1f\t%.4f\t%.1f\n", s[0], s[1], f.State, f.Width, f.ScaleRatio, f.Reserved)
	}
	return tw.Flush()
}

var runCmd = &cobra.Command{
	Use:   "run [program.tengo]",
	Short: "Run a program against a level without a window",
	Long: `Run executes a tengo program against a level and prints the outcome.
Without a program file it runs the level's starter program; "-" reads stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := &levels.Store{Dir: cfg.Levels.Dir}
		name := flagLevel
		if name == "" {
			name = cfg.Levels.Start
		}
		lvl, err := store.Load(name)
		if err != nil {
			return err
		}
		src, err := readProgram(store, lvl, args)
		if err != nil {
			return err
		}

		runner := program.NewRunner(lvl, cfg.Program.MaxSteps, cfg.Program.Timeout)
		if flagMaxSteps > 0 {
			runner.MaxSteps = flagMaxSteps
		}
		res := runner.Run(cmd.Context(), string(src))
		logger.Debug("run finished", "level", lvl.Name, "outcome", res.Outcome, "took", res.Duration)
		return printRun(cmd.OutOrStdout(), lvl, res)
	},
}

func readProgram(store *levels.Store, lvl *levels.Level, args []string) ([]byte, error) {
	switch {
	case len(args) == 1 && args[0] == "-":
		return io.ReadAll(os.Stdin)
	case len(args) == 1:
		return os.ReadFile(args[0])
	case lvl.Starter != "":
		return store.LoadScript(lvl.Starter)
	default:
		return nil, fmt.Errorf("level %s has no starter program; pass a file", lvl.Name)
	}
}

func printRun(w io.Writer, lvl *levels.Level, res program.Result) error {
	fmt.Fprintf(w, "%s: %s after %d steps\n", lvl.Name, res.Outcome, len(res.Steps))
	for i, s := range res.Steps {
		mark := ""
		if s.Crashed {
			mark = " (crashed)"
		}
		fmt.Fprintf(w, "%4d  %-10s %s %s%s\n", i+1, s.Action, s.Pos, s.Heading, mark)
	}
	if res.Err != nil && res.Outcome == program.Failed {
		fmt.Fprintln(w, res.Err)
	}
	if res.Outcome != program.Success {
		return errRunFailed
	}
	return nil
}
