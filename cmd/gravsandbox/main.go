package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/config"
	"github.com/san-kum/gravsandbox/internal/export"
	"github.com/san-kum/gravsandbox/internal/logging"
	"github.com/san-kum/gravsandbox/internal/persist"
	"github.com/san-kum/gravsandbox/internal/physics"
	"github.com/san-kum/gravsandbox/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logFile    string
	logLevel   string
	openFile   string
	dt         float64
	steps      int
	outFile    string
	plotHeight int
	svgFile    string
)

// main is the entry point for the gravsandbox CLI. Without a subcommand it
// starts the interactive sandbox.
func main() {
	rootCmd := &cobra.Command{
		Use:          "gravsandbox",
		Short:        "interactive gravity simulation sandbox",
		SilenceUsage: true,
		RunE:         runSandbox,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (interactive mode)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level")
	rootCmd.Flags().StringVar(&openFile, "open", "", "system file to open at start-up")

	runCmd := &cobra.Command{
		Use:   "run [file.xml]",
		Short: "integrate a system headlessly and save the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (default from config)")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")
	runCmd.Flags().StringVar(&outFile, "out", "", "output file (default: overwrite input)")
	runCmd.Flags().IntVar(&plotHeight, "plot-height", 10, "energy plot height, 0 disables")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "also write an SVG image with the trajectories")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file.xml]",
		Short: "list the bodies of a system file",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectSystem,
	}

	newCmd := &cobra.Command{
		Use:   "new [preset] [file.xml]",
		Short: "write a preset system to a file",
		Args:  cobra.ExactArgs(2),
		RunE:  newSystem,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	commandsCmd := &cobra.Command{
		Use:   "commands",
		Short: "list the sandbox menu commands",
		RunE:  listCommands,
	}

	rootCmd.AddCommand(runCmd, inspectCmd, newCmd, presetsCmd, commandsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func runSandbox(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := zerolog.Nop()
	if cfg.LogFile != "" {
		l, f, err := logging.NewFile(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
		if err != nil {
			return err
		}
		defer f.Close()
		log = l
	}

	return tui.Run(cmd.Context(), tui.Options{
		Config:     cfg,
		ConfigPath: configPath(),
		Logger:     log,
		OpenPath:   openFile,
	})
}

// configPath is where the sandbox remembers its last directory: the --config
// file, or config.yaml in the default directory.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	return filepath.Join(config.DefaultDir(), "config.yaml")
}

func consoleLogger(cfg *config.Config) zerolog.Logger {
	return logging.Component(logging.NewConsole(logging.ParseLevel(cfg.LogLevel)), "cli")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := consoleLogger(cfg)

	if !cmd.Flags().Changed("dt") {
		dt = cfg.Physics.Dt
	}
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", dt)
	}
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", steps)
	}

	doc := body.NewDocument()
	store := persist.NewEngine(doc)
	if err := store.Load(args[0]); err != nil {
		return err
	}

	grav := physics.NewGravity(cfg.Physics.G, cfg.Physics.Softening)
	perTick := max(steps/physics.DefaultHistory, 1)
	eng := physics.NewEngine(grav, dt, perTick)

	tracks := export.Tracks{}
	tracks.Record(doc.Bodies())

	log.Info().Str("file", args[0]).Int("bodies", doc.Len()).Int("steps", steps).Float64("dt", dt).Msg("integrating")
	for done := 0; done < steps; done += perTick {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		default:
		}
		if remaining := steps - done; remaining < perTick {
			eng.StepsPerTick = remaining
		}
		eng.Tick(doc)
		tracks.Record(doc.Bodies())
	}

	out := outFile
	if out == "" {
		out = args[0]
	}
	if err := store.Save(out); err != nil {
		return err
	}
	log.Info().Str("file", out).Float64("t", eng.Time()).Float64("drift", eng.Drift()).Msg("saved")

	if svgFile != "" {
		if err := writeSVG(svgFile, doc.Bodies(), tracks); err != nil {
			return err
		}
		log.Info().Str("file", svgFile).Msg("svg written")
	}

	if plotHeight > 0 {
		if hist := eng.History(); len(hist) > 1 {
			fmt.Println(asciigraph.Plot(hist,
				asciigraph.Height(plotHeight),
				asciigraph.Width(60),
				asciigraph.Caption("total energy")))
		}
	}
	return nil
}

func writeSVG(path string, bodies []body.Body, tracks export.Tracks) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	if err := export.SystemToSVG(f, bodies, tracks, 800, 800); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func inspectSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bodies, err := persist.LoadFile(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASS\tX\tY\tVX\tVY\tRADIUS")
	for _, b := range bodies {
		fmt.Fprintf(w, "%s\t%.4g\t%.3f\t%.3f\t%.3f\t%.3f\t%.3g\n", b.Name, b.Mass, b.X, b.Y, b.VX, b.VY, b.Radius)
	}
	w.Flush()

	grav := physics.NewGravity(cfg.Physics.G, cfg.Physics.Softening)
	px, py := physics.Momentum(bodies)
	fmt.Printf("\nbodies: %d  energy: %.6g  momentum: (%.4g, %.4g)  L: %.4g\n",
		len(bodies), grav.Energy(bodies), px, py, physics.AngularMomentum(bodies))
	return nil
}

func newSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bodies, err := config.GetPreset(args[0], cfg.Physics.G)
	if err != nil {
		return err
	}
	if err := persist.SaveFile(args[1], bodies); err != nil {
		return err
	}
	logger := consoleLogger(cfg)
	logger.Info().Str("preset", args[0]).Str("file", args[1]).Int("bodies", len(bodies)).Msg("system written")
	return nil
}

func listCommands(cmd *cobra.Command, args []string) error {
	s := tui.NewSession(config.DefaultConfig(), zerolog.Nop())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MENU\tLABEL\tID\tKEY")
	for _, mn := range s.Ctrl.Menus() {
		for _, it := range mn.Items {
			if it.Separator {
				continue
			}
			c, _ := s.Ctrl.Command(it.Command)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mn.Title, s.Ctrl.Label(it.Command), it.Command, c.Key)
		}
	}
	return w.Flush()
}
