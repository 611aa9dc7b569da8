package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/confetti-burst/internal/config"
	"github.com/iburimskiy/confetti-burst/internal/game"
)

var (
	verbose bool
	cfg     config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "confetti",
	Short: "Confetti burst from the scholarship landing page",
	Long: `Opens a window with the landing page backdrop and fires the confetti
burst on demand. Settings come from CONFETTI_* environment variables and
can be overridden with flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = applyFlags(cmd, loaded)
		if err := cfg.Validate(); err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if verbose || cfg.Verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the confetti window (default)",
	RunE:  runWindow,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().Int("width", config.WindowWidth, "surface width in pixels")
	rootCmd.PersistentFlags().Int("height", config.WindowHeight, "surface height in pixels")
	rootCmd.PersistentFlags().Duration("duration", config.ConfettiDuration, "how long a burst lasts before it is stopped")
	runCmd.Flags().String("sound", "", "celebration sound played on launch (wav, mp3 or flac)")
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	rootCmd.AddCommand(runCmd, simulateCmd)
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, c config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("width") {
		c.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		c.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("duration") {
		c.Duration, _ = flags.GetDuration("duration")
	}
	if flags.Lookup("sound") != nil && flags.Changed("sound") {
		c.SoundPath, _ = flags.GetString("sound")
	}
	if verbose {
		c.Verbose = true
	}
	return c
}

func runWindow(cmd *cobra.Command, args []string) error {
	g, err := game.New(cfg, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Confetti - Click Launch or press Space, S: sound, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("window starting", zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
