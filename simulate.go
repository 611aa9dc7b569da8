package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/confetti-burst/internal/confetti"
	"github.com/iburimskiy/confetti-burst/internal/frame"
)

const simFrameInterval = time.Second / 60

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one burst headless and print the live flake count",
	Long: `Runs a single launch against an offscreen recorder with a synthetic
60 Hz clock, printing the live flake count every --every frames until the
burst is over.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		every, _ := flags.GetInt("every")
		maxFrames, _ := flags.GetInt("frames")
		seed, _ := flags.GetUint64("seed")

		res, err := simulate(cmd.OutOrStdout(), simOptions{
			Width:     cfg.Width,
			Height:    cfg.Height,
			Duration:  cfg.Duration,
			Every:     every,
			MaxFrames: maxFrames,
			Seed:      seed,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		logger.Info("simulation finished",
			zap.Int("frames", res.Frames),
			zap.Int("strokes", res.Strokes),
			zap.Bool("timed_out", res.TimedOut))
		return nil
	},
}

func init() {
	simulateCmd.Flags().Int("every", 30, "print every N frames")
	simulateCmd.Flags().Int("frames", 100000, "give up after this many frames")
	simulateCmd.Flags().Uint64("seed", 0, "random seed, 0 picks one")
}

type simOptions struct {
	Width, Height int
	Duration      time.Duration
	Every         int
	MaxFrames     int
	Seed          uint64
	Logger        *zap.Logger
}

type simResult struct {
	Frames  int
	Strokes int
	// TimedOut is true when the stop timer, not the bottom edge, ended the burst.
	TimedOut bool
}

func simulate(out io.Writer, opts simOptions) (simResult, error) {
	if opts.Every <= 0 {
		return simResult{}, errors.New("--every must be positive")
	}
	if opts.MaxFrames <= 0 {
		return simResult{}, errors.New("--frames must be positive")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	now := time.Unix(0, 0)
	loop := frame.NewLoop(func() time.Time { return now })
	rec := confetti.NewRecorder(opts.Width, opts.Height)
	engine, err := confetti.New(rec, loop, opts.Width, opts.Height,
		confetti.WithRand(rand.New(rand.NewPCG(opts.Seed, opts.Seed))),
		confetti.WithLogger(opts.Logger))
	if err != nil {
		return simResult{}, err
	}

	engine.Launch(opts.Duration)
	fmt.Fprintf(out, "seed %d, %dx%d, %d flakes\n", opts.Seed, opts.Width, opts.Height, engine.Len())

	var res simResult
	for engine.Running() && res.Frames < opts.MaxFrames {
		now = now.Add(simFrameInterval)
		loop.Tick(now)
		res.Frames++
		if res.Frames%opts.Every == 0 || !engine.Running() {
			fmt.Fprintf(out, "frame %5d  t=%-8s live=%d\n", res.Frames, now.Sub(time.Unix(0, 0)).Round(time.Millisecond), engine.Len())
		}
	}
	// A burst that settles on its own leaves its stop timer queued.
	_, timers := loop.Pending()
	res.TimedOut = timers == 0
	res.Strokes = rec.Strokes
	return res, nil
}
