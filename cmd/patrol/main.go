package main

import (
	"fmt"
	"os"
	"time"

	dotenv "github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stratahsm/strata"
)

type options struct {
	configPath string
	debug      bool
	tick       time.Duration
	ticks      int
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:           "patrol",
		Short:         "Guard patrol simulation driven by a hierarchical state machine",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	root.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML machine config")
	root.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.Flags().DurationVar(&opts.tick, "tick", 150*time.Millisecond, "Delay between machine ticks")
	root.Flags().IntVar(&opts.ticks, "ticks", 30, "Shift length in ticks")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options) error {
	if err := dotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using process environment")
	}

	cfg := strata.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := strata.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv(cmd.Context()); err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = opts.debug
	}

	chart, err := buildChart(opts.tick)
	if err != nil {
		return err
	}

	m := strata.NewMachine(
		strata.WithLogger(strata.NewLogger(os.Stderr, cfg.Debug)),
		strata.WithConfig(cfg),
	)
	for _, s := range chart.states() {
		if err := m.Register(s); err != nil {
			return err
		}
	}
	if err := m.SetInitial(chart.walking); err != nil {
		return err
	}

	title("guard shift starting")
	noiseAt := opts.ticks / 3
	reliefAt := opts.ticks
	for i := 0; !chart.off.done && i <= reliefAt+5; i++ {
		switch i {
		case noiseAt:
			m.Push(noiseHeard{where: "the east wing"})
		case reliefAt:
			event("the relief guard arrives")
			m.Push(reliefArrived{})
		}
		if err := m.Tick(); err != nil {
			return err
		}
		time.Sleep(opts.tick)
	}
	m.Shutdown()
	title("guard shift complete")
	return nil
}
