package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/config"
	"github.com/san-kum/cullbench/internal/engine"
	"github.com/san-kum/cullbench/internal/viz"
)

var (
	logger  = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "cullbench"})
	engines = engine.NewRegistry()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cullbench [count]",
		Short:         "viewport culling benchmark over a rigid-body physics world",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := scenario(config.DefaultScenario, args)
			if err != nil {
				return err
			}
			return runWindow(cmd.Context(), cfg)
		},
	}

	headlessCmd := &cobra.Command{
		Use:   "headless [count]",
		Short: "run a fixed number of frames without a window and report timings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := scenario("headless", args)
			if err != nil {
				return err
			}
			res, err := runHeadless(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return viz.Report(cmd.OutOrStdout(), res)
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [count]",
		Short: "run the headless benchmark once per physics engine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := scenario("headless", args)
			if err != nil {
				return err
			}
			return compareEngines(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [count]",
		Short: "run headless with live timings in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := scenario(config.DefaultScenario, args)
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), cfg)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenarios and physics engines",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "scenarios:")
			for _, name := range config.Presets() {
				s, _ := config.Preset(name)
				fmt.Fprintf(out, "  %-10s %6d bodies  %s\n", name, s.Bodies, s.Engine)
			}
			fmt.Fprintln(out, "engines:")
			for _, name := range engines.List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(headlessCmd, compareCmd, watchCmd, listCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
}

// scenario loads the named preset and applies the optional body count.
func scenario(name string, args []string) (config.Scenario, error) {
	cfg, err := config.Preset(name)
	if err != nil {
		return config.Scenario{}, err
	}
	if !slices.Contains(engines.List(), cfg.Engine) {
		return config.Scenario{}, fmt.Errorf("%w: unknown engine %q", bench.ErrConfiguration, cfg.Engine)
	}
	if len(args) == 0 {
		return cfg, nil
	}
	n, err := parseCount(args[0])
	if err != nil {
		return config.Scenario{}, err
	}
	return cfg.WithBodies(n), nil
}

func parseCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: body count %q is not an integer", bench.ErrConfiguration, arg)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: body count must be positive, got %d", bench.ErrConfiguration, n)
	}
	return n, nil
}
