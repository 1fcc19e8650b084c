package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/config"
	"github.com/san-kum/cullbench/internal/gui"
	"github.com/san-kum/cullbench/internal/sim"
	"github.com/san-kum/cullbench/internal/viz"
)

func openWorld(cfg config.Scenario) (bench.World, error) {
	return engines.Open(cfg.Engine)
}

func headlessDeps(h *viz.Headless) sim.Deps {
	return sim.Deps{
		OpenRenderer: func(config.Scenario) (sim.Renderer, error) { return h, nil },
		OpenWorld:    openWorld,
		Logger:       logger,
	}
}

func runWindow(ctx context.Context, cfg config.Scenario) error {
	l, err := sim.Setup(cfg, sim.Deps{
		OpenRenderer: func(cfg config.Scenario) (sim.Renderer, error) {
			w, err := gui.Open(cfg)
			if err != nil {
				return nil, err
			}
			return w, nil
		},
		OpenWorld: openWorld,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	runErr := l.Run(ctx)
	return errors.Join(runErr, l.Close())
}

func runHeadless(ctx context.Context, cfg config.Scenario) (viz.Result, error) {
	h := viz.NewHeadless(cfg)
	l, err := sim.Setup(cfg, headlessDeps(h))
	if err != nil {
		return viz.Result{}, err
	}

	rec := viz.NewRecorder(0)
	l.AddObserver(rec)
	runErr := l.Run(ctx)

	res := viz.Summarize(l, rec, h)
	res.Interrupted = ctx.Err() != nil
	return res, errors.Join(runErr, l.Close())
}

func compareEngines(ctx context.Context, w io.Writer, cfg config.Scenario) error {
	var results []viz.Result
	for _, name := range engines.List() {
		logger.Info("running", "engine", name, "bodies", cfg.Bodies, "frames", cfg.Frames)
		res, err := runHeadless(ctx, cfg.WithEngine(name))
		if err != nil {
			return err
		}
		results = append(results, res)
		if res.Interrupted {
			break
		}
	}
	return viz.Compare(w, results)
}

func runWatch(ctx context.Context, cfg config.Scenario) error {
	cfg.Frames = 0
	h := viz.NewHeadless(cfg)
	l, err := sim.Setup(cfg, headlessDeps(h))
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(l, h, viz.NewRecorder(240)), tea.WithAltScreen(), tea.WithContext(ctx))
	final, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) || errors.Is(runErr, tea.ErrInterrupted) {
		runErr = nil
	}
	if m, ok := final.(viz.Model); ok && runErr == nil {
		runErr = m.Err()
	}
	return errors.Join(runErr, l.Close())
}
