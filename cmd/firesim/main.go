package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"firegrid/internal/app"
	"firegrid/internal/config"
	"firegrid/internal/export"
	"firegrid/internal/logging"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags.ConfigPath, flags.Overrides(flag.CommandLine))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if flags.DumpParams {
		if err := export.Write(os.Stdout, cfg.Sim.Wildfire().Snapshot(), export.FormatYAML); err != nil {
			log.Error("dump parameters", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := app.New(cfg, log)
	if flags.Watch {
		run.WithWatch(flags.TPS)
	}
	report, err := run.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("run failed", "run", run.RunID(), "err", err)
		os.Exit(1)
	}

	res := report.Result
	log.Info("run complete",
		slog.String("run", report.RunID),
		slog.Int("steps", len(res.Points)),
		slog.Int("peak", res.Peak),
		slog.Int("peak_step", res.PeakStep),
		slog.String("reason", string(res.Reason)),
		slog.Int("predicted", len(report.Frontier)),
		slog.Int("events", report.Events))
	if err != nil {
		os.Exit(130)
	}
}
