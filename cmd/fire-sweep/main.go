package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"firegrid/internal/config"
	"firegrid/internal/hotspot"
	"firegrid/internal/logging"
	"firegrid/internal/sims/wildfire"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	configPath := flag.String("config", "", "YAML config file for the base simulation")
	pWinds := flag.String("p-wind", "0.6,0.75,0.9", "comma-separated downwind ignition probabilities")
	pOthers := flag.String("p-other", "0.1,0.2,0.3", "comma-separated ignition probabilities in other directions")
	seeds := flag.Int("seeds", 4, "seeds per probability pair, starting at the configured seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	top := flag.Int("top", 5, "results to print")
	var overrides kvList
	flag.Var(&overrides, "set", "config override in key=value form, e.g. sim.rows=80 (repeatable)")
	flag.Parse()

	set := make(map[string]any, len(overrides))
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "ignoring malformed override %q\n", kv)
			continue
		}
		set[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	cfg, err := config.Load(*configPath, set)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	pw, err := parseFloats(*pWinds)
	if err != nil {
		log.Error("invalid -p-wind", "err", err)
		os.Exit(2)
	}
	po, err := parseFloats(*pOthers)
	if err != nil {
		log.Error("invalid -p-other", "err", err)
		os.Exit(2)
	}
	base := cfg.Sim.Wildfire()
	seedList := make([]int64, 0, *seeds)
	for i := 0; i < *seeds; i++ {
		seedList = append(seedList, base.Seed+int64(i))
	}

	var spots []hotspot.Hotspot
	if path := cfg.Input.Hotspots; path != "" {
		var skipped int
		spots, skipped, err = hotspot.ReadFile(path)
		if err != nil {
			log.Error("read hotspots", "err", err)
			os.Exit(1)
		}
		log.Info("loaded hotspots", "file", path, "hotspots", len(spots), "skipped", skipped)
	}

	candidates := wildfire.Candidates(pw, po, seedList)
	fmt.Printf("Sweeping %d candidates (%d workers, %dx%d grid, wind %s)\n",
		len(candidates), *workers, base.Rows, base.Cols, base.Wind)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := wildfire.Sweep(ctx, base, candidates, spots, *workers)
	if err != nil {
		log.Error("sweep failed", "err", err)
		os.Exit(1)
	}
	ranked := wildfire.RankByBurned(results)
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(ranked)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(ranked) && i < *top; i++ {
		res := ranked[i]
		fmt.Printf("%2d) burned=%d steps=%d peak=%d@%d reason=%s %s\n",
			i+1, res.Burned, res.Steps, res.Peak, res.PeakStep, res.Reason, res.Candidate)
	}
}
