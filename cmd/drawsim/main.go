package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/aschwartz97/world-cup-2026-draw-simulation/pkg/drawsim"
)

// config holds the runtime configuration. Environment variables set the
// defaults, command-line flags override them.
type config struct {
	Simulations int    `env:"DRAWSIM_SIMULATIONS" envDefault:"100000"`
	TargetTeam  string `env:"DRAWSIM_TARGET_TEAM" envDefault:"Argentina"`
	Seed        int64  `env:"DRAWSIM_SEED" envDefault:"42"`
	Unseeded    bool   `env:"DRAWSIM_UNSEEDED" envDefault:"false"`
	UEFACap     int    `env:"DRAWSIM_UEFA_CAP" envDefault:"2"`
	OtherCap    int    `env:"DRAWSIM_OTHER_CAP" envDefault:"1"`
	Workers     int    `env:"DRAWSIM_WORKERS" envDefault:"1"`
	TopK        int    `env:"DRAWSIM_TOP_K" envDefault:"100"`
	PoolFile    string `env:"DRAWSIM_POOL_FILE"`
	OutputDir   string `env:"DRAWSIM_OUTPUT_DIR"`
	Verbose     bool   `env:"DRAWSIM_VERBOSE" envDefault:"false"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	flag.IntVar(&cfg.Simulations, "n", cfg.Simulations, "number of simulated draws")
	flag.StringVar(&cfg.TargetTeam, "target", cfg.TargetTeam, "team whose group composition to estimate")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducible runs")
	flag.BoolVar(&cfg.Unseeded, "unseeded", cfg.Unseeded, "ignore the seed and draw a fresh one per run")
	flag.IntVar(&cfg.UEFACap, "uefa-cap", cfg.UEFACap, "maximum UEFA teams per group")
	flag.IntVar(&cfg.OtherCap, "other-cap", cfg.OtherCap, "maximum teams per group for every other confederation")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel simulation workers (1 = fully sequential replay)")
	flag.IntVar(&cfg.TopK, "topk", cfg.TopK, "size of the top-combination table")
	flag.StringVar(&cfg.PoolFile, "pool", cfg.PoolFile, "YAML pool file (default: built-in 2026 pool)")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for CSV exports (empty = no export)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "verbose progress logging")
	flag.Parse()

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	teams, err := loadTeams(cfg.PoolFile)
	if err != nil {
		logger.Fatal("load pool", zap.Error(err))
	}

	request := drawsim.SimRequest{
		Teams:       teams,
		TargetTeam:  cfg.TargetTeam,
		Simulations: cfg.Simulations,
		Caps:        drawsim.Caps{UEFAMax: cfg.UEFACap, OtherMax: cfg.OtherCap},
		Options: drawsim.SimOptions{
			MaxAttempts: drawsim.DefaultSimOptions().MaxAttempts,
			Workers:     cfg.Workers,
			TopK:        cfg.TopK,
			LogEvery:    drawsim.DefaultSimOptions().LogEvery,
			Logger:      logger,
		},
	}
	if !cfg.Unseeded {
		request.Seed = &cfg.Seed
	}

	logger.Info("starting simulation",
		zap.String("target", cfg.TargetTeam),
		zap.Int("simulations", cfg.Simulations),
		zap.Bool("seeded", !cfg.Unseeded),
		zap.Int("workers", cfg.Workers))

	result, err := drawsim.RunSimulation(request)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	logger.Info("simulation finished",
		zap.Int64("seed", result.Seed),
		zap.Int("distinct_combos", result.Summary.DistinctCombos),
		zap.Duration("elapsed", result.ProcessingTime))

	printSummary(result)

	if cfg.OutputDir != "" {
		if err := drawsim.ExportResults(cfg.OutputDir, result); err != nil {
			logger.Fatal("export failed", zap.Error(err))
		}
		logger.Info("results exported", zap.String("dir", cfg.OutputDir))
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func loadTeams(poolFile string) ([]drawsim.Team, error) {
	if poolFile == "" {
		return drawsim.WorldCup2026Teams(), nil
	}
	pool, err := drawsim.LoadPoolYAML(poolFile)
	if err != nil {
		return nil, err
	}
	return pool.Teams(), nil
}

// printSummary renders the quick human-readable report: the most likely
// opponent per pot, the most likely complete group and the concentration
// statistics.
func printSummary(result *drawsim.SimResult) {
	fmt.Printf("\nMost likely opponents for %s:\n", result.TargetTeam)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Pot\tTeam\tProbability")
	for pot := drawsim.Pot(1); pot <= drawsim.NumPots; pot++ {
		table, ok := result.Marginals[pot]
		if !ok || len(table) == 0 {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f%%\n", int(pot), table[0].Team, table[0].Probability*100)
	}
	w.Flush()

	if len(result.Rankings) > 0 {
		top := result.Rankings[0]
		fmt.Printf("\nMost likely group (%.4f%%, %d of %d draws):\n",
			top.Probability*100, top.Frequency, result.Simulations)
		fmt.Printf("  %s (target)\n", result.TargetTeam)
		for _, name := range top.Combo {
			fmt.Printf("  %s\n", name)
		}
	}

	s := result.Summary
	fmt.Printf("\nOutcome space: %d distinct combinations over %d draws\n", s.DistinctCombos, s.Simulations)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Normalized entropy\t%.4f\n", s.NormalizedEntropy)
	fmt.Fprintf(w, "Gini index\t%.4f\n", s.GiniIndex)
	fmt.Fprintf(w, "Top %d probability mass\t%.2f%%\n", s.TopK, s.TopKMass*100)
	fmt.Fprintf(w, "Uniform baseline\t%.6f\n", s.UniformProbability)
	w.Flush()
}
