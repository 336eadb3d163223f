package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"ayto/agent"
	"ayto/communication/client"
	"ayto/communication/server"
	"ayto/config"
	"ayto/engine"
	"ayto/experiments"
	"ayto/experiments/metrics"
	"ayto/gamemaster"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: ayto <play|experiment|serve> [flags]

  play        play one game, locally or against -server
  experiment  run an experiment plan and write CSV records
  serve       host games over HTTP
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	mode := os.Args[1]
	flags := flag.NewFlagSet(mode, flag.ExitOnError)
	level := flags.String("log", cfg.LogLevel.String(), "Log level")
	flags.IntVar(&cfg.Pairs, "pairs", cfg.Pairs, "Number of pairs")
	flags.IntVar(&cfg.Guesses, "guesses", cfg.Guesses, "Number of rounds, one per pair when 0")
	flags.Float64Var(&cfg.Prize, "prize", cfg.Prize, "Total prize")
	flags.BoolVar(&cfg.Fluid, "fluid", cfg.Fluid, "Allow pairs within a group")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of the hidden matching and the agent")
	flags.Float64Var(&cfg.Exploration, "exploration", cfg.Exploration, "Exploration constant c^2")
	flags.IntVar(&cfg.Budget, "budget", cfg.Budget, "Permutations searched for a consistent match-up")
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address of the game service")
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Game service to play against")
	flags.StringVar(&cfg.Plan, "plan", cfg.Plan, "Experiment plan file")
	flags.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Experiment output directory")
	flags.Parse(os.Args[2:])

	if cfg.LogLevel, err = zerolog.ParseLevel(*level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch mode {
	case "play":
		err = play(ctx, cfg)
	case "experiment":
		err = experiment(ctx, cfg)
	case "serve":
		err = server.NewServer(gamemaster.NewRegistry()).Start(cfg.Addr)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", mode)
	}
}

func play(ctx context.Context, cfg config.Config) error {
	setup := gamemaster.Setup{
		Pairs:   cfg.Pairs,
		Guesses: cfg.Guesses,
		Prize:   cfg.Prize,
		Fluid:   cfg.Fluid,
		Seed:    cfg.Seed,
	}

	var env engine.Environment
	if cfg.ServerURL != "" {
		c, err := client.Create(ctx, cfg.ServerURL, setup)
		if err != nil {
			return err
		}
		log.Info().Msgf("playing game %s on %s", c.ID(), cfg.ServerURL)
		env = c
	} else {
		g, err := gamemaster.NewGame(setup)
		if err != nil {
			return err
		}
		env = engine.Local{AreYouTheOne: g}
	}

	a := agent.NewAgent(env,
		agent.WithSeed(cfg.Seed),
		agent.WithExploration(cfg.Exploration),
		agent.WithConsistencyBudget(cfg.Budget),
	)
	result, err := engine.NewEngine(env, a, metrics.NewCollector(uuid.New())).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("success=%t rounds=%d reward=%.0f remaining_prize=%.0f\n",
		result.Success, result.Rounds, result.Reward, result.RemainingPrize)
	return nil
}

func experiment(ctx context.Context, cfg config.Config) error {
	plan := experiments.DefaultPlan()
	if cfg.Plan != "" {
		var err error
		if plan, err = experiments.LoadPlan(cfg.Plan); err != nil {
			return err
		}
	}
	_, err := experiments.Run(ctx, plan, cfg.OutputDir)
	return err
}
