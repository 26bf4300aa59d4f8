package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Zordux/Last-Vector/internal/env"
	"github.com/Zordux/Last-Vector/internal/storage"
)

var flagEpisodes int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run headless baseline episodes",
	Long: `Run episodes without rendering, driven by an idle policy that never
moves or shoots. Useful as a floor for comparing trained policies and
for smoke-testing config changes.

Each episode gets seed, seed+1, seed+2, ... so a batch is reproducible
from a single --seed value.

Examples:
  lastvector run
  lastvector run --episodes 20 --seed 7
  lastvector run --difficulty hard --episodes 5`,
	Run: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagEpisodes, "episodes", 10, "Number of episodes to run")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	runCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runHeadless(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lastvector",
	})

	cfg, err := loadArenaConfig()
	if err != nil {
		logger.Fatal("could not load config", "error", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, results will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = uint64(time.Now().UnixNano())
	}

	e := env.New(cfg)
	idle := make([]float32, env.ActionDim())

	for ep := 0; ep < flagEpisodes; ep++ {
		seed := baseSeed + uint64(ep)
		run, err := playEpisode(e, seed, idle, "idle")
		if err != nil {
			logger.Fatal("episode failed", "seed", seed, "error", err)
		}

		logger.Info("episode finished",
			"seed", seed,
			"outcome", run.Outcome,
			"survived", fmt.Sprintf("%.1fs", run.Duration),
			"kills", run.Kills,
			"reward", fmt.Sprintf("%.2f", run.TotalReward),
		)

		if store != nil {
			if _, err := store.SaveRun(run); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}
}

// playEpisode steps the environment with a fixed action vector until the
// episode terminates or truncates.
func playEpisode(e *env.Env, seed uint64, action []float32, model string) (storage.EpisodeRun, error) {
	e.Reset(seed)

	var total float64
	for {
		res, err := e.Step(action)
		if err != nil {
			return storage.EpisodeRun{}, err
		}
		total += float64(res.Reward)

		if res.Terminated || res.Truncated {
			outcome := "timeout"
			if res.Terminated {
				outcome = "died"
			}
			info := res.Info
			return storage.EpisodeRun{
				Seed:        seed,
				Ticks:       e.Sim().State().Tick,
				Duration:    info.EpisodeTime,
				Kills:       info.Kills,
				DamageTaken: info.DamageTaken,
				DamageDealt: info.DamageDealt,
				ShotsFired:  info.ShotsFired,
				ShotsHit:    info.ShotsHit,
				TotalReward: total,
				Outcome:     outcome,
				Model:       model,
			}, nil
		}
	}
}
