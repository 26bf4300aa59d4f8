package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Zordux/Last-Vector/internal/agent"
	"github.com/Zordux/Last-Vector/internal/env"
	"github.com/Zordux/Last-Vector/internal/storage"
)

var (
	flagAgentAddr    string
	flagAgentTimeout int
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Drive episodes with a remote policy server",
	Long: `Connect to a policy server over TCP and let it play headless
episodes. The server speaks newline-delimited JSON: one observation in,
one action vector out, every tick.

Results are saved under the model name the server reports in its
handshake, so different checkpoints can be compared in 'lastvector runs'.

Examples:
  lastvector agent --addr 127.0.0.1:5555
  lastvector agent --addr 127.0.0.1:5555 --episodes 100 --seed 1`,
	Run: runAgent,
}

func init() {
	agentCmd.Flags().StringVar(&flagAgentAddr, "addr", "127.0.0.1:5555", "Policy server address (host:port)")
	agentCmd.Flags().IntVar(&flagAgentTimeout, "timeout", 10, "Per-request timeout in seconds")
	agentCmd.Flags().IntVar(&flagEpisodes, "episodes", 10, "Number of episodes to run")
	agentCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	agentCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runAgent(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lastvector",
	})

	cfg, err := loadArenaConfig()
	if err != nil {
		logger.Fatal("could not load config", "error", err)
	}

	timeout := time.Duration(flagAgentTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	client, err := agent.Dial(ctx, flagAgentAddr, timeout)
	cancel()
	if err != nil {
		logger.Fatal("could not connect to policy server", "addr", flagAgentAddr, "error", err)
	}
	defer client.Close()

	logger.Info("connected", "addr", flagAgentAddr, "model", client.Model())

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

	for ep := 0; ep < flagEpisodes; ep++ {
		seed := baseSeed + uint64(ep)
		run, err := playAgentEpisode(e, client, seed)
		if err != nil {
			logger.Fatal("episode failed", "seed", seed, "error", err)
		}

		logger.Info("episode finished",
			"seed", seed,
			"outcome", run.Outcome,
			"survived", fmt.Sprintf("%.1fs", run.Duration),
			"kills", run.Kills,
			"accuracy", fmt.Sprintf("%.0f%%", run.Accuracy()*100),
			"reward", fmt.Sprintf("%.2f", run.TotalReward),
		)

		if store != nil {
			if _, err := store.SaveRun(run); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}
}

// playAgentEpisode runs one episode, asking the policy server for an action
// every tick.
func playAgentEpisode(e *env.Env, client *agent.Client, seed uint64) (storage.EpisodeRun, error) {
	obs := e.Reset(seed)

	var total float64
	for {
		action, err := client.Infer(obs, env.ActionDim())
		if err != nil {
			return storage.EpisodeRun{}, err
		}

		res, err := e.Step(action)
		if err != nil {
			return storage.EpisodeRun{}, err
		}
		obs = res.Observation
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
				Model:       client.Model(),
			}, nil
		}
	}
}
