// lastvector is a top-down survival arena that runs in the terminal.
//
// Usage:
//
//	lastvector play          - Play an episode with the keyboard
//	lastvector run           - Run headless baseline episodes
//	lastvector agent         - Drive episodes with a remote policy
//	lastvector runs          - Browse recorded episode runs
//	lastvector serve         - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible episodes
//	--db <path>     - Runs database path (default: ~/.lastvector/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   uint64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lastvector",
	Short: "Last Vector - survive the horde in your terminal",
	Long: `Last Vector is a deterministic top-down survival arena. Fight off an
endless zombie horde, pick upgrade cards, and see how long you last.

The same seed always produces the same episode, so runs are comparable
across players and policies.

Available commands:
  play     - Play an episode with the keyboard
  run      - Run headless baseline episodes
  agent    - Drive episodes with a remote policy server
  runs     - Browse recorded episode runs
  serve    - Start SSH server for remote play

Examples:
  lastvector play
  lastvector play --seed 42 --difficulty hard
  lastvector run --episodes 20
  lastvector agent --addr 127.0.0.1:5555
  lastvector runs
  lastvector serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lastvector/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
