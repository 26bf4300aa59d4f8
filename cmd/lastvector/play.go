package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zordux/Last-Vector/internal/config"
	"github.com/Zordux/Last-Vector/internal/platform/tui"
	"github.com/Zordux/Last-Vector/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an episode with the keyboard",
	Long: `Start an interactive episode in the terminal.

Controls:
  W/A/S/D    - Move
  Arrows     - Aim
  Space      - Shoot
  E          - Sprint
  R          - Reload
  1/2/3      - Pick an upgrade card
  P          - Pause
  N          - New run (after death)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower spawn ramp, smaller horde cap
  normal - Default tuning
  hard   - Faster ramp, bigger horde
  fixed  - No ramp, difficulty stays at zero

Examples:
  lastvector play
  lastvector play --seed 42
  lastvector play --difficulty hard
  lastvector play --config ./my-arena.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadArenaConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Terminal size, with sane fallbacks for non-tty stdout
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the episode still works
		store = nil
	}

	runErr := tui.Run(cfg, store, tui.Options{
		Seed:    flagSeed,
		ScreenW: width,
		ScreenH: height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running episode: %v\n", runErr)
		os.Exit(1)
	}
}

// loadArenaConfig resolves the arena tuning from the global flags.
func loadArenaConfig() (config.ArenaConfig, error) {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		config.ApplyArenaPreset(&cfg, config.ParsePreset(flagDifficulty))
	}
	return cfg, nil
}
