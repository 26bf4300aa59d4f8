package sim

import (
	"github.com/Zordux/Last-Vector/internal/core"
)

// FixedDt is the duration of one logical tick in seconds. The engine
// guarantees logical-tick timing only, never wall-clock timing.
const FixedDt = 1.0 / 60.0

// PlayState is the episode state machine. Dead is terminal.
type PlayState uint8

const (
	StatePlaying PlayState = iota
	StateChoosingUpgrade
	StateDead
)

// String returns a human-readable name for the play state.
func (p PlayState) String() string {
	switch p {
	case StatePlaying:
		return "playing"
	case StateChoosingUpgrade:
		return "choosing_upgrade"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Action is the per-tick input contract. Continuous channels are expected in
// [-1, 1]; the boundary adapter clamps raw values before they reach the
// simulator. UpgradeChoice is -1 for no choice or a card index in {0, 1, 2}.
type Action struct {
	MoveX, MoveY  float64
	AimX, AimY    float64
	Shoot         bool
	Sprint        bool
	Reload        bool
	UpgradeChoice int
}

// Player is the controllable agent. Owned exclusively by GameState and
// mutated only by the simulator during a tick.
type Player struct {
	Pos         core.Vec2
	Vel         core.Vec2
	Health      float64
	MaxHealth   float64
	Stamina     float64
	MaxStamina  float64
	Mag         int
	MagCapacity int
	Reserve     int
	ShootCD     float64
	ReloadTimer float64
	InvulnTimer float64
}

// Zombie is one horde member. Index within the owning slice carries no
// identity across ticks: dead entries are removed in place.
type Zombie struct {
	Pos       core.Vec2
	Vel       core.Vec2
	HP        float64
	SlowTimer float64
	TouchCD   float64
}

// Bullet is a live projectile. Pierce is the number of additional zombies it
// may damage after its first hit.
type Bullet struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Damage float64
	Pierce int
}

// RuntimeStats are cumulative episode counters, monotonically non-decreasing
// within an episode. The simulator snapshots them at the start of every tick
// so the reward reflects only this tick's events.
type RuntimeStats struct {
	Kills       int
	DamageTaken float64
	ShotsFired  int
	ShotsHit    int
	DamageDealt float64
}

// GameState is the authoritative world snapshot, created fresh on Reset and
// mutated in place once per tick. External callers must treat it as
// read-only between ticks.
type GameState struct {
	Seed        uint64
	Tick        uint64
	EpisodeTime float64
	PlayState   PlayState
	Difficulty  float64

	Player    Player
	Zombies   []Zombie
	Bullets   []Bullet
	Obstacles []core.Box

	Upgrades UpgradeState
	Offer    [3]UpgradeID

	SpawnBudget  float64
	UpgradeClock float64

	// Consecutive ticks spent in ChoosingUpgrade without a valid choice.
	// Past the configured timeout the first offered card is force-applied
	// so a non-responding driver cannot stall the episode.
	InvalidChoiceTicks int

	Stats RuntimeStats
}

// StepInfo is the diagnostic bundle returned alongside each step.
type StepInfo struct {
	Kills           int
	DamageTaken     float64
	DamageDealt     float64
	ShotsFired      int
	ShotsHit        int
	Accuracy        float64
	Difficulty      float64
	ZombiesAlive    int
	NearestZombie   float64
	EpisodeTime     float64
	ChoosingUpgrade bool
}

// StepResult is returned by Simulator.Step after each tick.
type StepResult struct {
	Observation []float32
	Reward      float32
	Terminated  bool
	Truncated   bool
	Info        StepInfo
}
