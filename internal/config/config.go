// Package config provides YAML-based tuning for the arena simulation and
// difficulty presets for the command-line surface.
package config

// ArenaConfig contains all tuning for one simulation instance.
// The embedded defaults reproduce the reference balance exactly; a custom
// file may override any subset of it.
type ArenaConfig struct {
	Arena     ArenaDims        `yaml:"arena"`
	Player    PlayerConfig     `yaml:"player"`
	Bullet    BulletConfig     `yaml:"bullet"`
	Zombie    ZombieConfig     `yaml:"zombie"`
	Spawning  SpawnConfig      `yaml:"spawning"`
	Episode   EpisodeConfig    `yaml:"episode"`
	Reward    RewardConfig     `yaml:"reward"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// ArenaDims defines the playfield extent and entity radii.
type ArenaDims struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	PlayerRadius float64 `yaml:"player_radius"`
	ZombieRadius float64 `yaml:"zombie_radius"`
}

// PlayerConfig defines player movement and resource parameters.
type PlayerConfig struct {
	MaxHealth       float64 `yaml:"max_health"`
	MaxStamina      float64 `yaml:"max_stamina"`
	Magazine        int     `yaml:"magazine"`
	Reserve         int     `yaml:"reserve"`
	Accel           float64 `yaml:"accel"`
	Friction        float64 `yaml:"friction"`
	SprintMul       float64 `yaml:"sprint_multiplier"`
	StaminaDrain    float64 `yaml:"stamina_drain"`
	StaminaRegen    float64 `yaml:"stamina_regen"`
	HitInvulnerable float64 `yaml:"invulnerable_after_hit"`
}

// BulletConfig defines projectile parameters before upgrade scaling.
type BulletConfig struct {
	Speed         float64 `yaml:"speed"`
	Radius        float64 `yaml:"radius"`
	Damage        float64 `yaml:"damage"`
	Cooldown      float64 `yaml:"cooldown"`
	ReloadTime    float64 `yaml:"reload_time"`
	MinReloadTime float64 `yaml:"min_reload_time"`
}

// ZombieConfig defines horde movement, health and contact damage.
type ZombieConfig struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerDiff  float64 `yaml:"speed_per_difficulty"`
	BaseHP        float64 `yaml:"base_hp"`
	HPPerDiff     float64 `yaml:"hp_per_difficulty"`
	TouchDamage   float64 `yaml:"touch_damage"`
	TouchCooldown float64 `yaml:"touch_cooldown"`
	SlowFactor    float64 `yaml:"slow_factor"`
}

// SpawnConfig defines the difficulty ramp and spawn budget parameters.
type SpawnConfig struct {
	BaseRate    float64 `yaml:"base_rate"`
	RatePerDiff float64 `yaml:"rate_per_difficulty"`
	BaseCap     int     `yaml:"base_cap"`
	CapPerDiff  float64 `yaml:"cap_per_difficulty"`
	RampSeconds float64 `yaml:"difficulty_ramp_seconds"`
}

// EpisodeConfig defines episode-level pacing.
type EpisodeConfig struct {
	LimitSeconds       float64 `yaml:"limit_seconds"`
	UpgradeInterval    float64 `yaml:"upgrade_interval"`
	ChoiceTimeoutTicks int     `yaml:"choice_timeout_ticks"`
}

// RewardConfig defines the dense shaping signal.
type RewardConfig struct {
	Survival       float64 `yaml:"survival"`
	Kill           float64 `yaml:"kill"`
	Hit            float64 `yaml:"hit"`
	DamageDealt    float64 `yaml:"damage_dealt"`
	DamageTaken    float64 `yaml:"damage_taken"`
	ProximityRange float64 `yaml:"proximity_range"`
	ProximityScale float64 `yaml:"proximity_scale"`
	Whiff          float64 `yaml:"whiff"`
}

// ObstacleConfig is one static rectangle of the arena layout.
type ObstacleConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset; unknown values mean no preset.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
