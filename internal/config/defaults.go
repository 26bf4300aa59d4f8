package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the reference arena tuning.
// These values are the determinism contract: changing any of them changes
// every trajectory, so they must stay in sync with defaults/arena.yaml.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Arena: ArenaDims{
			Width:        1400,
			Height:       900,
			PlayerRadius: 11,
			ZombieRadius: 10,
		},
		Player: PlayerConfig{
			MaxHealth:       100,
			MaxStamina:      100,
			Magazine:        12,
			Reserve:         120,
			Accel:           900,
			Friction:        7.5,
			SprintMul:       1.55,
			StaminaDrain:    22,
			StaminaRegen:    14,
			HitInvulnerable: 0.45,
		},
		Bullet: BulletConfig{
			Speed:         760,
			Radius:        4,
			Damage:        22,
			Cooldown:      0.17,
			ReloadTime:    1.2,
			MinReloadTime: 0.35,
		},
		Zombie: ZombieConfig{
			BaseSpeed:     155,
			SpeedPerDiff:  16,
			BaseHP:        26,
			HPPerDiff:     3,
			TouchDamage:   10,
			TouchCooldown: 0.25,
			SlowFactor:    0.62,
		},
		Spawning: SpawnConfig{
			BaseRate:    1.0,
			RatePerDiff: 1.2,
			BaseCap:     16,
			CapPerDiff:  18,
			RampSeconds: 90,
		},
		Episode: EpisodeConfig{
			LimitSeconds:       180,
			UpgradeInterval:    20,
			ChoiceTimeoutTicks: 300,
		},
		Reward: RewardConfig{
			Survival:       0.02,
			Kill:           1.45,
			Hit:            0.03,
			DamageDealt:    0.002,
			DamageTaken:    0.05,
			ProximityRange: 120,
			ProximityScale: 0.0008,
			Whiff:          0.008,
		},
		Obstacles: []ObstacleConfig{
			{X: 220, Y: 150, W: 180, H: 60},
			{X: 470, Y: 260, W: 140, H: 50},
			{X: 640, Y: 90, W: 80, H: 220},
			{X: 920, Y: 170, W: 150, H: 60},
			{X: 1080, Y: 330, W: 120, H: 120},
			{X: 180, Y: 420, W: 200, H: 70},
			{X: 440, Y: 520, W: 60, H: 200},
			{X: 620, Y: 440, W: 200, H: 80},
			{X: 860, Y: 560, W: 180, H: 60},
			{X: 1140, Y: 520, W: 80, H: 200},
			{X: 250, Y: 700, W: 220, H: 70},
			{X: 560, Y: 760, W: 140, H: 60},
		},
	}
}
