package sim

import "github.com/Zordux/Last-Vector/internal/config"

// computeReward turns one tick's stat deltas into the dense shaping signal.
// prev is the stats snapshot taken before the tick ran, so every term scores
// only what happened during this tick.
func computeReward(cfg *config.RewardConfig, prev, cur RuntimeStats, nearest float64, fired int) float64 {
	r := cfg.Survival

	r += cfg.Kill * float64(cur.Kills-prev.Kills)
	r += cfg.Hit * float64(cur.ShotsHit-prev.ShotsHit)
	r += cfg.DamageDealt * (cur.DamageDealt - prev.DamageDealt)
	r -= cfg.DamageTaken * (cur.DamageTaken - prev.DamageTaken)

	if nearest < cfg.ProximityRange {
		r -= (cfg.ProximityRange - nearest) * cfg.ProximityScale
	}

	// Whiff penalty applies only when shots went out and none connected,
	// nudging the policy away from spraying.
	if fired > 0 && cur.ShotsHit == prev.ShotsHit {
		r -= cfg.Whiff * float64(fired)
	}
	return r
}
