package sim

import (
	"math"
	"sort"

	"github.com/Zordux/Last-Vector/internal/config"
	"github.com/Zordux/Last-Vector/internal/core"
)

// Observation layout constants. The vector length is fixed regardless of how
// many zombies or bullets exist, so it can feed a fixed-size policy network.
const (
	obsPlayerFeatures = 11
	obsZombieSlots    = 8
	obsZombieFeatures = 5
	obsRayCount       = 16
	obsTailFeatures   = 1 + 1 + 3 + int(UpgradeCount) // difficulty, choosing flag, offer, levels

	// RayRange caps how far vision rays probe, in world units.
	RayRange = 320.0

	// Normalization scales for velocity, distance and reserve ammo.
	velScale  = 400.0
	distScale = 500.0
	ammoScale = 300.0
)

// ObservationDim returns the fixed observation vector length.
func ObservationDim() int {
	return obsPlayerFeatures +
		obsZombieSlots*obsZombieFeatures +
		obsRayCount*2 +
		obsTailFeatures
}

// BuildObservation encodes the world state into a fixed-length float32
// vector. The same state always encodes to the same bytes.
func BuildObservation(st *GameState, cfg *config.ArenaConfig) []float32 {
	obs := make([]float32, 0, ObservationDim())
	p := &st.Player
	w, h := cfg.Arena.Width, cfg.Arena.Height

	obs = append(obs,
		float32(p.Pos.X/w),
		float32(p.Pos.Y/h),
		float32(p.Vel.X/velScale),
		float32(p.Vel.Y/velScale),
		float32(p.Health/p.MaxHealth),
		float32(p.Stamina/p.MaxStamina),
		float32(float64(p.Mag)/float64(p.MagCapacity)),
		float32(float64(p.Reserve)/ammoScale),
		float32(p.ShootCD),
		float32(p.ReloadTimer),
		float32(p.InvulnTimer),
	)

	obs = appendZombieSlots(obs, st, w, h)
	obs = appendRays(obs, st, cfg)

	obs = append(obs, float32(st.Difficulty))

	choosing := st.PlayState == StateChoosingUpgrade
	if choosing {
		obs = append(obs, 1)
		for _, id := range st.Offer {
			obs = append(obs, float32((float64(id)+0.5)/float64(UpgradeCount)))
		}
	} else {
		// The offer is hidden outside the choice window so the policy
		// cannot condition on cards it is not allowed to pick yet.
		obs = append(obs, 0, 0, 0, 0)
	}

	for id := UpgradeID(0); id < UpgradeCount; id++ {
		obs = append(obs, float32(float64(st.Upgrades.Level(id))/5.0))
	}
	return obs
}

// appendZombieSlots encodes the eight nearest zombies relative to the
// player. Empty slots use a sentinel with distance 1.0 (max range) so the
// network sees "nothing nearby" rather than a zombie at the origin.
func appendZombieSlots(obs []float32, st *GameState, w, h float64) []float32 {
	p := &st.Player

	idx := make([]int, len(st.Zombies))
	dist := make([]float64, len(st.Zombies))
	for i := range st.Zombies {
		idx[i] = i
		dist[i] = p.Pos.Sub(st.Zombies[i].Pos).LengthSq()
	}
	// Stable sort keeps tied entries in spawn order for determinism.
	sort.SliceStable(idx, func(a, b int) bool {
		return dist[idx[a]] < dist[idx[b]]
	})

	for slot := 0; slot < obsZombieSlots; slot++ {
		if slot >= len(idx) {
			obs = append(obs, 0, 0, 1, 0, 0)
			continue
		}
		z := &st.Zombies[idx[slot]]
		rel := z.Pos.Sub(p.Pos)
		relVel := z.Vel.Sub(p.Vel)
		obs = append(obs,
			float32(rel.X/w),
			float32(rel.Y/h),
			float32(math.Min(rel.Length()/distScale, 1)),
			float32(relVel.X/velScale),
			float32(relVel.Y/velScale),
		)
	}
	return obs
}

// appendRays casts evenly spaced vision rays from the player and encodes,
// per ray, the nearest obstacle fraction (arena boundary included) and the
// nearest zombie fraction. A miss encodes as 1.0.
func appendRays(obs []float32, st *GameState, cfg *config.ArenaConfig) []float32 {
	p := &st.Player
	arena := core.Box{W: cfg.Arena.Width, H: cfg.Arena.Height}

	for k := 0; k < obsRayCount; k++ {
		theta := 2 * math.Pi * float64(k) / float64(obsRayCount)
		dir := core.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}

		// The origin is inside the arena box, so RayBox returns the exit
		// distance to the boundary.
		wall := core.RayBox(p.Pos, dir, arena)
		for _, o := range st.Obstacles {
			if t := core.RayBox(p.Pos, dir, o); t < wall {
				wall = t
			}
		}
		obs = append(obs, float32(math.Min(wall/RayRange, 1)))

		zombie := math.Inf(1)
		for i := range st.Zombies {
			t := core.RayCircle(p.Pos, dir, st.Zombies[i].Pos, cfg.Arena.ZombieRadius)
			if t < zombie {
				zombie = t
			}
		}
		obs = append(obs, float32(math.Min(zombie/RayRange, 1)))
	}
	return obs
}
