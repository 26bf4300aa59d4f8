// Package sim implements the deterministic fixed-timestep arena simulation.
// All state advances in FixedDt increments; given the same seed and action
// sequence, two simulators produce bit-identical trajectories.
package sim

import (
	"math"

	"github.com/Zordux/Last-Vector/internal/config"
	"github.com/Zordux/Last-Vector/internal/core"
)

// Per-level upgrade scaling. These are part of the determinism contract
// together with the arena config.
const (
	ringBaseRadius  = 70.0
	ringRadiusPerLv = 16.0
	ringBaseDPS     = 18.0
	ringDPSPerLv    = 7.0

	bigShotDamagePerLv   = 9.0
	bigShotRadiusPerLv   = 1.0
	bigShotCooldownPerLv = 0.06

	frostBaseDuration  = 0.4
	frostDurationPerLv = 0.3

	fastHandsReloadPerLv = 0.15
	extendedMagPerLv     = 3

	cardioStaminaPerLv = 12.0
	cardioDrainPerLv   = 2.0
	cardioRegenPerLv   = 2.5

	secondWindHealthFrac = 0.6
	secondWindInvuln     = 2.0
)

// contactSlack widens the bite test just enough to count zombies that the
// player overlap pass has already pushed out to exactly touching distance.
const contactSlack = 1e-6

// zombieSeparationCap limits how far one overlap pass may push a zombie in
// a single tick, so dense clumps relax over several ticks instead of
// teleporting.
const zombieSeparationCap = 4.0

// Simulator owns one episode at a time. It is not safe for concurrent use;
// callers drive it from a single goroutine.
type Simulator struct {
	cfg   config.ArenaConfig
	state GameState
	rng   *Rng
}

// New creates a simulator and resets it with seed 0.
func New(cfg config.ArenaConfig) *Simulator {
	s := &Simulator{cfg: cfg, rng: NewRng(0)}
	s.Reset(0)
	return s
}

// State exposes the live world snapshot. Callers must treat it as read-only.
func (s *Simulator) State() *GameState {
	return &s.state
}

// Config returns the tuning the simulator was built with.
func (s *Simulator) Config() config.ArenaConfig {
	return s.cfg
}

// Reset starts a fresh episode from the given seed and returns the initial
// observation.
func (s *Simulator) Reset(seed uint64) []float32 {
	s.rng.Reseed(seed)

	obstacles := make([]core.Box, 0, len(s.cfg.Obstacles))
	for _, o := range s.cfg.Obstacles {
		obstacles = append(obstacles, core.Box{X: o.X, Y: o.Y, W: o.W, H: o.H})
	}

	s.state = GameState{
		Seed:      seed,
		PlayState: StatePlaying,
		Player: Player{
			Pos:         core.Vec2{X: s.cfg.Arena.Width / 2, Y: s.cfg.Arena.Height / 2},
			Health:      s.cfg.Player.MaxHealth,
			MaxHealth:   s.cfg.Player.MaxHealth,
			Stamina:     s.cfg.Player.MaxStamina,
			MaxStamina:  s.cfg.Player.MaxStamina,
			Mag:         s.cfg.Player.Magazine,
			MagCapacity: s.cfg.Player.Magazine,
			Reserve:     s.cfg.Player.Reserve,
		},
		Obstacles: obstacles,
	}
	s.rollOffer()
	return BuildObservation(&s.state, &s.cfg)
}

// Step advances the episode by exactly one tick. Calling Step on a finished
// episode returns the terminal observation again without advancing anything.
func (s *Simulator) Step(a Action) StepResult {
	st := &s.state
	prev := st.Stats

	if st.PlayState == StateDead {
		return s.result(prev, true, st.EpisodeTime >= s.cfg.Episode.LimitSeconds)
	}

	if st.PlayState == StateChoosingUpgrade {
		s.handleChoice(a)
	}

	if st.PlayState == StatePlaying {
		dt := FixedDt

		s.updatePlayer(a, dt)
		s.updateZombies(dt)
		s.updateBullets(dt)
		s.applyRingOfFire(dt)
		s.removeDeadZombies()
		s.applyContactDamage()
		s.checkPlayerDeath()

		if st.PlayState == StatePlaying {
			s.updateDifficulty()
			s.spawnZombies(dt)

			st.UpgradeClock += dt
			if st.UpgradeClock >= s.cfg.Episode.UpgradeInterval {
				st.UpgradeClock = 0
				st.PlayState = StateChoosingUpgrade
			}
		}

		st.EpisodeTime += dt
		st.Tick++
	}

	s.sanitize()

	// The two flags are independent: a player who dies on the very tick
	// that crosses the time limit reports both.
	terminated := st.PlayState == StateDead
	truncated := st.EpisodeTime >= s.cfg.Episode.LimitSeconds
	return s.result(prev, terminated, truncated)
}

func (s *Simulator) result(prev RuntimeStats, terminated, truncated bool) StepResult {
	st := &s.state
	nearest := s.nearestZombieDistance()
	fired := st.Stats.ShotsFired - prev.ShotsFired

	accuracy := 0.0
	if st.Stats.ShotsFired > 0 {
		accuracy = float64(st.Stats.ShotsHit) / float64(st.Stats.ShotsFired)
	}

	return StepResult{
		Observation: BuildObservation(st, &s.cfg),
		Reward:      float32(computeReward(&s.cfg.Reward, prev, st.Stats, nearest, fired)),
		Terminated:  terminated,
		Truncated:   truncated,
		Info: StepInfo{
			Kills:           st.Stats.Kills,
			DamageTaken:     st.Stats.DamageTaken,
			DamageDealt:     st.Stats.DamageDealt,
			ShotsFired:      st.Stats.ShotsFired,
			ShotsHit:        st.Stats.ShotsHit,
			Accuracy:        accuracy,
			Difficulty:      st.Difficulty,
			ZombiesAlive:    len(st.Zombies),
			NearestZombie:   nearest,
			EpisodeTime:     st.EpisodeTime,
			ChoosingUpgrade: st.PlayState == StateChoosingUpgrade,
		},
	}
}

// handleChoice consumes the upgrade choice while the offer screen is up.
// A driver that never sends a valid index cannot stall the episode: past the
// configured timeout the first offered card is applied on its behalf.
func (s *Simulator) handleChoice(a Action) {
	st := &s.state

	if a.UpgradeChoice >= 0 && a.UpgradeChoice < len(st.Offer) {
		s.applyOffer(a.UpgradeChoice)
		return
	}

	st.InvalidChoiceTicks++
	if st.InvalidChoiceTicks >= s.cfg.Episode.ChoiceTimeoutTicks {
		s.applyOffer(0)
	}
}

func (s *Simulator) applyOffer(idx int) {
	st := &s.state
	st.Upgrades.Apply(st.Offer[idx])
	st.PlayState = StatePlaying
	st.UpgradeClock = 0
	st.InvalidChoiceTicks = 0
	s.rollOffer()
	s.refreshPlayerCaps()
}

// rollOffer draws the next three cards. Draws are uniform over the whole
// catalog; picking a card already at its cap is a valid but wasted choice.
func (s *Simulator) rollOffer() {
	for i := range s.state.Offer {
		s.state.Offer[i] = UpgradeID(s.rng.IntN(0, int(UpgradeCount)-1))
	}
}

// refreshPlayerCaps re-derives upgrade-scaled player maxima after a card is
// applied. Magazine rounds past the new capacity flow back into reserve.
func (s *Simulator) refreshPlayerCaps() {
	st := &s.state
	p := &st.Player

	cardio := float64(st.Upgrades.Level(UpgradeCardio))
	p.MaxStamina = s.cfg.Player.MaxStamina + cardioStaminaPerLv*cardio
	p.Stamina = core.ClampF(p.Stamina, 0, p.MaxStamina)
	p.MaxHealth = s.cfg.Player.MaxHealth
	p.Health = core.ClampF(p.Health, 0, p.MaxHealth)

	p.MagCapacity = s.cfg.Player.Magazine + extendedMagPerLv*st.Upgrades.Level(UpgradeExtendedMag)
	if p.Mag > p.MagCapacity {
		p.Reserve += p.Mag - p.MagCapacity
		p.Mag = p.MagCapacity
	}
}

func (s *Simulator) updatePlayer(a Action, dt float64) {
	st := &s.state
	p := &st.Player

	p.ShootCD = math.Max(0, p.ShootCD-dt)
	p.InvulnTimer = math.Max(0, p.InvulnTimer-dt)

	if p.ReloadTimer > 0 {
		p.ReloadTimer -= dt
		if p.ReloadTimer <= 0 {
			p.ReloadTimer = 0
			need := p.MagCapacity - p.Mag
			take := core.Min(need, p.Reserve)
			p.Mag += take
			p.Reserve -= take
		}
	}

	cardio := float64(st.Upgrades.Level(UpgradeCardio))
	drain := math.Max(0, s.cfg.Player.StaminaDrain-cardioDrainPerLv*cardio)
	regen := s.cfg.Player.StaminaRegen + cardioRegenPerLv*cardio

	wish := core.Vec2{X: a.MoveX, Y: a.MoveY}
	if wish.Length() > 1 {
		wish = wish.Normalize()
	}

	// Sprinting needs a sliver of stamina left so the meter cannot go
	// negative mid-tick and regen starts the moment it runs dry.
	speedMul := 1.0
	if a.Sprint && p.Stamina > 1 {
		speedMul = s.cfg.Player.SprintMul
		p.Stamina = math.Max(0, p.Stamina-drain*dt)
	} else {
		p.Stamina = math.Min(p.MaxStamina, p.Stamina+regen*dt)
	}

	p.Vel = p.Vel.Add(wish.Scale(s.cfg.Player.Accel * speedMul * dt))
	p.Vel = p.Vel.Scale(math.Max(0, 1-s.cfg.Player.Friction*dt))

	prevPos := p.Pos
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	s.resolveWorld(&p.Pos, s.cfg.Arena.PlayerRadius)

	// A wall contact kills velocity on the blocked axis so the player does
	// not keep accumulating speed into the wall.
	if math.Abs(p.Pos.X-prevPos.X) < 1e-4 {
		p.Vel.X = 0
	}
	if math.Abs(p.Pos.Y-prevPos.Y) < 1e-4 {
		p.Vel.Y = 0
	}

	if a.Reload && p.ReloadTimer <= 0 && p.Mag < p.MagCapacity && p.Reserve > 0 {
		fast := float64(st.Upgrades.Level(UpgradeFastHands))
		p.ReloadTimer = math.Max(s.cfg.Bullet.MinReloadTime,
			s.cfg.Bullet.ReloadTime-fastHandsReloadPerLv*fast)
	}

	if a.Shoot && p.ShootCD <= 0 && p.ReloadTimer <= 0 && p.Mag > 0 {
		s.fireBullet(a)
	}
}

func (s *Simulator) fireBullet(a Action) {
	st := &s.state
	p := &st.Player

	aim := core.Vec2{X: a.AimX, Y: a.AimY}.Normalize()
	if aim.LengthSq() < 1e-9 {
		aim = core.Vec2{X: 1, Y: 0}
	}

	big := float64(st.Upgrades.Level(UpgradeBigShot))
	radius := s.cfg.Bullet.Radius + bigShotRadiusPerLv*big

	st.Bullets = append(st.Bullets, Bullet{
		Pos:    p.Pos,
		Vel:    aim.Scale(s.cfg.Bullet.Speed),
		Radius: radius,
		Damage: s.cfg.Bullet.Damage + bigShotDamagePerLv*big,
		Pierce: st.Upgrades.Level(UpgradePiercingRounds),
	})

	p.Mag--
	p.ShootCD = s.cfg.Bullet.Cooldown + bigShotCooldownPerLv*big
	st.Stats.ShotsFired++
}

func (s *Simulator) updateZombies(dt float64) {
	st := &s.state
	p := &st.Player
	speed := s.cfg.Zombie.BaseSpeed + s.cfg.Zombie.SpeedPerDiff*st.Difficulty
	sumR := s.cfg.Arena.PlayerRadius + s.cfg.Arena.ZombieRadius

	for i := range st.Zombies {
		z := &st.Zombies[i]
		z.SlowTimer = math.Max(0, z.SlowTimer-dt)
		z.TouchCD = math.Max(0, z.TouchCD-dt)

		zSpeed := speed
		if z.SlowTimer > 0 {
			zSpeed *= s.cfg.Zombie.SlowFactor
		}
		z.Vel = p.Pos.Sub(z.Pos).Normalize().Scale(zSpeed)
		prevPos := z.Pos
		z.Pos = z.Pos.Add(z.Vel.Scale(dt))
		s.resolveWorld(&z.Pos, s.cfg.Arena.ZombieRadius)
		if math.Abs(z.Pos.X-prevPos.X) < 1e-4 {
			z.Vel.X = 0
		}
		if math.Abs(z.Pos.Y-prevPos.Y) < 1e-4 {
			z.Vel.Y = 0
		}
	}

	s.separateZombies()

	// Zombies never displace the player; they yield the full overlap.
	for i := range st.Zombies {
		z := &st.Zombies[i]
		delta := z.Pos.Sub(p.Pos)
		l := delta.Length()
		if l >= sumR {
			continue
		}
		var dir core.Vec2
		if l <= 1e-4 {
			dir = core.HashAngle(i, -1)
		} else {
			dir = delta.Scale(1 / l)
		}
		z.Pos = p.Pos.Add(dir.Scale(sumR))
	}

	for i := range st.Zombies {
		s.resolveWorld(&st.Zombies[i].Pos, s.cfg.Arena.ZombieRadius)
	}
}

// separateZombies runs a single pairwise overlap pass. One pass per tick is
// enough in practice: residual overlap carries to the next tick and the
// horde relaxes within a few frames.
func (s *Simulator) separateZombies() {
	st := &s.state
	minDist := 2 * s.cfg.Arena.ZombieRadius

	for i := 0; i < len(st.Zombies); i++ {
		for j := i + 1; j < len(st.Zombies); j++ {
			zi, zj := &st.Zombies[i], &st.Zombies[j]
			delta := zj.Pos.Sub(zi.Pos)
			l := delta.Length()
			if l >= minDist {
				continue
			}
			var dir core.Vec2
			if l <= 1e-4 {
				dir = core.HashAngle(i, j)
			} else {
				dir = delta.Scale(1 / l)
			}
			push := math.Min((minDist-l)/2, zombieSeparationCap)
			zi.Pos = zi.Pos.Sub(dir.Scale(push))
			zj.Pos = zj.Pos.Add(dir.Scale(push))
		}
	}
}

func (s *Simulator) updateBullets(dt float64) {
	st := &s.state
	frost := st.Upgrades.Level(UpgradeFrostRounds)
	arena := core.Box{W: s.cfg.Arena.Width, H: s.cfg.Arena.Height}

	alive := st.Bullets[:0]
bullets:
	for bi := range st.Bullets {
		b := st.Bullets[bi]
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))

		if !arena.ContainsPoint(b.Pos) {
			continue
		}
		for _, o := range st.Obstacles {
			if core.CircleOverlapsBox(b.Pos, b.Radius, o) {
				continue bullets
			}
		}

		for zi := range st.Zombies {
			z := &st.Zombies[zi]
			if z.HP <= 0 {
				continue
			}
			if b.Pos.Sub(z.Pos).Length() >= b.Radius+s.cfg.Arena.ZombieRadius {
				continue
			}
			dealt := math.Min(b.Damage, z.HP)
			z.HP -= b.Damage
			if frost > 0 {
				slow := frostBaseDuration + frostDurationPerLv*float64(frost)
				z.SlowTimer = math.Max(z.SlowTimer, slow)
			}
			st.Stats.ShotsHit++
			st.Stats.DamageDealt += dealt
			b.Pierce--
			if b.Pierce < 0 {
				continue bullets
			}
		}

		alive = append(alive, b)
	}
	st.Bullets = alive
}

func (s *Simulator) applyRingOfFire(dt float64) {
	st := &s.state
	lvl := float64(st.Upgrades.Level(UpgradeRingOfFire))
	if lvl <= 0 {
		return
	}
	radius := ringBaseRadius + ringRadiusPerLv*lvl
	dmg := (ringBaseDPS + ringDPSPerLv*lvl) * dt

	for i := range st.Zombies {
		z := &st.Zombies[i]
		if z.HP <= 0 {
			continue
		}
		if st.Player.Pos.Sub(z.Pos).Length() > radius {
			continue
		}
		st.Stats.DamageDealt += math.Min(dmg, z.HP)
		z.HP -= dmg
	}
}

// removeDeadZombies is the single point where kills are counted, so a
// zombie finished off by any damage source this tick is scored exactly once.
func (s *Simulator) removeDeadZombies() {
	st := &s.state
	alive := st.Zombies[:0]
	for _, z := range st.Zombies {
		if z.HP > 0 {
			alive = append(alive, z)
		}
	}
	st.Stats.Kills += len(st.Zombies) - len(alive)
	st.Zombies = alive
}

// applyContactDamage runs after every damage source has resolved and the
// dead have been removed, so a zombie killed this tick never gets a bite in.
func (s *Simulator) applyContactDamage() {
	st := &s.state
	p := &st.Player
	sumR := s.cfg.Arena.PlayerRadius + s.cfg.Arena.ZombieRadius

	for i := range st.Zombies {
		z := &st.Zombies[i]
		if z.TouchCD > 0 || p.InvulnTimer > 0 {
			continue
		}
		if p.Pos.Sub(z.Pos).Length() <= sumR+contactSlack {
			p.Health -= s.cfg.Zombie.TouchDamage
			st.Stats.DamageTaken += s.cfg.Zombie.TouchDamage
			z.TouchCD = s.cfg.Zombie.TouchCooldown
			p.InvulnTimer = s.cfg.Player.HitInvulnerable
		}
	}
}

func (s *Simulator) checkPlayerDeath() {
	st := &s.state
	p := &st.Player
	if p.Health > 0 {
		return
	}
	if st.Upgrades.Level(UpgradeSecondWind) > 0 && !st.Upgrades.SecondWindUsed {
		st.Upgrades.SecondWindUsed = true
		p.Health = secondWindHealthFrac * p.MaxHealth
		p.InvulnTimer = secondWindInvuln
		return
	}
	p.Health = 0
	st.PlayState = StateDead
}

func (s *Simulator) updateDifficulty() {
	if s.cfg.Spawning.RampSeconds <= 0 {
		s.state.Difficulty = 0
		return
	}
	s.state.Difficulty = s.state.EpisodeTime / s.cfg.Spawning.RampSeconds
}

func (s *Simulator) spawnZombies(dt float64) {
	st := &s.state
	rate := s.cfg.Spawning.BaseRate + s.cfg.Spawning.RatePerDiff*st.Difficulty
	hordeCap := s.cfg.Spawning.BaseCap + int(s.cfg.Spawning.CapPerDiff*st.Difficulty)

	st.SpawnBudget += rate * dt
	for st.SpawnBudget > 1 && len(st.Zombies) < hordeCap {
		st.SpawnBudget--
		s.spawnZombie()
	}
}

// spawnZombie places a new zombie just inside a random arena edge. RNG draw
// order is fixed: edge first, then the coordinate along it.
func (s *Simulator) spawnZombie() {
	st := &s.state
	r := s.cfg.Arena.ZombieRadius
	w, h := s.cfg.Arena.Width, s.cfg.Arena.Height

	var pos core.Vec2
	switch s.rng.IntN(0, 3) {
	case 0:
		pos = core.Vec2{X: r, Y: s.rng.Float(r, h-r)}
	case 1:
		pos = core.Vec2{X: w - r, Y: s.rng.Float(r, h-r)}
	case 2:
		pos = core.Vec2{X: s.rng.Float(r, w-r), Y: r}
	default:
		pos = core.Vec2{X: s.rng.Float(r, w-r), Y: h - r}
	}
	s.resolveWorld(&pos, r)

	st.Zombies = append(st.Zombies, Zombie{
		Pos: pos,
		HP:  s.cfg.Zombie.BaseHP + s.cfg.Zombie.HPPerDiff*st.Difficulty,
	})
}

// resolveWorld pushes a circle out of every obstacle and clamps it to the
// arena bounds. Obstacles are resolved in layout order for determinism.
func (s *Simulator) resolveWorld(pos *core.Vec2, radius float64) {
	for _, o := range s.state.Obstacles {
		core.ResolveCircleBox(pos, radius, o)
	}
	pos.X = core.ClampF(pos.X, radius, s.cfg.Arena.Width-radius)
	pos.Y = core.ClampF(pos.Y, radius, s.cfg.Arena.Height-radius)
}

// sanitize repairs non-finite values before they can propagate into the
// observation, then re-clamps everything to its legal range.
func (s *Simulator) sanitize() {
	st := &s.state
	p := &st.Player
	cx, cy := s.cfg.Arena.Width/2, s.cfg.Arena.Height/2

	p.Pos.X = core.SanitizeF(p.Pos.X, cx)
	p.Pos.Y = core.SanitizeF(p.Pos.Y, cy)
	p.Vel.X = core.SanitizeF(p.Vel.X, 0)
	p.Vel.Y = core.SanitizeF(p.Vel.Y, 0)
	p.Health = core.ClampF(core.SanitizeF(p.Health, 0), 0, p.MaxHealth)
	p.Stamina = core.ClampF(core.SanitizeF(p.Stamina, 0), 0, p.MaxStamina)
	p.Pos.X = core.ClampF(p.Pos.X, s.cfg.Arena.PlayerRadius, s.cfg.Arena.Width-s.cfg.Arena.PlayerRadius)
	p.Pos.Y = core.ClampF(p.Pos.Y, s.cfg.Arena.PlayerRadius, s.cfg.Arena.Height-s.cfg.Arena.PlayerRadius)

	for i := range st.Zombies {
		z := &st.Zombies[i]
		z.Pos.X = core.ClampF(core.SanitizeF(z.Pos.X, p.Pos.X), s.cfg.Arena.ZombieRadius, s.cfg.Arena.Width-s.cfg.Arena.ZombieRadius)
		z.Pos.Y = core.ClampF(core.SanitizeF(z.Pos.Y, p.Pos.Y), s.cfg.Arena.ZombieRadius, s.cfg.Arena.Height-s.cfg.Arena.ZombieRadius)
		z.Vel.X = core.SanitizeF(z.Vel.X, 0)
		z.Vel.Y = core.SanitizeF(z.Vel.Y, 0)
		z.HP = core.SanitizeF(z.HP, 0)
	}
}

// nearestZombieDistance returns the smallest center distance to a live
// zombie, or +Inf when the horde is empty.
func (s *Simulator) nearestZombieDistance() float64 {
	nearest := math.Inf(1)
	for i := range s.state.Zombies {
		d := s.state.Player.Pos.Sub(s.state.Zombies[i].Pos).Length()
		if d < nearest {
			nearest = d
		}
	}
	return nearest
}
