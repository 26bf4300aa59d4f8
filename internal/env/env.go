// Package env adapts the simulator to a flat-vector reinforcement learning
// boundary: fixed-length float32 observations in, fixed-length float32
// actions out. Everything a learning framework touches goes through here.
package env

import (
	"fmt"
	"math"

	"github.com/Zordux/Last-Vector/internal/config"
	"github.com/Zordux/Last-Vector/internal/sim"
)

// Action channel order. The vector form exists so a policy network can emit
// one tensor per tick without knowing anything about the engine's types.
const (
	chanMoveX = iota
	chanMoveY
	chanAimX
	chanAimY
	chanShoot
	chanSprint
	chanReload
	chanUpgradeChoice
	actionDim
)

// ActionDim returns the fixed action vector length.
func ActionDim() int { return actionDim }

// ObservationDim returns the fixed observation vector length.
func ObservationDim() int { return sim.ObservationDim() }

// Env wraps one simulator behind the reset/step contract. Not safe for
// concurrent use.
type Env struct {
	sim *sim.Simulator
}

// New builds an environment around a fresh simulator.
func New(cfg config.ArenaConfig) *Env {
	return &Env{sim: sim.New(cfg)}
}

// Sim exposes the underlying simulator for rendering and inspection.
func (e *Env) Sim() *sim.Simulator {
	return e.sim
}

// Reset starts a new episode and returns the initial observation.
func (e *Env) Reset(seed uint64) []float32 {
	return e.sim.Reset(seed)
}

// Step decodes one action vector and advances the simulation a single tick.
// A vector of the wrong length is a caller bug and is rejected outright
// rather than padded or truncated.
func (e *Env) Step(action []float32) (sim.StepResult, error) {
	if len(action) != actionDim {
		return sim.StepResult{}, fmt.Errorf("env: action length %d, want %d", len(action), actionDim)
	}
	return e.sim.Step(DecodeAction(action)), nil
}

// DecodeAction maps a raw action vector onto the engine's action type.
// Continuous channels are clamped to [-1, 1], trigger channels fire above
// 0.5, and the upgrade channel rounds to a card index with anything outside
// {0, 1, 2} meaning "no choice".
func DecodeAction(v []float32) sim.Action {
	choice := int(math.Round(float64(v[chanUpgradeChoice])))
	if choice < 0 || choice > 2 {
		choice = -1
	}
	return sim.Action{
		MoveX:         clamp1(v[chanMoveX]),
		MoveY:         clamp1(v[chanMoveY]),
		AimX:          clamp1(v[chanAimX]),
		AimY:          clamp1(v[chanAimY]),
		Shoot:         v[chanShoot] > 0.5,
		Sprint:        v[chanSprint] > 0.5,
		Reload:        v[chanReload] > 0.5,
		UpgradeChoice: choice,
	}
}

func clamp1(v float32) float64 {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	if f < -1 {
		return -1
	}
	if f > 1 {
		return 1
	}
	return f
}
