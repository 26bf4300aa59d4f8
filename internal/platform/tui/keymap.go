package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zordux/Last-Vector/internal/core"
	"github.com/Zordux/Last-Vector/internal/sim"
)

// holdTicks is how many simulation ticks a key press stays active.
// Terminals report presses but never releases, so held movement is
// reconstructed from key-repeat events refreshing this window.
const holdTicks = 9

// InputState accumulates key presses between frames and converts them into
// one engine action per tick.
type InputState struct {
	up, down, left, right int
	aimX, aimY            float64
	shoot                 int
	sprint                int
	reload                bool
	choice                int
}

// NewInputState returns an input tracker with no aim direction yet.
func NewInputState() *InputState {
	return &InputState{aimX: 1, choice: -1}
}

// Press feeds one key event into the tracker. Returns true for quit keys;
// pause and restart are reported through the model, not here.
func (in *InputState) Press(msg tea.KeyMsg) (quit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "w":
		in.up = holdTicks
	case "s":
		in.down = holdTicks
	case "a":
		in.left = holdTicks
	case "d":
		in.right = holdTicks
	case "up":
		in.aimX, in.aimY = 0, -1
	case "down":
		in.aimX, in.aimY = 0, 1
	case "left":
		in.aimX, in.aimY = -1, 0
	case "right":
		in.aimX, in.aimY = 1, 0
	case " ":
		in.shoot = holdTicks
	case "e":
		in.sprint = holdTicks
	case "r":
		in.reload = true
	case "1":
		in.choice = 0
	case "2":
		in.choice = 1
	case "3":
		in.choice = 2
	}
	return false
}

// Action drains the tracker into the action for the next tick and decays the
// hold windows. One-shot inputs (reload, upgrade choice) clear on read.
func (in *InputState) Action() sim.Action {
	a := sim.Action{
		MoveX:         btof(in.right > 0) - btof(in.left > 0),
		MoveY:         btof(in.down > 0) - btof(in.up > 0),
		AimX:          in.aimX,
		AimY:          in.aimY,
		Shoot:         in.shoot > 0,
		Sprint:        in.sprint > 0,
		Reload:        in.reload,
		UpgradeChoice: in.choice,
	}

	in.up = core.Max(0, in.up-1)
	in.down = core.Max(0, in.down-1)
	in.left = core.Max(0, in.left-1)
	in.right = core.Max(0, in.right-1)
	in.shoot = core.Max(0, in.shoot-1)
	in.sprint = core.Max(0, in.sprint-1)
	in.reload = false
	in.choice = -1

	return a
}

func btof(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
