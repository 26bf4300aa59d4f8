package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestInputStateMovement(t *testing.T) {
	in := NewInputState()
	in.Press(keyMsg("d"))
	in.Press(keyMsg("s"))

	a := in.Action()
	if a.MoveX != 1 || a.MoveY != 1 {
		t.Errorf("move = (%v, %v), want (1, 1)", a.MoveX, a.MoveY)
	}
}

func TestInputStateHoldDecays(t *testing.T) {
	in := NewInputState()
	in.Press(keyMsg("w"))

	for i := 0; i < holdTicks; i++ {
		if a := in.Action(); a.MoveY != -1 {
			t.Fatalf("tick %d: MoveY = %v, want -1 while held", i, a.MoveY)
		}
	}
	if a := in.Action(); a.MoveY != 0 {
		t.Errorf("MoveY = %v after hold expired, want 0", a.MoveY)
	}
}

func TestInputStateAimPersists(t *testing.T) {
	in := NewInputState()
	in.Press(keyMsg("left"))

	for i := 0; i < 3; i++ {
		a := in.Action()
		if a.AimX != -1 || a.AimY != 0 {
			t.Fatalf("aim = (%v, %v), want (-1, 0) to persist", a.AimX, a.AimY)
		}
	}
}

func TestInputStateOneShots(t *testing.T) {
	in := NewInputState()
	in.Press(keyMsg("r"))
	in.Press(keyMsg("2"))

	a := in.Action()
	if !a.Reload {
		t.Error("reload not set on first read")
	}
	if a.UpgradeChoice != 1 {
		t.Errorf("upgrade choice = %d, want 1", a.UpgradeChoice)
	}

	a = in.Action()
	if a.Reload {
		t.Error("reload should clear after one read")
	}
	if a.UpgradeChoice != -1 {
		t.Errorf("upgrade choice = %d after read, want -1", a.UpgradeChoice)
	}
}

func TestInputStateQuitKeys(t *testing.T) {
	in := NewInputState()
	if !in.Press(keyMsg("q")) {
		t.Error("q should request quit")
	}
	if in.Press(keyMsg("w")) {
		t.Error("w should not request quit")
	}
}
