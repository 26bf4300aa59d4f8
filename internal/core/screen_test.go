package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetCell(3, 2, 'x', ColorRed)
	cell := s.GetCell(3, 2)
	if cell.Rune != 'x' || cell.Color != ColorRed {
		t.Errorf("Expected red 'x', got %q color %d", cell.Rune, cell.Color)
	}

	// Out-of-bounds writes are ignored, reads return a default cell.
	s.SetCell(-1, 0, 'y', ColorRed)
	s.SetCell(10, 0, 'y', ColorRed)
	if got := s.GetCell(99, 99); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("Out-of-bounds read should be a blank cell, got %q", got.Rune)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.SetCell(1, 1, 'z', ColorGreen)
	s.Clear()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("Cell (%d,%d) not cleared: %q", x, y, c.Rune)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "hello")

	if got := s.Row(1); got != "  hello   " {
		t.Errorf("Row mismatch: %q", got)
	}

	// Clipped at the right edge.
	s.DrawText(8, 0, "abc")
	if got := s.Row(0); got != "        ab" {
		t.Errorf("Clipped row mismatch: %q", got)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(6, 4)
	s.SetCell(2, 2, '@', ColorGreen)

	s.Resize(8, 6)
	if s.Width() != 8 || s.Height() != 6 {
		t.Fatalf("Resize dimensions wrong: %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(2, 2); c.Rune != '@' {
		t.Errorf("Content lost on grow: %q", c.Rune)
	}

	s.Resize(3, 3)
	if c := s.GetCell(2, 2); c.Rune != '@' {
		t.Errorf("Content lost on shrink within bounds: %q", c.Rune)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	want := "a  \n  b"
	if got := s.String(); got != want {
		t.Errorf("String mismatch:\n%q\nwant\n%q", got, want)
	}
	if strings.Count(s.String(), "\n") != 1 {
		t.Error("Expected exactly one newline for two rows")
	}
}

func TestScreenDrawFrame(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawFrame(0, 0, 5, 4, ColorGray)

	if s.GetCell(0, 0).Rune != '┌' || s.GetCell(4, 0).Rune != '┐' {
		t.Error("Top corners missing")
	}
	if s.GetCell(0, 3).Rune != '└' || s.GetCell(4, 3).Rune != '┘' {
		t.Error("Bottom corners missing")
	}
	if s.GetCell(2, 0).Rune != '─' || s.GetCell(0, 2).Rune != '│' {
		t.Error("Edges missing")
	}
}
