package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColor(3, 2, '█', ColorGreen)

	cell := s.GetCell(3, 2)
	if cell.Rune != '█' || cell.Color != ColorGreen {
		t.Errorf("GetCell = %+v, expected green block", cell)
	}

	// Out of bounds writes are ignored
	s.SetColor(-1, 0, 'X', ColorRed)
	s.SetColor(10, 0, 'X', ColorRed)
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 1)
	s.DrawText(1, 0, "14 St–Union")

	if got := s.Row(0); got != " 14 St–Union" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawMessage(t *testing.T) {
	s := NewScreen(30, 9)
	s.DrawMessage("TIME UP", "+0 bonus")

	out := s.String()
	if !strings.Contains(out, "TIME UP") || !strings.Contains(out, "+0 bonus") {
		t.Errorf("message missing from screen:\n%s", out)
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┘") {
		t.Error("message box corners missing")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(0, 0, 'X')
	s.Resize(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should clear the buffer")
	}
	if lines := strings.Split(s.String(), "\n"); len(lines) != 3 {
		t.Errorf("String() has %d lines, expected 3", len(lines))
	}
}
