package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, 'X', ColorGreen)
	cell := s.GetCell(3, 2)
	if cell.Rune != 'X' || cell.Color != ColorGreen {
		t.Errorf("GetCell(3, 2) = %+v, expected X in green", cell)
	}

	// Set keeps the color of the cell
	s.Set(3, 2, 'Y')
	if s.GetCell(3, 2).Color != ColorGreen {
		t.Error("Set should not change the cell color")
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColored(0, 0, "abcd", ColorRed)

	s.Clear()

	for x := 0; x < 4; x++ {
		cell := s.GetCell(x, 0)
		if cell.Rune != ' ' || cell.Color != ColorDefault {
			t.Errorf("cell %d after Clear = %+v", x, cell)
		}
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "hello")

	if got := s.Row(0); got != "   he" {
		t.Errorf("Row(0) = %q, expected %q", got, "   he")
	}
}

func TestScreenDrawTextCenteredUnicode(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "★★★", ColorYellow)

	if got := s.Row(0); got != "   ★★★   " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(3, 0).Color != ColorYellow {
		t.Error("centered text should carry its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorCyan)

	expected := []string{"┌──┐", "│  │", "└──┘"}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "abcde")

	s.Resize(3, 3)

	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize gave %dx%d", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "abc" {
		t.Errorf("Row(0) = %q after resize, expected %q", got, "abc")
	}
	if got := s.Row(2); got != "   " {
		t.Errorf("new row should be blank, got %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cd")

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() should have 2 lines, got %d", len(lines))
	}
	if lines[0] != "ab " || lines[1] != "cd " {
		t.Errorf("String() = %q", s.String())
	}
}

func TestColorBright(t *testing.T) {
	if ColorRed.Bright() != ColorBrightRed {
		t.Errorf("ColorRed.Bright() = %d", ColorRed.Bright())
	}
	if ColorOrange.Bright() != ColorOrange {
		t.Error("ColorOrange has no bright variant")
	}
}
