package ui

import (
	"strings"
	"testing"

	"github.com/zhubert/cardtray/internal/tray"
)

// newTestTrays builds a 30x12 tray panel: ten inner lines split five and
// five, so the left title is on row 1 with members on rows 2-5 and the right
// title on row 6 with members on rows 7-10.
func newTestTrays(t *testing.T) (*TrayView, *tray.Manager) {
	t.Helper()
	c, m := newTestContainer(t, 60, "Kitasan Black", "Satono Diamond", "Super Creek")
	src := c.Tiles()
	for _, s := range []*tray.Tile{src[0], src[1]} {
		if _, err := m.AddToTray(s, tray.Left); err != nil {
			t.Fatalf("AddToTray: %v", err)
		}
	}
	if _, err := m.AddToTray(src[2], tray.Right); err != nil {
		t.Fatalf("AddToTray: %v", err)
	}

	v := NewTrayView()
	v.SetSize(30, 12)
	v.SetNames("Deck", "Bench")
	v.SetTrays(m.Tray(tray.Left), m.Tray(tray.Right))
	return v, m
}

func TestTrayView_TileAt(t *testing.T) {
	v, m := newTestTrays(t)
	left := m.Tray(tray.Left)
	right := m.Tray(tray.Right)

	tests := []struct {
		name string
		x, y int
		want *tray.Tile
	}{
		{"first left member", 2, 2, left[0]},
		{"second left member", 10, 3, left[1]},
		{"empty left row", 2, 4, nil},
		{"left title", 2, 1, nil},
		{"right title", 2, 6, nil},
		{"first right member", 2, 7, right[0]},
		{"left border", 0, 2, nil},
		{"right border", 29, 2, nil},
		{"bottom border", 2, 11, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.TileAt(tt.x, tt.y); got != tt.want {
				t.Errorf("TileAt(%d,%d) returned the wrong tile", tt.x, tt.y)
			}
		})
	}
}

func TestTrayView_Cursor(t *testing.T) {
	v, m := newTestTrays(t)
	v.SetFocused(true)

	if v.Cursor() != m.Tray(tray.Left)[0] {
		t.Fatal("Expected cursor on the first left member")
	}

	v.MoveCursor(1)
	if v.Cursor() != m.Tray(tray.Left)[1] {
		t.Error("Expected cursor on the second left member")
	}

	v.MoveCursor(5)
	if v.Cursor() != m.Tray(tray.Left)[1] {
		t.Error("Expected cursor to stop at the last member")
	}

	v.SwitchTray()
	if v.CursorTray() != tray.Right {
		t.Errorf("Expected cursor in right tray, got %s", v.CursorTray())
	}
	if v.Cursor() != m.Tray(tray.Right)[0] {
		t.Error("Expected cursor clamped to the only right member")
	}
}

func TestTrayView_CursorAfterRemoval(t *testing.T) {
	v, m := newTestTrays(t)
	v.SetFocused(true)
	v.MoveCursor(1)

	m.RemoveFromTray(v.Cursor())
	v.SetTrays(m.Tray(tray.Left), m.Tray(tray.Right))

	if v.Cursor() != m.Tray(tray.Left)[0] {
		t.Error("Expected cursor to move back onto the remaining member")
	}
}

func TestTrayView_ScrolledTrayStaysClickableAfterRemovals(t *testing.T) {
	v, m := newTestTrays(t)
	src, ok := m.Resolve(m.Tray(tray.Right)[0].Origin)
	if !ok {
		t.Fatal("Expected the source tile to be registered")
	}
	for i := 0; i < 9; i++ {
		if _, err := m.AddToTray(src, tray.Right); err != nil {
			t.Fatalf("AddToTray: %v", err)
		}
	}
	v.SetTrays(m.Tray(tray.Left), m.Tray(tray.Right))

	// Scroll the right tray to its end, then leave it
	v.SetFocused(true)
	v.SwitchTray()
	v.MoveCursor(9)
	v.SwitchTray()

	for remaining := 10; remaining > 0; remaining-- {
		got := v.TileAt(2, 7)
		if got == nil {
			t.Fatalf("Expected a clickable right member with %d remaining", remaining)
		}
		if !m.RemoveFromTray(got) {
			t.Fatalf("Expected removal with %d remaining", remaining)
		}
		v.SetTrays(m.Tray(tray.Left), m.Tray(tray.Right))
	}

	if !strings.Contains(v.View(), "empty") {
		t.Error("Expected the emptied right tray to show empty")
	}
}

func TestTrayView_View(t *testing.T) {
	v, _ := newTestTrays(t)
	view := stripANSI(v.View())

	for _, want := range []string{"Deck (2)", "Bench (1)", "1 Kitasan Black", "2 Satono Diamond", "1 Super Creek"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected tray view to contain %q", want)
		}
	}
}

func TestTrayView_View_Empty(t *testing.T) {
	v := NewTrayView()
	v.SetSize(30, 12)

	view := stripANSI(v.View())
	if strings.Count(view, "empty") != 2 {
		t.Errorf("Expected both trays marked empty, got %q", view)
	}
	if !strings.Contains(view, "Left (0)") || !strings.Contains(view, "Right (0)") {
		t.Error("Expected default tray names")
	}
}

func TestMemberLine_Truncates(t *testing.T) {
	c, _ := newTestContainer(t, 60, "Mejiro McQueen (Summer Outfit)")
	line := stripANSI(memberLine(0, c.Tiles()[0], 16))

	if !strings.HasPrefix(line, "  1 ") {
		t.Errorf("Expected index prefix, got %q", line)
	}
	if !strings.HasSuffix(line, "…") {
		t.Errorf("Expected truncated name, got %q", line)
	}
}
