package ui

import (
	"strings"
	"testing"
)

func TestPreview_ShowHide(t *testing.T) {
	p := NewPreview()
	p.SetSize(100, 40)

	if p.IsVisible() {
		t.Fatal("Expected preview hidden initially")
	}

	p.Show("cards.json", `{"frame": "cards", "count": 2}`, "json")
	if !p.IsVisible() {
		t.Fatal("Expected preview visible after Show")
	}

	view := stripANSI(p.View())
	for _, want := range []string{"cards.json", `"frame"`, `"cards"`} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected preview to contain %q", want)
		}
	}

	p.Hide()
	if p.IsVisible() {
		t.Error("Expected preview hidden after Hide")
	}
}

func TestHighlightCode(t *testing.T) {
	code := `{"name": "Kitasan Black"}`
	out := highlightCode(code, "json")

	if out == code {
		t.Error("Expected highlighted output to differ from input")
	}
	if stripANSI(out) != code {
		t.Errorf("Expected highlighting to keep the text, got %q", stripANSI(out))
	}
}

func TestHighlightCode_UnknownLanguage(t *testing.T) {
	code := "plain text"
	if got := stripANSI(highlightCode(code, "no-such-language")); got != code {
		t.Errorf("Expected fallback lexer to keep the text, got %q", got)
	}
}
