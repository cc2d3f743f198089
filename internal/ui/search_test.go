package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestSearchBar_ActivateAndType(t *testing.T) {
	s := NewSearchBar()
	s.SetWidth(60)

	if s.IsActive() {
		t.Fatal("Expected search bar inactive initially")
	}

	s.Activate()
	if !s.IsActive() {
		t.Fatal("Expected search bar active after Activate")
	}

	changed, _ := s.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if !changed {
		t.Error("Expected typing to change the query")
	}
	s.Update(tea.KeyPressMsg{Code: 'l', Text: "l"})
	if s.Value() != "al" {
		t.Errorf("Expected query 'al', got %q", s.Value())
	}
}

func TestSearchBar_DeactivateKeepsQuery(t *testing.T) {
	s := NewSearchBar()
	s.SetWidth(60)
	s.Activate()
	s.SetValue("alph")
	s.Deactivate()

	if s.IsActive() {
		t.Error("Expected search bar inactive")
	}
	if s.Value() != "alph" {
		t.Errorf("Expected query kept, got %q", s.Value())
	}
	if !strings.Contains(stripANSI(s.View()), "alph") {
		t.Error("Expected inactive view to show the applied query")
	}
}

func TestSearchBar_View_Hint(t *testing.T) {
	s := NewSearchBar()
	s.SetWidth(60)

	if !strings.Contains(stripANSI(s.View()), "press / to filter") {
		t.Error("Expected hint when no query is applied")
	}
}
