package calc

import (
	"testing"

	"github.com/fjl/gio-scicalc/internal/history"
)

func TestDispatchKeys(t *testing.T) {
	s := newTestSession()
	for _, name := range []string{"1", "2", "+", "3", "⏎"} {
		a, ok := KeyAction(name)
		if !ok {
			t.Fatalf("no action for key %q", name)
		}
		s.Dispatch(a)
	}
	check(t, s, "15")
	if s.Label() != "12 + 3 =" {
		t.Fatalf("wrong label %q", s.Label())
	}

	for _, name := range []string{"*", "⌫", "^", "2", "="} {
		a, _ := KeyAction(name)
		s.Dispatch(a)
	}
	check(t, s, "225")

	a, _ := KeyAction("⎋")
	s.Dispatch(a)
	check(t, s, "")
	if s.Answer() != "" {
		t.Fatal("escape did not clear answer")
	}

	if _, ok := KeyAction("A"); ok {
		t.Fatal("unexpected action for key A")
	}
}

func TestDispatchExplainable(t *testing.T) {
	s := newTestSession()
	s.Dispatch(Paste{Text: "6 * 7"})
	s.Dispatch(Commit{})
	if !s.Explainable() {
		t.Fatal("commit not explainable")
	}
	s.Dispatch(ToggleAngle{})
	if s.Explainable() {
		t.Fatal("explanation still offered after next input")
	}
}

func TestDispatchRedraw(t *testing.T) {
	redraws := 0
	s := newTestSession(WithRedraw(func() { redraws++ }))
	actions := []Action{
		AppendToken{Kind: Number, Text: "2"},
		InsertAnswer{},
		Backspace{},
		ToggleInverse{},
		ToggleSound{},
		Clear{},
		LoadEntry{Entry: history.Entry{Expression: "1 + 1 = 2"}},
		Commit{},
		ClearHistory{},
		ApplyTranslation{Problem: "p", Text: "1"},
	}
	for _, a := range actions {
		s.Dispatch(a)
	}
	if redraws != len(actions) {
		t.Fatalf("wrong redraw count %d, want %d", redraws, len(actions))
	}
	if s.History().Len() != 0 {
		t.Fatal("history not cleared")
	}
}
