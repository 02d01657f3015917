package calc

import (
	"fmt"

	"github.com/fjl/gio-scicalc/internal/history"
)

// Action is a user input event. The set of actions is closed.
type Action interface {
	action()
}

type (
	// AppendToken adds a token to the buffer.
	AppendToken struct {
		Kind    TokenKind
		Text    string
		InvText string
	}
	Backspace     struct{}
	Clear         struct{}
	InsertAnswer  struct{}
	Commit        struct{}
	ToggleAngle   struct{}
	ToggleInverse struct{}
	ToggleSound   struct{}
	// Paste replaces the buffer.
	Paste struct {
		Text string
	}
	// LoadEntry restores a history entry.
	LoadEntry struct {
		Entry history.Entry
	}
	ClearHistory struct{}
	// ApplyTranslation delivers the reply to a word problem.
	ApplyTranslation struct {
		Problem string
		Text    string
	}
)

func (AppendToken) action()      {}
func (Backspace) action()        {}
func (Clear) action()            {}
func (InsertAnswer) action()     {}
func (Commit) action()           {}
func (ToggleAngle) action()      {}
func (ToggleInverse) action()    {}
func (ToggleSound) action()      {}
func (Paste) action()            {}
func (LoadEntry) action()        {}
func (ClearHistory) action()     {}
func (ApplyTranslation) action() {}

// Dispatch applies an action. Every action withdraws the explanation of
// the previous calculation; a successful Commit offers a new one.
func (s *Session) Dispatch(a Action) {
	s.explainable = false
	switch a := a.(type) {
	case AppendToken:
		s.AppendToken(a.Kind, a.Text, a.InvText)
	case Backspace:
		s.Backspace()
	case Clear:
		s.Clear()
	case InsertAnswer:
		s.InsertAnswer()
	case Commit:
		s.Commit()
	case ToggleAngle:
		s.ToggleAngle()
	case ToggleInverse:
		s.ToggleInverse()
	case ToggleSound:
		s.ToggleSound()
	case Paste:
		s.SetExpression(a.Text)
	case LoadEntry:
		s.LoadEntry(a.Entry)
	case ClearHistory:
		s.ClearHistory()
	case ApplyTranslation:
		s.ApplyTranslation(a.Problem, a.Text)
	default:
		panic(fmt.Errorf("unknown action %T", a))
	}
	if s.redraw != nil {
		s.redraw()
	}
}
