package calc

import (
	"strings"
	"testing"

	"github.com/fjl/gio-scicalc/internal/engine"
)

func newTestSession(opts ...Option) *Session {
	return NewSession(engine.New(engine.Degree), nil, opts...)
}

func TestEditorInput(t *testing.T) {
	s := newTestSession()
	// input number
	s.AppendToken(Number, "1", "")
	s.AppendToken(Number, "2", "")
	check(t, s, "12")
	// operator is stored spaced
	s.AppendToken(Operator, " * ", "")
	check(t, s, "12 * ")
	s.AppendToken(Constant, "pi", "")
	check(t, s, "12 * pi")
	// rubout constant letters one at a time
	s.Backspace()
	check(t, s, "12 * p")
	s.Backspace()
	check(t, s, "12 * ")
	// rubout removes the whole operator
	s.Backspace()
	check(t, s, "12")
}

func TestEditorSentinelZero(t *testing.T) {
	s := newTestSession()
	s.AppendToken(Number, "0", "")
	s.AppendToken(Number, "5", "")
	check(t, s, "5")

	s.SetExpression("0")
	s.AppendToken(Number, ".", "")
	s.AppendToken(Number, "5", "")
	check(t, s, "0.5")

	s.SetExpression("0")
	s.AppendToken(Operator, " + ", "")
	check(t, s, "0 + ")

	s.SetExpression("0")
	s.AppendToken(Operator, "(", "")
	check(t, s, "(")

	s.SetExpression("0")
	s.AppendToken(Function, "sqrt(", "square(")
	check(t, s, "sqrt(")

	s.SetExpression("0")
	s.AppendToken(Constant, "e", "")
	check(t, s, "e")
}

func TestEditorNoLeadingOperator(t *testing.T) {
	tokens := []AppendToken{
		{Kind: Number, Text: "0"},
		{Kind: Number, Text: "7"},
		{Kind: Number, Text: "."},
		{Kind: Operator, Text: " + "},
		{Kind: Operator, Text: " * "},
		{Kind: Operator, Text: "("},
		{Kind: Constant, Text: "pi"},
		{Kind: Function, Text: "sin(", InvText: "asin("},
	}
	// All three-token sequences that start with a digit or the sentinel.
	for _, a := range tokens[:2] {
		for _, b := range tokens {
			for _, c := range tokens {
				s := newTestSession()
				s.AppendToken(a.Kind, a.Text, a.InvText)
				s.AppendToken(b.Kind, b.Text, b.InvText)
				s.AppendToken(c.Kind, c.Text, c.InvText)
				if strings.HasPrefix(s.Expression(), " ") {
					t.Fatalf("%q %q %q: buffer starts with operator: %q", a.Text, b.Text, c.Text, s.Expression())
				}
			}
		}
	}
}

func TestEditorBackspace(t *testing.T) {
	s := newTestSession()
	s.Backspace() // empty buffer is a no-op
	check(t, s, "")

	s.SetExpression("5")
	s.AppendToken(Operator, " + ", "")
	s.Backspace()
	check(t, s, "5")
	s.Backspace()
	check(t, s, "")

	s.AppendToken(Operator, " - ", "")
	s.Backspace()
	check(t, s, "")

	// multibyte runes are removed whole
	s.SetExpression("2 * ")
	s.AppendToken(Constant, "π", "")
	s.Backspace()
	check(t, s, "2 * ")
}

func TestEditorClear(t *testing.T) {
	s := newTestSession()
	s.SetExpression("2 + 2")
	s.Commit()
	s.ToggleAngle()
	s.ToggleInverse()
	s.Clear()
	once := *s
	s.Clear()
	if s.Expression() != "" || s.Label() != "" || s.Answer() != "" {
		t.Fatalf("clear left state: %+v", s)
	}
	if s.expr != once.expr || s.label != once.label || s.answer != once.answer {
		t.Fatal("second clear changed state")
	}
	if s.Angle() != engine.Radian || !s.Inverse() || s.History().Len() != 1 {
		t.Fatalf("clear touched modes or history: %+v", s)
	}
}

func TestEditorInsertAnswer(t *testing.T) {
	s := newTestSession()
	s.InsertAnswer() // no answer yet
	check(t, s, "")

	s.SetExpression("2 + 2")
	s.Commit()
	s.Backspace()
	s.InsertAnswer()
	check(t, s, "4")

	s.AppendToken(Operator, " * ", "")
	s.InsertAnswer()
	check(t, s, "4 * 4")

	s.SetExpression("0")
	s.InsertAnswer()
	check(t, s, "4")
}

func TestDisplay(t *testing.T) {
	s := newTestSession()
	if got := s.DisplayExpression(); got != "0" {
		t.Fatalf("empty buffer displayed as %q", got)
	}
	s.SetExpression("8 / 2 * 3 - 1")
	if got, want := s.DisplayExpression(), "8 ÷ 2 × 3 − 1"; got != want {
		t.Fatalf("wrong display\n  got: %q\n want: %q", got, want)
	}
	check(t, s, "8 / 2 * 3 - 1")

	s.Commit()
	if got, want := s.DisplayLabel(), "8 ÷ 2 × 3 − 1 ="; got != want {
		t.Fatalf("wrong label display\n  got: %q\n want: %q", got, want)
	}
	if got := Display("-5 + 2"); got != "-5 + 2" {
		t.Fatalf("unary minus changed: %q", got)
	}

	// Pasting displayed text restores the ASCII operators.
	s.Dispatch(Paste{Text: " 8 ÷ 2 × 3 − 1\n"})
	check(t, s, "8 / 2 * 3 - 1")
}

func check(t *testing.T, s *Session, text string) {
	t.Helper()
	if s.Expression() != text {
		t.Fatalf("wrong buffer\n  got: %q\n want: %q\nstate: %+v", s.Expression(), text, s)
	}
}
