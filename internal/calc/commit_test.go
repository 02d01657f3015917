package calc

import (
	"bytes"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/fjl/gio-scicalc/internal/engine"
	"github.com/fjl/gio-scicalc/internal/history"
)

var testTime = time.Date(2024, 3, 1, 10, 11, 12, 0, time.UTC)

func testClock() time.Time { return testTime }

func TestCommit(t *testing.T) {
	s := newTestSession(WithClock(testClock))
	s.SetExpression("3 * 4")
	s.Commit()
	check(t, s, "12")
	if s.Label() != "3 * 4 =" || s.Answer() != "12" || !s.Explainable() {
		t.Fatalf("wrong state after commit: %+v", s)
	}
	entries := s.History().Entries()
	want := history.Entry{Expression: "3 * 4 = 12", Timestamp: "10:11:12"}
	if len(entries) != 1 || entries[0] != want {
		t.Fatalf("wrong history\n  got: %v\n want: [%v]", entries, want)
	}

	// Loading the entry restores the committed calculation.
	s.Clear()
	s.LoadEntry(entries[0])
	check(t, s, "12")
	if s.Label() != "3 * 4 =" {
		t.Fatalf("wrong label after load: %q", s.Label())
	}
}

func TestCommitEmpty(t *testing.T) {
	s := newTestSession()
	s.Commit()
	if s.Label() != "" || s.History().Len() != 0 {
		t.Fatalf("empty commit changed state: %+v", s)
	}
}

func TestCommitError(t *testing.T) {
	var logbuf bytes.Buffer
	s := newTestSession(WithLogger(log.New(&logbuf, "", 0)))
	s.SetExpression("2 + 2")
	s.Commit()

	s.SetExpression("5 + (")
	s.Commit()
	check(t, s, "Invalid Expression")
	if s.Label() != "Error" {
		t.Fatalf("wrong label: %q", s.Label())
	}
	if s.Answer() != "4" {
		t.Fatalf("answer changed by failed commit: %q", s.Answer())
	}
	if s.History().Len() != 1 {
		t.Fatalf("failed commit logged: %v", s.History().Entries())
	}
	if s.Explainable() {
		t.Fatal("failed commit is explainable")
	}
	if logbuf.Len() == 0 {
		t.Fatal("evaluation error not logged")
	}
}

func TestCommitImplicitMul(t *testing.T) {
	sin := Functions[0]
	tests := []struct {
		keys []Action
		want string
	}{
		{[]Action{AppendToken{Kind: Number, Text: "2"}, AppendToken{Kind: Constant, Text: "pi"}}, "6.2831853071796"},
		{[]Action{AppendToken{Kind: Number, Text: "2"}, sin.Action(), AppendToken{Kind: Number, Text: "3"}, AppendToken{Kind: Number, Text: "0"}, AppendToken{Kind: Operator, Text: ")"}}, "1"},
		{[]Action{AppendToken{Kind: Number, Text: "2"}, AppendToken{Kind: Operator, Text: "("}, AppendToken{Kind: Number, Text: "3"}, AppendToken{Kind: Operator, Text: ")"}}, "6"},
	}
	for _, test := range tests {
		s := newTestSession()
		for _, a := range test.keys {
			s.Dispatch(a)
		}
		input := s.Expression()
		s.Dispatch(Commit{})
		if s.Expression() != test.want || s.Label() != input+" =" {
			t.Fatalf("%q: wrong result %q, label %q", input, s.Expression(), s.Label())
		}
	}
}

func TestCommitAngle(t *testing.T) {
	s := newTestSession()
	s.SetExpression("sin(90)")
	s.Commit()
	check(t, s, "1")

	s.ToggleAngle()
	if s.AngleLabel() != "RAD" {
		t.Fatalf("wrong angle label %q", s.AngleLabel())
	}
	if s.Answer() != "1" || s.Inverse() {
		t.Fatalf("angle toggle changed other state: %+v", s)
	}
	s.SetExpression("sin(90)")
	s.Commit()
	check(t, s, "0.89399666360056")

	s.ToggleAngle()
	if s.AngleLabel() != "DEG" {
		t.Fatalf("wrong angle label %q", s.AngleLabel())
	}
}

// stateEngine records the session state seen during evaluation.
type stateEngine struct {
	s         *Session
	seenExpr  string
	seenLabel string
	err       error
}

func (e *stateEngine) Configure(engine.AngleUnit) {}

func (e *stateEngine) Evaluate(text string) (engine.Value, error) {
	e.seenExpr, e.seenLabel = e.s.Expression(), e.s.Label()
	return engine.Value{}, e.err
}

func (e *stateEngine) Format(engine.Value) string { return "0" }

func TestCommitNoPartialUpdate(t *testing.T) {
	for _, fail := range []bool{false, true} {
		eng := new(stateEngine)
		if fail {
			eng.err = errors.New("boom")
		}
		s := NewSession(eng, nil, WithLogger(log.New(new(bytes.Buffer), "", 0)))
		eng.s = s
		s.label = "1 + 1 ="
		s.SetExpression("7 - 7")
		s.Commit()
		if eng.seenExpr != "7 - 7" || eng.seenLabel != "1 + 1 =" {
			t.Fatalf("state changed before evaluation returned: %q %q", eng.seenExpr, eng.seenLabel)
		}
	}
}

type prefsRecorder struct{ saved []bool }

func (p *prefsRecorder) SaveSound(on bool) error {
	p.saved = append(p.saved, on)
	return nil
}

func TestToggleSound(t *testing.T) {
	var p prefsRecorder
	s := newTestSession(WithPrefs(&p), WithSound(false))
	s.ToggleSound()
	s.ToggleSound()
	if s.Sound() || len(p.saved) != 2 || !p.saved[0] || p.saved[1] {
		t.Fatalf("wrong sound state %v, saved %v", s.Sound(), p.saved)
	}
}

func TestInverseFunction(t *testing.T) {
	s := newTestSession()
	sin := Functions[0]
	s.ToggleInverse()
	if got := s.FunctionLabel(sin); got != "sin⁻¹" {
		t.Fatalf("wrong inverse caption %q", got)
	}
	s.Dispatch(sin.Action())
	check(t, s, "asin(")
	if s.Inverse() {
		t.Fatal("inverse mode not reset by function key")
	}
	if got := s.FunctionLabel(sin); got != "sin" {
		t.Fatalf("wrong caption %q", got)
	}

	// Functions without an inverse still consume inverse mode.
	s.ToggleInverse()
	s.Dispatch(AppendToken{Kind: Function, Text: "sinh("})
	check(t, s, "asin(sinh(")
	if s.Inverse() {
		t.Fatal("inverse mode not reset")
	}

	// Other tokens keep it.
	s.ToggleInverse()
	s.AppendToken(Number, "1", "")
	if !s.Inverse() {
		t.Fatal("inverse mode reset by number")
	}
}

func TestApplyTranslation(t *testing.T) {
	s := newTestSession()
	s.SetExpression("1 + 1")
	if s.ApplyTranslation("five times ten", "Error: Invalid problem") {
		t.Fatal("error reply applied")
	}
	check(t, s, "1 + 1")

	if !s.ApplyTranslation("five times ten", " 5 * 10\n") {
		t.Fatal("reply not applied")
	}
	check(t, s, "5 * 10")
	if s.Label() != `Word problem: "five times ten"` {
		t.Fatalf("wrong label %q", s.Label())
	}
	s.Commit()
	if q := s.ExplainQuery(); q != "5 * 10 = 50" {
		t.Fatalf("wrong explain query %q", q)
	}
}
