package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/fjl/gio-scicalc/internal/assist"
	"github.com/fjl/gio-scicalc/internal/calc"
	"github.com/fjl/gio-scicalc/internal/engine"
	"github.com/fjl/gio-scicalc/internal/stats"
)

const helpText = `Type an expression to calculate it, e.g. 2 * sin(30) + 1.
A line starting with an operator or = continues the current input.

:deg, :rad         set the angle unit
:inv               use the inverse of the next function
:ans               insert the last answer
:back              delete the last token
:clear             clear the display
:sound             toggle the sound preference
:history           list past calculations, newest first
:load N            load history entry N
:clear-history     clear the history
:stats 1,2,3       compute statistics
:ask PROBLEM       turn a word problem into an expression
:explain           explain the last calculation
:quit              exit`

// term is the line-oriented calculator frontend.
type term struct {
	sess  *calc.Session
	asker assist.Asker
	out   io.Writer
}

// exec handles one input line. It returns false when the user quits.
func (t *term) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, ":") {
		t.feed(line)
		t.show()
		return true
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "q", "quit", "exit":
		return false
	case "help", "h":
		fmt.Fprintln(t.out, helpText)
		return true
	case "deg", "rad":
		want := engine.Degree
		if cmd == "rad" {
			want = engine.Radian
		}
		if t.sess.Angle() != want {
			t.sess.Dispatch(calc.ToggleAngle{})
		}
		fmt.Fprintln(t.out, t.sess.AngleLabel())
		return true
	case "inv":
		t.sess.Dispatch(calc.ToggleInverse{})
		fmt.Fprintf(t.out, "inverse: %v\n", t.sess.Inverse())
		return true
	case "sound":
		t.sess.Dispatch(calc.ToggleSound{})
		fmt.Fprintf(t.out, "sound: %v\n", onOff(t.sess.Sound()))
		return true
	case "history":
		t.listHistory()
		return true
	case "clear-history":
		t.sess.Dispatch(calc.ClearHistory{})
		fmt.Fprintln(t.out, "history cleared")
		return true
	case "stats":
		t.stats(arg)
		return true
	case "ask":
		t.ask(arg)
		return true
	case "explain":
		t.explain()
		return true
	}

	// The remaining commands edit the buffer.
	switch cmd {
	case "ans":
		t.sess.Dispatch(calc.InsertAnswer{})
	case "back":
		t.sess.Dispatch(calc.Backspace{})
	case "clear":
		t.sess.Dispatch(calc.Clear{})
	case "load":
		if !t.load(arg) {
			return true
		}
	default:
		fmt.Fprintf(t.out, "unknown command :%s (try :help)\n", cmd)
		return true
	}
	t.show()
	return true
}

// show prints the display.
func (t *term) show() {
	if l := t.sess.DisplayLabel(); l != "" {
		fmt.Fprintf(t.out, "  %s\n", l)
	}
	fmt.Fprintf(t.out, "= %s\n", t.sess.DisplayExpression())
}

// feed enters line as a sequence of keys and commits it.
func (t *term) feed(line string) {
	if !continues(line) {
		t.sess.Dispatch(calc.Paste{Text: ""})
	}
	committed := false
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if unicode.IsSpace(r) {
			continue
		}
		committed = false
		switch {
		case unicode.IsLetter(r) && r != 'π':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			name := string(rs[i:j])
			if j < len(rs) && rs[j] == '(' {
				t.sess.Dispatch(functionAction(name))
				j++
			} else {
				t.sess.Dispatch(calc.AppendToken{Kind: calc.Constant, Text: name})
			}
			i = j - 1
		case r == 'π':
			t.sess.Dispatch(calc.AppendToken{Kind: calc.Constant, Text: "pi"})
		case r == '-' && t.unary():
			t.sess.Dispatch(calc.AppendToken{Kind: calc.Operator, Text: "-"})
		case r == ',':
			t.sess.Dispatch(calc.AppendToken{Kind: calc.Operator, Text: ","})
		default:
			a, ok := calc.KeyAction(string(r))
			if !ok {
				fmt.Fprintf(t.out, "ignoring %q\n", r)
				continue
			}
			t.sess.Dispatch(a)
			_, committed = a.(calc.Commit)
		}
	}
	if !committed {
		t.sess.Dispatch(calc.Commit{})
	}
}

// unary reports whether a minus typed now is a sign.
func (t *term) unary() bool {
	e := t.sess.Expression()
	return e == "" || strings.HasSuffix(e, " ") || strings.HasSuffix(e, "(")
}

// continues reports whether line extends the current result.
func continues(line string) bool {
	switch line[0] {
	case '+', '*', '/', '%', '^', '=':
		return true
	case '-':
		return len(line) > 1 && line[1] == ' '
	}
	return false
}

// functionAction returns the action of typing name followed by a parenthesis.
// Names of function keys respect inverse mode.
func functionAction(name string) calc.Action {
	for _, f := range calc.Functions {
		if f.Text == name+"(" {
			return f.Action()
		}
	}
	return calc.AppendToken{Kind: calc.Function, Text: name + "("}
}

func (t *term) listHistory() {
	entries := t.sess.History().Recent()
	if len(entries) == 0 {
		fmt.Fprintln(t.out, "No history yet")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(t.out, "%3d  %s  %s\n", i+1, e.Timestamp, calc.Display(e.Expression))
	}
}

func (t *term) load(arg string) bool {
	entries := t.sess.History().Recent()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(entries) {
		fmt.Fprintf(t.out, "no history entry %q\n", arg)
		return false
	}
	t.sess.Dispatch(calc.LoadEntry{Entry: entries[n-1]})
	return true
}

func (t *term) stats(arg string) {
	r, err := stats.Compute(arg)
	if err != nil {
		fmt.Fprintf(t.out, "error: %v\n", err)
		return
	}
	for _, f := range r.Fields() {
		fmt.Fprintf(t.out, "%-9s %s\n", f.Name+":", f.Value)
	}
}

func (t *term) ask(problem string) {
	if problem == "" {
		fmt.Fprintln(t.out, "Please enter a problem.")
		return
	}
	fmt.Fprintln(t.out, "Generating expression...")
	text := t.request(problem, assist.TranslatePrompt)
	if strings.HasPrefix(text, assist.ErrorPrefix) {
		fmt.Fprintln(t.out, text)
		return
	}
	t.sess.Dispatch(calc.ApplyTranslation{Problem: problem, Text: text})
	t.show()
}

func (t *term) explain() {
	if !t.sess.Explainable() {
		fmt.Fprintln(t.out, "nothing to explain, calculate something first")
		return
	}
	fmt.Fprintln(t.out, "Loading explanation...")
	text := t.request(t.sess.ExplainQuery(), assist.ExplainPrompt)
	fmt.Fprintln(t.out, assist.PlainText(text))
}

func (t *term) request(text, instruction string) string {
	return t.asker.Ask(context.Background(), text, instruction)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
