package calc

import (
	"strings"

	"github.com/fjl/gio-scicalc/internal/history"
)

const (
	errorLabel  = "Error"
	errorResult = "Invalid Expression"

	timestampFormat = "15:04:05"
)

// Commit evaluates the buffer. On success the result replaces the buffer,
// becomes the last answer and is logged. On failure the session shows the
// error state and the last answer and the log are left alone.
func (s *Session) Commit() {
	if s.expr == "" {
		return
	}
	v, err := s.eng.Evaluate(s.expr)
	if err != nil {
		s.log.Printf("calculation error: %q: %v", s.expr, err)
		s.label = errorLabel
		s.expr = errorResult
		s.explainable = false
		return
	}
	result := s.eng.Format(v)
	s.label = s.expr + " ="
	s.expr = result
	s.answer = result
	s.explainable = true

	entry := history.Entry{
		Expression: s.label + " " + s.expr,
		Timestamp:  s.now().Format(timestampFormat),
	}
	if err := s.history.Append(entry); err != nil {
		s.log.Printf("can't save history: %v", err)
	}
}

// LoadEntry restores a history entry into the buffer and label.
func (s *Session) LoadEntry(e history.Entry) {
	s.label, s.expr = history.Split(e.Expression)
}

// ClearHistory empties the calculation log.
func (s *Session) ClearHistory() {
	if err := s.history.Clear(); err != nil {
		s.log.Printf("can't save history: %v", err)
	}
}

// ApplyTranslation puts an expression generated from a word problem into
// the buffer. Error replies are not applied.
func (s *Session) ApplyTranslation(problem, text string) bool {
	if strings.HasPrefix(text, "Error:") {
		return false
	}
	s.expr = strings.TrimSpace(text)
	s.label = `Word problem: "` + problem + `"`
	return true
}

// ExplainQuery returns the text of the last calculation, for explanation.
func (s *Session) ExplainQuery() string {
	return s.label + " " + s.expr
}
