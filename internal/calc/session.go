// Package calc implements the expression editing core of the calculator.
//
// A Session holds the input buffer, the committed label, the last answer and
// the mode flags. All mutation goes through its methods, usually via
// Dispatch, and runs on one goroutine.
package calc

import (
	"log"
	"time"

	"github.com/fjl/gio-scicalc/internal/engine"
	"github.com/fjl/gio-scicalc/internal/history"
)

// Engine evaluates expressions for the session.
type Engine interface {
	Configure(unit engine.AngleUnit)
	Evaluate(text string) (engine.Value, error)
	Format(v engine.Value) string
}

// PrefsSaver persists preferences that do not affect calculation.
type PrefsSaver interface {
	SaveSound(on bool) error
}

// Session is the state of a running calculator.
type Session struct {
	expr        string // input buffer, ASCII operators
	label       string // committed label, e.g. "5 * 8 ="
	answer      string // last successful result
	angle       engine.AngleUnit
	inverse     bool
	sound       bool
	explainable bool

	eng     Engine
	history *history.Log
	prefs   PrefsSaver
	now     func() time.Time
	log     *log.Logger
	redraw  func()
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger for evaluation and persistence errors.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithPrefs sets where the sound preference is saved.
func WithPrefs(p PrefsSaver) Option {
	return func(s *Session) { s.prefs = p }
}

// WithSound sets the initial sound preference.
func WithSound(on bool) Option {
	return func(s *Session) { s.sound = on }
}

// WithRedraw sets a function called after every dispatched action.
func WithRedraw(fn func()) Option {
	return func(s *Session) { s.redraw = fn }
}

// NewSession creates a session in degree mode with sound on.
// If hist is nil, an unsaved empty log is used.
func NewSession(eng Engine, hist *history.Log, opts ...Option) *Session {
	if hist == nil {
		hist = history.NewLog(nil, nil)
	}
	s := &Session{
		angle:   engine.Degree,
		sound:   true,
		eng:     eng,
		history: hist,
		now:     time.Now,
		log:     log.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.eng.Configure(s.angle)
	return s
}

// Expression returns the input buffer.
func (s *Session) Expression() string { return s.expr }

// Label returns the committed label.
func (s *Session) Label() string { return s.label }

// Answer returns the last successful result.
func (s *Session) Answer() string { return s.answer }

// Angle returns the current angle unit.
func (s *Session) Angle() engine.AngleUnit { return s.angle }

// Inverse reports whether the next function key uses its inverse.
func (s *Session) Inverse() bool { return s.inverse }

// Sound reports the sound preference.
func (s *Session) Sound() bool { return s.sound }

// Explainable reports whether the last action completed a calculation
// that can be explained.
func (s *Session) Explainable() bool { return s.explainable }

// History returns the calculation log.
func (s *Session) History() *history.Log { return s.history }

// DisplayExpression returns the buffer as shown to the user.
func (s *Session) DisplayExpression() string {
	if s.expr == "" {
		return sentinel
	}
	return Display(s.expr)
}

// DisplayLabel returns the committed label as shown to the user.
func (s *Session) DisplayLabel() string {
	return Display(s.label)
}
