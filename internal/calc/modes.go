package calc

import "github.com/fjl/gio-scicalc/internal/engine"

// ToggleAngle switches between degrees and radians. The engine is
// reconfigured immediately, so the next evaluation uses the new unit.
func (s *Session) ToggleAngle() {
	if s.angle == engine.Degree {
		s.angle = engine.Radian
	} else {
		s.angle = engine.Degree
	}
	s.eng.Configure(s.angle)
}

// AngleLabel returns the label of the angle toggle.
func (s *Session) AngleLabel() string {
	if s.angle == engine.Radian {
		return "RAD"
	}
	return "DEG"
}

// ToggleInverse switches inverse mode for the next function key.
func (s *Session) ToggleInverse() {
	s.inverse = !s.inverse
}

// ToggleSound switches the sound preference and saves it.
func (s *Session) ToggleSound() {
	s.sound = !s.sound
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SaveSound(s.sound); err != nil {
		s.log.Printf("can't save sound preference: %v", err)
	}
}

// FunctionLabel returns the caption of f in the current inverse mode.
func (s *Session) FunctionLabel(f Func) string {
	return f.Caption(s.inverse)
}

// Func describes a function key.
type Func struct {
	Name     string
	Label    string // caption
	InvLabel string // caption in inverse mode, empty if none
	Text     string // token appended to the buffer
	InvText  string // token in inverse mode, empty if none
}

// Caption returns the key caption.
func (f Func) Caption(inverse bool) string {
	if inverse && f.InvLabel != "" {
		return f.InvLabel
	}
	return f.Label
}

// Action returns the action of pressing the key.
func (f Func) Action() Action {
	return AppendToken{Kind: Function, Text: f.Text, InvText: f.InvText}
}

// Functions lists the function keys in keypad order.
var Functions = []Func{
	{"sin", "sin", "sin⁻¹", "sin(", "asin("},
	{"cos", "cos", "cos⁻¹", "cos(", "acos("},
	{"tan", "tan", "tan⁻¹", "tan(", "atan("},
	{"ln", "ln", "eˣ", "log(", "exp("},
	{"log", "log", "10ˣ", "log10(", "10 ^ ("},
	{"log2", "log₂", "2ˣ", "log2(", "2 ^ ("},
	{"sinh", "sinh", "", "sinh(", ""},
	{"cosh", "cosh", "", "cosh(", ""},
	{"tanh", "tanh", "", "tanh(", ""},
	{"sqrt", "√", "x²", "sqrt(", "square("},
	{"pow", "xʸ", "", "pow(", ""},
	{"abs", "|x|", "", "abs(", ""},
	{"fact", "n!", "", "factorial(", ""},
	{"nPr", "nPr", "", "permutations(", ""},
	{"nCr", "nCr", "", "combinations(", ""},
}
