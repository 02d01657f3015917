package calc

import (
	"strings"
	"unicode/utf8"
)

// TokenKind classifies input tokens.
type TokenKind int

const (
	Number TokenKind = iota
	Operator
	Constant
	Function
)

func (k TokenKind) String() string {
	switch k {
	case Number:
		return "number"
	case Operator:
		return "operator"
	case Constant:
		return "constant"
	case Function:
		return "function"
	default:
		panic("unknown token kind")
	}
}

// sentinel is displayed for an empty buffer.
const sentinel = "0"

// AppendToken appends text to the buffer. Function tokens use invText
// while inverse mode is on, and turn inverse mode off.
func (s *Session) AppendToken(kind TokenKind, text, invText string) string {
	if kind == Function {
		if s.inverse && invText != "" {
			text = invText
		}
		s.inverse = false
	}
	s.replaceSentinel(text)
	s.expr += text
	return s.expr
}

// replaceSentinel empties a buffer holding only "0" unless the next token
// continues the number (".") or is a binary operator.
func (s *Session) replaceSentinel(next string) {
	if s.expr == sentinel && next != "." && !isSpacedOperator(next) {
		s.expr = ""
	}
}

// isSpacedOperator reports whether tok is a binary operator stored with
// padding, like " + ".
func isSpacedOperator(tok string) bool {
	return strings.HasPrefix(tok, " ")
}

// Backspace removes the last token. Spaced operators are removed whole.
func (s *Session) Backspace() {
	switch {
	case s.expr == "":
	case strings.HasSuffix(s.expr, " "):
		if len(s.expr) <= 3 {
			s.expr = ""
		} else {
			s.expr = s.expr[:len(s.expr)-3]
		}
	default:
		_, size := utf8.DecodeLastRuneInString(s.expr)
		s.expr = s.expr[:len(s.expr)-size]
	}
}

// Clear empties the buffer, the committed label and the last answer.
func (s *Session) Clear() {
	s.expr = ""
	s.label = ""
	s.answer = ""
}

// InsertAnswer appends the last answer to the buffer.
func (s *Session) InsertAnswer() {
	s.replaceSentinel(s.answer)
	s.expr += s.answer
}

// SetExpression replaces the buffer, e.g. with pasted text.
// Display glyphs are converted back to ASCII operators.
func (s *Session) SetExpression(text string) {
	s.expr = asciiGlyphs.Replace(strings.TrimSpace(text))
}

var displayGlyphs = strings.NewReplacer(
	" / ", " ÷ ",
	" * ", " × ",
	" - ", " − ",
)

var asciiGlyphs = strings.NewReplacer(
	"÷", "/",
	"×", "*",
	"−", "-",
)

// Display converts buffer text to the form shown to the user. The stored
// buffer keeps ASCII operators so that it stays evaluable.
func Display(s string) string {
	return displayGlyphs.Replace(s)
}
