// Package engine evaluates calculator expressions.
//
// Expressions are parsed with the expr-lang parser and evaluated over
// shopspring decimals, so that ordinary arithmetic is exact and division is
// carried to a fixed, high number of places. Transcendental functions go
// through float64.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/shopspring/decimal"
)

// AngleUnit selects how trigonometric functions interpret their arguments.
type AngleUnit int

const (
	Degree AngleUnit = iota
	Radian
)

func (u AngleUnit) String() string {
	switch u {
	case Degree:
		return "deg"
	case Radian:
		return "rad"
	default:
		panic("unknown angle unit")
	}
}

// Value is the result of an evaluation.
type Value = decimal.Decimal

// divPlaces is the number of decimal places kept by division.
const divPlaces = 64

var (
	ErrDivideByZero = errors.New("division by zero")
	ErrDomain       = errors.New("argument out of domain")
)

// Engine evaluates expressions. The zero value evaluates in degrees.
type Engine struct {
	unit AngleUnit
}

// New creates an engine using the given angle unit.
func New(unit AngleUnit) *Engine {
	return &Engine{unit: unit}
}

// Configure sets the angle unit for subsequent evaluations.
func (e *Engine) Configure(unit AngleUnit) {
	e.unit = unit
}

// Unit returns the configured angle unit.
func (e *Engine) Unit() AngleUnit {
	return e.unit
}

// Evaluate parses and evaluates text. Adjacent operands are multiplied,
// so 2pi, 2sin(30) and 2(3) are accepted.
func (e *Engine) Evaluate(text string) (Value, error) {
	tree, err := parser.Parse(implicitMul(text))
	if err != nil {
		return Value{}, fmt.Errorf("parse: %w", err)
	}
	return e.eval(tree.Node)
}

// implicitMul inserts the multiplication operator between an operand and a
// directly following number, name or opening parenthesis.
func implicitMul(text string) string {
	var (
		b       strings.Builder
		operand bool // the last token ends an operand
	)
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isDigit(c) || c == '.':
			j := scanNumber(text, i)
			if operand {
				b.WriteString(" * ")
			}
			b.WriteString(text[i:j])
			i, operand = j, true
		case isNameStart(c):
			j := i + 1
			for j < len(text) && (isNameStart(text[j]) || isDigit(text[j])) {
				j++
			}
			if operand {
				b.WriteString(" * ")
			}
			name := text[i:j]
			b.WriteString(name)
			// A name is a call when an opening parenthesis follows,
			// unless it is a constant.
			_, isConst := constants[name]
			i, operand = j, isConst || !nextIs(text[j:], '(')
		case c == '(':
			if operand {
				b.WriteString(" * ")
			}
			b.WriteByte(c)
			i, operand = i+1, false
		case c == ')':
			b.WriteByte(c)
			i, operand = i+1, true
		default:
			b.WriteByte(c)
			i, operand = i+1, false
		}
	}
	return b.String()
}

// scanNumber returns the end of the number starting at text[i]. An exponent
// is part of the number only when digits follow it.
func scanNumber(text string, i int) int {
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			return j
		}
	}
	return i
}

func nextIs(s string, c byte) bool {
	s = strings.TrimLeft(s, " \t")
	return s != "" && s[0] == c
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// Format renders v using auto notation with 14 significant digits.
func (e *Engine) Format(v Value) string {
	return Format(v)
}

func (e *Engine) eval(node ast.Node) (Value, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return decimal.NewFromInt(int64(n.Value)), nil
	case *ast.FloatNode:
		return decimal.NewFromFloat(n.Value), nil
	case *ast.IdentifierNode:
		c, ok := constants[n.Value]
		if !ok {
			return Value{}, fmt.Errorf("unknown symbol %q", n.Value)
		}
		return c, nil
	case *ast.UnaryNode:
		x, err := e.eval(n.Node)
		if err != nil {
			return Value{}, err
		}
		switch n.Operator {
		case "-":
			return x.Neg(), nil
		case "+":
			return x, nil
		default:
			return Value{}, fmt.Errorf("unsupported operator %q", n.Operator)
		}
	case *ast.BinaryNode:
		x, err := e.eval(n.Left)
		if err != nil {
			return Value{}, err
		}
		y, err := e.eval(n.Right)
		if err != nil {
			return Value{}, err
		}
		return binary(n.Operator, x, y)
	case *ast.CallNode:
		id, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return Value{}, errors.New("unsupported call")
		}
		return e.call(id.Value, n.Arguments)
	case *ast.BuiltinNode:
		// The parser turns names like abs into builtins.
		return e.call(n.Name, n.Arguments)
	default:
		return Value{}, fmt.Errorf("unsupported expression %T", node)
	}
}

func (e *Engine) call(name string, argNodes []ast.Node) (Value, error) {
	fn, ok := functions[name]
	if !ok {
		return Value{}, fmt.Errorf("unknown function %q", name)
	}
	if len(argNodes) < fn.minArgs || len(argNodes) > fn.maxArgs {
		return Value{}, fmt.Errorf("%s: wrong number of arguments (%d)", name, len(argNodes))
	}
	args := make([]Value, len(argNodes))
	for i, an := range argNodes {
		v, err := e.eval(an)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	v, err := fn.apply(e.unit, args)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func binary(op string, x, y Value) (Value, error) {
	switch op {
	case "+":
		return x.Add(y), nil
	case "-":
		return x.Sub(y), nil
	case "*":
		return x.Mul(y), nil
	case "/":
		if y.IsZero() {
			return Value{}, ErrDivideByZero
		}
		return x.DivRound(y, divPlaces), nil
	case "%":
		if y.IsZero() {
			return Value{}, ErrDivideByZero
		}
		// Floored modulo: the result takes the sign of the divisor.
		q := x.DivRound(y, divPlaces).Floor()
		return x.Sub(y.Mul(q)), nil
	case "^", "**":
		return pow(x, y)
	default:
		return Value{}, fmt.Errorf("unsupported operator %q", op)
	}
}
