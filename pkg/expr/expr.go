// Package expr compiles restricted infix math expressions into callable
// numeric functions of the two surface parameters u and v. The grammar is
// closed: numeric literals, the constant pi, the parameters u and v, the
// arithmetic operators + - * / ^, parentheses, and a fixed whitelist of
// math functions. Nothing outside the whitelist is reachable from a
// compiled function, so user text can never touch ambient state or I/O.
package expr

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Func is a compiled expression. It is pure and side-effect free, and is
// cheap enough to call from the inner tessellation loop: all parsing cost
// is paid once at compile time.
type Func func(u, v float64) float64

// ErrEmptyExpression is returned by Compile when the trimmed source is empty.
var ErrEmptyExpression = errors.New("expression is empty")

// ErrEmptyBound is returned by EvalScalar when the trimmed source is empty.
var ErrEmptyBound = errors.New("bound expression is empty")

// CompileError wraps a parse or smoke-test failure with the original source.
type CompileError struct {
	Source  string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("cannot compile %q: %s", e.Source, e.Message)
}

// NonFiniteBoundError reports a bound expression that parsed but evaluated
// to NaN or an infinity.
type NonFiniteBoundError struct {
	Source string
}

func (e *NonFiniteBoundError) Error() string {
	return fmt.Sprintf("bound %q does not evaluate to a finite number", e.Source)
}

// Compile parses source into a Func of the parameters u and v. Both
// parameters are always bound, even if the expression uses neither.
// The compiled function is smoke-tested once at (0,0); any failure during
// parsing or the smoke test is reported as a CompileError and no function
// is returned.
func Compile(source string) (Func, error) {
	text := strings.TrimSpace(source)
	if text == "" {
		return nil, ErrEmptyExpression
	}
	f, err := parse(text, true)
	if err != nil {
		return nil, &CompileError{Source: text, Message: err.Error()}
	}
	if err := smokeTest(f); err != nil {
		return nil, &CompileError{Source: text, Message: err.Error()}
	}
	return f, nil
}

// EvalScalar evaluates a constant expression (a parameter bound such as
// "2 * pi" or "-1.5") to a finite float64. References to u or v are
// rejected at parse time.
func EvalScalar(source string) (float64, error) {
	text := strings.TrimSpace(source)
	if text == "" {
		return 0, ErrEmptyBound
	}
	f, err := parse(text, false)
	if err != nil {
		return 0, &CompileError{Source: text, Message: err.Error()}
	}
	val := f(0, 0)
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, &NonFiniteBoundError{Source: text}
	}
	return val, nil
}

// smokeTest invokes f once at the origin. The closed grammar should make
// panics impossible, but a compiled function is never handed out without
// having survived one call.
func smokeTest(f Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluation panicked: %v", r)
		}
	}()
	f(0, 0)
	return nil
}
