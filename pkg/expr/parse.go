package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// unaryFuncs is the whitelist of one-argument functions.
var unaryFuncs = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"log":   math.Log,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
}

// binaryFuncs is the whitelist of two-argument functions.
var binaryFuncs = map[string]func(float64, float64) float64{
	"pow": math.Pow,
	"min": math.Min,
	"max": math.Max,
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lex tokenizes the expression source. Identifiers are letter-initial runs
// of letters, digits and underscores; numbers accept a decimal point and an
// optional exponent.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", pos: i})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar, text: "*", pos: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", pos: i})
			i++
		case c == '^':
			toks = append(toks, token{kind: tokCaret, text: "^", pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				i++
			}
			// optional exponent
			if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
				j := i + 1
				if j < len(input) && (input[j] == '+' || input[j] == '-') {
					j++
				}
				if j < len(input) && isDigit(input[j]) {
					i = j
					for i < len(input) && isDigit(input[i]) {
						i++
					}
				}
			}
			text := input[start:i]
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q at position %d", text, start)
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: num, pos: start})
		case isLetter(c):
			start := i
			for i < len(input) && (isLetter(input[i]) || isDigit(input[i]) || input[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], pos: start})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// parser is a recursive-descent parser that compiles the expression
// directly into a tree of closures, one Func per grammar node.
type parser struct {
	toks       []token
	pos        int
	withParams bool
}

// parse compiles source into a Func. With withParams false, any reference
// to u or v is a parse error (used for constant bound expressions).
func parse(source string, withParams bool) (Func, error) {
	toks, err := lex(source)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, withParams: withParams}
	f, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
	return f, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		if tok.kind == tokEOF {
			return tok, fmt.Errorf("expected %s but expression ended", what)
		}
		return tok, fmt.Errorf("expected %s but found %q at position %d", what, tok.text, tok.pos)
	}
	return tok, nil
}

// parseExpr handles + and - at the lowest precedence.
func (p *parser) parseExpr() (Func, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			l, r := left, right
			left = func(u, v float64) float64 { return l(u, v) + r(u, v) }
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			l, r := left, right
			left = func(u, v float64) float64 { return l(u, v) - r(u, v) }
		default:
			return left, nil
		}
	}
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (Func, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			l, r := left, right
			left = func(u, v float64) float64 { return l(u, v) * r(u, v) }
		case tokSlash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			l, r := left, right
			left = func(u, v float64) float64 { return l(u, v) / r(u, v) }
		default:
			return left, nil
		}
	}
}

// parseUnary handles prefix + and -. Unary minus binds looser than ^,
// so -u^2 parses as -(u^2).
func (p *parser) parseUnary() (Func, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return func(u, v float64) float64 { return -operand(u, v) }, nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	default:
		return p.parsePower()
	}
}

// parsePower handles the right-associative ^ operator.
func (p *parser) parsePower() (Func, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	// right operand may itself carry a sign, e.g. 2^-3
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	b, e := base, exp
	return func(u, v float64) float64 { return math.Pow(b(u, v), e(u, v)) }, nil
}

// parseAtom handles literals, pi, the parameters, function calls, and
// parenthesized subexpressions.
func (p *parser) parseAtom() (Func, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		c := tok.num
		return func(u, v float64) float64 { return c }, nil

	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return inner, nil

	case tokIdent:
		return p.parseIdent(tok)

	case tokEOF:
		return nil, fmt.Errorf("expression ended where a value was expected")

	default:
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
}

// parseIdent resolves an identifier: the constant pi (case-insensitive),
// a whitelisted function call, or one of the parameters u and v. Anything
// else is rejected so the grammar stays closed.
func (p *parser) parseIdent(tok token) (Func, error) {
	name := tok.text

	if strings.EqualFold(name, "pi") {
		return func(u, v float64) float64 { return math.Pi }, nil
	}

	if p.peek().kind == tokLParen {
		return p.parseCall(tok)
	}

	if p.withParams {
		switch name {
		case "u":
			return func(u, v float64) float64 { return u }, nil
		case "v":
			return func(u, v float64) float64 { return v }, nil
		}
	} else if name == "u" || name == "v" {
		return nil, fmt.Errorf("variable %q is not allowed in a constant expression", name)
	}

	if _, ok := unaryFuncs[name]; ok {
		return nil, fmt.Errorf("function %q must be called with arguments", name)
	}
	if _, ok := binaryFuncs[name]; ok {
		return nil, fmt.Errorf("function %q must be called with arguments", name)
	}
	return nil, fmt.Errorf("unknown identifier %q at position %d", name, tok.pos)
}

// parseCall parses fn(expr) or fn(expr, expr) for whitelisted functions.
func (p *parser) parseCall(nameTok token) (Func, error) {
	name := nameTok.text
	if _, err := p.expect(tokLParen, `"("`); err != nil {
		return nil, err
	}

	if fn := unaryFuncs[name]; fn != nil {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return func(u, v float64) float64 { return fn(arg(u, v)) }, nil
	}

	if fn := binaryFuncs[name]; fn != nil {
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokComma, `","`); err != nil {
			return nil, err
		}
		second, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return func(u, v float64) float64 { return fn(first(u, v), second(u, v)) }, nil
	}

	return nil, fmt.Errorf("unknown function %q at position %d", name, nameTok.pos)
}
