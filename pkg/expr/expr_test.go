package expr

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func TestCompileEvaluates(t *testing.T) {
	tests := []struct {
		name   string
		source string
		u, v   float64
		want   float64
	}{
		{"constant", "3.5", 0, 0, 3.5},
		{"parameter u", "u", 2.5, 0, 2.5},
		{"parameter v", "v", 0, -1.25, -1.25},
		{"cos product at origin", "cos(u) * cos(v)", 0, 0, 1.0},
		{"cos product at half pi", "cos(u) * cos(v)", math.Pi / 2, 0, 0.0},
		{"pi constant", "pi", 0, 0, math.Pi},
		{"pi case-insensitive", "PI / 2", 0, 0, math.Pi / 2},
		{"caret operator", "u ^ 2", 3, 0, 9},
		{"caret right-assoc", "2 ^ 3 ^ 2", 0, 0, 512},
		{"unary minus on power", "-u^2", 2, 0, -4},
		{"negative exponent", "2 ^ -2", 0, 0, 0.25},
		{"precedence", "1 + 2 * 3", 0, 0, 7},
		{"parens", "(1 + 2) * 3", 0, 0, 9},
		{"binary pow", "pow(2, 10)", 0, 0, 1024},
		{"binary min", "min(u, v)", 3, -2, -2},
		{"binary max", "max(u, v)", 3, -2, 3},
		{"nested calls", "sqrt(abs(u))", -16, 0, 4},
		{"sinh", "sinh(0)", 0, 0, 0},
		{"floor", "floor(2.7)", 0, 0, 2},
		{"round", "round(2.5)", 0, 0, 3},
		{"exponent literal", "1.5e2", 0, 0, 150},
		{"torus profile", "(2 + 0.5*cos(v)) * cos(u)", 0, 0, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.source)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.source, err)
			}
			got := f(tt.u, tt.v)
			if !scalar.EqualWithinAbs(got, tt.want, tol) {
				t.Errorf("f(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unbalanced paren", "cos(u"},
		{"trailing operator", "u +"},
		{"unknown identifier", "foo"},
		{"unknown function", "foo(u)"},
		{"non-whitelisted function", "eval(u)"},
		{"function without call", "sin"},
		{"bad character", "u $ v"},
		{"missing second argument", "pow(2)"},
		{"empty parens", "()"},
		{"double operator", "u * * v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error", tt.source)
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Errorf("Compile(%q) error = %T, want *CompileError", tt.source, err)
			}
		})
	}
}

func TestCompileEmpty(t *testing.T) {
	for _, source := range []string{"", "   ", "\t\n"} {
		if _, err := Compile(source); !errors.Is(err, ErrEmptyExpression) {
			t.Errorf("Compile(%q) error = %v, want ErrEmptyExpression", source, err)
		}
	}
}

func TestCompiledFuncIsReusable(t *testing.T) {
	f, err := Compile("sin(u) + v")
	if err != nil {
		t.Fatalf("Compile error = %v", err)
	}
	// same function, many inputs, no recompilation
	for i := 0; i < 100; i++ {
		u := float64(i) * 0.1
		want := math.Sin(u) + 2
		if got := f(u, 2); !scalar.EqualWithinAbs(got, want, tol) {
			t.Fatalf("f(%v, 2) = %v, want %v", u, got, want)
		}
	}
}

func TestEvalScalar(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"literal", "-1.5", -1.5},
		{"two pi", "2 * pi", 6.283185307},
		{"negative half pi", "-pi / 2", -1.570796327},
		{"arithmetic", "(3 + 1) / 8", 0.5},
		{"function call", "sqrt(2)", math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvalScalar(tt.source)
			if err != nil {
				t.Fatalf("EvalScalar(%q) error = %v", tt.source, err)
			}
			if !scalar.EqualWithinAbs(got, tt.want, 1e-8) {
				t.Errorf("EvalScalar(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestEvalScalarErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, err := EvalScalar("  "); !errors.Is(err, ErrEmptyBound) {
			t.Errorf("error = %v, want ErrEmptyBound", err)
		}
	})

	t.Run("rejects parameters", func(t *testing.T) {
		for _, source := range []string{"u", "2 * v", "sin(u) + 1"} {
			_, err := EvalScalar(source)
			if err == nil {
				t.Errorf("EvalScalar(%q) succeeded, want error", source)
				continue
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Errorf("EvalScalar(%q) error = %T, want *CompileError", source, err)
			}
		}
	})

	t.Run("non-finite", func(t *testing.T) {
		for _, source := range []string{"1 / 0", "log(0)", "sqrt(-1)", "0 / 0"} {
			_, err := EvalScalar(source)
			var nf *NonFiniteBoundError
			if !errors.As(err, &nf) {
				t.Errorf("EvalScalar(%q) error = %v, want *NonFiniteBoundError", source, err)
			}
		}
	})
}
