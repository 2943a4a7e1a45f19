package synthetic

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"sort"
	"strconv"
)

// Formula is a parsed, immutable arithmetic expression over named components.
// Supported: + - * /, unary minus, parentheses, numeric literals, identifiers.
type Formula struct {
	src  string
	eval evalFunc
	vars []string
}

type evalFunc func(vars map[string]float64) float64

// ParseFormula parses src once into an evaluation tree
func ParseFormula(src string) (*Formula, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("parse formula %q: %w", src, err)
	}

	seen := make(map[string]bool)
	eval, err := compile(expr, seen)
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", src, err)
	}

	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)

	return &Formula{src: src, eval: eval, vars: vars}, nil
}

// MustParseFormula is ParseFormula that panics on error (tests, static tables)
func MustParseFormula(src string) *Formula {
	f, err := ParseFormula(src)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the source text
func (f *Formula) String() string {
	return f.src
}

// Variables returns the referenced component names, sorted
func (f *Formula) Variables() []string {
	return append([]string(nil), f.vars...)
}

// Eval evaluates the formula. A variable absent from vars evaluates to NaN.
func (f *Formula) Eval(vars map[string]float64) float64 {
	return f.eval(vars)
}

func compile(expr ast.Expr, seen map[string]bool) (evalFunc, error) {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return compile(e.X, seen)

	case *ast.BasicLit:
		if e.Kind != token.INT && e.Kind != token.FLOAT {
			return nil, fmt.Errorf("unsupported literal %s", e.Value)
		}
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %s: %w", e.Value, err)
		}
		return func(map[string]float64) float64 { return v }, nil

	case *ast.Ident:
		name := e.Name
		seen[name] = true
		return func(vars map[string]float64) float64 {
			v, ok := vars[name]
			if !ok {
				return math.NaN()
			}
			return v
		}, nil

	case *ast.UnaryExpr:
		x, err := compile(e.X, seen)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case token.SUB:
			return func(vars map[string]float64) float64 { return -x(vars) }, nil
		case token.ADD:
			return x, nil
		}
		return nil, fmt.Errorf("unsupported unary operator %s", e.Op)

	case *ast.BinaryExpr:
		x, err := compile(e.X, seen)
		if err != nil {
			return nil, err
		}
		y, err := compile(e.Y, seen)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case token.ADD:
			return func(vars map[string]float64) float64 { return x(vars) + y(vars) }, nil
		case token.SUB:
			return func(vars map[string]float64) float64 { return x(vars) - y(vars) }, nil
		case token.MUL:
			return func(vars map[string]float64) float64 { return x(vars) * y(vars) }, nil
		case token.QUO:
			return func(vars map[string]float64) float64 { return x(vars) / y(vars) }, nil
		}
		return nil, fmt.Errorf("unsupported operator %s", e.Op)
	}

	return nil, fmt.Errorf("unsupported expression %T", expr)
}
