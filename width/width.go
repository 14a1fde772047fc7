// Package width computes the minimum and maximum match length of a
// parsed pattern.
package width

import (
	"strings"

	"github.com/0x4d5352/regent/ast"
)

// Range is a match-width interval. Max == nil means unbounded.
type Range struct {
	Min uint32
	Max *uint32
}

// Bounded reports whether the range has an upper bound.
func (r Range) Bounded() bool { return r.Max != nil }

func exact(n uint32) Range {
	m := n
	return Range{Min: n, Max: &m}
}

func atLeast(n uint32) Range {
	return Range{Min: n}
}

// Calculator computes match widths. It is stateless and safe to reuse.
type Calculator struct{}

// New creates a new Calculator.
func New() *Calculator {
	return &Calculator{}
}

// Calculate returns the width range of a parsed regex.
func (c *Calculator) Calculate(re *ast.Regex) Range {
	return ast.Visit[Range](c, re)
}

// Calculate is a convenience wrapper around a fresh Calculator.
func Calculate(re *ast.Regex) Range {
	return New().Calculate(re)
}

func (c *Calculator) VisitRegex(n *ast.Regex) Range {
	return ast.Visit[Range](c, n.Pattern)
}

func (c *Calculator) VisitAlternation(n *ast.Alternation) Range {
	res := ast.Visit[Range](c, n.Alternatives[0])
	for _, alt := range n.Alternatives[1:] {
		r := ast.Visit[Range](c, alt)
		if r.Min < res.Min {
			res.Min = r.Min
		}
		switch {
		case res.Max == nil || r.Max == nil:
			res.Max = nil
		case *r.Max > *res.Max:
			res.Max = r.Max
		}
	}
	return res
}

func (c *Calculator) VisitSequence(n *ast.Sequence) Range {
	res := exact(0)
	for _, child := range n.Children {
		r := ast.Visit[Range](c, child)
		res.Min += r.Min
		if res.Max == nil || r.Max == nil {
			res.Max = nil
		} else {
			sum := *res.Max + *r.Max
			res.Max = &sum
		}
	}
	return res
}

func (c *Calculator) VisitGroup(n *ast.Group) Range {
	switch n.GroupType {
	case ast.GroupPositiveLookahead, ast.GroupNegativeLookahead,
		ast.GroupPositiveLookbehind, ast.GroupNegativeLookbehind:
		return exact(0)
	}
	return ast.Visit[Range](c, n.Child)
}

func (c *Calculator) VisitQuantifier(n *ast.Quantifier) Range {
	child := ast.Visit[Range](c, n.Child)
	qmin, qmax, ok := quantRange(n.Text)
	if !ok {
		return atLeast(0)
	}
	res := Range{Min: child.Min * qmin}
	if qmax != nil && child.Max != nil {
		m := *child.Max * *qmax
		res.Max = &m
	}
	return res
}

func quantRange(text string) (min uint32, max *uint32, ok bool) {
	one := uint32(1)
	switch text {
	case "*":
		return 0, nil, true
	case "+":
		return 1, nil, true
	case "?":
		return 0, &one, true
	}
	if len(text) < 3 || text[0] != '{' || text[len(text)-1] != '}' {
		return 0, nil, false
	}
	body := text[1 : len(text)-1]
	lo, hi, comma := strings.Cut(body, ",")
	n, ok := parseU32(lo)
	if !ok {
		return 0, nil, false
	}
	if !comma {
		return n, &n, true
	}
	if hi == "" {
		return n, nil, true
	}
	m, ok := parseU32(hi)
	if !ok {
		return 0, nil, false
	}
	return n, &m, true
}

func parseU32(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	n := uint32(0)
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + uint32(s[i]-'0')
	}
	return n, true
}

func (c *Calculator) VisitLiteral(n *ast.Literal) Range {
	return exact(uint32(len(n.Value)))
}

func (c *Calculator) VisitCharLiteral(*ast.CharLiteral) Range { return exact(1) }
func (c *Calculator) VisitCharType(*ast.CharType) Range       { return exact(1) }
func (c *Calculator) VisitDot(*ast.Dot) Range                 { return exact(1) }
func (c *Calculator) VisitCharClass(*ast.CharClass) Range     { return exact(1) }
func (c *Calculator) VisitRange(*ast.Range) Range             { return exact(1) }
func (c *Calculator) VisitUnicode(*ast.Unicode) Range         { return exact(1) }
func (c *Calculator) VisitUnicodeProp(*ast.UnicodeProp) Range { return exact(1) }
func (c *Calculator) VisitOctal(*ast.Octal) Range             { return exact(1) }
func (c *Calculator) VisitPosixClass(*ast.PosixClass) Range   { return exact(1) }
func (c *Calculator) VisitControlChar(*ast.ControlChar) Range { return exact(1) }
func (c *Calculator) VisitClassOperation(*ast.ClassOperation) Range {
	return exact(1)
}

func (c *Calculator) VisitBackref(*ast.Backref) Range       { return atLeast(0) }
func (c *Calculator) VisitSubroutine(*ast.Subroutine) Range { return atLeast(0) }
func (c *Calculator) VisitScriptRun(*ast.ScriptRun) Range   { return atLeast(0) }

func (c *Calculator) VisitAnchor(*ast.Anchor) Range         { return exact(0) }
func (c *Calculator) VisitAssertion(*ast.Assertion) Range   { return exact(0) }
func (c *Calculator) VisitKeep(*ast.Keep) Range             { return exact(0) }
func (c *Calculator) VisitComment(*ast.Comment) Range       { return exact(0) }
func (c *Calculator) VisitPcreVerb(*ast.PcreVerb) Range     { return exact(0) }
func (c *Calculator) VisitDefine(*ast.Define) Range         { return exact(0) }
func (c *Calculator) VisitLimitMatch(*ast.LimitMatch) Range { return exact(0) }
func (c *Calculator) VisitCallout(*ast.Callout) Range       { return exact(0) }
func (c *Calculator) VisitVersionCondition(*ast.VersionCondition) Range {
	return exact(0)
}

func (c *Calculator) VisitConditional(n *ast.Conditional) Range {
	yes := ast.Visit[Range](c, n.Yes)
	no := ast.Visit[Range](c, n.No)
	res := Range{Min: yes.Min}
	if no.Min < res.Min {
		res.Min = no.Min
	}
	if yes.Max != nil && no.Max != nil {
		m := *yes.Max
		if *no.Max > m {
			m = *no.Max
		}
		res.Max = &m
	}
	return res
}
