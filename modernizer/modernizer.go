// Package modernizer rewrites a parsed pattern into a simpler equivalent:
// digit classes become \d, whitespace classes become \s, redundant
// non-capturing groups are unwrapped, gratuitous escapes are dropped and
// numbered backreferences take the \g{N} form. The input tree is never
// mutated; replacements keep the originating node's positions.
package modernizer

import (
	"strings"

	"github.com/0x4d5352/regent/ast"
)

// Modernizer is a pure rewriter over the AST. Not safe for concurrent use.
type Modernizer struct {
	delim       byte
	inCharClass bool
}

// New creates a new Modernizer.
func New() *Modernizer {
	return &Modernizer{}
}

// Modernize returns a rewritten copy of re.
func (m *Modernizer) Modernize(re *ast.Regex) *ast.Regex {
	return ast.Visit[ast.Node](m, re).(*ast.Regex)
}

// Modernize is a convenience wrapper around a fresh Modernizer.
func Modernize(re *ast.Regex) *ast.Regex {
	return New().Modernize(re)
}

func (m *Modernizer) VisitRegex(n *ast.Regex) ast.Node {
	m.delim = n.Delimiter
	m.inCharClass = false
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitAlternation(n *ast.Alternation) ast.Node {
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitSequence(n *ast.Sequence) ast.Node {
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitGroup(n *ast.Group) ast.Node {
	if n.GroupType == ast.GroupNonCapturing && n.Name == "" && n.Flags == "" {
		// (?:X) carries no meaning on its own; unwrap.
		return ast.Visit[ast.Node](m, n.Child)
	}
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitQuantifier(n *ast.Quantifier) ast.Node {
	// A non-capturing group directly under a quantifier preserves the
	// quantifier's target; it must survive the unwrap rule.
	if g, ok := n.Child.(*ast.Group); ok &&
		g.GroupType == ast.GroupNonCapturing && g.Name == "" && g.Flags == "" {
		child := &ast.Group{
			Pos:       g.Pos,
			Child:     ast.Visit[ast.Node](m, g.Child),
			GroupType: g.GroupType,
		}
		return &ast.Quantifier{Pos: n.Pos, Child: child, Text: n.Text, Kind: n.Kind}
	}
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitLiteral(n *ast.Literal) ast.Node { return n }

func (m *Modernizer) VisitCharLiteral(n *ast.CharLiteral) ast.Node {
	if n.Original == `\`+string(n.Char) && !m.isMeta(n.Char) {
		return &ast.Literal{Pos: n.Pos, Value: string(n.Char)}
	}
	return n
}

func (m *Modernizer) isMeta(r rune) bool {
	if r > 0xFF {
		return false
	}
	if byte(r) == m.delim {
		return true
	}
	if m.inCharClass {
		return strings.ContainsRune(`\]-^`, r)
	}
	return strings.ContainsRune(`\.^$[]()|*+?{}`, r)
}

func (m *Modernizer) VisitCharType(n *ast.CharType) ast.Node { return n }
func (m *Modernizer) VisitDot(n *ast.Dot) ast.Node           { return n }
func (m *Modernizer) VisitAnchor(n *ast.Anchor) ast.Node     { return n }
func (m *Modernizer) VisitAssertion(n *ast.Assertion) ast.Node {
	return n
}
func (m *Modernizer) VisitKeep(n *ast.Keep) ast.Node { return n }

func (m *Modernizer) VisitCharClass(n *ast.CharClass) ast.Node {
	if !n.Negated {
		if isDigitRange(n.Expression) {
			return &ast.CharType{Pos: n.Pos, Code: 'd'}
		}
		if isWhitespaceClass(n.Expression) {
			return &ast.CharType{Pos: n.Pos, Code: 's'}
		}
	}
	saved := m.inCharClass
	m.inCharClass = true
	defer func() { m.inCharClass = saved }()
	return ast.RewriteChildren(m, n)
}

// isDigitRange reports whether expr is the single range 0-9.
func isDigitRange(expr ast.Node) bool {
	r, ok := expr.(*ast.Range)
	if !ok {
		return false
	}
	return endpointChar(r.Start) == '0' && endpointChar(r.End) == '9'
}

// isWhitespaceClass reports whether expr is exactly the five escapes
// \t \n \r \f \v in that order.
func isWhitespaceClass(expr ast.Node) bool {
	alt, ok := expr.(*ast.Alternation)
	if !ok || len(alt.Alternatives) != 5 {
		return false
	}
	want := []string{`\t`, `\n`, `\r`, `\f`, `\v`}
	for i, part := range alt.Alternatives {
		var text string
		switch p := part.(type) {
		case *ast.CharLiteral:
			text = p.Original
		case *ast.CharType:
			// The parser reads \v as a character type.
			text = `\` + string(p.Code)
		}
		if text != want[i] {
			return false
		}
	}
	return true
}

func endpointChar(n ast.Node) rune {
	switch n := n.(type) {
	case *ast.Literal:
		runes := []rune(n.Value)
		if len(runes) == 1 {
			return runes[0]
		}
	case *ast.CharLiteral:
		return n.Char
	}
	return -1
}

func (m *Modernizer) VisitRange(n *ast.Range) ast.Node {
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitBackref(n *ast.Backref) ast.Node {
	if isDigits(n.Ref) {
		return &ast.Backref{Pos: n.Pos, Ref: "g{" + n.Ref + "}"}
	}
	return n
}

func (m *Modernizer) VisitUnicode(n *ast.Unicode) ast.Node         { return n }
func (m *Modernizer) VisitUnicodeProp(n *ast.UnicodeProp) ast.Node { return n }
func (m *Modernizer) VisitOctal(n *ast.Octal) ast.Node             { return n }
func (m *Modernizer) VisitPosixClass(n *ast.PosixClass) ast.Node   { return n }
func (m *Modernizer) VisitComment(n *ast.Comment) ast.Node         { return n }

func (m *Modernizer) VisitConditional(n *ast.Conditional) ast.Node {
	// Bare conditional references keep their written form; only the
	// branches are rewritten.
	cond := n.Condition
	if _, ok := cond.(*ast.Backref); !ok {
		cond = ast.Visit[ast.Node](m, cond)
	}
	return &ast.Conditional{
		Pos:       n.Pos,
		Condition: cond,
		Yes:       ast.Visit[ast.Node](m, n.Yes),
		No:        ast.Visit[ast.Node](m, n.No),
	}
}

func (m *Modernizer) VisitSubroutine(n *ast.Subroutine) ast.Node { return n }
func (m *Modernizer) VisitPcreVerb(n *ast.PcreVerb) ast.Node     { return n }

func (m *Modernizer) VisitDefine(n *ast.Define) ast.Node {
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitLimitMatch(n *ast.LimitMatch) ast.Node { return n }
func (m *Modernizer) VisitCallout(n *ast.Callout) ast.Node       { return n }

func (m *Modernizer) VisitClassOperation(n *ast.ClassOperation) ast.Node {
	return ast.RewriteChildren(m, n)
}

func (m *Modernizer) VisitControlChar(n *ast.ControlChar) ast.Node { return n }
func (m *Modernizer) VisitScriptRun(n *ast.ScriptRun) ast.Node     { return n }
func (m *Modernizer) VisitVersionCondition(n *ast.VersionCondition) ast.Node {
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
