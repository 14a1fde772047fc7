package literal

import (
	"strings"

	"github.com/0x4d5352/regent/ast"
)

// Extractor computes the literal Set of a pattern. It tracks the
// case-insensitive scope opened by the i flag and by inline-flag groups.
// Not safe for concurrent use.
type Extractor struct {
	caseInsensitive []bool
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the literal Set for a parsed regex.
func (e *Extractor) Extract(re *ast.Regex) Set {
	return ast.Visit[Set](e, re)
}

// Extract is a convenience wrapper around a fresh Extractor.
func Extract(re *ast.Regex) Set {
	return NewExtractor().Extract(re)
}

func (e *Extractor) ci() bool {
	return e.caseInsensitive[len(e.caseInsensitive)-1]
}

func (e *Extractor) VisitRegex(n *ast.Regex) Set {
	e.caseInsensitive = append(e.caseInsensitive[:0], strings.ContainsRune(n.Flags, 'i'))
	return ast.Visit[Set](e, n.Pattern)
}

func (e *Extractor) VisitAlternation(n *ast.Alternation) Set {
	res := ast.Visit[Set](e, n.Alternatives[0])
	for _, alt := range n.Alternatives[1:] {
		res = res.Unite(ast.Visit[Set](e, alt))
	}
	return res
}

func (e *Extractor) VisitSequence(n *ast.Sequence) Set {
	res := FromString("")
	for _, child := range n.Children {
		res = res.Concat(ast.Visit[Set](e, child))
	}
	return res
}

func (e *Extractor) VisitGroup(n *ast.Group) Set {
	switch n.GroupType {
	case ast.GroupPositiveLookahead, ast.GroupNegativeLookahead,
		ast.GroupPositiveLookbehind, ast.GroupNegativeLookbehind:
		// Zero-width: consumes nothing.
		return FromString("")
	case ast.GroupInlineFlags:
		e.caseInsensitive = append(e.caseInsensitive, applyCaseFlag(n.Flags, e.ci()))
		defer func() { e.caseInsensitive = e.caseInsensitive[:len(e.caseInsensitive)-1] }()
		return ast.Visit[Set](e, n.Child)
	default:
		return ast.Visit[Set](e, n.Child)
	}
}

func applyCaseFlag(flags string, base bool) bool {
	enable, disable, _ := strings.Cut(flags, "-")
	if strings.ContainsRune(enable, 'i') {
		return true
	}
	if strings.ContainsRune(disable, 'i') {
		return false
	}
	return base
}

func (e *Extractor) VisitQuantifier(n *ast.Quantifier) Set {
	min, max, ok := quantRange(n.Text)
	if !ok {
		return Empty()
	}
	switch {
	case min == max:
		if min == 0 {
			return FromString("")
		}
		child := ast.Visit[Set](e, n.Child)
		res := child
		for i := 1; i < min; i++ {
			res = res.Concat(child)
			if res.IsEmpty() {
				return res
			}
		}
		return res
	case max == -1 && min >= 1:
		// The child appears at least once; its prefixes survive, the
		// suffix is lost.
		child := ast.Visit[Set](e, n.Child)
		return capped(Set{Prefixes: child.Prefixes})
	default:
		return Empty()
	}
}

func quantRange(text string) (min, max int, ok bool) {
	switch text {
	case "*":
		return 0, -1, true
	case "+":
		return 1, -1, true
	case "?":
		return 0, 1, true
	}
	if len(text) < 3 || text[0] != '{' || text[len(text)-1] != '}' {
		return 0, 0, false
	}
	body := text[1 : len(text)-1]
	lo, hi, comma := strings.Cut(body, ",")
	n := 0
	for i := 0; i < len(lo); i++ {
		if lo[i] < '0' || lo[i] > '9' {
			return 0, 0, false
		}
		n = n*10 + int(lo[i]-'0')
	}
	if lo == "" {
		return 0, 0, false
	}
	if !comma {
		return n, n, true
	}
	if hi == "" {
		return n, -1, true
	}
	m := 0
	for i := 0; i < len(hi); i++ {
		if hi[i] < '0' || hi[i] > '9' {
			return 0, 0, false
		}
		m = m*10 + int(hi[i]-'0')
	}
	return n, m, true
}

func (e *Extractor) VisitLiteral(n *ast.Literal) Set {
	return e.fromText(n.Value)
}

func (e *Extractor) VisitCharLiteral(n *ast.CharLiteral) Set {
	return e.fromText(string(n.Char))
}

func (e *Extractor) fromText(v string) Set {
	if e.ci() {
		return ExpandCaseInsensitive(v)
	}
	return FromString(v)
}

// VisitCharClass expands a non-negated class whose parts are all plain
// characters into the alternation of those characters. Anything else in
// the class makes the whole class opaque.
func (e *Extractor) VisitCharClass(n *ast.CharClass) Set {
	if n.Negated {
		return Empty()
	}
	var parts []ast.Node
	switch expr := n.Expression.(type) {
	case *ast.Alternation:
		parts = expr.Alternatives
	default:
		parts = []ast.Node{expr}
	}
	res := Empty()
	for i, part := range parts {
		var text string
		switch p := part.(type) {
		case *ast.Literal:
			text = p.Value
		case *ast.CharLiteral:
			text = string(p.Char)
		default:
			return Empty()
		}
		one := e.fromText(text)
		if i == 0 {
			res = one
		} else {
			res = res.Unite(one)
		}
	}
	return res
}

func (e *Extractor) VisitCharType(*ast.CharType) Set { return Empty() }
func (e *Extractor) VisitDot(*ast.Dot) Set           { return Empty() }

func (e *Extractor) VisitAnchor(*ast.Anchor) Set       { return FromString("") }
func (e *Extractor) VisitAssertion(*ast.Assertion) Set { return FromString("") }
func (e *Extractor) VisitKeep(*ast.Keep) Set           { return FromString("") }
func (e *Extractor) VisitComment(*ast.Comment) Set     { return FromString("") }
func (e *Extractor) VisitPcreVerb(*ast.PcreVerb) Set   { return FromString("") }
func (e *Extractor) VisitLimitMatch(*ast.LimitMatch) Set {
	return FromString("")
}
func (e *Extractor) VisitCallout(*ast.Callout) Set { return FromString("") }

func (e *Extractor) VisitRange(*ast.Range) Set             { return Empty() }
func (e *Extractor) VisitBackref(*ast.Backref) Set         { return Empty() }
func (e *Extractor) VisitUnicode(*ast.Unicode) Set         { return Empty() }
func (e *Extractor) VisitUnicodeProp(*ast.UnicodeProp) Set { return Empty() }
func (e *Extractor) VisitOctal(*ast.Octal) Set             { return Empty() }
func (e *Extractor) VisitPosixClass(*ast.PosixClass) Set   { return Empty() }
func (e *Extractor) VisitConditional(*ast.Conditional) Set { return Empty() }
func (e *Extractor) VisitSubroutine(*ast.Subroutine) Set   { return Empty() }
func (e *Extractor) VisitDefine(*ast.Define) Set           { return Empty() }
func (e *Extractor) VisitClassOperation(*ast.ClassOperation) Set {
	return Empty()
}
func (e *Extractor) VisitControlChar(*ast.ControlChar) Set { return Empty() }
func (e *Extractor) VisitScriptRun(*ast.ScriptRun) Set     { return Empty() }
func (e *Extractor) VisitVersionCondition(*ast.VersionCondition) Set {
	return Empty()
}
