// Package compiler re-emits a parsed pattern as canonical PCRE text.
// Compiling a freshly parsed pattern reaches a fixed point after at most
// one round trip: parse(compile(parse(p))) compiles to the same bytes.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0x4d5352/regent/ast"
)

// Compiler emits pattern text for an AST. It carries the active delimiter
// and one context bit (inside/outside a character class) that drives
// escaping. Not safe for concurrent use.
type Compiler struct {
	delim       byte
	closer      byte
	flags       string
	inCharClass bool
}

// New creates a new Compiler.
func New() *Compiler {
	return &Compiler{}
}

// Compile returns the canonical pattern text for a parsed regex,
// including delimiters and flags.
func (c *Compiler) Compile(re *ast.Regex) string {
	return ast.Visit[string](c, re)
}

// Compile is a convenience wrapper around a fresh Compiler.
func Compile(re *ast.Regex) string {
	return New().Compile(re)
}

func closingDelimiter(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	default:
		return open
	}
}

func (c *Compiler) VisitRegex(n *ast.Regex) string {
	c.delim = n.Delimiter
	c.closer = closingDelimiter(n.Delimiter)
	c.flags = n.Flags
	c.inCharClass = false
	return string(n.Delimiter) + ast.Visit[string](c, n.Pattern) + string(c.closer) + n.Flags
}

func (c *Compiler) VisitAlternation(n *ast.Alternation) string {
	sep := "|"
	if c.inCharClass {
		// Class parts are juxtaposed.
		sep = ""
	}
	parts := make([]string, len(n.Alternatives))
	for i, alt := range n.Alternatives {
		parts[i] = ast.Visit[string](c, alt)
	}
	return strings.Join(parts, sep)
}

func (c *Compiler) VisitSequence(n *ast.Sequence) string {
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(ast.Visit[string](c, child))
	}
	return b.String()
}

func (c *Compiler) VisitGroup(n *ast.Group) string {
	body := ast.Visit[string](c, n.Child)
	switch n.GroupType {
	case ast.GroupCapturing:
		return "(" + body + ")"
	case ast.GroupNonCapturing:
		return "(?:" + body + ")"
	case ast.GroupNamed:
		return "(?<" + n.Name + ">" + body + ")"
	case ast.GroupPositiveLookahead:
		return "(?=" + body + ")"
	case ast.GroupNegativeLookahead:
		return "(?!" + body + ")"
	case ast.GroupPositiveLookbehind:
		return "(?<=" + body + ")"
	case ast.GroupNegativeLookbehind:
		return "(?<!" + body + ")"
	case ast.GroupAtomic:
		return "(?>" + body + ")"
	case ast.GroupBranchReset:
		return "(?|" + body + ")"
	case ast.GroupInlineFlags:
		if body == "" {
			return "(?" + n.Flags + ")"
		}
		return "(?" + n.Flags + ":" + body + ")"
	}
	panic(fmt.Sprintf("compiler: unknown group type %q", n.GroupType))
}

func (c *Compiler) VisitQuantifier(n *ast.Quantifier) string {
	body := ast.Visit[string](c, n.Child)
	switch n.Child.(type) {
	case *ast.Sequence, *ast.Alternation:
		// Preserve grouping: the quantifier must apply to the whole child.
		body = "(?:" + body + ")"
	}
	suffix := ""
	switch n.Kind {
	case ast.QuantLazy:
		suffix = "?"
	case ast.QuantPossessive:
		suffix = "+"
	}
	return body + n.Text + suffix
}

func (c *Compiler) VisitLiteral(n *ast.Literal) string {
	var b strings.Builder
	for i := 0; i < len(n.Value); i++ {
		b.WriteString(c.escapeByte(n.Value[i]))
	}
	return b.String()
}

func (c *Compiler) escapeByte(ch byte) string {
	switch ch {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\f':
		return `\f`
	case 0x1B:
		return `\e`
	}
	if ch < 32 || ch == 127 || ch >= 128 {
		return fmt.Sprintf(`\x%02X`, ch)
	}
	if c.isMeta(ch) {
		return `\` + string(ch)
	}
	return string(ch)
}

func (c *Compiler) isMeta(ch byte) bool {
	if c.inCharClass {
		switch ch {
		case '\\', ']', '-', '^':
			return true
		}
		// Paired delimiters take part in the outer bracket counting even
		// inside a class; unpaired ones do not.
		if c.delim != c.closer && (ch == c.delim || ch == c.closer) {
			return true
		}
		return false
	}
	switch ch {
	case '\\', '.', '^', '$', '[', '(', ')', '|', '*', '+', '?', '{', '}':
		return true
	case ']':
		// A ] outside a class needs no escape.
		return false
	}
	return ch == c.delim || ch == c.closer
}

func (c *Compiler) VisitCharLiteral(n *ast.CharLiteral) string {
	return n.Original
}

func (c *Compiler) VisitCharType(n *ast.CharType) string {
	return `\` + string(n.Code)
}

func (c *Compiler) VisitDot(*ast.Dot) string { return "." }

func (c *Compiler) VisitAnchor(n *ast.Anchor) string {
	return string(n.Char)
}

func (c *Compiler) VisitAssertion(n *ast.Assertion) string {
	return `\` + string(n.Code)
}

func (c *Compiler) VisitKeep(*ast.Keep) string { return `\K` }

func (c *Compiler) VisitCharClass(n *ast.CharClass) string {
	saved := c.inCharClass
	c.inCharClass = true
	body := ast.Visit[string](c, n.Expression)
	c.inCharClass = saved
	if n.Negated {
		return "[^" + body + "]"
	}
	return "[" + body + "]"
}

func (c *Compiler) VisitRange(n *ast.Range) string {
	return ast.Visit[string](c, n.Start) + "-" + ast.Visit[string](c, n.End)
}

func (c *Compiler) VisitBackref(n *ast.Backref) string {
	return `\` + n.Ref
}

func (c *Compiler) VisitUnicode(n *ast.Unicode) string {
	return `\` + n.Code
}

func (c *Compiler) VisitUnicodeProp(n *ast.UnicodeProp) string {
	p := `\p`
	if n.Negated {
		p = `\P`
	}
	if n.HasBraces {
		return p + "{" + n.Name + "}"
	}
	return p + n.Name
}

func (c *Compiler) VisitOctal(n *ast.Octal) string {
	if n.Modern {
		return `\o{` + n.Digits + `}`
	}
	return `\` + n.Digits
}

func (c *Compiler) VisitPosixClass(n *ast.PosixClass) string {
	return "[:" + n.Name + ":]"
}

func (c *Compiler) VisitComment(n *ast.Comment) string {
	if strings.ContainsRune(c.flags, 'x') && strings.HasPrefix(n.Text, "#") {
		return n.Text
	}
	return "(?#" + n.Text + ")"
}

func (c *Compiler) VisitConditional(n *ast.Conditional) string {
	yes := ast.Visit[string](c, n.Yes)
	no := ast.Visit[string](c, n.No)
	branches := yes
	if no != "" {
		branches += "|" + no
	}
	if g, ok := n.Condition.(*ast.Group); ok {
		return "(?" + ast.Visit[string](c, g) + branches + ")"
	}
	var cond string
	switch cn := n.Condition.(type) {
	case *ast.Backref:
		cond = cn.Ref
	case *ast.Subroutine:
		cond = cn.Ref
	case *ast.VersionCondition:
		cond = "VERSION" + cn.Operator + cn.Version
	default:
		cond = ast.Visit[string](c, n.Condition)
	}
	return "(?(" + cond + ")" + branches + ")"
}

func (c *Compiler) VisitSubroutine(n *ast.Subroutine) string {
	switch n.Syntax {
	case "&":
		return "(?&" + n.Ref + ")"
	case "P>":
		return "(?P>" + n.Ref + ")"
	case "g":
		return `\g<` + n.Ref + ">"
	default:
		return "(?" + n.Ref + ")"
	}
}

func (c *Compiler) VisitPcreVerb(n *ast.PcreVerb) string {
	return "(*" + n.Verb + ")"
}

func (c *Compiler) VisitDefine(n *ast.Define) string {
	return "(?(DEFINE)" + ast.Visit[string](c, n.Content) + ")"
}

func (c *Compiler) VisitLimitMatch(n *ast.LimitMatch) string {
	return "(*LIMIT_MATCH=" + strconv.FormatUint(uint64(n.Limit), 10) + ")"
}

func (c *Compiler) VisitCallout(n *ast.Callout) string {
	if n.IsString {
		return `(?C"` + n.Identifier + `")`
	}
	return "(?C" + n.Identifier + ")"
}

func (c *Compiler) VisitClassOperation(n *ast.ClassOperation) string {
	op := "&&"
	if n.OpType == ast.ClassSubtraction {
		op = "--"
	}
	return ast.Visit[string](c, n.Left) + op + ast.Visit[string](c, n.Right)
}

func (c *Compiler) VisitControlChar(n *ast.ControlChar) string {
	return `\c` + string(n.Char)
}

func (c *Compiler) VisitScriptRun(n *ast.ScriptRun) string {
	return "(*script_run:" + n.Name + ")"
}

func (c *Compiler) VisitVersionCondition(n *ast.VersionCondition) string {
	return "VERSION" + n.Operator + n.Version
}
