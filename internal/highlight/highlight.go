// Package highlight renders a pattern with terminal colors derived from
// its AST: node kinds get fixed colors, nested groups cycle through a
// palette that darkens as nesting deepens.
package highlight

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/0x4d5352/regent/ast"
)

// Kind colors, shared with the diagram styling used elsewhere in the
// project family: literals coral, classes tan, escapes green, anchors
// warm gray.
const (
	literalColor = "#ff6b6b"
	classColor   = "#cbcbba"
	escapeColor  = "#bada55"
	anchorColor  = "#6b6659"
	quantColor   = "#c9b3ff"
)

// groupPalette is cycled by group nesting depth.
var groupPalette = []string{
	"#cce5ff",
	"#d4edda",
	"#fff3cd",
	"#f8d7da",
	"#e2d5f0",
}

// Highlighter paints the original pattern text span by span. Not safe
// for concurrent use.
type Highlighter struct {
	profile termenv.Profile
	colors  []string // one entry per source byte; "" = unstyled
	depth   int
}

// New creates a Highlighter for the given color profile. With
// termenv.Ascii the output is the plain pattern text.
func New(profile termenv.Profile) *Highlighter {
	return &Highlighter{profile: profile}
}

// Render returns source with each AST span colored. source must be the
// exact text the tree was parsed from; node spans index into it.
func (h *Highlighter) Render(re *ast.Regex, source string) string {
	if h.profile == termenv.Ascii {
		return source
	}
	h.colors = make([]string, len(source))
	h.depth = 0
	ast.Visit[struct{}](h, re)

	var b strings.Builder
	i := 0
	for i < len(source) {
		j := i
		for j < len(source) && h.colors[j] == h.colors[i] {
			j++
		}
		chunk := source[i:j]
		if h.colors[i] == "" {
			b.WriteString(chunk)
		} else {
			b.WriteString(termenv.String(chunk).Foreground(h.profile.Color(h.colors[i])).String())
		}
		i = j
	}
	return b.String()
}

// groupColor cycles the palette and darkens it once per full cycle so
// deep nesting stays distinguishable.
func (h *Highlighter) groupColor(depth int) string {
	base, err := colorful.Hex(groupPalette[depth%len(groupPalette)])
	if err != nil {
		return groupPalette[0]
	}
	rounds := depth / len(groupPalette)
	if rounds > 0 {
		dark := colorful.Color{R: 0.2, G: 0.2, B: 0.2}
		frac := float64(rounds) * 0.25
		if frac > 0.75 {
			frac = 0.75
		}
		base = base.BlendLab(dark, frac)
	}
	return base.Hex()
}

func (h *Highlighter) paint(pos ast.Span, color string) {
	for i := pos.Start; i < pos.End && i < len(h.colors); i++ {
		h.colors[i] = color
	}
}

func (h *Highlighter) walk(n ast.Node) struct{} {
	ast.WalkChildren[struct{}](h, n)
	return struct{}{}
}

func (h *Highlighter) VisitRegex(n *ast.Regex) struct{}             { return h.walk(n) }
func (h *Highlighter) VisitAlternation(n *ast.Alternation) struct{} { return h.walk(n) }
func (h *Highlighter) VisitSequence(n *ast.Sequence) struct{}       { return h.walk(n) }

func (h *Highlighter) VisitGroup(n *ast.Group) struct{} {
	h.paint(n.Pos, h.groupColor(h.depth))
	h.depth++
	ast.WalkChildren[struct{}](h, n)
	h.depth--
	return struct{}{}
}

func (h *Highlighter) VisitQuantifier(n *ast.Quantifier) struct{} {
	h.paint(n.Pos, quantColor)
	return h.walk(n)
}

func (h *Highlighter) VisitLiteral(n *ast.Literal) struct{} {
	h.paint(n.Pos, literalColor)
	return struct{}{}
}

func (h *Highlighter) VisitCharLiteral(n *ast.CharLiteral) struct{} {
	h.paint(n.Pos, literalColor)
	return struct{}{}
}

func (h *Highlighter) VisitCharType(n *ast.CharType) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitDot(n *ast.Dot) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitAnchor(n *ast.Anchor) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitAssertion(n *ast.Assertion) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitKeep(n *ast.Keep) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitCharClass(n *ast.CharClass) struct{} {
	h.paint(n.Pos, classColor)
	return h.walk(n)
}

func (h *Highlighter) VisitRange(n *ast.Range) struct{} {
	h.paint(n.Pos, classColor)
	return struct{}{}
}

func (h *Highlighter) VisitBackref(n *ast.Backref) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitUnicode(n *ast.Unicode) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitUnicodeProp(n *ast.UnicodeProp) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitOctal(n *ast.Octal) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitPosixClass(n *ast.PosixClass) struct{} {
	h.paint(n.Pos, classColor)
	return struct{}{}
}

func (h *Highlighter) VisitComment(n *ast.Comment) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitConditional(n *ast.Conditional) struct{} {
	h.paint(n.Pos, h.groupColor(h.depth))
	h.depth++
	ast.WalkChildren[struct{}](h, n)
	h.depth--
	return struct{}{}
}

func (h *Highlighter) VisitSubroutine(n *ast.Subroutine) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitPcreVerb(n *ast.PcreVerb) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitDefine(n *ast.Define) struct{} {
	h.paint(n.Pos, h.groupColor(h.depth))
	h.depth++
	ast.WalkChildren[struct{}](h, n)
	h.depth--
	return struct{}{}
}

func (h *Highlighter) VisitLimitMatch(n *ast.LimitMatch) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitCallout(n *ast.Callout) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitClassOperation(n *ast.ClassOperation) struct{} {
	h.paint(n.Pos, classColor)
	return h.walk(n)
}

func (h *Highlighter) VisitControlChar(n *ast.ControlChar) struct{} {
	h.paint(n.Pos, escapeColor)
	return struct{}{}
}

func (h *Highlighter) VisitScriptRun(n *ast.ScriptRun) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}

func (h *Highlighter) VisitVersionCondition(n *ast.VersionCondition) struct{} {
	h.paint(n.Pos, anchorColor)
	return struct{}{}
}
