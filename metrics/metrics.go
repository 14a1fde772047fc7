// Package metrics reports node-type counts and the maximum nesting depth
// of a parsed pattern.
package metrics

import "github.com/0x4d5352/regent/ast"

// Snapshot is the result of one collection run.
type Snapshot struct {
	Counts   map[string]uint32
	Total    uint32
	MaxDepth uint32
}

// Collector walks the tree depth-first and tallies every node. Not safe
// for concurrent use.
type Collector struct {
	snap  Snapshot
	depth uint32
}

// New creates a new Collector.
func New() *Collector {
	return &Collector{}
}

// Collect returns the metrics snapshot for a parsed regex. The root
// counts as depth 1.
func (c *Collector) Collect(re *ast.Regex) Snapshot {
	c.snap = Snapshot{Counts: make(map[string]uint32)}
	c.depth = 0
	ast.Visit[struct{}](c, re)
	return c.snap
}

// Collect is a convenience wrapper around a fresh Collector.
func Collect(re *ast.Regex) Snapshot {
	return New().Collect(re)
}

func (c *Collector) visit(n ast.Node) struct{} {
	c.depth++
	if c.depth > c.snap.MaxDepth {
		c.snap.MaxDepth = c.depth
	}
	c.snap.Counts[n.Type()]++
	c.snap.Total++
	ast.WalkChildren[struct{}](c, n)
	c.depth--
	return struct{}{}
}

func (c *Collector) VisitRegex(n *ast.Regex) struct{}             { return c.visit(n) }
func (c *Collector) VisitAlternation(n *ast.Alternation) struct{} { return c.visit(n) }
func (c *Collector) VisitSequence(n *ast.Sequence) struct{}       { return c.visit(n) }
func (c *Collector) VisitGroup(n *ast.Group) struct{}             { return c.visit(n) }
func (c *Collector) VisitQuantifier(n *ast.Quantifier) struct{}   { return c.visit(n) }
func (c *Collector) VisitLiteral(n *ast.Literal) struct{}         { return c.visit(n) }
func (c *Collector) VisitCharLiteral(n *ast.CharLiteral) struct{} { return c.visit(n) }
func (c *Collector) VisitCharType(n *ast.CharType) struct{}       { return c.visit(n) }
func (c *Collector) VisitDot(n *ast.Dot) struct{}                 { return c.visit(n) }
func (c *Collector) VisitAnchor(n *ast.Anchor) struct{}           { return c.visit(n) }
func (c *Collector) VisitAssertion(n *ast.Assertion) struct{}     { return c.visit(n) }
func (c *Collector) VisitKeep(n *ast.Keep) struct{}               { return c.visit(n) }
func (c *Collector) VisitCharClass(n *ast.CharClass) struct{}     { return c.visit(n) }
func (c *Collector) VisitRange(n *ast.Range) struct{}             { return c.visit(n) }
func (c *Collector) VisitBackref(n *ast.Backref) struct{}         { return c.visit(n) }
func (c *Collector) VisitUnicode(n *ast.Unicode) struct{}         { return c.visit(n) }
func (c *Collector) VisitUnicodeProp(n *ast.UnicodeProp) struct{} { return c.visit(n) }
func (c *Collector) VisitOctal(n *ast.Octal) struct{}             { return c.visit(n) }
func (c *Collector) VisitPosixClass(n *ast.PosixClass) struct{}   { return c.visit(n) }
func (c *Collector) VisitComment(n *ast.Comment) struct{}         { return c.visit(n) }
func (c *Collector) VisitConditional(n *ast.Conditional) struct{} { return c.visit(n) }
func (c *Collector) VisitSubroutine(n *ast.Subroutine) struct{}   { return c.visit(n) }
func (c *Collector) VisitPcreVerb(n *ast.PcreVerb) struct{}       { return c.visit(n) }
func (c *Collector) VisitDefine(n *ast.Define) struct{}           { return c.visit(n) }
func (c *Collector) VisitLimitMatch(n *ast.LimitMatch) struct{}   { return c.visit(n) }
func (c *Collector) VisitCallout(n *ast.Callout) struct{}         { return c.visit(n) }
func (c *Collector) VisitClassOperation(n *ast.ClassOperation) struct{} {
	return c.visit(n)
}
func (c *Collector) VisitControlChar(n *ast.ControlChar) struct{} { return c.visit(n) }
func (c *Collector) VisitScriptRun(n *ast.ScriptRun) struct{}     { return c.visit(n) }
func (c *Collector) VisitVersionCondition(n *ast.VersionCondition) struct{} {
	return c.visit(n)
}
