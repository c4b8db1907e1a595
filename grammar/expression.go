// Package grammar defines the TPEG abstract syntax tree: pattern
// expressions, rule and grammar definitions, and the module surface
// (imports, exports, module metadata) parsed from a grammar file.
package grammar

// Expression is one node of a TPEG pattern. The set of implementations
// is closed; consumers switch exhaustively over the concrete types.
type Expression interface {
	exprNode()
}

// Unbounded marks a Quantified expression with no upper repetition bound.
const Unbounded = -1

// StringLiteral matches an exact string. Quote records which quote
// character the author used so the source can be reprinted faithfully.
type StringLiteral struct {
	Value string
	Quote byte
}

// CharRange is one entry of a character class. A single character is
// represented with Start == End.
type CharRange struct {
	Start rune
	End   rune
}

// CharacterClass matches one character against a set of ranges,
// inverted when Negated is set.
type CharacterClass struct {
	Ranges  []CharRange
	Negated bool
}

// Identifier references another rule. Name may be qualified with a
// module alias, as in "lexer.Number".
type Identifier struct {
	Name string
}

// AnyChar matches any single character (".").
type AnyChar struct{}

// Group is an explicitly parenthesized expression. Groups are never
// collapsed, even around a single node: they record the author's
// precedence choice.
type Group struct {
	Expr Expression
}

// Sequence matches its elements in order. Always has at least two
// elements; single-element sequences collapse to the bare element.
type Sequence struct {
	Elements []Expression
}

// Choice tries its alternatives in order, taking the first match.
// Always has at least two alternatives.
type Choice struct {
	Alternatives []Expression
}

// Star matches its operand zero or more times.
type Star struct {
	Expr Expression
}

// Plus matches its operand one or more times.
type Plus struct {
	Expr Expression
}

// Optional matches its operand zero or one time.
type Optional struct {
	Expr Expression
}

// Quantified matches its operand between Min and Max times. Max is
// Unbounded for "{n,}". Min > Max is accepted as written; this layer
// does not validate quantifier bounds.
type Quantified struct {
	Expr Expression
	Min  int
	Max  int
}

// PositiveLookahead succeeds when its operand matches, consuming nothing.
type PositiveLookahead struct {
	Expr Expression
}

// NegativeLookahead succeeds when its operand does not match, consuming nothing.
type NegativeLookahead struct {
	Expr Expression
}

// LabeledExpression binds the operand's match to a capture name.
type LabeledExpression struct {
	Label string
	Expr  Expression
}

func (*StringLiteral) exprNode()     {}
func (*CharacterClass) exprNode()    {}
func (*Identifier) exprNode()        {}
func (*AnyChar) exprNode()           {}
func (*Group) exprNode()             {}
func (*Sequence) exprNode()          {}
func (*Choice) exprNode()            {}
func (*Star) exprNode()              {}
func (*Plus) exprNode()              {}
func (*Optional) exprNode()          {}
func (*Quantified) exprNode()        {}
func (*PositiveLookahead) exprNode() {}
func (*NegativeLookahead) exprNode() {}
func (*LabeledExpression) exprNode() {}

// NewSequence builds a sequence from the given elements, collapsing a
// single element to itself so real Sequence nodes always have two or
// more children.
func NewSequence(elements []Expression) Expression {
	if len(elements) == 1 {
		return elements[0]
	}
	return &Sequence{Elements: elements}
}

// NewChoice builds a choice from the given alternatives with the same
// collapsing rule as NewSequence.
func NewChoice(alternatives []Expression) Expression {
	if len(alternatives) == 1 {
		return alternatives[0]
	}
	return &Choice{Alternatives: alternatives}
}
