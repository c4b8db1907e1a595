package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/tpeg/grammar"
)

// TPEGEncoder writes a module file back out as canonical TPEG source:
// one rule per line, double-quoted strings, exports and annotations
// ahead of the rules.
type TPEGEncoder struct {
	w io.Writer
}

func NewTPEGEncoder(w io.Writer) *TPEGEncoder {
	return &TPEGEncoder{w: w}
}

func (e *TPEGEncoder) Encode(file *grammar.ModuleFile) error {
	var b strings.Builder
	for _, imp := range file.Imports {
		writeImport(&b, imp)
	}
	if len(file.Imports) > 0 {
		b.WriteByte('\n')
	}
	for i, g := range file.Grammars {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeGrammar(&b, &g)
	}
	_, err := io.WriteString(e.w, b.String())
	return err
}

func writeImport(b *strings.Builder, imp grammar.ImportStatement) {
	fmt.Fprintf(b, "import %q", imp.ModulePath)
	if len(imp.Selective) > 0 {
		b.WriteString(" { ")
		b.WriteString(strings.Join(imp.Selective, ", "))
		b.WriteString(" }")
	}
	if imp.Version != "" {
		fmt.Fprintf(b, " version %q", imp.Version)
	}
	if imp.Alias != "" {
		fmt.Fprintf(b, " as %s", imp.Alias)
	}
	b.WriteByte('\n')
}

func writeGrammar(b *strings.Builder, g *grammar.GrammarDefinition) {
	b.WriteString("grammar ")
	b.WriteString(g.Name)
	if g.Extends != "" {
		b.WriteString(" extends ")
		b.WriteString(g.Extends)
	}
	b.WriteString(" {\n")
	for _, a := range g.Annotations {
		fmt.Fprintf(b, "  @%s: %q\n", a.Key, a.Value)
	}
	if g.Exports != nil {
		fmt.Fprintf(b, "  @export: [%s]\n", strings.Join(g.Exports.Rules, ", "))
	}
	if len(g.Annotations) > 0 || g.Exports != nil {
		b.WriteByte('\n')
	}
	for _, rule := range g.Rules {
		if rule.Documentation != "" {
			for _, line := range strings.Split(rule.Documentation, "\n") {
				fmt.Fprintf(b, "  /// %s\n", line)
			}
		}
		fmt.Fprintf(b, "  %s = %s\n", rule.Name, ExprString(rule.Pattern))
	}
	b.WriteString("}\n")
}

// ExprString renders a pattern expression as TPEG source. Operands of
// postfix and prefix operators that bind looser than the operator are
// parenthesized, so hand-built trees print unambiguously; parser-built
// trees carry explicit Group nodes and print as authored.
func ExprString(expr grammar.Expression) string {
	var b strings.Builder
	writeExpr(&b, expr)
	return b.String()
}

func writeExpr(b *strings.Builder, expr grammar.Expression) {
	switch e := expr.(type) {
	case *grammar.StringLiteral:
		writeStringLiteral(b, e)
	case *grammar.CharacterClass:
		writeCharacterClass(b, e)
	case *grammar.Identifier:
		b.WriteString(e.Name)
	case *grammar.AnyChar:
		b.WriteByte('.')
	case *grammar.Group:
		b.WriteByte('(')
		writeExpr(b, e.Expr)
		b.WriteByte(')')
	case *grammar.Sequence:
		for i, el := range e.Elements {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeOperand(b, el, false)
		}
	case *grammar.Choice:
		for i, alt := range e.Alternatives {
			if i > 0 {
				b.WriteString(" / ")
			}
			writeOperand(b, alt, true)
		}
	case *grammar.Star:
		writeTightOperand(b, e.Expr)
		b.WriteByte('*')
	case *grammar.Plus:
		writeTightOperand(b, e.Expr)
		b.WriteByte('+')
	case *grammar.Optional:
		writeTightOperand(b, e.Expr)
		b.WriteByte('?')
	case *grammar.Quantified:
		writeTightOperand(b, e.Expr)
		if e.Max == grammar.Unbounded {
			fmt.Fprintf(b, "{%d,}", e.Min)
		} else if e.Max == e.Min {
			fmt.Fprintf(b, "{%d}", e.Min)
		} else {
			fmt.Fprintf(b, "{%d,%d}", e.Min, e.Max)
		}
	case *grammar.PositiveLookahead:
		b.WriteByte('&')
		writeLookaheadOperand(b, e.Expr)
	case *grammar.NegativeLookahead:
		b.WriteByte('!')
		writeLookaheadOperand(b, e.Expr)
	case *grammar.LabeledExpression:
		b.WriteString(e.Label)
		b.WriteByte(':')
		writeTightOperand(b, e.Expr)
	default:
		panic(fmt.Sprintf("unhandled expression type %T", expr))
	}
}

// writeOperand parenthesizes sequence elements that are themselves
// choices, and (when inChoice is false) nothing else: sequences nest
// directly inside choices.
func writeOperand(b *strings.Builder, expr grammar.Expression, inChoice bool) {
	if _, ok := expr.(*grammar.Choice); ok && !inChoice {
		b.WriteByte('(')
		writeExpr(b, expr)
		b.WriteByte(')')
		return
	}
	writeExpr(b, expr)
}

// writeTightOperand parenthesizes operands of postfix and label
// operators when they bind looser than the operator itself.
func writeTightOperand(b *strings.Builder, expr grammar.Expression) {
	switch expr.(type) {
	case *grammar.Sequence, *grammar.Choice, *grammar.LabeledExpression:
		b.WriteByte('(')
		writeExpr(b, expr)
		b.WriteByte(')')
	default:
		writeExpr(b, expr)
	}
}

// writeLookaheadOperand parenthesizes lookahead operands. The postfix
// repetition operators apply after a lookahead prefix, so a repetition
// node under a lookahead needs explicit grouping on top of what
// writeTightOperand covers.
func writeLookaheadOperand(b *strings.Builder, expr grammar.Expression) {
	switch expr.(type) {
	case *grammar.Sequence, *grammar.Choice, *grammar.LabeledExpression,
		*grammar.Star, *grammar.Plus, *grammar.Optional, *grammar.Quantified:
		b.WriteByte('(')
		writeExpr(b, expr)
		b.WriteByte(')')
	default:
		writeExpr(b, expr)
	}
}

func writeStringLiteral(b *strings.Builder, e *grammar.StringLiteral) {
	quote := e.Quote
	if quote == 0 {
		quote = '"'
	}
	b.WriteByte(quote)
	for i := 0; i < len(e.Value); i++ {
		writeEscaped(b, rune(e.Value[i]), rune(quote))
	}
	b.WriteByte(quote)
}

func writeCharacterClass(b *strings.Builder, e *grammar.CharacterClass) {
	b.WriteByte('[')
	if e.Negated {
		b.WriteByte('^')
	}
	for _, r := range e.Ranges {
		writeEscaped(b, r.Start, ']')
		if r.End != r.Start {
			b.WriteByte('-')
			writeEscaped(b, r.End, ']')
		}
	}
	b.WriteByte(']')
}

func writeEscaped(b *strings.Builder, r rune, quote rune) {
	switch r {
	case '\n':
		b.WriteString(`\n`)
	case '\t':
		b.WriteString(`\t`)
	case '\r':
		b.WriteString(`\r`)
	case 0:
		b.WriteString(`\0`)
	case '\\':
		b.WriteString(`\\`)
	case quote:
		b.WriteByte('\\')
		b.WriteRune(r)
	case '-', '^':
		if quote == ']' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	default:
		b.WriteRune(r)
	}
}
