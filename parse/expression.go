package parse

import (
	"unicode/utf8"

	"github.com/dhamidi/tpeg/grammar"
)

// ParseExpression parses a complete TPEG pattern. The whole input must
// be consumed apart from trailing whitespace.
func ParseExpression(input string) (grammar.Expression, error) {
	p := newParser("", input)
	p.skipSpace()
	expr, err := p.parseChoice()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.expected("end of pattern")
	}
	return expr, nil
}

// Precedence, tightest to loosest: primary, lookahead, repetition,
// label, sequence, choice. Each level delegates to the next tighter
// one and restores the position when an attempt fails.

func (p *parser) parseChoice() (grammar.Expression, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	alternatives := []grammar.Expression{first}
	for {
		save := p.pos
		p.skipSpace()
		if !p.consume('/') {
			p.pos = save
			break
		}
		p.skipSpace()
		alt, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}
	return grammar.NewChoice(alternatives), nil
}

func (p *parser) parseSequence() (grammar.Expression, error) {
	first, err := p.parseLabeled()
	if err != nil {
		return nil, err
	}
	elements := []grammar.Expression{first}
	for {
		save := p.pos
		p.skipSpace()
		element, err := p.parseLabeled()
		if err != nil {
			p.pos = save
			break
		}
		elements = append(elements, element)
	}
	return grammar.NewSequence(elements), nil
}

// parseLabeled recognizes `name:` followed by a repetition-level term.
// Labeling is eager: once the identifier and colon have matched, a
// failing operand fails the whole parse at this position rather than
// retrying as an unlabeled expression.
func (p *parser) parseLabeled() (grammar.Expression, error) {
	save := p.pos
	if name, ok := p.scanName(); ok && p.consume(':') {
		p.skipSpace()
		expr, err := p.parseRepetition()
		if err != nil {
			return nil, err
		}
		return &grammar.LabeledExpression{Label: name, Expr: expr}, nil
	}
	p.pos = save
	return p.parseRepetition()
}

func (p *parser) parseRepetition() (grammar.Expression, error) {
	expr, err := p.parseLookahead()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			expr = &grammar.Star{Expr: expr}
		case '+':
			p.pos++
			expr = &grammar.Plus{Expr: expr}
		case '?':
			p.pos++
			expr = &grammar.Optional{Expr: expr}
		case '{':
			quantified, err := p.parseQuantifier(expr)
			if err != nil {
				return nil, err
			}
			expr = quantified
		default:
			return expr, nil
		}
	}
}

// parseQuantifier parses {n}, {n,} or {n,m} after the opening brace has
// been seen. Malformed brace content fails the parse outright; there is
// no fallback to treating the brace as something else. Min greater than
// Max is accepted as written.
func (p *parser) parseQuantifier(expr grammar.Expression) (grammar.Expression, error) {
	p.pos++ // '{'
	min, ok := p.scanUnsignedInt()
	if !ok {
		return nil, p.expected("repetition count")
	}
	if p.consume('}') {
		return &grammar.Quantified{Expr: expr, Min: min, Max: min}, nil
	}
	if !p.consume(',') {
		return nil, p.expected("','", "'}'")
	}
	if p.consume('}') {
		return &grammar.Quantified{Expr: expr, Min: min, Max: grammar.Unbounded}, nil
	}
	max, ok := p.scanUnsignedInt()
	if !ok {
		return nil, p.expected("repetition count")
	}
	if !p.consume('}') {
		return nil, p.expected("'}'")
	}
	return &grammar.Quantified{Expr: expr, Min: min, Max: max}, nil
}

func (p *parser) parseLookahead() (grammar.Expression, error) {
	switch p.peek() {
	case '&':
		p.pos++
		expr, err := p.parseLookahead()
		if err != nil {
			return nil, err
		}
		return &grammar.PositiveLookahead{Expr: expr}, nil
	case '!':
		p.pos++
		expr, err := p.parseLookahead()
		if err != nil {
			return nil, err
		}
		return &grammar.NegativeLookahead{Expr: expr}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (grammar.Expression, error) {
	switch {
	case p.peek() == '"' || p.peek() == '\'':
		return p.parseStringLiteral()
	case p.peek() == '[':
		return p.parseCharacterClass()
	case p.peek() == '.':
		p.pos++
		return &grammar.AnyChar{}, nil
	case p.peek() == '(':
		return p.parseGroup()
	case !p.eof() && isIdentStart(p.peek()):
		name, _ := p.scanQualifiedName()
		return &grammar.Identifier{Name: name}, nil
	}
	return nil, p.expected("string", "character class", "identifier", "'.'", "'('")
}

func (p *parser) parseGroup() (grammar.Expression, error) {
	p.pos++ // '('
	p.skipSpace()
	expr, err := p.parseChoice()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.consume(')') {
		return nil, p.expected("')'")
	}
	return &grammar.Group{Expr: expr}, nil
}

func (p *parser) parseStringLiteral() (grammar.Expression, error) {
	quote := p.input[p.pos]
	start := p.pos
	p.pos++
	var value []byte
	for {
		if p.eof() || p.input[p.pos] == '\n' {
			p.pos = start
			return nil, p.errorAt(start, "terminated string literal")
		}
		c := p.input[p.pos]
		if c == quote {
			p.pos++
			return &grammar.StringLiteral{Value: string(value), Quote: quote}, nil
		}
		if c == '\\' {
			p.pos++
			if p.eof() {
				p.pos = start
				return nil, p.errorAt(start, "terminated string literal")
			}
			value = append(value, unescape(p.input[p.pos]))
			p.pos++
			continue
		}
		value = append(value, c)
		p.pos++
	}
}

func (p *parser) parseCharacterClass() (grammar.Expression, error) {
	start := p.pos
	p.pos++ // '['
	class := &grammar.CharacterClass{}
	if p.consume('^') {
		class.Negated = true
	}
	for {
		if p.eof() || p.input[p.pos] == '\n' {
			p.pos = start
			return nil, p.errorAt(start, "terminated character class")
		}
		if p.consume(']') {
			return class, nil
		}
		lo, err := p.classChar()
		if err != nil {
			return nil, err
		}
		r := grammar.CharRange{Start: lo, End: lo}
		// A '-' forms a range unless it is the last character before ']'
		// or the line ends right after it.
		if p.peek() == '-' && p.pos+1 < len(p.input) && p.input[p.pos+1] != ']' && p.input[p.pos+1] != '\n' {
			p.pos++
			hi, err := p.classChar()
			if err != nil {
				return nil, err
			}
			r.End = hi
		}
		class.Ranges = append(class.Ranges, r)
	}
}

func (p *parser) classChar() (rune, error) {
	if p.consume('\\') {
		if p.eof() {
			return 0, p.expected("escaped character")
		}
		c := p.input[p.pos]
		p.pos++
		return rune(unescape(c)), nil
	}
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	return r, nil
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}
