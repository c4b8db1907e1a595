package parse

import (
	"strings"

	"github.com/dhamidi/tpeg/grammar"
)

// ParseGrammar parses a single `grammar Name { ... }` block. Leading
// whitespace and comments are permitted before the grammar keyword.
func ParseGrammar(input string) (*grammar.GrammarDefinition, error) {
	p := newParser("", input)
	p.skipSpace()
	g, err := p.parseGrammarBlock()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.expected("end of input")
	}
	return &g, nil
}

func (p *parser) parseGrammarBlock() (grammar.GrammarDefinition, error) {
	var g grammar.GrammarDefinition
	if !p.consumeKeyword("grammar") {
		return g, p.expected("'grammar'")
	}
	p.skipSpace()
	name, ok := p.scanName()
	if !ok {
		return g, p.expected("grammar name")
	}
	g.Name = name
	p.skipSpace()
	if p.consumeKeyword("extends") {
		p.skipSpace()
		base, ok := p.scanQualifiedName()
		if !ok {
			return g, p.expected("base grammar name")
		}
		g.Extends = base
		p.skipSpace()
	}
	if !p.consume('{') {
		return g, p.expected("'{'")
	}

	var doc []string
	for {
		if p.skipBlank() {
			doc = nil
		}
		if p.eof() {
			return g, p.expected("'}'")
		}
		switch {
		case p.consume('}'):
			return g, nil
		case strings.HasPrefix(p.input[p.pos:], "///"):
			p.pos += 3
			start := p.pos
			p.skipToLineEnd()
			doc = append(doc, strings.TrimSpace(p.input[start:p.pos]))
		case strings.HasPrefix(p.input[p.pos:], "//"):
			p.skipToLineEnd()
		case p.peek() == '@':
			if err := p.parseGrammarAnnotation(&g); err != nil {
				return g, err
			}
			doc = nil
		default:
			rule, err := p.parseRule()
			if err != nil {
				return g, err
			}
			rule.Documentation = strings.Join(doc, "\n")
			doc = nil
			g.Rules = append(g.Rules, rule)
		}
	}
}

// skipBlank skips whitespace including newlines but leaves comments in
// place, so grammar items can inspect them. It reports whether the
// skipped run contained a blank line, which detaches any pending doc
// comment from the item that follows.
func (p *parser) skipBlank() bool {
	newlines := 0
	for !p.eof() {
		c := p.input[p.pos]
		if c == '\n' {
			newlines++
			p.pos++
			continue
		}
		if isSpace(c) || c == '\r' {
			p.pos++
			continue
		}
		break
	}
	return newlines > 1
}

// parseGrammarAnnotation handles `@key: "value"` and the reserved
// `@export: [name, ...]` form.
func (p *parser) parseGrammarAnnotation(g *grammar.GrammarDefinition) error {
	p.pos++ // '@'
	key, ok := p.scanName()
	if !ok {
		return p.expected("annotation key")
	}
	if !p.consume(':') {
		return p.expected("':'")
	}
	p.skipInlineSpace()

	if key == "export" {
		names, err := p.parseNameList()
		if err != nil {
			return err
		}
		if g.Exports == nil {
			g.Exports = &grammar.ExportDeclaration{}
		}
		g.Exports.Rules = append(g.Exports.Rules, names...)
		return nil
	}

	if p.peek() != '"' && p.peek() != '\'' {
		return p.expected("annotation value string")
	}
	value, err := p.parseStringLiteral()
	if err != nil {
		return err
	}
	g.Annotations = append(g.Annotations, grammar.Annotation{
		Key:   key,
		Value: value.(*grammar.StringLiteral).Value,
	})
	return nil
}

func (p *parser) parseNameList() ([]string, error) {
	if !p.consume('[') {
		return nil, p.expected("'['")
	}
	var names []string
	p.skipSpace()
	if p.consume(']') {
		return names, nil
	}
	for {
		name, ok := p.scanName()
		if !ok {
			return nil, p.expected("rule name")
		}
		names = append(names, name)
		p.skipSpace()
		if p.consume(',') {
			p.skipSpace()
			continue
		}
		if p.consume(']') {
			return names, nil
		}
		return nil, p.expected("','", "']'")
	}
}

// parseRule parses `name = pattern`. A sequence freely crosses
// whitespace, so an unbounded pattern parse for one rule would swallow
// the start of the next rule on the following line. The pattern
// sub-parse is therefore bounded: it runs against the input truncated
// at the next newline or at the next `identifier ws* '='` header,
// whichever comes first, and its final offset becomes the outer
// position.
func (p *parser) parseRule() (grammar.RuleDefinition, error) {
	var rule grammar.RuleDefinition
	name, ok := p.scanName()
	if !ok {
		return rule, p.expected("rule name")
	}
	rule.Name = name
	p.skipInlineSpace()
	if !p.consume('=') {
		return rule, p.expected("'='")
	}
	p.skipInlineSpace()

	bound := p.ruleBodyBound(p.pos)
	sub := newParser(p.file, p.input[:bound])
	sub.pos = p.pos
	pattern, err := sub.parseChoice()
	if err != nil {
		return rule, err
	}
	p.pos = sub.pos
	rule.Pattern = pattern
	return rule, nil
}

// ruleBodyBound returns the offset where the pattern for a rule body
// starting at start must stop: the next newline or the next position
// that looks like a rule header.
func (p *parser) ruleBodyBound(start int) int {
	for i := start; i < len(p.input); i++ {
		c := p.input[i]
		if c == '\n' {
			return i
		}
		if isIdentStart(c) && (i == start || !isIdentPart(p.input[i-1])) && p.ruleHeaderAt(i) {
			return i
		}
	}
	return len(p.input)
}

// ruleHeaderAt reports whether `identifier ws* '='` starts at offset i.
func (p *parser) ruleHeaderAt(i int) bool {
	j := i + 1
	for j < len(p.input) && isIdentPart(p.input[j]) {
		j++
	}
	for j < len(p.input) && isSpace(p.input[j]) {
		j++
	}
	return j < len(p.input) && p.input[j] == '='
}
