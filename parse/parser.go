// Package parse turns TPEG source text into the grammar package's AST.
// It is a scannerless recursive-descent parser: every parse attempt is
// a function of (input, position) and restores the position on failure,
// so trying another alternative leaves no residue behind.
package parse

import (
	"fmt"
	"strings"
)

// Position is a location in the source text.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError reports a syntax error: where it happened, what was
// expected there, and what was found instead.
type ParseError struct {
	Position Position
	Expected []string
	Found    string
}

func (e *ParseError) Error() string {
	found := e.Found
	if found == "" {
		found = "end of input"
	} else {
		found = fmt.Sprintf("%q", found)
	}
	return fmt.Sprintf("%s: expected %s, found %s", e.Position, strings.Join(e.Expected, " or "), found)
}

type parser struct {
	file  string
	input string
	pos   int
}

func newParser(file, input string) *parser {
	return &parser{file: file, input: input}
}

// positionAt computes line and column for an offset by scanning the
// input. Errors are rare enough that scanning on demand beats tracking
// line state through every backtrack.
func (p *parser) positionAt(offset int) Position {
	if offset > len(p.input) {
		offset = len(p.input)
	}
	line, column := 1, 1
	for i := 0; i < offset; i++ {
		if p.input[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return Position{File: p.file, Offset: offset, Line: line, Column: column}
}

func (p *parser) errorAt(offset int, expected ...string) *ParseError {
	found := ""
	if offset < len(p.input) {
		end := offset
		for end < len(p.input) && end-offset < 12 && p.input[end] != '\n' {
			end++
		}
		found = p.input[offset:end]
	}
	return &ParseError{
		Position: p.positionAt(offset),
		Expected: expected,
		Found:    found,
	}
}

func (p *parser) expected(expected ...string) *ParseError {
	return p.errorAt(p.pos, expected...)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) consume(ch byte) bool {
	if p.peek() == ch {
		p.pos++
		return true
	}
	return false
}

func (p *parser) consumeString(s string) bool {
	if strings.HasPrefix(p.input[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// consumeKeyword matches s only when it is not a prefix of a longer
// identifier.
func (p *parser) consumeKeyword(s string) bool {
	if !strings.HasPrefix(p.input[p.pos:], s) {
		return false
	}
	after := p.pos + len(s)
	if after < len(p.input) && isIdentPart(p.input[after]) {
		return false
	}
	p.pos = after
	return true
}

// skipSpace skips whitespace including newlines, plus // and ///
// comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch {
		case isSpace(p.input[p.pos]) || p.input[p.pos] == '\n' || p.input[p.pos] == '\r':
			p.pos++
		case strings.HasPrefix(p.input[p.pos:], "//"):
			p.skipToLineEnd()
		default:
			return
		}
	}
}

// skipInlineSpace skips spaces and tabs only, never newlines.
func (p *parser) skipInlineSpace() {
	for !p.eof() && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *parser) skipToLineEnd() {
	for !p.eof() && p.input[p.pos] != '\n' {
		p.pos++
	}
}

// scanName scans a plain identifier: letter or underscore, then
// letters, digits and underscores.
func (p *parser) scanName() (string, bool) {
	if p.eof() || !isIdentStart(p.input[p.pos]) {
		return "", false
	}
	start := p.pos
	p.pos++
	for !p.eof() && isIdentPart(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos], true
}

// scanQualifiedName scans an identifier with optional dot-separated
// qualifiers, as in "lexer.Number".
func (p *parser) scanQualifiedName() (string, bool) {
	start := p.pos
	if _, ok := p.scanName(); !ok {
		return "", false
	}
	for p.peek() == '.' {
		save := p.pos
		p.pos++
		if _, ok := p.scanName(); !ok {
			p.pos = save
			break
		}
	}
	return p.input[start:p.pos], true
}

func (p *parser) scanUnsignedInt() (int, bool) {
	start := p.pos
	for !p.eof() && isDigit(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n := 0
	for _, c := range []byte(p.input[start:p.pos]) {
		n = n*10 + int(c-'0')
	}
	return n, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
