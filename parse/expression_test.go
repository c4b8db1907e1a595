package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/tpeg/grammar"
)

func lit(s string) grammar.Expression {
	return &grammar.StringLiteral{Value: s, Quote: '"'}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected grammar.Expression
	}{
		{
			name:     "string literal",
			input:    `"hello"`,
			expected: lit("hello"),
		},
		{
			name:     "single quoted string",
			input:    `'hi'`,
			expected: &grammar.StringLiteral{Value: "hi", Quote: '\''},
		},
		{
			name:     "string escapes",
			input:    `"a\nb\t\\\""`,
			expected: lit("a\nb\t\\\""),
		},
		{
			name:     "any char",
			input:    `.`,
			expected: &grammar.AnyChar{},
		},
		{
			name:     "identifier",
			input:    `number`,
			expected: &grammar.Identifier{Name: "number"},
		},
		{
			name:     "qualified identifier",
			input:    `lexer.Number`,
			expected: &grammar.Identifier{Name: "lexer.Number"},
		},
		{
			name:  "character class",
			input: `[a-z0-9_]`,
			expected: &grammar.CharacterClass{
				Ranges: []grammar.CharRange{
					{Start: 'a', End: 'z'},
					{Start: '0', End: '9'},
					{Start: '_', End: '_'},
				},
			},
		},
		{
			name:  "negated character class",
			input: `[^abc]`,
			expected: &grammar.CharacterClass{
				Negated: true,
				Ranges: []grammar.CharRange{
					{Start: 'a', End: 'a'},
					{Start: 'b', End: 'b'},
					{Start: 'c', End: 'c'},
				},
			},
		},
		{
			name:  "trailing dash is literal",
			input: `[a-]`,
			expected: &grammar.CharacterClass{
				Ranges: []grammar.CharRange{
					{Start: 'a', End: 'a'},
					{Start: '-', End: '-'},
				},
			},
		},
		{
			name:     "star",
			input:    `"x"*`,
			expected: &grammar.Star{Expr: lit("x")},
		},
		{
			name:     "plus",
			input:    `"x"+`,
			expected: &grammar.Plus{Expr: lit("x")},
		},
		{
			name:     "optional",
			input:    `"x"?`,
			expected: &grammar.Optional{Expr: lit("x")},
		},
		{
			name:     "exact quantifier",
			input:    `"x"{3}`,
			expected: &grammar.Quantified{Expr: lit("x"), Min: 3, Max: 3},
		},
		{
			name:     "open quantifier",
			input:    `"x"{2,}`,
			expected: &grammar.Quantified{Expr: lit("x"), Min: 2, Max: grammar.Unbounded},
		},
		{
			name:     "range quantifier",
			input:    `"x"{2,5}`,
			expected: &grammar.Quantified{Expr: lit("x"), Min: 2, Max: 5},
		},
		{
			name:     "inverted bounds accepted",
			input:    `"x"{5,3}`,
			expected: &grammar.Quantified{Expr: lit("x"), Min: 5, Max: 3},
		},
		{
			name:     "positive lookahead",
			input:    `&"x"`,
			expected: &grammar.PositiveLookahead{Expr: lit("x")},
		},
		{
			name:     "negative lookahead",
			input:    `!"x"`,
			expected: &grammar.NegativeLookahead{Expr: lit("x")},
		},
		{
			name:     "lookahead binds tighter than repetition",
			input:    `&"hello"*`,
			expected: &grammar.Star{Expr: &grammar.PositiveLookahead{Expr: lit("hello")}},
		},
		{
			name:     "label wraps the repeated term",
			input:    `check:&"hello"*`,
			expected: &grammar.LabeledExpression{Label: "check", Expr: &grammar.Star{Expr: &grammar.PositiveLookahead{Expr: lit("hello")}}},
		},
		{
			name:  "label binds tighter than sequence",
			input: `items:"hello"* "world"`,
			expected: &grammar.Sequence{Elements: []grammar.Expression{
				&grammar.LabeledExpression{Label: "items", Expr: &grammar.Star{Expr: lit("hello")}},
				lit("world"),
			}},
		},
		{
			name:  "sequence",
			input: `"a" "b" "c"`,
			expected: &grammar.Sequence{Elements: []grammar.Expression{
				lit("a"), lit("b"), lit("c"),
			}},
		},
		{
			name:  "choice",
			input: `"a" / "b" / "c"`,
			expected: &grammar.Choice{Alternatives: []grammar.Expression{
				lit("a"), lit("b"), lit("c"),
			}},
		},
		{
			name:  "sequence binds tighter than choice",
			input: `"a" "b" / "c"`,
			expected: &grammar.Choice{Alternatives: []grammar.Expression{
				&grammar.Sequence{Elements: []grammar.Expression{lit("a"), lit("b")}},
				lit("c"),
			}},
		},
		{
			name:     "group is never collapsed",
			input:    `("x")`,
			expected: &grammar.Group{Expr: lit("x")},
		},
		{
			name:     "group controls precedence",
			input:    `("a" / "b")*`,
			expected: &grammar.Star{Expr: &grammar.Group{Expr: &grammar.Choice{Alternatives: []grammar.Expression{lit("a"), lit("b")}}}},
		},
		{
			name:     "stacked postfix operators",
			input:    `"x"*?`,
			expected: &grammar.Optional{Expr: &grammar.Star{Expr: lit("x")}},
		},
		{
			name:     "nested lookahead",
			input:    `!&"x"`,
			expected: &grammar.NegativeLookahead{Expr: &grammar.PositiveLookahead{Expr: lit("x")}},
		},
		{
			name:  "sequence crosses newlines",
			input: "\"a\"\n\"b\"",
			expected: &grammar.Sequence{Elements: []grammar.Expression{
				lit("a"), lit("b"),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpression(tt.input)
			if err != nil {
				t.Fatalf("ParseExpression(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ParseExpression(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"unterminated string", `"abc`},
		{"string crossing newline", "\"a\nb\""},
		{"unterminated class", `[a-z`},
		{"class range crossing newline", "[a-\nz]"},
		{"unclosed group", `("a"`},
		{"bare operator", `*`},
		{"malformed quantifier", `"x"{a}`},
		{"quantifier missing count", `"x"{}`},
		{"quantifier missing brace", `"x"{2`},
		{"label without operand", `name:`},
		{"label operand must parse", `name:*`},
		{"choice missing alternative", `"a" /`},
		{"trailing garbage", `"a" )`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpression(tt.input)
			if err == nil {
				t.Fatalf("ParseExpression(%q) succeeded, want error", tt.input)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("ParseExpression(%q) error = %T, want *ParseError", tt.input, err)
			}
		})
	}
}

// Sequences and choices produced by the parser always have at least two
// children; singletons collapse to the bare element.
func TestSingletonCollapse(t *testing.T) {
	got, err := ParseExpression(`"only"`)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*grammar.Sequence); ok {
		t.Error("single element parsed as Sequence, want bare element")
	}
	if _, ok := got.(*grammar.Choice); ok {
		t.Error("single element parsed as Choice, want bare element")
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseExpression("\"a\" (\"b\"")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if parseErr.Position.Line != 1 {
		t.Errorf("Position.Line = %d, want 1", parseErr.Position.Line)
	}
	if len(parseErr.Expected) == 0 {
		t.Error("Expected is empty")
	}
}
