package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  SemanticVersion
	}{
		{"1.2.3", SemanticVersion{Major: 1, Minor: 2, Patch: 3}},
		{"v1.2.3", SemanticVersion{Major: 1, Minor: 2, Patch: 3}},
		{"0.0.0", SemanticVersion{}},
		{"1.0.0-alpha", SemanticVersion{Major: 1, Prerelease: "alpha"}},
		{"1.0.0-alpha.1", SemanticVersion{Major: 1, Prerelease: "alpha.1"}},
		{"1.0.0+build.5", SemanticVersion{Major: 1, Build: "build.5"}},
		{"2.1.0-rc.1+abc", SemanticVersion{Major: 2, Minor: 1, Prerelease: "rc.1", Build: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "1.2", "1.2.3.4", "abc", "1.x.0"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", input, err)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.2.0", "1.1.9", 1},
		{"1.1.2", "1.1.10", -1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0", "1.0.0-alpha", 1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0+build.1", "1.0.0+build.2", 0},
		{"1.0.0-rc.1+a", "1.0.0-rc.1+b", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, err := Parse(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := Parse(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got := Compare(a, b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Prerelease identifiers compare as whole strings, so a numerically
// larger segment can still order below a shorter one.
func TestComparePrereleaseIsPlainString(t *testing.T) {
	a, _ := Parse("1.0.0-alpha.10")
	b, _ := Parse("1.0.0-alpha.9")
	if got := Compare(a, b); got != -1 {
		t.Errorf("Compare(alpha.10, alpha.9) = %d, want -1", got)
	}
}

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		input string
		want  Constraint
	}{
		{"*", Constraint{Operator: OpWildcard}},
		{"1.2.3", Constraint{Operator: OpExact, Version: SemanticVersion{Major: 1, Minor: 2, Patch: 3}}},
		{"=1.2.3", Constraint{Operator: OpExact, Version: SemanticVersion{Major: 1, Minor: 2, Patch: 3}}},
		{">=1.0.0", Constraint{Operator: OpGreaterEqual, Version: SemanticVersion{Major: 1}}},
		{"<=2.0.0", Constraint{Operator: OpLessEqual, Version: SemanticVersion{Major: 2}}},
		{">1.0.0", Constraint{Operator: OpGreater, Version: SemanticVersion{Major: 1}}},
		{"<2.0.0", Constraint{Operator: OpLess, Version: SemanticVersion{Major: 2}}},
		{"^1.2.0", Constraint{Operator: OpCaret, Version: SemanticVersion{Major: 1, Minor: 2}}},
		{"~1.2.0", Constraint{Operator: OpTilde, Version: SemanticVersion{Major: 1, Minor: 2}}},
		{">= 1.0.0", Constraint{Operator: OpGreaterEqual, Version: SemanticVersion{Major: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConstraint(tt.input)
			if err != nil {
				t.Fatalf("ParseConstraint(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseConstraint(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseConstraintErrors(t *testing.T) {
	for _, input := range []string{"", ">=", "^", "~abc", ">=1.2"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseConstraint(input); err == nil {
				t.Errorf("ParseConstraint(%q) succeeded, want error", input)
			}
		})
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		want       bool
	}{
		{"^1.0.0", "1.2.3", true},
		{"~1.2.0", "1.2.3", true},
		{"^2.0.0", "1.2.3", false},
		{"^1.0.0", "1.3.0", true},
		{"~1.2.0", "1.3.0", false},
		{"*", "0.0.0", true},
		{"*", "99.99.99", true},
		{"=1.2.3", "1.2.3", true},
		{"=1.2.3", "1.2.4", false},
		{">=1.0.0", "1.0.0", true},
		{">=1.0.0", "0.9.9", false},
		{">1.0.0", "1.0.0", false},
		{"<2.0.0", "1.9.9", true},
		{"<=2.0.0", "2.0.0", true},
		{"^1.2.0", "2.0.0", false},
		{"^1.2.0", "1.1.0", false},
		{"~1.2.3", "1.2.2", false},
		{">=1.0.0", "1.0.0-alpha", false},
		{"^1.0.0", "1.0.0-alpha", false},
	}

	for _, tt := range tests {
		t.Run(tt.constraint+" "+tt.version, func(t *testing.T) {
			c, err := ParseConstraint(tt.constraint)
			if err != nil {
				t.Fatal(err)
			}
			v, err := Parse(tt.version)
			if err != nil {
				t.Fatal(err)
			}
			if got := c.Satisfies(v); got != tt.want {
				t.Errorf("(%s).Satisfies(%s) = %v, want %v", tt.constraint, tt.version, got, tt.want)
			}
		})
	}
}
