package version

import (
	"errors"
	"strings"
)

// Operator is a constraint comparison operator.
type Operator string

const (
	OpExact        Operator = "="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpCaret        Operator = "^"
	OpTilde        Operator = "~"
	OpWildcard     Operator = "*"
)

// Constraint is a version requirement: an operator applied to a
// version, or the standalone wildcard "*".
type Constraint struct {
	Operator Operator
	Version  SemanticVersion
}

func (c Constraint) String() string {
	if c.Operator == OpWildcard {
		return string(OpWildcard)
	}
	return string(c.Operator) + c.Version.String()
}

// ParseConstraint parses an optional operator followed by a version.
// A missing operator means exact equality; "*" stands alone.
func ParseConstraint(input string) (Constraint, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Constraint{}, &ParseError{Input: input, Err: errors.New("empty constraint")}
	}
	if s == string(OpWildcard) {
		return Constraint{Operator: OpWildcard}, nil
	}
	op := OpExact
	for _, candidate := range []Operator{OpGreaterEqual, OpLessEqual, OpGreater, OpLess, OpCaret, OpTilde, OpExact} {
		if strings.HasPrefix(s, string(candidate)) {
			op = candidate
			s = strings.TrimSpace(s[len(candidate):])
			break
		}
	}
	v, err := Parse(s)
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{Operator: op, Version: v}, nil
}

// Satisfies reports whether v satisfies the constraint. Caret requires
// the same major version and v at or above the constraint version;
// tilde additionally pins the minor version.
func (c Constraint) Satisfies(v SemanticVersion) bool {
	switch c.Operator {
	case OpWildcard:
		return true
	case OpExact:
		return Compare(v, c.Version) == 0
	case OpGreater:
		return Compare(v, c.Version) > 0
	case OpGreaterEqual:
		return Compare(v, c.Version) >= 0
	case OpLess:
		return Compare(v, c.Version) < 0
	case OpLessEqual:
		return Compare(v, c.Version) <= 0
	case OpCaret:
		return v.Major == c.Version.Major && Compare(v, c.Version) >= 0
	case OpTilde:
		return v.Major == c.Version.Major && v.Minor == c.Version.Minor && Compare(v, c.Version) >= 0
	}
	return false
}
