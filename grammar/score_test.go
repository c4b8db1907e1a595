package grammar

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		rule string
		expr Expression
		want Complexity
	}{
		{
			name: "single literal",
			rule: "a",
			expr: &StringLiteral{Value: "x", Quote: '"'},
			want: Complexity{Depth: 1, NodeCount: 1, Tier: TierLow},
		},
		{
			name: "flat sequence",
			rule: "a",
			expr: NewSequence([]Expression{
				&StringLiteral{Value: "x", Quote: '"'},
				&StringLiteral{Value: "y", Quote: '"'},
				&StringLiteral{Value: "z", Quote: '"'},
			}),
			want: Complexity{Depth: 2, NodeCount: 4, Tier: TierLow},
		},
		{
			name: "nesting pushes to medium",
			rule: "a",
			expr: &Star{Expr: &Group{Expr: &Plus{Expr: &Optional{Expr: &StringLiteral{Value: "x", Quote: '"'}}}}},
			want: Complexity{Depth: 5, NodeCount: 5, Tier: TierMedium},
		},
		{
			name: "self reference",
			rule: "expr",
			expr: NewChoice([]Expression{
				NewSequence([]Expression{&Identifier{Name: "term"}, &StringLiteral{Value: "+", Quote: '"'}, &Identifier{Name: "expr"}}),
				&Identifier{Name: "term"},
			}),
			want: Complexity{Depth: 3, NodeCount: 6, HasRecursion: true, Tier: TierMedium},
		},
		{
			name: "reference to other rule is not recursion",
			rule: "a",
			expr: &Identifier{Name: "b"},
			want: Complexity{Depth: 1, NodeCount: 1, Tier: TierLow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.rule, tt.expr)
			if got != tt.want {
				t.Errorf("Score() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreHighTier(t *testing.T) {
	wide := make([]Expression, 21)
	for i := range wide {
		wide[i] = &AnyChar{}
	}
	got := Score("a", NewSequence(wide))
	if got.Tier != TierHigh {
		t.Errorf("Tier = %s, want %s for %d nodes", got.Tier, TierHigh, got.NodeCount)
	}

	deep := Expression(&AnyChar{})
	for i := 0; i < 11; i++ {
		deep = &Group{Expr: deep}
	}
	got = Score("a", deep)
	if got.Tier != TierHigh {
		t.Errorf("Tier = %s, want %s for depth %d", got.Tier, TierHigh, got.Depth)
	}
}
