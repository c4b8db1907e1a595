package grammar

// Tier buckets a rule's complexity for downstream generators deciding
// whether to memoize the generated parser function.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Complexity summarizes the shape of a rule's pattern.
type Complexity struct {
	Depth        int
	NodeCount    int
	HasRecursion bool
	Tier         Tier
}

// Score measures the pattern of the rule named ruleName. HasRecursion
// reports whether the pattern references its own rule name.
func Score(ruleName string, expr Expression) Complexity {
	c := Complexity{}
	measure(expr, ruleName, 1, &c)
	switch {
	case c.NodeCount > 20 || c.Depth > 10:
		c.Tier = TierHigh
	case c.NodeCount > 5 || c.Depth > 3:
		c.Tier = TierMedium
	default:
		c.Tier = TierLow
	}
	return c
}

func measure(expr Expression, ruleName string, depth int, c *Complexity) {
	c.NodeCount++
	if depth > c.Depth {
		c.Depth = depth
	}
	switch e := expr.(type) {
	case *StringLiteral, *CharacterClass, *AnyChar:
	case *Identifier:
		if e.Name == ruleName {
			c.HasRecursion = true
		}
	case *Group:
		measure(e.Expr, ruleName, depth+1, c)
	case *Sequence:
		for _, el := range e.Elements {
			measure(el, ruleName, depth+1, c)
		}
	case *Choice:
		for _, alt := range e.Alternatives {
			measure(alt, ruleName, depth+1, c)
		}
	case *Star:
		measure(e.Expr, ruleName, depth+1, c)
	case *Plus:
		measure(e.Expr, ruleName, depth+1, c)
	case *Optional:
		measure(e.Expr, ruleName, depth+1, c)
	case *Quantified:
		measure(e.Expr, ruleName, depth+1, c)
	case *PositiveLookahead:
		measure(e.Expr, ruleName, depth+1, c)
	case *NegativeLookahead:
		measure(e.Expr, ruleName, depth+1, c)
	case *LabeledExpression:
		measure(e.Expr, ruleName, depth+1, c)
	}
}
