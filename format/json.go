package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/tpeg/grammar"
)

// JSONEncoder dumps the AST as indented JSON with a "kind" discriminant
// on every expression node.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(file *grammar.ModuleFile) error {
	text, err := json.MarshalIndent(moduleToJSON(file), "", "  ")
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

// EncodeExpression dumps a single pattern expression.
func (e *JSONEncoder) EncodeExpression(expr grammar.Expression) error {
	text, err := json.MarshalIndent(exprToJSON(expr), "", "  ")
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

type jsonModule struct {
	FilePath string        `json:"filePath,omitempty"`
	Imports  []jsonImport  `json:"imports,omitempty"`
	Grammars []jsonGrammar `json:"grammars"`
	Info     *jsonInfo     `json:"moduleInfo,omitempty"`
}

type jsonImport struct {
	ModulePath string   `json:"modulePath"`
	Alias      string   `json:"alias,omitempty"`
	Selective  []string `json:"selective,omitempty"`
	Version    string   `json:"version,omitempty"`
}

type jsonGrammar struct {
	Name        string           `json:"name"`
	Extends     string           `json:"extends,omitempty"`
	Annotations []jsonAnnotation `json:"annotations,omitempty"`
	Exports     []string         `json:"exports,omitempty"`
	Rules       []jsonRule       `json:"rules"`
}

type jsonAnnotation struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type jsonRule struct {
	Name          string    `json:"name"`
	Documentation string    `json:"documentation,omitempty"`
	Pattern       *jsonExpr `json:"pattern"`
}

type jsonExpr struct {
	Kind         string      `json:"kind"`
	Value        string      `json:"value,omitempty"`
	Quote        string      `json:"quote,omitempty"`
	Name         string      `json:"name,omitempty"`
	Label        string      `json:"label,omitempty"`
	Negated      bool        `json:"negated,omitempty"`
	Ranges       []jsonRange `json:"ranges,omitempty"`
	Min          *int        `json:"min,omitempty"`
	Max          *int        `json:"max,omitempty"`
	Expr         *jsonExpr   `json:"expr,omitempty"`
	Elements     []*jsonExpr `json:"elements,omitempty"`
	Alternatives []*jsonExpr `json:"alternatives,omitempty"`
}

type jsonRange struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

type jsonInfo struct {
	Namespace    string            `json:"namespace,omitempty"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Conflicts    []string          `json:"conflicts,omitempty"`
}

func moduleToJSON(file *grammar.ModuleFile) *jsonModule {
	jm := &jsonModule{FilePath: file.FilePath}
	for _, imp := range file.Imports {
		jm.Imports = append(jm.Imports, jsonImport{
			ModulePath: imp.ModulePath,
			Alias:      imp.Alias,
			Selective:  imp.Selective,
			Version:    imp.Version,
		})
	}
	for _, g := range file.Grammars {
		jg := jsonGrammar{Name: g.Name, Extends: g.Extends}
		for _, a := range g.Annotations {
			jg.Annotations = append(jg.Annotations, jsonAnnotation{Key: a.Key, Value: a.Value})
		}
		if g.Exports != nil {
			jg.Exports = g.Exports.Rules
		}
		for _, rule := range g.Rules {
			jg.Rules = append(jg.Rules, jsonRule{
				Name:          rule.Name,
				Documentation: rule.Documentation,
				Pattern:       exprToJSON(rule.Pattern),
			})
		}
		jm.Grammars = append(jm.Grammars, jg)
	}
	if file.Info != nil {
		jm.Info = &jsonInfo{
			Namespace:    file.Info.Namespace,
			Version:      file.Info.Version,
			Dependencies: file.Info.Dependencies,
			Conflicts:    file.Info.Conflicts,
		}
	}
	return jm
}

func exprToJSON(expr grammar.Expression) *jsonExpr {
	switch e := expr.(type) {
	case *grammar.StringLiteral:
		return &jsonExpr{Kind: "StringLiteral", Value: e.Value, Quote: string(e.Quote)}
	case *grammar.CharacterClass:
		je := &jsonExpr{Kind: "CharacterClass", Negated: e.Negated}
		for _, r := range e.Ranges {
			jr := jsonRange{Start: string(r.Start)}
			if r.End != r.Start {
				jr.End = string(r.End)
			}
			je.Ranges = append(je.Ranges, jr)
		}
		return je
	case *grammar.Identifier:
		return &jsonExpr{Kind: "Identifier", Name: e.Name}
	case *grammar.AnyChar:
		return &jsonExpr{Kind: "AnyChar"}
	case *grammar.Group:
		return &jsonExpr{Kind: "Group", Expr: exprToJSON(e.Expr)}
	case *grammar.Sequence:
		je := &jsonExpr{Kind: "Sequence"}
		for _, el := range e.Elements {
			je.Elements = append(je.Elements, exprToJSON(el))
		}
		return je
	case *grammar.Choice:
		je := &jsonExpr{Kind: "Choice"}
		for _, alt := range e.Alternatives {
			je.Alternatives = append(je.Alternatives, exprToJSON(alt))
		}
		return je
	case *grammar.Star:
		return &jsonExpr{Kind: "Star", Expr: exprToJSON(e.Expr)}
	case *grammar.Plus:
		return &jsonExpr{Kind: "Plus", Expr: exprToJSON(e.Expr)}
	case *grammar.Optional:
		return &jsonExpr{Kind: "Optional", Expr: exprToJSON(e.Expr)}
	case *grammar.Quantified:
		min := e.Min
		je := &jsonExpr{Kind: "Quantified", Expr: exprToJSON(e.Expr), Min: &min}
		if e.Max != grammar.Unbounded {
			max := e.Max
			je.Max = &max
		}
		return je
	case *grammar.PositiveLookahead:
		return &jsonExpr{Kind: "PositiveLookahead", Expr: exprToJSON(e.Expr)}
	case *grammar.NegativeLookahead:
		return &jsonExpr{Kind: "NegativeLookahead", Expr: exprToJSON(e.Expr)}
	case *grammar.LabeledExpression:
		return &jsonExpr{Kind: "LabeledExpression", Label: e.Label, Expr: exprToJSON(e.Expr)}
	}
	panic(fmt.Sprintf("unhandled expression type %T", expr))
}
