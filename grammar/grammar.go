package grammar

import (
	"path/filepath"
	"strings"
)

// Annotation is a `@key: "value"` pair inside a grammar block.
type Annotation struct {
	Key   string
	Value string
}

// RuleDefinition is one `name = pattern` rule. Documentation holds the
// text of any `///` comment lines immediately preceding the rule.
type RuleDefinition struct {
	Name          string
	Pattern       Expression
	Documentation string
}

// ExportDeclaration lists the rules a grammar makes visible to other
// modules, from `@export: [a, b]`.
type ExportDeclaration struct {
	Rules []string
}

// GrammarDefinition is one `grammar Name { ... }` block. Extends
// records the base grammar name when an `extends` clause is present;
// only the syntax is modeled, rule merging happens elsewhere. Rules
// keep source order and are not deduplicated.
type GrammarDefinition struct {
	Name        string
	Extends     string
	Annotations []Annotation
	Rules       []RuleDefinition
	Exports     *ExportDeclaration
}

// Rule returns the rule with the given name. Duplicate definitions
// resolve to the last one in source order.
func (g *GrammarDefinition) Rule(name string) (RuleDefinition, bool) {
	for i := len(g.Rules) - 1; i >= 0; i-- {
		if g.Rules[i].Name == name {
			return g.Rules[i], true
		}
	}
	return RuleDefinition{}, false
}

// ImportStatement is one `import "path" ...` declaration.
type ImportStatement struct {
	ModulePath string
	Alias      string
	Selective  []string
	Version    string
}

// ModuleInfo carries module-level metadata derived from the reserved
// annotations @namespace, @version, @dependencies and @conflicts.
type ModuleInfo struct {
	Namespace    string
	Version      string
	Dependencies map[string]string
	Conflicts    []string
}

// ModuleFile is the parsed form of one grammar source file.
type ModuleFile struct {
	FilePath string
	Imports  []ImportStatement
	Grammars []GrammarDefinition
	Info     *ModuleInfo
}

// ModuleName returns the module's name: the namespace annotation when
// present, otherwise the file name without its extension.
func (f *ModuleFile) ModuleName() string {
	if f.Info != nil && f.Info.Namespace != "" {
		return f.Info.Namespace
	}
	return ModuleNameForPath(f.FilePath)
}

// ModuleNameForPath derives a module name from a file path: the base
// name with its extension stripped.
func ModuleNameForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Rules returns all rule definitions across the file's grammars, in
// source order.
func (f *ModuleFile) Rules() []RuleDefinition {
	var rules []RuleDefinition
	for _, g := range f.Grammars {
		rules = append(rules, g.Rules...)
	}
	return rules
}
