package module

import (
	"sort"

	"github.com/dhamidi/tpeg/grammar"
)

// Scope is the namespace of one registered module: its import aliases,
// its exported rule names, and all rules defined locally.
type Scope struct {
	CurrentModule string
	Imports       map[string]string
	Exports       map[string]struct{}
	LocalRules    map[string]struct{}

	rules     map[string]grammar.RuleDefinition
	selective map[string]string // selectively imported rule name -> module path
}

// ResolvedRule is the outcome of a successful rule lookup.
type ResolvedRule struct {
	Rule       grammar.RuleDefinition
	ModuleName string
	IsExported bool
	IsLocal    bool
}

// Namespaces tracks the scopes of all modules registered in one
// compilation run.
type Namespaces struct {
	scopes map[string]*Scope
	byPath map[string]*Scope
}

func NewNamespaces() *Namespaces {
	return &Namespaces{
		scopes: make(map[string]*Scope),
		byPath: make(map[string]*Scope),
	}
}

// RegisterModule builds the scope for a parsed module file.
// Re-registering a module replaces its scope wholesale. Duplicate rule
// names within the file resolve to the last definition.
func (n *Namespaces) RegisterModule(file *grammar.ModuleFile) *Scope {
	scope := &Scope{
		CurrentModule: file.ModuleName(),
		Imports:       make(map[string]string),
		Exports:       make(map[string]struct{}),
		LocalRules:    make(map[string]struct{}),
		rules:         make(map[string]grammar.RuleDefinition),
		selective:     make(map[string]string),
	}
	for _, imp := range file.Imports {
		alias := imp.Alias
		if alias == "" {
			alias = grammar.ModuleNameForPath(imp.ModulePath)
		}
		scope.Imports[alias] = imp.ModulePath
		for _, name := range imp.Selective {
			scope.selective[name] = imp.ModulePath
		}
	}
	for _, g := range file.Grammars {
		if g.Exports != nil {
			for _, name := range g.Exports.Rules {
				scope.Exports[name] = struct{}{}
			}
		}
		for _, rule := range g.Rules {
			scope.LocalRules[rule.Name] = struct{}{}
			scope.rules[rule.Name] = rule
		}
	}
	n.scopes[scope.CurrentModule] = scope
	n.byPath[file.FilePath] = scope
	return scope
}

// ResolveQualifiedName resolves `module.name` from within
// currentModule. The module part must be an import alias of the
// current module, and the target rule must exist and be exported;
// export visibility gates every cross-module reference.
func (n *Namespaces) ResolveQualifiedName(moduleAlias, name, currentModule string) (*ResolvedRule, error) {
	scope, ok := n.scopes[currentModule]
	if !ok {
		return nil, &ResolutionError{Module: moduleAlias, Name: name, Reason: "module " + currentModule + " is not registered"}
	}
	path, ok := scope.Imports[moduleAlias]
	if !ok {
		return nil, &ResolutionError{Module: moduleAlias, Name: name, Reason: "module alias " + moduleAlias + " is not imported"}
	}
	target := n.scopeForPath(path)
	if target == nil {
		return nil, &ResolutionError{Module: moduleAlias, Name: name, Reason: "imported module " + path + " is not registered"}
	}
	rule, ok := target.rules[name]
	if !ok {
		return nil, &ResolutionError{Module: moduleAlias, Name: name, Reason: "rule does not exist in module " + target.CurrentModule}
	}
	if _, exported := target.Exports[name]; !exported {
		return nil, &ResolutionError{Module: moduleAlias, Name: name, Reason: "rule is not exported by module " + target.CurrentModule}
	}
	return &ResolvedRule{
		Rule:       rule,
		ModuleName: target.CurrentModule,
		IsExported: true,
		IsLocal:    false,
	}, nil
}

// ResolveLocalRule resolves an unqualified rule name within its own
// module. Exports only gate cross-module visibility, so no export check
// applies here. Names bound by a selective import resolve as if they
// were local, provided the target module exports them.
func (n *Namespaces) ResolveLocalRule(name, currentModule string) (*ResolvedRule, error) {
	scope, ok := n.scopes[currentModule]
	if !ok {
		return nil, &ResolutionError{Name: name, Reason: "module " + currentModule + " is not registered"}
	}
	if rule, ok := scope.rules[name]; ok {
		_, exported := scope.Exports[name]
		return &ResolvedRule{
			Rule:       rule,
			ModuleName: currentModule,
			IsExported: exported,
			IsLocal:    true,
		}, nil
	}
	if path, ok := scope.selective[name]; ok {
		if target := n.scopeForPath(path); target != nil {
			if rule, ok := target.rules[name]; ok {
				if _, exported := target.Exports[name]; exported {
					return &ResolvedRule{
						Rule:       rule,
						ModuleName: target.CurrentModule,
						IsExported: true,
						IsLocal:    false,
					}, nil
				}
			}
		}
	}
	return nil, &ResolutionError{Name: name, Reason: "rule is not defined in module " + currentModule}
}

// CheckNamespaceConflicts reports any rule name reachable through more
// than one import alias of currentModule, considering only the exported
// surface of directly imported modules. Local names shadowing an import
// are not checked here.
func (n *Namespaces) CheckNamespaceConflicts(currentModule string) error {
	scope, ok := n.scopes[currentModule]
	if !ok {
		return &ResolutionError{Name: currentModule, Reason: "module is not registered"}
	}
	byRule := make(map[string][]string)
	for alias, path := range scope.Imports {
		target := n.scopeForPath(path)
		if target == nil {
			continue
		}
		for name := range target.Exports {
			byRule[name] = append(byRule[name], alias)
		}
	}
	names := make([]string, 0, len(byRule))
	for name := range byRule {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		aliases := byRule[name]
		if len(aliases) > 1 {
			sort.Strings(aliases)
			return &NamespaceConflictError{Rule: name, Aliases: aliases}
		}
	}
	return nil
}

// scopeForPath finds the scope registered for a module path, falling
// back to the module name the path implies.
func (n *Namespaces) scopeForPath(path string) *Scope {
	if scope, ok := n.byPath[path]; ok {
		return scope
	}
	return n.scopes[grammar.ModuleNameForPath(path)]
}
