package parse

import (
	"strings"

	"github.com/dhamidi/tpeg/grammar"
)

// DefaultDependencyConstraint is assumed for module dependencies
// declared without an explicit version constraint.
const DefaultDependencyConstraint = ">=1.0.0"

// ParseModuleFile parses one grammar source file: import declarations
// followed by any number of grammar blocks. Module metadata is derived
// from the reserved annotations @namespace, @version, @dependencies and
// @conflicts.
func ParseModuleFile(path, input string) (*grammar.ModuleFile, error) {
	p := newParser(path, input)
	file := &grammar.ModuleFile{FilePath: path}
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		switch {
		case p.peekKeyword("import"):
			imp, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			file.Imports = append(file.Imports, imp)
		case p.peekKeyword("grammar"):
			g, err := p.parseGrammarBlock()
			if err != nil {
				return nil, err
			}
			file.Grammars = append(file.Grammars, g)
		default:
			return nil, p.expected("'import'", "'grammar'")
		}
	}
	file.Info = deriveModuleInfo(file.Grammars)
	return file, nil
}

func (p *parser) peekKeyword(s string) bool {
	if !strings.HasPrefix(p.input[p.pos:], s) {
		return false
	}
	after := p.pos + len(s)
	return after >= len(p.input) || !isIdentPart(p.input[after])
}

// parseImport parses `import "path"` followed by any of a selective
// rule list `{ a, b }`, a `version "constraint"` clause, and an
// `as alias` clause.
func (p *parser) parseImport() (grammar.ImportStatement, error) {
	var imp grammar.ImportStatement
	p.consumeKeyword("import")
	p.skipInlineSpace()
	if p.peek() != '"' && p.peek() != '\'' {
		return imp, p.expected("module path string")
	}
	path, err := p.parseStringLiteral()
	if err != nil {
		return imp, err
	}
	imp.ModulePath = path.(*grammar.StringLiteral).Value

	for {
		save := p.pos
		p.skipInlineSpace()
		switch {
		case p.peek() == '{':
			names, err := p.parseSelectiveList()
			if err != nil {
				return imp, err
			}
			imp.Selective = names
		case p.consumeKeyword("version"):
			p.skipInlineSpace()
			if p.peek() != '"' && p.peek() != '\'' {
				return imp, p.expected("version constraint string")
			}
			constraint, err := p.parseStringLiteral()
			if err != nil {
				return imp, err
			}
			imp.Version = constraint.(*grammar.StringLiteral).Value
		case p.consumeKeyword("as"):
			p.skipInlineSpace()
			alias, ok := p.scanName()
			if !ok {
				return imp, p.expected("import alias")
			}
			imp.Alias = alias
		default:
			p.pos = save
			return imp, nil
		}
	}
}

func (p *parser) parseSelectiveList() ([]string, error) {
	p.pos++ // '{'
	var names []string
	p.skipSpace()
	if p.consume('}') {
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
		if p.consume('}') {
			return names, nil
		}
		return nil, p.expected("','", "'}'")
	}
}

// deriveModuleInfo collects the reserved module annotations from all
// grammars in the file. Returns nil when none are present.
func deriveModuleInfo(grammars []grammar.GrammarDefinition) *grammar.ModuleInfo {
	info := &grammar.ModuleInfo{}
	found := false
	for _, g := range grammars {
		for _, a := range g.Annotations {
			switch a.Key {
			case "namespace":
				info.Namespace = a.Value
				found = true
			case "version":
				info.Version = a.Value
				found = true
			case "conflicts":
				for _, name := range strings.Split(a.Value, ",") {
					if name = strings.TrimSpace(name); name != "" {
						info.Conflicts = append(info.Conflicts, name)
					}
				}
				found = true
			case "dependencies":
				if info.Dependencies == nil {
					info.Dependencies = make(map[string]string)
				}
				for _, entry := range strings.Split(a.Value, ";") {
					fields := strings.Fields(entry)
					if len(fields) == 0 {
						continue
					}
					constraint := DefaultDependencyConstraint
					if len(fields) > 1 {
						constraint = strings.Join(fields[1:], " ")
					}
					info.Dependencies[fields[0]] = constraint
				}
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	return info
}
