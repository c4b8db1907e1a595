package version

import (
	"fmt"
	"sort"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/tpeg/grammar"
)

var log = commonlog.GetLogger("tpeg.version")

// DefaultVersion is assumed for modules that declare no version.
const DefaultVersion = "1.0.0"

// DefaultConstraint is assumed for dependencies that declare no
// constraint.
const DefaultConstraint = ">=1.0.0"

// ModuleVersion is the registered version record of one module,
// immutable after registration.
type ModuleVersion struct {
	ModuleName   string
	Version      SemanticVersion
	Dependencies map[string]Constraint
	Conflicts    map[string]struct{}
}

// CompatibilityError reports a dependency requirement that the
// registered module set cannot satisfy.
type CompatibilityError struct {
	Module     string
	Dependency string
	Reason     string
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("module %s: dependency %s: %s", e.Module, e.Dependency, e.Reason)
}

// Manager tracks module versions for one compilation run. Version
// parses are memoized by exact input string. Registration is
// deliberately permissive so the whole module graph can be registered
// before any validation pass runs.
type Manager struct {
	modules    map[string]*ModuleVersion
	parseCache map[string]SemanticVersion
}

func NewManager() *Manager {
	return &Manager{
		modules:    make(map[string]*ModuleVersion),
		parseCache: make(map[string]SemanticVersion),
	}
}

// ParseVersion parses a version string, memoized per input.
func (m *Manager) ParseVersion(input string) (SemanticVersion, error) {
	if v, ok := m.parseCache[input]; ok {
		return v, nil
	}
	v, err := Parse(input)
	if err != nil {
		return SemanticVersion{}, err
	}
	m.parseCache[input] = v
	return v, nil
}

// RegisterModule records a module's version, dependency constraints and
// conflict set. A malformed version or constraint string rejects the
// module outright; no compatibility checking happens here.
func (m *Manager) RegisterModule(file *grammar.ModuleFile) (*ModuleVersion, error) {
	name := file.ModuleName()
	versionStr := DefaultVersion
	if file.Info != nil && file.Info.Version != "" {
		versionStr = file.Info.Version
	}
	v, err := m.ParseVersion(versionStr)
	if err != nil {
		return nil, err
	}

	mv := &ModuleVersion{
		ModuleName:   name,
		Version:      v,
		Dependencies: make(map[string]Constraint),
		Conflicts:    make(map[string]struct{}),
	}
	for _, imp := range file.Imports {
		if imp.Version == "" {
			continue
		}
		c, err := ParseConstraint(imp.Version)
		if err != nil {
			return nil, err
		}
		mv.Dependencies[grammar.ModuleNameForPath(imp.ModulePath)] = c
	}
	if file.Info != nil {
		for path, constraintStr := range file.Info.Dependencies {
			dep := grammar.ModuleNameForPath(path)
			if _, ok := mv.Dependencies[dep]; ok {
				continue
			}
			if constraintStr == "" {
				constraintStr = DefaultConstraint
			}
			c, err := ParseConstraint(constraintStr)
			if err != nil {
				return nil, err
			}
			mv.Dependencies[dep] = c
		}
		for _, conflict := range file.Info.Conflicts {
			mv.Conflicts[conflict] = struct{}{}
		}
	}

	m.modules[name] = mv
	log.Debugf("registered %s@%s (%d dependencies)", name, v, len(mv.Dependencies))
	return mv, nil
}

// Module returns the registered record for name.
func (m *Manager) Module(name string) (*ModuleVersion, bool) {
	mv, ok := m.modules[name]
	return mv, ok
}

// ValidateDependencies checks one registered module against the rest of
// the registry: every dependency must be registered with a satisfying
// version, and no conflicting module may be registered.
func (m *Manager) ValidateDependencies(name string) error {
	mv, ok := m.modules[name]
	if !ok {
		return &CompatibilityError{Module: name, Reason: "module is not registered"}
	}

	deps := make([]string, 0, len(mv.Dependencies))
	for dep := range mv.Dependencies {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	for _, dep := range deps {
		constraint := mv.Dependencies[dep]
		target, ok := m.modules[dep]
		if !ok {
			return &CompatibilityError{Module: name, Dependency: dep, Reason: "required module is not registered"}
		}
		if !constraint.Satisfies(target.Version) {
			return &CompatibilityError{
				Module:     name,
				Dependency: dep,
				Reason:     fmt.Sprintf("version %s does not satisfy constraint %s", target.Version, constraint),
			}
		}
	}

	conflicts := make([]string, 0, len(mv.Conflicts))
	for conflict := range mv.Conflicts {
		conflicts = append(conflicts, conflict)
	}
	sort.Strings(conflicts)
	for _, conflict := range conflicts {
		if _, ok := m.modules[conflict]; ok {
			return &CompatibilityError{
				Module:     name,
				Dependency: conflict,
				Reason:     "conflicting module is registered",
			}
		}
	}
	return nil
}

// ValidateAllDependencies validates every registered module.
func (m *Manager) ValidateAllDependencies() error {
	names := make([]string, 0, len(m.modules))
	for name := range m.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := m.ValidateDependencies(name); err != nil {
			return err
		}
	}
	return nil
}
