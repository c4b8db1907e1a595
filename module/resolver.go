package module

import (
	"path/filepath"
	"slices"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/tpeg/grammar"
	"github.com/dhamidi/tpeg/parse"
)

var log = commonlog.GetLogger("tpeg.module")

// ResolvedModule is one entry of the resolver's cache. An entry is
// inserted the moment resolution of its path begins, with Resolved
// still false, so re-entrant lookups of the same path can observe the
// in-flight resolution. Once Resolved is true the entry is immutable
// and AllDependencies is safe to read.
type ResolvedModule struct {
	FilePath        string
	Content         *grammar.ModuleFile
	Dependencies    []string
	AllDependencies map[string]struct{}
	Resolved        bool
}

// Resolver builds the module dependency graph for one compilation run.
// It memoizes by normalized path: a module imported along several paths
// is loaded and parsed exactly once.
type Resolver struct {
	loader    Loader
	cache     map[string]*ResolvedModule
	resolving []string
}

func NewResolver(loader Loader) *Resolver {
	return &Resolver{
		loader: loader,
		cache:  make(map[string]*ResolvedModule),
	}
}

// ResolveModule resolves the module at path along with its transitive
// dependencies, depth-first. A failure anywhere in the recursion
// propagates to the caller; modules whose resolution was aborted stay
// cached but unresolved and must not be used.
func (r *Resolver) ResolveModule(path string) (*ResolvedModule, error) {
	path = normalizePath(path)

	if cached, ok := r.cache[path]; ok && cached.Resolved {
		return cached, nil
	}
	if i := slices.Index(r.resolving, path); i >= 0 {
		cycle := append(slices.Clone(r.resolving[i:]), path)
		log.Errorf("import cycle closed at %s", path)
		return nil, &CircularDependencyError{Cycle: cycle}
	}

	r.resolving = append(r.resolving, path)
	defer func() {
		r.resolving = r.resolving[:len(r.resolving)-1]
	}()

	log.Debugf("resolving %s", path)
	if !r.loader.Exists(path) {
		return nil, &NotFoundError{Path: path}
	}
	text, err := r.loader.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	content, err := parse.ParseModuleFile(path, text)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	mod := &ResolvedModule{
		FilePath:        path,
		Content:         content,
		AllDependencies: make(map[string]struct{}),
	}
	r.cache[path] = mod

	for _, imp := range content.Imports {
		dep := normalizePath(r.loader.Resolve(path, imp.ModulePath))
		mod.Dependencies = append(mod.Dependencies, dep)
	}
	for _, dep := range mod.Dependencies {
		resolved, err := r.ResolveModule(dep)
		if err != nil {
			return nil, err
		}
		mod.AllDependencies[dep] = struct{}{}
		for transitive := range resolved.AllDependencies {
			mod.AllDependencies[transitive] = struct{}{}
		}
	}

	mod.Resolved = true
	log.Debugf("resolved %s (%d direct, %d transitive)", path, len(mod.Dependencies), len(mod.AllDependencies))
	return mod, nil
}

// DependencyGraph resolves root and returns the adjacency map of every
// resolved module to its direct dependencies.
func (r *Resolver) DependencyGraph(root string) (map[string][]string, error) {
	if _, err := r.ResolveModule(root); err != nil {
		return nil, err
	}
	graph := make(map[string][]string, len(r.cache))
	for path, mod := range r.cache {
		if !mod.Resolved {
			continue
		}
		graph[path] = slices.Clone(mod.Dependencies)
	}
	return graph, nil
}

// Modules returns all fully resolved modules in the cache.
func (r *Resolver) Modules() []*ResolvedModule {
	var modules []*ResolvedModule
	for _, mod := range r.cache {
		if mod.Resolved {
			modules = append(modules, mod)
		}
	}
	slices.SortFunc(modules, func(a, b *ResolvedModule) int {
		switch {
		case a.FilePath < b.FilePath:
			return -1
		case a.FilePath > b.FilePath:
			return 1
		}
		return 0
	})
	return modules
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}
