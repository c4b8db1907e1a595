package module

import (
	"fmt"
	"strings"
)

// NotFoundError reports an import whose target file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module not found: %s", e.Path)
}

// LoadError reports a module that exists but could not be read or
// parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load module %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// CircularDependencyError reports an import cycle. Cycle holds the
// module paths in import order, beginning and ending with the module
// that closed the cycle.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return "circular dependency: " + strings.Join(e.Cycle, " -> ")
}

// NamespaceConflictError reports a rule name exported by more than one
// imported module, making unqualified resolution ambiguous.
type NamespaceConflictError struct {
	Rule    string
	Aliases []string
}

func (e *NamespaceConflictError) Error() string {
	return fmt.Sprintf("namespace conflict: rule %q is exported by imports %s",
		e.Rule, strings.Join(e.Aliases, " and "))
}

// ResolutionError reports a qualified or local rule reference that
// could not be resolved.
type ResolutionError struct {
	Module string
	Name   string
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("cannot resolve %s.%s: %s", e.Module, e.Name, e.Reason)
	}
	return fmt.Sprintf("cannot resolve %s: %s", e.Name, e.Reason)
}
