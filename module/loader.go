// Package module resolves a grammar file's import graph and manages
// per-module namespaces. A Resolver and a Namespaces instance belong to
// one compilation run each; they are never shared process-wide.
package module

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader abstracts how module source is located and read, so the
// resolver can be driven from the filesystem, an editor buffer, or a
// test fixture.
type Loader interface {
	ReadFile(path string) (string, error)
	Exists(path string) bool
	Resolve(basePath, relativePath string) string
}

// EnvSearchPath names the environment variable holding an additional
// root directory searched for imported modules.
const EnvSearchPath = "TPEG_PATH"

// ModuleExt is appended to import paths that carry no extension.
const ModuleExt = ".tpeg"

// OSLoader reads modules from the filesystem. Relative imports resolve
// against the importing file's directory, falling back to SearchPath
// when the sibling file does not exist.
type OSLoader struct {
	SearchPath string
}

// NewOSLoader builds a filesystem loader, honoring TPEG_PATH.
func NewOSLoader() *OSLoader {
	return &OSLoader{SearchPath: os.Getenv(EnvSearchPath)}
}

func (l *OSLoader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read module: %w", err)
	}
	return string(data), nil
}

func (l *OSLoader) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (l *OSLoader) Resolve(basePath, relativePath string) string {
	if filepath.Ext(relativePath) == "" {
		relativePath += ModuleExt
	}
	if filepath.IsAbs(relativePath) {
		return filepath.Clean(relativePath)
	}
	sibling := filepath.Join(filepath.Dir(basePath), relativePath)
	if l.SearchPath != "" && !l.Exists(sibling) {
		fromRoot := filepath.Join(l.SearchPath, relativePath)
		if l.Exists(fromRoot) {
			return fromRoot
		}
	}
	return sibling
}
