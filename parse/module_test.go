package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/tpeg/grammar"
)

func TestParseImports(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected grammar.ImportStatement
	}{
		{
			name:     "plain import",
			input:    `import "lexer"`,
			expected: grammar.ImportStatement{ModulePath: "lexer"},
		},
		{
			name:     "aliased import",
			input:    `import "lexer" as lex`,
			expected: grammar.ImportStatement{ModulePath: "lexer", Alias: "lex"},
		},
		{
			name:     "selective import",
			input:    `import "lexer" { number, ident }`,
			expected: grammar.ImportStatement{ModulePath: "lexer", Selective: []string{"number", "ident"}},
		},
		{
			name:     "versioned import",
			input:    `import "lexer" version ">=1.2.0"`,
			expected: grammar.ImportStatement{ModulePath: "lexer", Version: ">=1.2.0"},
		},
		{
			name:     "versioned aliased import",
			input:    `import "lexer" version "^1.0.0" as lex`,
			expected: grammar.ImportStatement{ModulePath: "lexer", Version: "^1.0.0", Alias: "lex"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseModuleFile("main.tpeg", tt.input)
			if err != nil {
				t.Fatalf("ParseModuleFile() error = %v", err)
			}
			if len(file.Imports) != 1 {
				t.Fatalf("len(Imports) = %d, want 1", len(file.Imports))
			}
			if diff := cmp.Diff(tt.expected, file.Imports[0]); diff != "" {
				t.Errorf("import mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseModuleFile(t *testing.T) {
	input := `
import "lexer" as lex
import "util" { trim }

grammar Main {
  @namespace: "app.main"
  @version: "2.1.0"
  @dependencies: "lexer >=1.0.0; util"
  @conflicts: "legacy, oldmain"
  @export: [start]

  start = lex.token*
}
`
	file, err := ParseModuleFile("main.tpeg", input)
	if err != nil {
		t.Fatalf("ParseModuleFile() error = %v", err)
	}
	if len(file.Imports) != 2 {
		t.Fatalf("len(Imports) = %d, want 2", len(file.Imports))
	}
	if len(file.Grammars) != 1 {
		t.Fatalf("len(Grammars) = %d, want 1", len(file.Grammars))
	}
	if file.Info == nil {
		t.Fatal("Info = nil, want module info")
	}
	wantInfo := &grammar.ModuleInfo{
		Namespace: "app.main",
		Version:   "2.1.0",
		Dependencies: map[string]string{
			"lexer": ">=1.0.0",
			"util":  DefaultDependencyConstraint,
		},
		Conflicts: []string{"legacy", "oldmain"},
	}
	if diff := cmp.Diff(wantInfo, file.Info); diff != "" {
		t.Errorf("Info mismatch (-want +got):\n%s", diff)
	}
	if got := file.ModuleName(); got != "app.main" {
		t.Errorf("ModuleName() = %q, want %q", got, "app.main")
	}
}

func TestModuleNameDefaultsToFileStem(t *testing.T) {
	file, err := ParseModuleFile("grammars/math.tpeg", `grammar Math { a = "x" }`)
	if err != nil {
		t.Fatalf("ParseModuleFile() error = %v", err)
	}
	if file.Info != nil {
		t.Errorf("Info = %+v, want nil for plain grammar", file.Info)
	}
	if got := file.ModuleName(); got != "math" {
		t.Errorf("ModuleName() = %q, want %q", got, "math")
	}
}

func TestParseModuleFileRejectsStrayContent(t *testing.T) {
	_, err := ParseModuleFile("main.tpeg", `export "lexer"`)
	if err == nil {
		t.Fatal("ParseModuleFile() succeeded, want error")
	}
}

func TestQualifiedIdentifierInPattern(t *testing.T) {
	file, err := ParseModuleFile("main.tpeg", "import \"lexer\" as lex\ngrammar G { a = lex.number }")
	if err != nil {
		t.Fatalf("ParseModuleFile() error = %v", err)
	}
	want := grammar.Expression(&grammar.Identifier{Name: "lex.number"})
	if diff := cmp.Diff(want, file.Grammars[0].Rules[0].Pattern); diff != "" {
		t.Errorf("pattern mismatch (-want +got):\n%s", diff)
	}
}
