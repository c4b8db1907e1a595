package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tpeg/module"
	"github.com/dhamidi/tpeg/version"
)

// newCheckCmd wires the whole pipeline: resolve the import graph from
// the root file, register every module with the version and namespace
// managers, then run the explicit validation passes.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Resolve a grammar module and validate versions and namespaces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := module.NewResolver(module.NewOSLoader())
			root, err := resolver.ResolveModule(args[0])
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}

			versions := version.NewManager()
			namespaces := module.NewNamespaces()
			modules := resolver.Modules()
			for _, mod := range modules {
				if _, err := versions.RegisterModule(mod.Content); err != nil {
					return fmt.Errorf("register %s: %w", mod.FilePath, err)
				}
				namespaces.RegisterModule(mod.Content)
			}

			if err := versions.ValidateAllDependencies(); err != nil {
				return fmt.Errorf("version check: %w", err)
			}
			for _, mod := range modules {
				if err := namespaces.CheckNamespaceConflicts(mod.Content.ModuleName()); err != nil {
					return fmt.Errorf("namespace check %s: %w", mod.FilePath, err)
				}
			}

			fmt.Printf("ok: %d modules, %d transitive dependencies\n", len(modules), len(root.AllDependencies))
			return nil
		},
	}
}
