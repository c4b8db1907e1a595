package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tpeg/module"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <file>",
		Short: "Print the module dependency graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := module.NewResolver(module.NewOSLoader())
			graph, err := resolver.DependencyGraph(args[0])
			if err != nil {
				return fmt.Errorf("resolve: %w", err)
			}

			paths := make([]string, 0, len(graph))
			for path := range graph {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			for _, path := range paths {
				deps := graph[path]
				if len(deps) == 0 {
					fmt.Println(path)
					continue
				}
				fmt.Printf("%s\n", path)
				for _, dep := range deps {
					fmt.Printf("  -> %s\n", dep)
				}
			}
			return nil
		},
	}
}
