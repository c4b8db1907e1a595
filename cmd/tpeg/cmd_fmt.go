package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tpeg/format"
	"github.com/dhamidi/tpeg/parse"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Rewrite grammar files in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read grammar file: %w", err)
				}

				file, err := parse.ParseModuleFile(filename, string(data))
				if err != nil {
					return fmt.Errorf("parse grammar file: %w", err)
				}

				var out strings.Builder
				if err := format.NewTPEGEncoder(&out).Encode(file); err != nil {
					return fmt.Errorf("format: %w", err)
				}

				if write {
					if err := os.WriteFile(filename, []byte(out.String()), 0644); err != nil {
						return fmt.Errorf("write grammar file: %w", err)
					}
					continue
				}
				fmt.Print(out.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result back to the source file")
	return cmd
}
