package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/tpeg/grammar"
	"github.com/dhamidi/tpeg/parse"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <file>",
		Short: "Report per-rule pattern complexity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read grammar file: %w", err)
			}
			file, err := parse.ParseModuleFile(args[0], string(data))
			if err != nil {
				return fmt.Errorf("parse grammar file: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RULE\tTIER\tNODES\tDEPTH\tRECURSIVE")
			for _, rule := range file.Rules() {
				score := grammar.Score(rule.Name, rule.Pattern)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\n",
					rule.Name, score.Tier, score.NodeCount, score.Depth, score.HasRecursion)
			}
			return w.Flush()
		},
	}
}
