package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List the branches of a repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		branches, err := a.Documents.Branches(ctx, repoFlag)
		if err != nil {
			return err
		}

		if formatFlag == formatJSON {
			return writeJSON(cmd.OutOrStdout(), branches)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tHEAD\tLAST COMMIT\tDEFAULT")
		for _, b := range branches {
			def := ""
			if b.IsDefault {
				def = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Name, shortSHA(b.CommitSHA), b.LastCommitDate, def)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
