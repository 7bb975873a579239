package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usageGuideCmd = &cobra.Command{
	Use:   "usage-guide",
	Short: "Generate a README style usage guide for a branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.Documents.UsageGuide(ctx, repoFlag, branchFlag)
		if err != nil {
			return err
		}
		if formatFlag == formatJSON {
			return writeJSON(cmd.OutOrStdout(), doc)
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc.MarkdownContent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageGuideCmd)
}
