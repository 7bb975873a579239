package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var questionFlag string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Generate the change log of a branch, or ask about it",
	Long: `Generate the "How We Got Here" change log from every commit and diff on a branch.
With --question the history is used to answer the question instead.

Examples:
  handoff history -r octo/hello -b main > CHANGELOG.md
  handoff history -r octo/hello -q "When was the API introduced?"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if questionFlag != "" {
			answer, err := a.Documents.AskQuestion(ctx, repoFlag, branchFlag, questionFlag)
			if err != nil {
				return err
			}
			if formatFlag == formatJSON {
				return writeJSON(cmd.OutOrStdout(), answer)
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer.Answer)
			return nil
		}

		doc, err := a.Documents.EvolutionSummary(ctx, repoFlag, branchFlag)
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
	historyCmd.Flags().StringVarP(&questionFlag, "question", "q", "", "Ask a question about the history")
	rootCmd.AddCommand(historyCmd)
}
