package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the collaborators of a branch",
	Long: `Build a contribution profile for every author on a branch and a short team summary.

Examples:
  handoff analyze -r octo/hello -b main
  handoff analyze -r https://github.com/octo/hello --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Collaborators.Analyze(ctx, repoFlag, branchFlag)
		if err != nil {
			return err
		}

		if formatFlag == formatJSON {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		printAnalysis(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func printAnalysis(w io.Writer, result *models.CollaboratorAnalysisResult) {
	heading := color.New(color.Bold)
	name := color.New(color.FgCyan, color.Bold)

	heading.Fprintf(w, "%s (%s): %d collaborators\n\n", result.RepositoryURL, result.Branch, result.TotalCollaborators)

	for _, p := range result.Collaborators {
		name.Fprintf(w, "%s <%s>\n", p.Name, p.Email)
		fmt.Fprintf(w, "  commits:    %d (%.2f/week, %s to %s)\n",
			p.CommitCount, p.CommitFrequencyPerWeek, p.FirstCommitDate.Format("2006-01-02"), p.LastCommitDate.Format("2006-01-02"))
		fmt.Fprintf(w, "  lines:      %s / %s across %d files\n",
			color.GreenString("+%d", p.LinesAdded), color.RedString("-%d", p.LinesRemoved), p.FileCount)
		if len(p.PrimaryLanguages) > 0 {
			fmt.Fprintf(w, "  languages:  %s\n", strings.Join(p.PrimaryLanguages, ", "))
		}
		if len(p.KeyAreas) > 0 {
			fmt.Fprintf(w, "  areas:      %s\n", strings.Join(p.KeyAreas, ", "))
		}
		fmt.Fprintf(w, "  summary:    %s\n\n", p.FunctionalitySummary)
	}

	if result.TeamSummary != "" {
		heading.Fprintln(w, "Team")
		fmt.Fprintln(w, result.TeamSummary)
	}
}
