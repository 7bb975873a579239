package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const (
	maxPatchLength     = 2000
	defaultDiffWorkers = 4
)

// * diffResult is the outcome of comparing a commit with its predecessor
type diffResult struct {
	files []models.FileDiff
	err   error
}

// * buildHistory renders the commit-by-commit log, oldest first, with each
// * commit's diff against its predecessor. commits must be newest first.
func buildHistory(ctx context.Context, gh GitHubReader, owner, repo, repoURL, branch string, commits []models.Commit, workers int) string {
	ordered := make([]models.Commit, len(commits))
	for i, c := range commits {
		ordered[len(commits)-1-i] = c
	}

	diffs := make([]diffResult, len(ordered))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 1; i < len(ordered); i++ {
		g.Go(func() error {
			files, err := gh.CompareCommits(ctx, owner, repo, ordered[i-1].SHA, ordered[i].SHA)
			diffs[i] = diffResult{files: files, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var b strings.Builder
	fmt.Fprintf(&b, "# How We Got Here - %s (%s branch)\n\n", repoURL, branch)
	fmt.Fprintf(&b, "Total commits: %d\n\n", len(ordered))
	b.WriteString("## Commit-by-Commit Evolution\n\n")

	for i, c := range ordered {
		fmt.Fprintf(&b, "### Commit `%s`\n", shortSHA(c.SHA))
		fmt.Fprintf(&b, "- **Date:** %s\n", c.Timestamp.UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "- **Author:** %s\n", c.AuthorName)
		fmt.Fprintf(&b, "- **Message:** %s\n", c.Message)

		switch {
		case i == 0:
			b.WriteString("_Initial commit (no diff)_\n\n")
		case diffs[i].err != nil:
			logger.Debug("compare %s failed: %v", c.SHA, diffs[i].err)
			b.WriteString("_Could not fetch diff_\n")
		default:
			for _, f := range diffs[i].files {
				if f.Patch == "" {
					continue
				}
				patch, cut := truncate(f.Patch, maxPatchLength)
				if cut {
					patch += "\n...diff truncated...\n"
				}
				fmt.Fprintf(&b, "\n#### `%s`\n```diff\n%s\n```\n", f.Filename, patch)
			}
		}
		b.WriteString("\n---\n\n")
	}

	return b.String()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func evolutionPrompt(history string) string {
	return "You are given a markdown document representing the complete commit history of a GitHub branch, " +
		"including every commit message, code content, and the differences between each commit. " +
		"Analyze this development journey and generate a comprehensive Markdown document titled 'Change Log'.\n\n" +
		"Your summary should:\n" +
		"- Create a changelog section that highlights every change made in chronological order. " +
		"Give at most 3 bullet points describing what changed in each commit. Categorize each commit as major, minor, or patch.\n" +
		"- Identify and explain key architectural decisions made throughout the project.\n" +
		"- Highlight major changes and refactors, referencing relevant commits.\n" +
		"- Summarize important lessons learned or patterns observed during development.\n" +
		"- Organize the content clearly with appropriate Markdown headings and bullet points.\n" +
		"- Make it readable and insightful for developers who want to understand the project's evolution.\n\n" +
		"Here is the commit history:\n\n" +
		history + "\n\n" +
		"Output the enhanced markdown content only."
}

func questionPrompt(history, question string) string {
	return "You are a Git historian assistant. Based on the following Git commit and diff history, " +
		"answer the user's question.\n\n" +
		history + "\n" +
		"## Question:\n" +
		question + "\n\n" +
		"Be concise but informative. Reference commits when possible."
}
