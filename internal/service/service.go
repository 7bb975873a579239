package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/config"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

// * GitHubReader is the part of the GitHub client the documentation services use
type GitHubReader interface {
	ListCommits(ctx context.Context, owner, repo, branch string) ([]models.Commit, error)
	HeadCommit(ctx context.Context, owner, repo, branch string) (string, error)
	ListBranches(ctx context.Context, owner, repo string) ([]models.Branch, error)
	CompareCommits(ctx context.Context, owner, repo, base, head string) ([]models.FileDiff, error)
	GetTree(ctx context.Context, owner, repo, sha string) ([]models.TreeEntry, error)
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func parseRepository(repoURL string) (string, string, error) {
	owner, repo, err := config.ParseRepository(repoURL)
	if err != nil {
		return "", "", apperrors.New(
			apperrors.RefInvalidRequest,
			"Invalid GitHub repository URL",
			err.Error(),
			err,
			apperrors.LevelError,
		)
	}
	return owner, repo, nil
}

func requireBranch(branch string) error {
	if branch == "" {
		return apperrors.New(
			apperrors.RefInvalidRequest,
			"Branch is required",
			"Pass the branch to analyze",
			nil,
			apperrors.LevelError,
		)
	}
	return nil
}

// * recordRun stores run metadata. Failures are logged and never returned to the caller.
func recordRun(ctx context.Context, store models.RunStore, run *models.Run, runErr error) {
	run.DurationSeconds = time.Since(run.StartedAt).Seconds()
	run.Status = models.RunSucceeded
	if runErr != nil {
		run.Status = models.RunFailed
		run.ErrorMessage = runErr.Error()
	}

	if err := store.InsertRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("could not record %s run for %s: %v", run.Kind, run.RepositoryURL, err)
	}
}

func newRun(kind models.RunKind, repoURL, branch string) *models.Run {
	return &models.Run{
		Kind:          kind,
		RepositoryURL: repoURL,
		Branch:        branch,
		StartedAt:     time.Now().UTC(),
	}
}

func generationFailed(err error, what string) error {
	return apperrors.New(
		apperrors.RefGeneration,
		fmt.Sprintf("Error generating %s", what),
		"The language model request failed",
		err,
		apperrors.LevelError,
	)
}

// * truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) (string, bool) {
	if len(s) <= n {
		return s, false
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n], true
}
