package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

// * DocumentService generates the narrative documents of a branch
type DocumentService struct {
	github    GitHubReader
	generator TextGenerator
	runs      models.RunStore
	workers   int
}

func NewDocumentService(github GitHubReader, generator TextGenerator, runs models.RunStore, workers int) *DocumentService {
	if workers < 1 {
		workers = defaultDiffWorkers
	}
	return &DocumentService{github: github, generator: generator, runs: runs, workers: workers}
}

func (s *DocumentService) Branches(ctx context.Context, repoURL string) ([]models.Branch, error) {
	owner, repo, err := parseRepository(repoURL)
	if err != nil {
		return nil, err
	}

	branches, err := s.github.ListBranches(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetched %d branches of %s/%s", len(branches), owner, repo)
	return branches, nil
}

// * Generate dispatches on the document type
func (s *DocumentService) Generate(ctx context.Context, docType models.DocumentType, repoURL, branch string) (*models.Document, error) {
	switch docType {
	case models.DocumentUsageGuide:
		return s.UsageGuide(ctx, repoURL, branch)
	case models.DocumentEvolutionHistory:
		return s.EvolutionSummary(ctx, repoURL, branch)
	default:
		return nil, invalidDocumentType(docType)
	}
}

func invalidDocumentType(docType models.DocumentType) error {
	return apperrors.New(
		apperrors.RefInvalidRequest,
		"Invalid document_type",
		fmt.Sprintf("Got %q, use 'usage_guide' or 'evolution_history'", docType),
		nil,
		apperrors.LevelError,
	)
}

// * history lists the branch and renders its commit-by-commit log
func (s *DocumentService) history(ctx context.Context, repoURL, branch string) (string, int, error) {
	owner, repo, err := parseRepository(repoURL)
	if err != nil {
		return "", 0, err
	}
	if err := requireBranch(branch); err != nil {
		return "", 0, err
	}

	commits, err := s.github.ListCommits(ctx, owner, repo, branch)
	if err != nil {
		return "", 0, err
	}
	if len(commits) == 0 {
		return "", 0, apperrors.New(
			apperrors.RefNotFound,
			"No commits found on this branch.",
			fmt.Sprintf("%s/%s@%s has no commits", owner, repo, branch),
			nil,
			apperrors.LevelInfo,
		)
	}

	return buildHistory(ctx, s.github, owner, repo, repoURL, branch, commits, s.workers), len(commits), nil
}

// * EvolutionSummary builds the "How We Got Here" change log of a branch
func (s *DocumentService) EvolutionSummary(ctx context.Context, repoURL, branch string) (doc *models.Document, err error) {
	run := newRun(models.RunEvolutionSummary, repoURL, branch)
	defer func() { recordRun(ctx, s.runs, run, err) }()

	history, count, err := s.history(ctx, repoURL, branch)
	if err != nil {
		return nil, err
	}
	run.CommitCount = count

	markdown, err := s.generator.Generate(ctx, evolutionPrompt(history))
	if err != nil {
		return nil, generationFailed(err, "evolution summary")
	}

	return &models.Document{
		RepositoryURL:         repoURL,
		Branch:                branch,
		DocumentType:          models.DocumentEvolutionHistory,
		GeneratedAt:           time.Now().UTC(),
		MarkdownContent:       markdown,
		ProcessingTimeSeconds: time.Since(run.StartedAt).Seconds(),
	}, nil
}

// * AskQuestion answers a free-form question from the branch history
func (s *DocumentService) AskQuestion(ctx context.Context, repoURL, branch, question string) (answer *models.EvolutionAnswer, err error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.New(apperrors.RefInvalidRequest, "Question is required", "", nil, apperrors.LevelError)
	}

	run := newRun(models.RunEvolutionQuestion, repoURL, branch)
	defer func() { recordRun(ctx, s.runs, run, err) }()

	history, count, err := s.history(ctx, repoURL, branch)
	if err != nil {
		return nil, err
	}
	run.CommitCount = count

	text, err := s.generator.Generate(ctx, questionPrompt(history, question))
	if err != nil {
		return nil, generationFailed(err, "answer")
	}

	return &models.EvolutionAnswer{Answer: text, CommitCountUsed: count}, nil
}

// * UsageGuide generates a README from the repository tree at the branch head
func (s *DocumentService) UsageGuide(ctx context.Context, repoURL, branch string) (doc *models.Document, err error) {
	run := newRun(models.RunUsageGuide, repoURL, branch)
	defer func() { recordRun(ctx, s.runs, run, err) }()

	owner, repo, err := parseRepository(repoURL)
	if err != nil {
		return nil, err
	}
	if err := requireBranch(branch); err != nil {
		return nil, err
	}

	sha, err := s.github.HeadCommit(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	entries, err := s.github.GetTree(ctx, owner, repo, sha)
	if err != nil {
		return nil, err
	}

	collected, analyzed, critical := collectRepository(ctx, s.github, owner, repo, repoURL, branch, sha, entries, s.workers)
	logger.Debug("usage guide for %s/%s@%s: %d files, %d analyzed, %d critical", owner, repo, branch, len(entries), analyzed, critical)

	markdown, err := s.generator.Generate(ctx, usageGuidePrompt(collected, analyzed, critical))
	if err != nil {
		return nil, generationFailed(err, "usage guide")
	}

	return &models.Document{
		RepositoryURL:         repoURL,
		Branch:                branch,
		DocumentType:          models.DocumentUsageGuide,
		GeneratedAt:           time.Now().UTC(),
		MarkdownContent:       markdown,
		ProcessingTimeSeconds: time.Since(run.StartedAt).Seconds(),
	}, nil
}
