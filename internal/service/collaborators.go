package service

import (
	"context"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

type CollaboratorAnalyzer interface {
	Analyze(ctx context.Context, repoURL, owner, repo, branch string) (*models.CollaboratorAnalysisResult, error)
}

type CollaboratorService struct {
	analyzer CollaboratorAnalyzer
	runs     models.RunStore
}

func NewCollaboratorService(analyzer CollaboratorAnalyzer, runs models.RunStore) *CollaboratorService {
	return &CollaboratorService{analyzer: analyzer, runs: runs}
}

func (s *CollaboratorService) Analyze(ctx context.Context, repoURL, branch string) (*models.CollaboratorAnalysisResult, error) {
	owner, repo, err := parseRepository(repoURL)
	if err != nil {
		return nil, err
	}
	if err := requireBranch(branch); err != nil {
		return nil, err
	}

	run := newRun(models.RunCollaboratorAnalysis, repoURL, branch)

	result, err := s.analyzer.Analyze(ctx, repoURL, owner, repo, branch)
	if err == nil {
		run.ContributorCount = result.TotalCollaborators
		for _, p := range result.Collaborators {
			run.CommitCount += p.CommitCount
		}
		logger.Info("Analyzed %d collaborators of %s/%s@%s in %.2fs", result.TotalCollaborators, owner, repo, branch, result.ProcessingTimeSeconds)
	}
	recordRun(ctx, s.runs, run, err)

	return result, err
}
