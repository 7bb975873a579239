package service

import (
	"context"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type HistoryService struct {
	runs models.RunStore
}

func NewHistoryService(runs models.RunStore) *HistoryService {
	return &HistoryService{runs: runs}
}

func clampLimit(limit int) int {
	if limit < 1 || limit > MaxHistoryLimit {
		return DefaultHistoryLimit
	}
	return limit
}

// * Runs lists recent runs, optionally for one repository
func (s *HistoryService) Runs(ctx context.Context, repoURL string, limit int) ([]models.Run, error) {
	runs, err := s.runs.ListRuns(ctx, repoURL, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []models.Run{}
	}
	return runs, nil
}

func (s *HistoryService) Publications(ctx context.Context, limit int) ([]models.PublicationRecord, error) {
	pubs, err := s.runs.ListPublications(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	if pubs == nil {
		pubs = []models.PublicationRecord{}
	}
	return pubs, nil
}
