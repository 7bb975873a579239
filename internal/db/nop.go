package db

import (
	"context"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
)

// * NopStore is used when DB_URL is not set. Runs are logged by callers but not kept.
type NopStore struct{}

func (NopStore) InsertRun(ctx context.Context, run *models.Run) error { return nil }

func (NopStore) ListRuns(ctx context.Context, repoURL string, limit int) ([]models.Run, error) {
	return []models.Run{}, nil
}

func (NopStore) RecordPublication(ctx context.Context, run *models.Run, pub *models.PublicationRecord) error {
	return nil
}

func (NopStore) ListPublications(ctx context.Context, limit int) ([]models.PublicationRecord, error) {
	return []models.PublicationRecord{}, nil
}
