package models

import "context"

// * RunStore records generation runs and wiki publications
type RunStore interface {
	InsertRun(ctx context.Context, run *Run) error
	// * ListRuns returns the newest runs first. An empty repoURL lists every repository.
	ListRuns(ctx context.Context, repoURL string, limit int) ([]Run, error)
	// * RecordPublication stores the publish run and the page it created together
	RecordPublication(ctx context.Context, run *Run, pub *PublicationRecord) error
	ListPublications(ctx context.Context, limit int) ([]PublicationRecord, error)
}
