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

const markdownSource = "markdown"

type PageCreator interface {
	CreatePage(ctx context.Context, title, markdown, spaceKey string) (*models.Publication, error)
	GetSpace(ctx context.Context, key string) (*models.Space, error)
}

type JobPublisher interface {
	PublishJob(ctx context.Context, job models.PublishJob) error
}

type DocumentGenerator interface {
	Generate(ctx context.Context, docType models.DocumentType, repoURL, branch string) (*models.Document, error)
}

// * PublishService generates documents and writes them to the wiki
type PublishService struct {
	documents DocumentGenerator
	wiki      PageCreator
	jobs      JobPublisher
	runs      models.RunStore
}

// * NewPublishService builds the service. jobs may be nil when no broker is configured.
func NewPublishService(documents DocumentGenerator, wiki PageCreator, jobs JobPublisher, runs models.RunStore) *PublishService {
	return &PublishService{documents: documents, wiki: wiki, jobs: jobs, runs: runs}
}

func (s *PublishService) TestConnection(ctx context.Context) (*models.Space, error) {
	return s.wiki.GetSpace(ctx, "")
}

// * PageTitle is "{Usage Guide|Evolution History} - {repo} ({branch})"
func PageTitle(docType models.DocumentType, repo, branch string) string {
	return fmt.Sprintf("%s - %s (%s)", docType.Title(), repo, branch)
}

// * PublishDocument generates the document and creates a page for it
func (s *PublishService) PublishDocument(ctx context.Context, repoURL, branch string, docType models.DocumentType, spaceKey string) (*models.Publication, error) {
	if !docType.Valid() {
		return nil, invalidDocumentType(docType)
	}
	_, repo, err := parseRepository(repoURL)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.Generate(ctx, docType, repoURL, branch)
	if err != nil {
		return nil, err
	}

	return s.publish(ctx, repoURL, branch, string(docType), PageTitle(docType, repo, branch), doc.MarkdownContent, spaceKey)
}

// * PublishMarkdown creates a page from caller supplied markdown in the default space
func (s *PublishService) PublishMarkdown(ctx context.Context, title, markdown string) (*models.Publication, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.New(apperrors.RefInvalidRequest, "Title is required", "", nil, apperrors.LevelError)
	}
	return s.publish(ctx, "", "", markdownSource, title, markdown, "")
}

// * Enqueue hands a publish request to the worker
func (s *PublishService) Enqueue(ctx context.Context, job models.PublishJob) error {
	if s.jobs == nil {
		return apperrors.New(
			apperrors.RefConfigMissing,
			"Asynchronous publishing is not available",
			"Set RABBITMQ_URL to enable queued publishing",
			nil,
			apperrors.LevelError,
		)
	}
	if !job.DocumentType.Valid() {
		return invalidDocumentType(job.DocumentType)
	}
	if _, _, err := parseRepository(job.RepositoryURL); err != nil {
		return err
	}
	if job.RequestedAt.IsZero() {
		job.RequestedAt = time.Now().UTC()
	}

	if err := s.jobs.PublishJob(ctx, job); err != nil {
		return apperrors.New(apperrors.RefUpstream, "Failed to enqueue publish job", job.RepositoryURL, err, apperrors.LevelError)
	}

	logger.Info("Queued %s publication for %s@%s", job.DocumentType, job.RepositoryURL, job.Branch)
	return nil
}

// * HandleJob runs a queued publish request
func (s *PublishService) HandleJob(ctx context.Context, job models.PublishJob) error {
	_, err := s.PublishDocument(ctx, job.RepositoryURL, job.Branch, job.DocumentType, job.SpaceKey)
	return err
}

func (s *PublishService) publish(ctx context.Context, repoURL, branch, source, title, markdown, spaceKey string) (*models.Publication, error) {
	run := newRun(models.RunPublish, repoURL, branch)

	pub, err := s.wiki.CreatePage(ctx, title, markdown, spaceKey)
	if err != nil {
		recordRun(ctx, s.runs, run, err)
		return nil, err
	}

	run.Status = models.RunSucceeded
	run.DurationSeconds = time.Since(run.StartedAt).Seconds()
	record := &models.PublicationRecord{
		Publication: *pub,
		Source:      source,
		PublishedAt: time.Now().UTC(),
	}
	if err := s.runs.RecordPublication(context.WithoutCancel(ctx), run, record); err != nil {
		logger.Warn("could not record publication of page %s: %v", pub.PageID, err)
	}

	return pub, nil
}
