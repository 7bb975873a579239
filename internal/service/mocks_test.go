package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
)

type MockGitHubReader struct {
	mock.Mock
}

func (m *MockGitHubReader) ListCommits(ctx context.Context, owner, repo, branch string) ([]models.Commit, error) {
	args := m.Called(ctx, owner, repo, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockGitHubReader) HeadCommit(ctx context.Context, owner, repo, branch string) (string, error) {
	args := m.Called(ctx, owner, repo, branch)
	return args.String(0), args.Error(1)
}

func (m *MockGitHubReader) ListBranches(ctx context.Context, owner, repo string) ([]models.Branch, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Branch), args.Error(1)
}

func (m *MockGitHubReader) CompareCommits(ctx context.Context, owner, repo, base, head string) ([]models.FileDiff, error) {
	args := m.Called(ctx, owner, repo, base, head)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FileDiff), args.Error(1)
}

func (m *MockGitHubReader) GetTree(ctx context.Context, owner, repo, sha string) ([]models.TreeEntry, error) {
	args := m.Called(ctx, owner, repo, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TreeEntry), args.Error(1)
}

func (m *MockGitHubReader) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	args := m.Called(ctx, owner, repo, path, ref)
	return args.String(0), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockRunStore struct {
	mock.Mock
}

func (m *MockRunStore) InsertRun(ctx context.Context, run *models.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunStore) ListRuns(ctx context.Context, repoURL string, limit int) ([]models.Run, error) {
	args := m.Called(ctx, repoURL, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Run), args.Error(1)
}

func (m *MockRunStore) RecordPublication(ctx context.Context, run *models.Run, pub *models.PublicationRecord) error {
	args := m.Called(ctx, run, pub)
	return args.Error(0)
}

func (m *MockRunStore) ListPublications(ctx context.Context, limit int) ([]models.PublicationRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PublicationRecord), args.Error(1)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, repoURL, owner, repo, branch string) (*models.CollaboratorAnalysisResult, error) {
	args := m.Called(ctx, repoURL, owner, repo, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollaboratorAnalysisResult), args.Error(1)
}

type MockPageCreator struct {
	mock.Mock
}

func (m *MockPageCreator) CreatePage(ctx context.Context, title, markdown, spaceKey string) (*models.Publication, error) {
	args := m.Called(ctx, title, markdown, spaceKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Publication), args.Error(1)
}

func (m *MockPageCreator) GetSpace(ctx context.Context, key string) (*models.Space, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Space), args.Error(1)
}

type MockJobPublisher struct {
	mock.Mock
}

func (m *MockJobPublisher) PublishJob(ctx context.Context, job models.PublishJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type MockDocumentGenerator struct {
	mock.Mock
}

func (m *MockDocumentGenerator) Generate(ctx context.Context, docType models.DocumentType, repoURL, branch string) (*models.Document, error) {
	args := m.Called(ctx, docType, repoURL, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}
