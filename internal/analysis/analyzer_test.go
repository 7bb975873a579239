package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/llm"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
)

type MockCommitLister struct {
	mock.Mock
}

func (m *MockCommitLister) ListCommits(ctx context.Context, owner, repo, branch string) ([]models.Commit, error) {
	args := m.Called(ctx, owner, repo, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type detailFunc func(sha string) (models.CommitDetail, error)

func (f detailFunc) GetCommitDetail(ctx context.Context, owner, repo, sha string) (models.CommitDetail, error) {
	return f(sha)
}

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func commitBy(sha, name string, at time.Time, message string) models.Commit {
	return models.Commit{
		SHA:         sha,
		AuthorName:  name,
		AuthorEmail: strings.ToLower(name) + "@example.com",
		Timestamp:   at,
		Message:     message,
	}
}

func staticDetails(files map[string][]string) detailFunc {
	return func(sha string) (models.CommitDetail, error) {
		return models.CommitDetail{SHA: sha, LinesAdded: 10, LinesRemoved: 2, FilesChanged: files[sha]}, nil
	}
}

func newTestAnalyzer(commits []models.Commit, details DetailFetcher, gen TextGenerator) (*Analyzer, *MockCommitLister) {
	lister := &MockCommitLister{}
	lister.On("ListCommits", mock.Anything, "owner", "repo", "main").Return(commits, nil)
	return NewAnalyzer(lister, details, gen, Options{DetailWorkers: 4, DetailTimeout: time.Second}), lister
}

func TestAnalyze_Profiles(t *testing.T) {
	commits := []models.Commit{
		commitBy("c5", "Alice", base.Add(14*24*time.Hour), "fix login bug"),
		commitBy("c4", "Bob", base.Add(3*24*time.Hour), "add new widget"),
		commitBy("c3", "Alice", base.Add(7*24*time.Hour), "fix null pointer"),
		commitBy("c2", "Carol", base.Add(2*24*time.Hour), "initial docs"),
		commitBy("c1", "Alice", base, "add new widget"),
	}
	files := map[string][]string{
		"c5": {"src/api/server.py", "tests/test_api.py"},
		"c3": {"src/api/server.py"},
		"c1": {"src/widget.js"},
		"c4": {"ui/button.tsx"},
		"c2": {"README.md"},
	}

	gen := &MockTextGenerator{}
	analyzer, lister := newTestAnalyzer(commits, staticDetails(files), gen)

	result, err := analyzer.Analyze(context.Background(), "https://github.com/owner/repo", "owner", "repo", "main")
	require.NoError(t, err)
	lister.AssertExpectations(t)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)

	assert.Equal(t, "https://github.com/owner/repo", result.RepositoryURL)
	assert.Equal(t, "main", result.Branch)
	assert.Equal(t, 3, result.TotalCollaborators)
	require.Len(t, result.Collaborators, 3)

	total := 0
	for _, p := range result.Collaborators {
		total += p.CommitCount
		assert.False(t, p.LastCommitDate.Before(p.FirstCommitDate), p.Name)
	}
	assert.Equal(t, len(commits), total)

	alice := result.Collaborators[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.Equal(t, 3, alice.CommitCount)
	assert.Equal(t, 30, alice.LinesAdded)
	assert.Equal(t, 6, alice.LinesRemoved)
	assert.Equal(t, []string{"src/api/server.py", "src/widget.js", "tests/test_api.py"}, alice.FilesModified)
	assert.Equal(t, 3, alice.FileCount)
	assert.Equal(t, []string{"Python", "JavaScript"}, alice.PrimaryLanguages)
	assert.Equal(t, base, alice.FirstCommitDate)
	assert.Equal(t, base.Add(14*24*time.Hour), alice.LastCommitDate)
	assert.Equal(t, 1.5, alice.CommitFrequencyPerWeek)
	assert.Equal(t, "Focused on bugfix, feature using Python, JavaScript, working on 3 files.", alice.FunctionalitySummary)
	assert.Equal(t, []string{"Backend", "Core Development", "Frontend", "Security", "Testing"}, alice.KeyAreas)

	// * Bob and Carol tie on one commit, first encountered stays first
	assert.Equal(t, "Bob", result.Collaborators[1].Name)
	assert.Equal(t, "Carol", result.Collaborators[2].Name)
	assert.Equal(t, 1.0, result.Collaborators[1].CommitFrequencyPerWeek)

	assert.Equal(t, "Small team of 3 contributors. Alice led development with 3 commits. Team primarily worked with JavaScript, Markdown, Python.", result.TeamSummary)
}

func TestAnalyze_CommitFrequency(t *testing.T) {
	tests := []struct {
		name     string
		offsets  []time.Duration
		expected float64
	}{
		{name: "single commit", offsets: []time.Duration{0}, expected: 1.0},
		{name: "two commits fourteen days apart", offsets: []time.Duration{0, 14 * 24 * time.Hour}, expected: 1.0},
		{name: "same day burst", offsets: []time.Duration{0, time.Hour, 2 * time.Hour}, expected: 3.0},
		{name: "partial day is dropped", offsets: []time.Duration{0, 20*24*time.Hour + 23*time.Hour}, expected: 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var commits []models.Commit
			for i, off := range tt.offsets {
				commits = append(commits, commitBy(fmt.Sprintf("c%d", i), "Alice", base.Add(off), "work"))
			}

			analyzer, _ := newTestAnalyzer(commits, staticDetails(nil), &MockTextGenerator{})
			result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Collaborators[0].CommitFrequencyPerWeek)
		})
	}
}

func TestAnalyze_TimezonesAreNormalized(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	commits := []models.Commit{
		commitBy("c1", "Alice", time.Date(2024, 1, 1, 1, 0, 0, 0, plus2), "first"),
		commitBy("c2", "Alice", time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC), "second"),
	}

	analyzer, _ := newTestAnalyzer(commits, staticDetails(nil), &MockTextGenerator{})
	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)

	p := result.Collaborators[0]
	assert.Equal(t, time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), p.FirstCommitDate)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC), p.LastCommitDate)
}

func TestAnalyze_FailedDetailCountsAsEmpty(t *testing.T) {
	var commits []models.Commit
	for i := 0; i < 10; i++ {
		commits = append(commits, commitBy(fmt.Sprintf("c%d", i), "Alice", base.Add(time.Duration(i)*time.Hour), "work"))
	}

	details := detailFunc(func(sha string) (models.CommitDetail, error) {
		if sha == "c7" {
			return models.CommitDetail{}, apperrors.New(apperrors.RefUpstream, "boom", "", nil, apperrors.LevelError)
		}
		return models.CommitDetail{SHA: sha, LinesAdded: 5, LinesRemoved: 1, FilesChanged: []string{sha + ".go"}}, nil
	})

	analyzer, _ := newTestAnalyzer(commits, details, &MockTextGenerator{})
	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)

	p := result.Collaborators[0]
	assert.Equal(t, 10, p.CommitCount)
	assert.Equal(t, 45, p.LinesAdded)
	assert.Equal(t, 9, p.LinesRemoved)
	assert.Equal(t, 9, p.FileCount)
	assert.NotContains(t, p.FilesModified, "c7.go")
}

func TestAnalyze_SlowDetailTimesOut(t *testing.T) {
	commits := []models.Commit{
		commitBy("fast", "Alice", base, "work"),
		commitBy("slow", "Alice", base.Add(time.Hour), "work"),
	}

	details := detailFunc(func(sha string) (models.CommitDetail, error) {
		return models.CommitDetail{SHA: sha, LinesAdded: 1}, nil
	})
	slow := &blockingDetails{next: details, block: "slow"}

	lister := &MockCommitLister{}
	lister.On("ListCommits", mock.Anything, "owner", "repo", "main").Return(commits, nil)
	analyzer := NewAnalyzer(lister, slow, &MockTextGenerator{}, Options{DetailWorkers: 2, DetailTimeout: 20 * time.Millisecond})

	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Collaborators[0].CommitCount)
	assert.Equal(t, 1, result.Collaborators[0].LinesAdded)
}

type blockingDetails struct {
	next  detailFunc
	block string
}

func (b *blockingDetails) GetCommitDetail(ctx context.Context, owner, repo, sha string) (models.CommitDetail, error) {
	if sha == b.block {
		<-ctx.Done()
		return models.CommitDetail{}, ctx.Err()
	}
	return b.next(sha)
}

func TestAnalyze_DetailsFetchedOncePerCommit(t *testing.T) {
	var calls int32
	details := detailFunc(func(sha string) (models.CommitDetail, error) {
		atomic.AddInt32(&calls, 1)
		return models.CommitDetail{SHA: sha}, nil
	})

	var commits []models.Commit
	for i := 0; i < 25; i++ {
		commits = append(commits, commitBy(fmt.Sprintf("c%d", i), fmt.Sprintf("Dev%d", i%2), base, "work"))
	}

	analyzer, _ := newTestAnalyzer(commits, details, &MockTextGenerator{})
	_, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)
	assert.Equal(t, int32(25), atomic.LoadInt32(&calls))
}

func TestAnalyze_ExactAuthorIdentity(t *testing.T) {
	commits := []models.Commit{
		{SHA: "c1", AuthorName: "Alice", AuthorEmail: "alice@example.com", Timestamp: base, Message: "a"},
		{SHA: "c2", AuthorName: "alice", AuthorEmail: "alice@example.com", Timestamp: base, Message: "b"},
		{SHA: "c3", AuthorName: "Alice", AuthorEmail: "Alice@example.com", Timestamp: base, Message: "c"},
	}

	analyzer, _ := newTestAnalyzer(commits, staticDetails(nil), &MockTextGenerator{})
	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCollaborators)
}

func fivePersonTeam() []models.Commit {
	var commits []models.Commit
	names := []string{"Alice", "Alice", "Alice", "Bob", "Bob", "Carol", "Dave", "Erin"}
	for i, name := range names {
		commits = append(commits, commitBy(fmt.Sprintf("c%d", i), name, base.Add(time.Duration(i)*time.Hour), "implement part "+name))
	}
	return commits
}

func TestAnalyze_LargeTeamUsesGenerator(t *testing.T) {
	gen := &MockTextGenerator{}
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.HasPrefix(prompt, teamPromptHeader) &&
			strings.Contains(prompt, "Team of 5 contributors:\n- Alice: 3 commits, ") &&
			strings.Contains(prompt, "\nSample recent work:\n- Alice: implement part Alice\n")
	})).Return("  Five people built this.\n", nil).Once()

	analyzer, _ := newTestAnalyzer(fivePersonTeam(), staticDetails(nil), gen)
	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)

	gen.AssertExpectations(t)
	assert.Equal(t, "Five people built this.", result.TeamSummary)
}

func TestAnalyze_GeneratorFailureFallsBack(t *testing.T) {
	gen := &MockTextGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything).
		Return("", &llm.Error{Provider: llm.ProviderGemini, Err: errors.New("quota exceeded")}).Once()

	analyzer, _ := newTestAnalyzer(fivePersonTeam(), staticDetails(nil), gen)
	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)

	assert.Equal(t, "Team of 5 contributors with Alice as the main contributor (3 commits).", result.TeamSummary)
	assert.Len(t, result.Collaborators, 5)
}

func TestAnalyze_UnexpectedSummaryErrorSurfaces(t *testing.T) {
	gen := &MockTextGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("not a generation error")).Once()

	analyzer, _ := newTestAnalyzer(fivePersonTeam(), staticDetails(nil), gen)
	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.HasReference(err, apperrors.RefAnalysisFailed))
}

func TestAnalyze_Deterministic(t *testing.T) {
	commits := []models.Commit{
		commitBy("c1", "Alice", base, "optimize sql for login page"),
		commitBy("c2", "Alice", base.Add(time.Hour), "add docs"),
	}
	files := map[string][]string{
		"c1": {"z.rs", "y.go", "x.ts", "server/db.sql", "frontend/app.css"},
		"c2": {"docs/guide.md", "docker-compose.yml", "w.kt"},
	}

	analyzer, _ := newTestAnalyzer(commits, staticDetails(files), &MockTextGenerator{})

	first, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
		require.NoError(t, err)
		assert.Equal(t, first.Collaborators[0].KeyAreas, again.Collaborators[0].KeyAreas)
		assert.Equal(t, first.Collaborators[0].PrimaryLanguages, again.Collaborators[0].PrimaryLanguages)
		assert.Equal(t, first.Collaborators[0].FilesModified, again.Collaborators[0].FilesModified)
	}
}

func TestAnalyze_ListingErrors(t *testing.T) {
	tests := []struct {
		name     string
		commits  []models.Commit
		err      error
		expected string
	}{
		{
			name:     "empty branch",
			commits:  []models.Commit{},
			expected: apperrors.RefNotFound,
		},
		{
			name:     "unknown branch",
			err:      apperrors.New(apperrors.RefNotFound, "not found", "", nil, apperrors.LevelInfo),
			expected: apperrors.RefNotFound,
		},
		{
			name:     "rate limited",
			err:      apperrors.New(apperrors.RefRateLimited, "slow down", "", nil, apperrors.LevelError),
			expected: apperrors.RefRateLimited,
		},
		{
			name:     "untyped failure",
			err:      errors.New("connection reset"),
			expected: apperrors.RefUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &MockCommitLister{}
			if tt.err != nil {
				lister.On("ListCommits", mock.Anything, "owner", "repo", "main").Return(nil, tt.err)
			} else {
				lister.On("ListCommits", mock.Anything, "owner", "repo", "main").Return(tt.commits, nil)
			}

			analyzer := NewAnalyzer(lister, staticDetails(nil), &MockTextGenerator{}, Options{})
			result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.HasReference(err, tt.expected), "expected %s, got %v", tt.expected, err)
		})
	}
}

func TestAnalyze_CancelledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer, _ := newTestAnalyzer([]models.Commit{commitBy("c1", "Alice", base, "work")}, staticDetails(nil), &MockTextGenerator{})
	_, err := analyzer.Analyze(ctx, "", "owner", "repo", "main")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, apperrors.HasReference(err, apperrors.RefAnalysisFailed))
}

func TestAnalyze_PanicIsReported(t *testing.T) {
	details := detailFunc(func(sha string) (models.CommitDetail, error) {
		return models.CommitDetail{}, nil
	})
	analyzer, _ := newTestAnalyzer([]models.Commit{commitBy("c1", "Alice", base, "work")}, details, nil)
	analyzer.aggregator = nil

	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.HasReference(err, apperrors.RefAnalysisFailed))
}

func TestAnalyze_FileListIsCappedButCountIsNot(t *testing.T) {
	var commits []models.Commit
	files := make(map[string][]string)
	for i := range 25 {
		sha := fmt.Sprintf("c%02d", i)
		commits = append(commits, commitBy(sha, "Alice", base.Add(time.Duration(i)*time.Hour), "work"))
		files[sha] = []string{fmt.Sprintf("pkg/file%02d.go", i)}
	}

	analyzer, _ := newTestAnalyzer(commits, staticDetails(files), &MockTextGenerator{})
	result, err := analyzer.Analyze(context.Background(), "", "owner", "repo", "main")
	require.NoError(t, err)
	require.Len(t, result.Collaborators, 1)

	alice := result.Collaborators[0]
	assert.Len(t, alice.FilesModified, 20)
	assert.Equal(t, "pkg/file00.go", alice.FilesModified[0])
	assert.Equal(t, "pkg/file19.go", alice.FilesModified[19])
	assert.Equal(t, 25, alice.FileCount)
	assert.Equal(t, "Contributed 25 commits using Go, touching 25 files across multiple areas.", alice.FunctionalitySummary)
}

func TestAggregate_SamplesAreBounded(t *testing.T) {
	var commits []models.Commit
	for a := range 12 {
		name := fmt.Sprintf("Dev%02d", a)
		for i := range 6 {
			commits = append(commits, commitBy(fmt.Sprintf("%s-%d", name, i), name, base, fmt.Sprintf("change %d\n\nlonger body", i)))
		}
	}
	for i := range 25 {
		commits = append(commits, commitBy(fmt.Sprintf("lead-%d", i), "Lead", base, "lead work"))
	}

	agg := NewAggregator(4, time.Second)
	profiles, samples, err := agg.Aggregate(context.Background(), commits, func(ctx context.Context, sha string) (models.CommitDetail, error) {
		return models.CommitDetail{SHA: sha}, nil
	})
	require.NoError(t, err)
	require.Len(t, profiles, 13)
	assert.Equal(t, "Lead", profiles[0].Name)

	assert.Len(t, samples, 50)
	assert.Equal(t, "Dev00: change 0", samples[0])

	perAuthor := make(map[string]int)
	for _, s := range samples {
		name, _, ok := strings.Cut(s, ": ")
		require.True(t, ok, s)
		perAuthor[name]++
	}
	for name, n := range perAuthor {
		assert.LessOrEqual(t, n, 5, name)
	}
	assert.Equal(t, 5, perAuthor["Dev00"])
	assert.Equal(t, 0, perAuthor["Lead"])
}

func TestAggregate_CancelledContextQueuesNoFetches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	commits := make([]models.Commit, 50)
	for i := range commits {
		commits[i] = commitBy(fmt.Sprintf("c%d", i), "Alice", base, "work")
	}

	var calls atomic.Int32
	_, _, err := NewAggregator(4, time.Second).Aggregate(ctx, commits, func(ctx context.Context, sha string) (models.CommitDetail, error) {
		calls.Add(1)
		return models.CommitDetail{}, ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}
