package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

type CommitLister interface {
	ListCommits(ctx context.Context, owner, repo, branch string) ([]models.Commit, error)
}

type DetailFetcher interface {
	GetCommitDetail(ctx context.Context, owner, repo, sha string) (models.CommitDetail, error)
}

type Options struct {
	DetailWorkers int
	DetailTimeout time.Duration
}

// * Analyzer produces the collaborator analysis for one branch
type Analyzer struct {
	lister     CommitLister
	details    DetailFetcher
	aggregator *Aggregator
	summarizer *TeamSummarizer
	now        func() time.Time
}

func NewAnalyzer(lister CommitLister, details DetailFetcher, generator TextGenerator, opts Options) *Analyzer {
	return &Analyzer{
		lister:     lister,
		details:    details,
		aggregator: NewAggregator(opts.DetailWorkers, opts.DetailTimeout),
		summarizer: NewTeamSummarizer(generator),
		now:        time.Now,
	}
}

// * Analyze lists every commit on branch, builds the contributor profiles and the team summary.
// * Listing failures and an empty branch are fatal; everything unexpected is reported as ANALYSIS_FAILED.
func (a *Analyzer) Analyze(ctx context.Context, repoURL, owner, repo, branch string) (result *models.CollaboratorAnalysisResult, err error) {
	start := a.now()

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = apperrors.New(
				apperrors.RefAnalysisFailed,
				"Error analyzing collaborators",
				fmt.Sprintf("%s/%s@%s", owner, repo, branch),
				fmt.Errorf("panic: %v", r),
				apperrors.LevelFatal,
			)
		}
	}()

	commits, err := a.lister.ListCommits(ctx, owner, repo, branch)
	if err != nil {
		return nil, listingError(err, owner, repo, branch)
	}
	if len(commits) == 0 {
		return nil, apperrors.New(
			apperrors.RefNotFound,
			"No commits found on this branch.",
			fmt.Sprintf("%s/%s@%s has no commits", owner, repo, branch),
			nil,
			apperrors.LevelInfo,
		)
	}

	logger.Info("Analyzing %d commits on %s/%s@%s", len(commits), owner, repo, branch)

	fetch := func(ctx context.Context, sha string) (models.CommitDetail, error) {
		return a.details.GetCommitDetail(ctx, owner, repo, sha)
	}

	profiles, samples, err := a.aggregator.Aggregate(ctx, commits, fetch)
	if err != nil {
		return nil, analysisFailed(err, owner, repo, branch)
	}

	summary, err := a.summarizer.Summarize(ctx, profiles, samples)
	if err != nil {
		return nil, analysisFailed(err, owner, repo, branch)
	}

	return &models.CollaboratorAnalysisResult{
		RepositoryURL:         repoURL,
		Branch:                branch,
		TotalCollaborators:    len(profiles),
		AnalysisDate:          a.now().UTC(),
		Collaborators:         profiles,
		TeamSummary:           summary,
		ProcessingTimeSeconds: a.now().Sub(start).Seconds(),
	}, nil
}

func listingError(err error, owner, repo, branch string) error {
	for _, ref := range []string{apperrors.RefNotFound, apperrors.RefRateLimited, apperrors.RefUpstream} {
		if apperrors.HasReference(err, ref) {
			return err
		}
	}
	return apperrors.New(
		apperrors.RefUpstream,
		"Error fetching commits from GitHub",
		fmt.Sprintf("%s/%s@%s", owner, repo, branch),
		err,
		apperrors.LevelError,
	)
}

func analysisFailed(err error, owner, repo, branch string) error {
	return apperrors.New(
		apperrors.RefAnalysisFailed,
		"Error analyzing collaborators",
		fmt.Sprintf("%s/%s@%s", owner, repo, branch),
		err,
		apperrors.LevelFatal,
	)
}
