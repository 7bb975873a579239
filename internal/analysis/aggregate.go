package analysis

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const (
	DefaultDetailWorkers = 8
	DefaultDetailTimeout = 15 * time.Second

	maxListedFiles        = 20
	samplesPerContributor = 5
	maxSamples            = 50
)

// * DetailFunc fetches change stats for one commit
type DetailFunc func(ctx context.Context, sha string) (models.CommitDetail, error)

// * Aggregator builds one profile per author from a commit list
type Aggregator struct {
	workers int
	timeout time.Duration
}

func NewAggregator(workers int, timeout time.Duration) *Aggregator {
	if workers < 1 {
		workers = DefaultDetailWorkers
	}
	if timeout <= 0 {
		timeout = DefaultDetailTimeout
	}
	return &Aggregator{workers: workers, timeout: timeout}
}

type authorGroup struct {
	key     models.AuthorKey
	commits []int
}

// * Aggregate groups commits by exact (name, email), fetches every commit's
// * detail on a bounded pool and returns the profiles ordered by commit count.
// * A failed detail fetch contributes nothing for that commit only.
// * The second return value holds "name: message" samples for the team summary.
func (a *Aggregator) Aggregate(ctx context.Context, commits []models.Commit, fetch DetailFunc) ([]models.ContributorProfile, []string, error) {
	details := a.fetchDetails(ctx, commits, fetch)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	groups := groupByAuthor(commits)

	profiles := make([]models.ContributorProfile, 0, len(groups))
	var samples []string
	for _, g := range groups {
		profiles = append(profiles, buildProfile(g, commits, details))

		for _, idx := range g.commits[:min(samplesPerContributor, len(g.commits))] {
			samples = append(samples, g.key.Name+": "+subject(commits[idx].Message))
		}
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CommitCount > profiles[j].CommitCount
	})

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return profiles, samples, nil
}

func (a *Aggregator) fetchDetails(ctx context.Context, commits []models.Commit, fetch DetailFunc) []models.CommitDetail {
	details := make([]models.CommitDetail, len(commits))
	var failed atomic.Int32

	var g errgroup.Group
	g.SetLimit(a.workers)

	for i, c := range commits {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			detail, err := fetch(fctx, c.SHA)
			if err != nil {
				failed.Add(1)
				logger.Debug("detail fetch for %s failed, counting it as empty: %v", c.SHA, err)
				return nil
			}
			details[i] = detail
			return nil
		})
	}
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		logger.Warn("%d of %d commit detail fetches failed", n, len(commits))
	}
	return details
}

func groupByAuthor(commits []models.Commit) []*authorGroup {
	var groups []*authorGroup
	index := make(map[models.AuthorKey]*authorGroup)

	for i, c := range commits {
		key := c.Author()
		g, ok := index[key]
		if !ok {
			g = &authorGroup{key: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.commits = append(g.commits, i)
	}
	return groups
}

func buildProfile(g *authorGroup, commits []models.Commit, details []models.CommitDetail) models.ContributorProfile {
	p := models.ContributorProfile{
		Name:        g.key.Name,
		Email:       g.key.Email,
		CommitCount: len(g.commits),
	}

	fileSet := make(map[string]struct{})
	messages := make([]string, 0, len(g.commits))

	for n, idx := range g.commits {
		c := commits[idx]
		d := details[idx]

		p.LinesAdded += d.LinesAdded
		p.LinesRemoved += d.LinesRemoved
		for _, f := range d.FilesChanged {
			fileSet[f] = struct{}{}
		}
		messages = append(messages, c.Message)

		ts := c.Timestamp.UTC()
		if n == 0 || ts.Before(p.FirstCommitDate) {
			p.FirstCommitDate = ts
		}
		if n == 0 || ts.After(p.LastCommitDate) {
			p.LastCommitDate = ts
		}
	}

	files := make([]string, 0, len(fileSet))
	for f := range fileSet {
		files = append(files, f)
	}
	sort.Strings(files)

	p.FileCount = len(files)
	p.FilesModified = files[:min(maxListedFiles, len(files))]
	p.PrimaryLanguages = PrimaryLanguages(files)
	p.FunctionalitySummary = SummarizeFunctionality(messages, p.FileCount, p.PrimaryLanguages)
	p.KeyAreas = IdentifyKeyAreas(files, messages)
	p.CommitFrequencyPerWeek = commitFrequency(p.CommitCount, p.FirstCommitDate, p.LastCommitDate)

	return p
}

// * commitFrequency is commits per week over whole days between first and last
func commitFrequency(count int, first, last time.Time) float64 {
	freq := float64(count)
	if count > 1 {
		days := int(last.Sub(first).Hours() / 24)
		weeks := math.Max(1, float64(days)/7)
		freq = float64(count) / weeks
	}
	return math.Round(freq*100) / 100
}

func subject(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}
