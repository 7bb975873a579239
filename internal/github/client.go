package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	apperrors "github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.github.com/"
	DefaultTimeout = 30 * time.Second
	perPage        = 100
)

// * Client wraps go-github with the rate-limit transport and maps results to models
type Client struct {
	gh *gh.Client
}

// * NewClient builds a client for token. An empty apiURL targets api.github.com.
func NewClient(token, apiURL string) (*Client, error) {
	rl := NewRateLimiter()

	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: rl.Middleware(http.DefaultTransport),
	}

	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = DefaultTimeout
	}

	client := gh.NewClient(httpClient)

	if apiURL == "" {
		apiURL = DefaultBaseURL
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	base, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	client.BaseURL = base

	return &Client{gh: client}, nil
}

// * ListCommits returns every commit reachable from branch, newest first
func (c *Client) ListCommits(ctx context.Context, owner, repo, branch string) ([]models.Commit, error) {
	opts := &gh.CommitsListOptions{
		SHA:         branch,
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var commits []models.Commit
	for {
		page, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, wrapError(err, "list commits", fmt.Sprintf("%s/%s@%s", owner, repo, branch))
		}

		for _, rc := range page {
			commits = append(commits, toCommit(rc))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Info("Successfully fetched %d commits from %s/%s@%s", len(commits), owner, repo, branch)
	return commits, nil
}

// * HeadCommit returns the SHA of the newest commit on branch
func (c *Client) HeadCommit(ctx context.Context, owner, repo, branch string) (string, error) {
	opts := &gh.CommitsListOptions{SHA: branch, ListOptions: gh.ListOptions{PerPage: 1}}

	page, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return "", wrapError(err, "get head commit", fmt.Sprintf("%s/%s@%s", owner, repo, branch))
	}
	if len(page) == 0 {
		return "", apperrors.New(
			apperrors.RefNotFound,
			"No commits found on this branch",
			fmt.Sprintf("Branch %s of %s/%s has no commits", branch, owner, repo),
			nil,
			apperrors.LevelInfo,
		)
	}

	return page[0].GetSHA(), nil
}

// * GetCommitDetail returns line and file stats for a single commit
func (c *Client) GetCommitDetail(ctx context.Context, owner, repo, sha string) (models.CommitDetail, error) {
	rc, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return models.CommitDetail{}, wrapError(err, "get commit", sha)
	}

	detail := models.CommitDetail{
		SHA:          sha,
		LinesAdded:   rc.GetStats().GetAdditions(),
		LinesRemoved: rc.GetStats().GetDeletions(),
	}
	for _, f := range rc.Files {
		detail.FilesChanged = append(detail.FilesChanged, f.GetFilename())
	}

	return detail, nil
}

// * ListBranches returns all branches with their head commit date and default flag
func (c *Client) ListBranches(ctx context.Context, owner, repo string) ([]models.Branch, error) {
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: perPage}}

	var raw []*gh.Branch
	for {
		page, resp, err := c.gh.Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return nil, wrapError(err, "list branches", owner+"/"+repo)
		}
		raw = append(raw, page...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	defaultBranch := "main"
	if info, _, err := c.gh.Repositories.Get(ctx, owner, repo); err == nil && info.GetDefaultBranch() != "" {
		defaultBranch = info.GetDefaultBranch()
	}

	branches := make([]models.Branch, 0, len(raw))
	for _, b := range raw {
		sha := b.GetCommit().GetSHA()

		lastCommitDate := "Unknown"
		if rc, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil); err == nil {
			lastCommitDate = rc.GetCommit().GetAuthor().GetDate().UTC().Format("2006-01-02")
		} else {
			logger.Debug("could not fetch head commit %s of branch %s: %v", sha, b.GetName(), err)
		}

		branches = append(branches, models.Branch{
			Name:           b.GetName(),
			CommitSHA:      sha,
			LastCommitDate: lastCommitDate,
			IsDefault:      b.GetName() == defaultBranch,
		})
	}

	return branches, nil
}

// * CompareCommits returns the files changed between base and head
func (c *Client) CompareCommits(ctx context.Context, owner, repo, base, head string) ([]models.FileDiff, error) {
	cmp, _, err := c.gh.Repositories.CompareCommits(ctx, owner, repo, base, head, nil)
	if err != nil {
		return nil, wrapError(err, "compare commits", base+"..."+head)
	}

	diffs := make([]models.FileDiff, 0, len(cmp.Files))
	for _, f := range cmp.Files {
		diffs = append(diffs, models.FileDiff{Filename: f.GetFilename(), Patch: f.GetPatch()})
	}
	return diffs, nil
}

// * GetTree returns every blob of the tree at sha
func (c *Client) GetTree(ctx context.Context, owner, repo, sha string) ([]models.TreeEntry, error) {
	tree, _, err := c.gh.Git.GetTree(ctx, owner, repo, sha, true)
	if err != nil {
		return nil, wrapError(err, "get tree", sha)
	}

	var entries []models.TreeEntry
	for _, e := range tree.Entries {
		if e.GetType() != "blob" {
			continue
		}
		entries = append(entries, models.TreeEntry{Path: e.GetPath(), SHA: e.GetSHA(), Size: e.GetSize()})
	}
	return entries, nil
}

// * GetFileContent returns the decoded content of path at ref
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, &gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", wrapError(err, "get contents", path)
	}
	if file == nil {
		return "", fmt.Errorf("%s is a directory", path)
	}

	return file.GetContent()
}

func toCommit(rc *gh.RepositoryCommit) models.Commit {
	author := rc.GetCommit().GetAuthor()
	return models.Commit{
		SHA:         rc.GetSHA(),
		AuthorName:  author.GetName(),
		AuthorEmail: author.GetEmail(),
		Timestamp:   author.GetDate().UTC(),
		Message:     rc.GetCommit().GetMessage(),
	}
}

// * wrapError translates go-github failures into NOT_FOUND, RATE_LIMITED or UPSTREAM_ERROR
func wrapError(err error, operation, target string) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return apperrors.New(
			apperrors.RefRateLimited,
			"GitHub API rate limit exceeded",
			fmt.Sprintf("GitHub throttled %s for %s", operation, target),
			err,
			apperrors.LevelError,
		)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
			return apperrors.New(
				apperrors.RefNotFound,
				"Repository or branch not found on GitHub",
				fmt.Sprintf("%s failed for %s: %s", operation, target, respErr.Message),
				err,
				apperrors.LevelInfo,
			)
		case http.StatusTooManyRequests:
			return apperrors.New(
				apperrors.RefRateLimited,
				"GitHub API rate limit exceeded",
				fmt.Sprintf("GitHub throttled %s for %s", operation, target),
				err,
				apperrors.LevelError,
			)
		}

		return apperrors.New(
			apperrors.RefUpstream,
			"Unexpected response from GitHub API",
			fmt.Sprintf("GitHub API returned status %d during %s for %s", respErr.Response.StatusCode, operation, target),
			err,
			apperrors.LevelError,
		)
	}

	return apperrors.New(
		apperrors.RefUpstream,
		"Failed to reach GitHub API",
		fmt.Sprintf("Could not complete %s for %s", operation, target),
		err,
		apperrors.LevelError,
	)
}
