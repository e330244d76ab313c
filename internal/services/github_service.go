package services

import (
	"context"
	"fmt"
	"time"

	"github.com/alimgiray/vibeboard/internal/models"
	"github.com/alimgiray/vibeboard/pkg/logger"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const (
	retryAttempts = 3
	retryBaseWait = 2 * time.Second
)

// GitHubService implements the collector's fetch capability on top of the
// GitHub REST API.
type GitHubService struct {
	client   *github.Client
	pageSize int
}

// NewGitHubService creates a GitHub-backed fetcher. An empty token yields an
// unauthenticated client, which works for public repositories at a lower
// rate limit.
func NewGitHubService(token string, pageSize int) *GitHubService {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		client = github.NewClient(nil)
	}

	return &GitHubService{
		client:   client,
		pageSize: pageSize,
	}
}

// ListCommitPage fetches one page of commits for a repository within the
// window. The second return value reports whether more pages are available.
func (s *GitHubService) ListCommitPage(ctx context.Context, repo models.RepoRef, window models.DateWindow, page int) ([]*models.Commit, bool, error) {
	opts := &github.CommitsListOptions{
		Since: window.Start,
		Until: window.End,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: s.pageSize,
		},
	}

	var (
		apiCommits []*github.RepositoryCommit
		resp       *github.Response
	)
	err := withRetry(ctx, func() error {
		var err error
		apiCommits, resp, err = s.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to list commits for %s: %w", repo.Display(), err)
	}

	commits := make([]*models.Commit, 0, len(apiCommits))
	for _, c := range apiCommits {
		commits = append(commits, convertCommit(c, repo))
	}

	return commits, resp.NextPage != 0, nil
}

// CountCommits returns an advisory total-commit estimate for the repository
// in the window. It issues a single one-item request and reads the last page
// number from the pagination links.
func (s *GitHubService) CountCommits(ctx context.Context, repo models.RepoRef, window models.DateWindow) (int, error) {
	opts := &github.CommitsListOptions{
		Since:       window.Start,
		Until:       window.End,
		ListOptions: github.ListOptions{PerPage: 1},
	}

	commits, resp, err := s.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits for %s: %w", repo.Display(), err)
	}

	if resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(commits), nil
}

// SearchMergedPRs finds merged pull requests carrying the given label within
// the window. Merge commit SHAs are not part of the search result; they are
// resolved separately via GetMergeCommit.
func (s *GitHubService) SearchMergedPRs(ctx context.Context, repo models.RepoRef, label string, window models.DateWindow) ([]*models.MergedPullRequest, error) {
	query := fmt.Sprintf("repo:%s/%s is:pr is:merged label:%q merged:%s..%s",
		repo.Owner, repo.Name, label,
		window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))

	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: s.pageSize},
	}

	var prs []*models.MergedPullRequest
	for {
		var (
			result *github.IssuesSearchResult
			resp   *github.Response
		)
		err := withRetry(ctx, func() error {
			var err error
			result, resp, err = s.client.Search.Issues(ctx, query, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search PRs with label %q in %s: %w", label, repo.Display(), err)
		}

		for _, issue := range result.Issues {
			labels := make([]string, 0, len(issue.Labels))
			for _, l := range issue.Labels {
				labels = append(labels, l.GetName())
			}
			prs = append(prs, &models.MergedPullRequest{
				Number:      issue.GetNumber(),
				Labels:      labels,
				AuthorLogin: issue.GetUser().GetLogin(),
				Repository:  repo.Display(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return prs, nil
}

// GetMergeCommit resolves a pull request's merge commit SHA and merge time
func (s *GitHubService) GetMergeCommit(ctx context.Context, repo models.RepoRef, number int) (string, *time.Time, error) {
	var pr *github.PullRequest
	err := withRetry(ctx, func() error {
		var err error
		pr, _, err = s.client.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
		return err
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to get PR #%d in %s: %w", number, repo.Display(), err)
	}

	sha := pr.GetMergeCommitSHA()
	if sha == "" {
		return "", nil, fmt.Errorf("PR #%d in %s has no merge commit", number, repo.Display())
	}

	var mergedAt *time.Time
	if pr.MergedAt != nil {
		mergedAt = &pr.MergedAt.Time
	}

	return sha, mergedAt, nil
}

func convertCommit(c *github.RepositoryCommit, repo models.RepoRef) *models.Commit {
	var login *string
	var avatar string
	if c.Author != nil {
		if l := c.Author.GetLogin(); l != "" {
			login = &l
		}
		avatar = c.Author.GetAvatarURL()
	}

	return models.NewCommit(
		c.GetSHA(),
		c.GetCommit().GetMessage(),
		repo.Display(),
		login,
		avatar,
		c.GetCommit().GetAuthor().GetDate().Time,
	)
}

// withRetry runs fn up to retryAttempts times with exponential backoff,
// respecting context cancellation between attempts.
func withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	wait := retryBaseWait

	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == retryAttempts {
			break
		}

		logger.WithError(lastErr).Debugf("GitHub request failed, retrying (attempt %d/%d)", attempt, retryAttempts)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}

	return lastErr
}
