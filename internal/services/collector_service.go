package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alimgiray/vibeboard/internal/models"
	"github.com/alimgiray/vibeboard/pkg/logger"
)

// CommitFetcher is the paged fetch capability the collector orchestrates.
// GitHubService is the production implementation.
type CommitFetcher interface {
	ListCommitPage(ctx context.Context, repo models.RepoRef, window models.DateWindow, page int) ([]*models.Commit, bool, error)
	CountCommits(ctx context.Context, repo models.RepoRef, window models.DateWindow) (int, error)
	SearchMergedPRs(ctx context.Context, repo models.RepoRef, label string, window models.DateWindow) ([]*models.MergedPullRequest, error)
	GetMergeCommit(ctx context.Context, repo models.RepoRef, number int) (string, *time.Time, error)
}

// CollectorService fetches commits and labeled pull requests across
// repositories with a fixed-size worker pool. It contains no classification
// logic.
type CollectorService struct {
	fetcher  CommitFetcher
	workers  int
	maxPages int
}

func NewCollectorService(fetcher CommitFetcher, workers, maxPages int) *CollectorService {
	if workers < 1 {
		workers = 1
	}
	if maxPages < 1 {
		maxPages = 1
	}
	return &CollectorService{
		fetcher:  fetcher,
		workers:  workers,
		maxPages: maxPages,
	}
}

// progressTracker guards the shared counters reported to the progress
// observer. Workers own disjoint result slices; only these counters are
// shared.
type progressTracker struct {
	mu        sync.Mutex
	onUpdate  models.ProgressFunc
	progress  models.Progress
	activeSet map[string]bool
}

func newProgressTracker(totalRepos int, phase models.Phase, onUpdate models.ProgressFunc) *progressTracker {
	return &progressTracker{
		onUpdate:  onUpdate,
		activeSet: make(map[string]bool),
		progress: models.Progress{
			TotalRepos: totalRepos,
			Phase:      phase,
		},
	}
}

func (t *progressTracker) update(fn func(*models.Progress)) {
	t.mu.Lock()
	fn(&t.progress)
	t.progress.ActiveRepos = make([]string, 0, len(t.activeSet))
	for name := range t.activeSet {
		t.progress.ActiveRepos = append(t.progress.ActiveRepos, name)
	}
	snapshot := t.progress
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(snapshot)
	}
}

func (t *progressTracker) setActive(repo string, active bool) {
	t.mu.Lock()
	if active {
		t.activeSet[repo] = true
	} else {
		delete(t.activeSet, repo)
	}
	t.mu.Unlock()
}

// CollectCommits fetches all commits for the given repositories within the
// window. Per-repository failures are logged and yield partial results; an
// error is returned only when no repository could be reached at all.
func (s *CollectorService) CollectCommits(ctx context.Context, repos []models.RepoRef, window models.DateWindow, onProgress models.ProgressFunc) ([]*models.Commit, error) {
	if len(repos) == 0 {
		return nil, nil
	}

	estimate := s.estimateCommitCounts(ctx, repos, window, onProgress)

	tracker := newProgressTracker(len(repos), models.PhaseFetching, onProgress)
	tracker.update(func(p *models.Progress) {
		p.TotalCommitsEstimate = estimate
	})

	// Each worker writes only its own repository's slot.
	results := make([][]*models.Commit, len(repos))
	unreachable := make([]bool, len(repos))

	s.runPool(ctx, len(repos), func(i int) {
		repo := repos[i]
		tracker.setActive(repo.Display(), true)

		commits, failedFirstPage := s.fetchRepoCommits(ctx, repo, window, tracker)
		results[i] = commits
		unreachable[i] = failedFirstPage

		tracker.setActive(repo.Display(), false)
		tracker.update(func(p *models.Progress) {
			p.CompletedRepos++
		})
	})

	allFailed := true
	for _, failed := range unreachable {
		if !failed {
			allFailed = false
			break
		}
	}
	if allFailed {
		return nil, fmt.Errorf("unable to fetch commits from any of the %d selected repositories", len(repos))
	}

	var all []*models.Commit
	for _, commits := range results {
		all = append(all, commits...)
	}
	return all, nil
}

// estimateCommitCounts issues one lightweight count request per repository.
// The estimate is advisory: failures contribute zero and never block the
// main fetch.
func (s *CollectorService) estimateCommitCounts(ctx context.Context, repos []models.RepoRef, window models.DateWindow, onProgress models.ProgressFunc) int {
	tracker := newProgressTracker(len(repos), models.PhaseCounting, onProgress)
	tracker.update(func(p *models.Progress) {})

	counts := make([]int, len(repos))
	s.runPool(ctx, len(repos), func(i int) {
		count, err := s.fetcher.CountCommits(ctx, repos[i], window)
		if err != nil {
			logger.WithError(err).Warnf("Commit count estimate failed for %s", repos[i].Display())
			return
		}
		counts[i] = count
	})

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// fetchRepoCommits paginates one repository until the feed reports no more
// pages or the safety page cap is hit. A page error ends this repository's
// pagination without aborting the batch; it only counts as unreachable when
// the very first page failed.
func (s *CollectorService) fetchRepoCommits(ctx context.Context, repo models.RepoRef, window models.DateWindow, tracker *progressTracker) ([]*models.Commit, bool) {
	var commits []*models.Commit

	for page := 1; page <= s.maxPages; page++ {
		pageCommits, hasMore, err := s.fetcher.ListCommitPage(ctx, repo, window, page)
		if err != nil {
			logger.WithError(err).Warnf("Stopping commit fetch for %s at page %d", repo.Display(), page)
			return commits, page == 1
		}

		commits = append(commits, pageCommits...)
		tracker.update(func(p *models.Progress) {
			p.CommitsFetched += len(pageCommits)
		})

		if !hasMore {
			return commits, false
		}
		if page == s.maxPages {
			logger.Warnf("Page cap of %d reached for %s, results may be truncated", s.maxPages, repo.Display())
		}
	}

	return commits, false
}

// CollectLabeledPRs searches each repository for merged pull requests
// carrying any of the enabled rule labels, resolves their merge commits, and
// deduplicates by PR identity. Resolution is best-effort: a PR whose merge
// commit cannot be resolved is kept without a SHA and skipped downstream.
func (s *CollectorService) CollectLabeledPRs(ctx context.Context, repos []models.RepoRef, window models.DateWindow, rules []*models.LabelRule, onProgress models.ProgressFunc) []*models.MergedPullRequest {
	type searchJob struct {
		repo  models.RepoRef
		label string
	}

	var jobs []searchJob
	for _, repo := range repos {
		for _, rule := range rules {
			if rule.Enabled {
				jobs = append(jobs, searchJob{repo: repo, label: rule.Label})
			}
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	tracker := newProgressTracker(len(repos), models.PhaseFetchingPRs, onProgress)
	tracker.update(func(p *models.Progress) {})

	found := make([][]*models.MergedPullRequest, len(jobs))
	s.runPool(ctx, len(jobs), func(i int) {
		prs, err := s.fetcher.SearchMergedPRs(ctx, jobs[i].repo, jobs[i].label, window)
		if err != nil {
			logger.WithError(err).Warnf("PR label search failed for %s label %q", jobs[i].repo.Display(), jobs[i].label)
			return
		}
		found[i] = prs
	})

	// Dedupe by PR identity, keeping the first occurrence.
	type prKey struct {
		repository string
		number     int
	}
	seen := make(map[prKey]bool)
	var unique []*models.MergedPullRequest
	repoByDisplay := make(map[string]models.RepoRef, len(repos))
	for _, repo := range repos {
		repoByDisplay[repo.Display()] = repo
	}
	for _, prs := range found {
		for _, pr := range prs {
			key := prKey{repository: pr.Repository, number: pr.Number}
			if seen[key] {
				continue
			}
			seen[key] = true
			unique = append(unique, pr)
		}
	}

	// Resolve merge commits, bounded by the same pool size.
	s.runPool(ctx, len(unique), func(i int) {
		pr := unique[i]
		repo, ok := repoByDisplay[pr.Repository]
		if !ok {
			return
		}
		sha, mergedAt, err := s.fetcher.GetMergeCommit(ctx, repo, pr.Number)
		if err != nil {
			logger.WithError(err).Warnf("Merge commit lookup failed for %s PR #%d", pr.Repository, pr.Number)
			return
		}
		pr.MergeCommitSHA = &sha
		pr.MergedAt = mergedAt
	})

	return unique
}

// runPool processes jobs 0..n-1 with a fixed number of workers pulling from
// a shared queue, so one slow unit does not block the rest from starting and
// the number of in-flight requests stays bounded.
func (s *CollectorService) runPool(ctx context.Context, n int, work func(i int)) {
	queue := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				work(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		queue <- i
	}
	close(queue)
	wg.Wait()
}
