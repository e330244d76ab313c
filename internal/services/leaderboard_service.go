package services

import (
	"context"

	"github.com/alimgiray/vibeboard/internal/models"
	"github.com/alimgiray/vibeboard/pkg/logger"
	"github.com/sirupsen/logrus"
)

// LeaderboardService runs the full pipeline: collect commits (and optionally
// labeled pull requests), classify, reconcile, aggregate.
type LeaderboardService struct {
	collector  *CollectorService
	detector   *DetectorService
	resolver   *LabelResolverService
	ruleSvc    *LabelRuleService
	aggregator *AggregatorService
}

func NewLeaderboardService(
	collector *CollectorService,
	detector *DetectorService,
	resolver *LabelResolverService,
	ruleSvc *LabelRuleService,
	aggregator *AggregatorService,
) *LeaderboardService {
	return &LeaderboardService{
		collector:  collector,
		detector:   detector,
		resolver:   resolver,
		ruleSvc:    ruleSvc,
		aggregator: aggregator,
	}
}

// BuildRequest selects what to aggregate.
type BuildRequest struct {
	Repositories        []models.RepoRef
	Window              models.DateWindow
	IncludePullRequests bool
}

// BuildLeaderboard computes the leaderboard for the requested repositories
// and window. An empty selection or empty window short-circuits to a zeroed,
// renderable result rather than an error. The optional progress callback is
// purely observational.
func (s *LeaderboardService) BuildLeaderboard(ctx context.Context, req BuildRequest, onProgress models.ProgressFunc) (*models.LeaderboardData, error) {
	if len(req.Repositories) == 0 || !req.Window.IsValid() {
		return models.EmptyLeaderboardData(), nil
	}

	commits, err := s.collector.CollectCommits(ctx, req.Repositories, req.Window, onProgress)
	if err != nil {
		return nil, err
	}

	// Message-based detection first: trailers are the tool-authored signal.
	classifications := make(map[string]*models.Classification)
	for _, commit := range commits {
		if c := s.detector.Classify(commit.Message); c != nil {
			classifications[commit.SHA] = c
		}
	}

	// PR labels only fill in commits the detector left unclassified.
	if req.IncludePullRequests {
		rules := s.ruleSvc.GetEnabledRules()
		prs := s.collector.CollectLabeledPRs(ctx, req.Repositories, req.Window, rules, onProgress)
		overrides := s.resolver.Resolve(rules, prs)

		for sha, tool := range overrides {
			if _, classified := classifications[sha]; classified {
				continue
			}
			classification := &models.Classification{Tool: tool}
			if tool.IsClaudeFamily() {
				classification.Model = models.ModelUnknown
			}
			classifications[sha] = classification
		}
	}

	if onProgress != nil {
		onProgress(models.Progress{
			TotalRepos:     len(req.Repositories),
			CompletedRepos: len(req.Repositories),
			CommitsFetched: len(commits),
			Phase:          models.PhaseAnalyzing,
		})
	}

	data := s.aggregator.Aggregate(commits, classifications)

	logger.WithFields(logrus.Fields{
		"repositories": len(req.Repositories),
		"commits":      data.TotalCommits,
		"ai_commits":   data.AICommits,
		"authors":      data.ActiveUsers,
	}).Infof("Leaderboard build completed")

	return data, nil
}
