package services

import (
	"sort"
	"strings"

	"github.com/alimgiray/vibeboard/internal/models"
)

// AggregatorService folds classified commits into the ranked leaderboard.
// Aggregation is a pure fold over its inputs: every call builds fresh
// accumulators, so concurrent builds never share state.
type AggregatorService struct{}

func NewAggregatorService() *AggregatorService {
	return &AggregatorService{}
}

// Aggregate builds per-author statistics from all commits, overlays the
// per-commit classifications, and returns the sorted, ranked leaderboard
// with global roll-ups. Commits without a resolvable author login are
// excluded; they cannot be ranked.
func (s *AggregatorService) Aggregate(commits []*models.Commit, classifications map[string]*models.Classification) *models.LeaderboardData {
	stats := make(map[string]*models.AuthorStats)

	// Every author with at least one commit appears, AI-assisted or not.
	for _, commit := range commits {
		if !commit.HasAuthor() {
			continue
		}
		login := *commit.AuthorLogin

		author, ok := stats[login]
		if !ok {
			author = &models.AuthorStats{Login: login}
			stats[login] = author
		}
		if author.AvatarURL == "" {
			author.AvatarURL = commit.AuthorAvatar
		}
		author.TotalCommits++
		author.ActivityDates = append(author.ActivityDates, commit.Timestamp)
	}

	for _, commit := range commits {
		if !commit.HasAuthor() {
			continue
		}
		classification, ok := classifications[commit.SHA]
		if !ok || classification == nil {
			continue
		}

		author := stats[*commit.AuthorLogin]
		author.AICommits++
		author.ToolBreakdown.Add(classification.Tool)
		if classification.Tool.IsClaudeFamily() {
			author.ModelBreakdown.Add(classification.Model)
		}
		author.AICommitList = append(author.AICommitList, models.AICommitDetail{
			SHA:        commit.SHA,
			Repository: commit.Repository,
			Message:    firstLine(commit.Message),
			Tool:       classification.Tool,
			Model:      classification.Model,
			Timestamp:  commit.Timestamp,
		})
	}

	data := models.EmptyLeaderboardData()
	entries := make([]models.LeaderboardEntry, 0, len(stats))

	for _, author := range stats {
		sort.Slice(author.AICommitList, func(i, j int) bool {
			return author.AICommitList[i].Timestamp.After(author.AICommitList[j].Timestamp)
		})

		data.TotalCommits += author.TotalCommits
		data.AICommits += author.AICommits
		data.AIToolBreakdown.Merge(author.ToolBreakdown)
		data.ClaudeModelBreakdown.Merge(author.ModelBreakdown)

		entries = append(entries, models.LeaderboardEntry{
			AuthorStats:  *author,
			AIPercentage: author.AIPercentage(),
		})
	}

	// AI commits descending, total commits descending, then login ascending
	// as the deterministic final tie-break.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AICommits != entries[j].AICommits {
			return entries[i].AICommits > entries[j].AICommits
		}
		if entries[i].TotalCommits != entries[j].TotalCommits {
			return entries[i].TotalCommits > entries[j].TotalCommits
		}
		return strings.ToLower(entries[i].Login) < strings.ToLower(entries[j].Login)
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	data.ActiveUsers = len(entries)
	data.Leaderboard = entries
	return data
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}
