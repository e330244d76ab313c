package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/alimgiray/vibeboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCommit(sha, login, repo string, daysAgo int) *models.Commit {
	ts := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
	return models.NewCommit(sha, "commit "+sha, repo, &login, "https://avatars.example/"+login, ts)
}

func classificationsFor(tools map[string]models.ToolLabel) map[string]*models.Classification {
	result := make(map[string]*models.Classification)
	for sha, tool := range tools {
		c := &models.Classification{Tool: tool}
		if tool.IsClaudeFamily() {
			c.Model = models.ModelUnknown
		}
		result[sha] = c
	}
	return result
}

func TestAggregatePercentage(t *testing.T) {
	aggregator := NewAggregatorService()

	// 10 commits, 3 claude-coauthor + 2 copilot -> 50%.
	var commits []*models.Commit
	for i := 0; i < 10; i++ {
		commits = append(commits, makeCommit(fmt.Sprintf("sha-%d", i), "alice", "api", i))
	}
	classifications := classificationsFor(map[string]models.ToolLabel{
		"sha-0": models.ToolClaudeCoauthor,
		"sha-1": models.ToolClaudeCoauthor,
		"sha-2": models.ToolClaudeCoauthor,
		"sha-3": models.ToolCopilot,
		"sha-4": models.ToolCopilot,
	})

	data := aggregator.Aggregate(commits, classifications)

	require.Len(t, data.Leaderboard, 1)
	entry := data.Leaderboard[0]
	assert.Equal(t, 10, entry.TotalCommits)
	assert.Equal(t, 5, entry.AICommits)
	assert.Equal(t, 50, entry.AIPercentage)
	assert.Equal(t, 1, entry.Rank)
	assert.Equal(t, 3, entry.ToolBreakdown.ClaudeCoauthor)
	assert.Equal(t, 2, entry.ToolBreakdown.Copilot)
}

func TestAggregateMergesAuthorsAcrossRepositories(t *testing.T) {
	aggregator := NewAggregatorService()

	var commits []*models.Commit
	for i := 0; i < 5; i++ {
		commits = append(commits, makeCommit(fmt.Sprintf("a-%d", i), "alice", "repo-a", i))
	}
	for i := 0; i < 3; i++ {
		commits = append(commits, makeCommit(fmt.Sprintf("b-%d", i), "alice", "repo-b", i))
	}
	classifications := classificationsFor(map[string]models.ToolLabel{
		"a-0": models.ToolClaudeCoauthor,
		"a-1": models.ToolCursor,
		"b-0": models.ToolCopilot,
	})

	data := aggregator.Aggregate(commits, classifications)

	require.Len(t, data.Leaderboard, 1)
	entry := data.Leaderboard[0]
	assert.Equal(t, 8, entry.TotalCommits)
	assert.Equal(t, 3, entry.AICommits)
	assert.Len(t, entry.ActivityDates, 8)
	assert.Len(t, entry.AICommitList, 3)
}

func TestAggregateIncludesAuthorsWithZeroAICommits(t *testing.T) {
	aggregator := NewAggregatorService()

	commits := []*models.Commit{
		makeCommit("sha-1", "alice", "api", 0),
		makeCommit("sha-2", "bob", "api", 1),
	}
	classifications := classificationsFor(map[string]models.ToolLabel{
		"sha-1": models.ToolClaudeGenerated,
	})

	data := aggregator.Aggregate(commits, classifications)

	require.Len(t, data.Leaderboard, 2)
	assert.Equal(t, "alice", data.Leaderboard[0].Login)
	assert.Equal(t, "bob", data.Leaderboard[1].Login)
	assert.Equal(t, 0, data.Leaderboard[1].AICommits)
	assert.Equal(t, 0, data.Leaderboard[1].AIPercentage)
}

func TestAggregateExcludesAuthorsWithoutLogin(t *testing.T) {
	aggregator := NewAggregatorService()

	anonymous := models.NewCommit("sha-anon", "anonymous commit", "api", nil, "", time.Now())
	commits := []*models.Commit{
		anonymous,
		makeCommit("sha-1", "alice", "api", 0),
	}

	data := aggregator.Aggregate(commits, nil)

	require.Len(t, data.Leaderboard, 1)
	assert.Equal(t, "alice", data.Leaderboard[0].Login)
	assert.Equal(t, 1, data.TotalCommits)
}

func TestAggregateSortAndTieBreaks(t *testing.T) {
	aggregator := NewAggregatorService()

	commits := []*models.Commit{
		// carol: 2 AI of 3 total.
		makeCommit("c-1", "carol", "api", 0),
		makeCommit("c-2", "carol", "api", 1),
		makeCommit("c-3", "carol", "api", 2),
		// bob: 2 AI of 2 total.
		makeCommit("b-1", "bob", "api", 0),
		makeCommit("b-2", "bob", "api", 1),
		// alice: 2 AI of 2 total, ties with bob on both counts.
		makeCommit("a-1", "alice", "api", 0),
		makeCommit("a-2", "alice", "api", 1),
		// dave: 1 AI.
		makeCommit("d-1", "dave", "api", 0),
	}
	classifications := classificationsFor(map[string]models.ToolLabel{
		"c-1": models.ToolCopilot,
		"c-2": models.ToolCopilot,
		"b-1": models.ToolCursor,
		"b-2": models.ToolCursor,
		"a-1": models.ToolCodex,
		"a-2": models.ToolGemini,
		"d-1": models.ToolAgent,
	})

	data := aggregator.Aggregate(commits, classifications)

	require.Len(t, data.Leaderboard, 4)
	// carol first on total-commit tie-break, then alice before bob on login.
	assert.Equal(t, "carol", data.Leaderboard[0].Login)
	assert.Equal(t, "alice", data.Leaderboard[1].Login)
	assert.Equal(t, "bob", data.Leaderboard[2].Login)
	assert.Equal(t, "dave", data.Leaderboard[3].Login)

	for i, entry := range data.Leaderboard {
		assert.Equal(t, i+1, entry.Rank)
	}
}

func TestAggregateConservation(t *testing.T) {
	aggregator := NewAggregatorService()

	commits := []*models.Commit{
		makeCommit("s-1", "alice", "api", 0),
		makeCommit("s-2", "alice", "api", 1),
		makeCommit("s-3", "alice", "api", 2),
		makeCommit("s-4", "bob", "api", 0),
		makeCommit("s-5", "bob", "api", 1),
	}
	classifications := map[string]*models.Classification{
		"s-1": {Tool: models.ToolClaudeCoauthor, Model: models.ModelOpus},
		"s-2": {Tool: models.ToolClaudeGenerated, Model: models.ModelUnknown},
		"s-4": {Tool: models.ToolCopilot},
	}

	data := aggregator.Aggregate(commits, classifications)

	// Per-entry conservation.
	totalAI := 0
	totalCommits := 0
	for _, entry := range data.Leaderboard {
		assert.Equal(t, entry.AICommits, entry.ToolBreakdown.Total())
		assert.Equal(t, entry.ToolBreakdown.ClaudeTotal(), entry.ModelBreakdown.Total())
		totalAI += entry.AICommits
		totalCommits += entry.TotalCommits
	}

	// Global roll-up.
	assert.Equal(t, totalAI, data.AICommits)
	assert.Equal(t, totalCommits, data.TotalCommits)
	assert.Equal(t, data.AICommits, data.AIToolBreakdown.Total())
	assert.Equal(t, data.AIToolBreakdown.ClaudeTotal(), data.ClaudeModelBreakdown.Total())
	assert.Equal(t, 1, data.ClaudeModelBreakdown.Opus)
	assert.Equal(t, 1, data.ClaudeModelBreakdown.Unknown)
	assert.Equal(t, 2, data.ActiveUsers)
}

func TestAggregateIsIdempotent(t *testing.T) {
	aggregator := NewAggregatorService()

	commits := []*models.Commit{
		makeCommit("s-1", "alice", "api", 0),
		makeCommit("s-2", "bob", "api", 1),
	}
	classifications := classificationsFor(map[string]models.ToolLabel{
		"s-1": models.ToolClaudeCoauthor,
	})

	first := aggregator.Aggregate(commits, classifications)
	second := aggregator.Aggregate(commits, classifications)

	assert.Equal(t, first, second)
}

func TestAggregateEmptyInput(t *testing.T) {
	aggregator := NewAggregatorService()

	data := aggregator.Aggregate(nil, nil)

	assert.Equal(t, 0, data.TotalCommits)
	assert.Equal(t, 0, data.AICommits)
	assert.Equal(t, 0, data.ActiveUsers)
	assert.Empty(t, data.Leaderboard)
}
