package models

import (
	"math"
	"time"
)

// AICommitDetail is one AI-attributed commit shown on an author's row.
type AICommitDetail struct {
	SHA        string       `json:"sha"`
	Repository string       `json:"repository"`
	Message    string       `json:"message"`
	Tool       ToolLabel    `json:"tool"`
	Model      ModelVariant `json:"model,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// AuthorStats aggregates one author's commits across the selected
// repositories in the window.
type AuthorStats struct {
	Login          string           `json:"login"`
	AvatarURL      string           `json:"avatar_url"`
	TotalCommits   int              `json:"total_commits"`
	AICommits      int              `json:"ai_commits"`
	ToolBreakdown  ToolBreakdown    `json:"tool_breakdown"`
	ModelBreakdown ModelBreakdown   `json:"model_breakdown"`
	AICommitList   []AICommitDetail `json:"ai_commit_list"`
	ActivityDates  []time.Time      `json:"activity_dates"`
}

// AIPercentage returns the rounded share of AI-attributed commits, 0 when the
// author has no commits at all.
func (a *AuthorStats) AIPercentage() int {
	if a.TotalCommits == 0 {
		return 0
	}
	return int(math.Round(100 * float64(a.AICommits) / float64(a.TotalCommits)))
}

// LeaderboardEntry is a rendering-ready, ranked author row.
type LeaderboardEntry struct {
	AuthorStats
	Rank         int `json:"rank"`
	AIPercentage int `json:"ai_percentage"`
}

// LeaderboardData is the full aggregation result, serializable as-is for the
// UI layer.
type LeaderboardData struct {
	TotalCommits         int                `json:"total_commits"`
	AICommits            int                `json:"ai_commits"`
	AIToolBreakdown      ToolBreakdown      `json:"ai_tool_breakdown"`
	ClaudeModelBreakdown ModelBreakdown     `json:"claude_model_breakdown"`
	ActiveUsers          int                `json:"active_users"`
	Leaderboard          []LeaderboardEntry `json:"leaderboard"`
}

// EmptyLeaderboardData returns the zeroed, renderable result used when no
// repositories are selected or the date window is empty.
func EmptyLeaderboardData() *LeaderboardData {
	return &LeaderboardData{
		Leaderboard: []LeaderboardEntry{},
	}
}
