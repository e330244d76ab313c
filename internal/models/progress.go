package models

// Phase names the stage of a leaderboard build, for progress display only.
type Phase string

const (
	PhaseCounting    Phase = "counting"
	PhaseFetching    Phase = "fetching"
	PhaseFetchingPRs Phase = "fetching-prs"
	PhaseAnalyzing   Phase = "analyzing"
)

// Progress is a snapshot of collection state, reported to an optional
// observer. It is purely observational and never required for correctness.
type Progress struct {
	CompletedRepos       int      `json:"completed_repos"`
	TotalRepos           int      `json:"total_repos"`
	ActiveRepos          []string `json:"active_repos"`
	CommitsFetched       int      `json:"commits_fetched"`
	TotalCommitsEstimate int      `json:"total_commits_estimate"`
	Phase                Phase    `json:"phase"`
}

// ProgressFunc receives progress snapshots during a leaderboard build.
type ProgressFunc func(Progress)
