package models

import "time"

// MergedPullRequest is a merged GitHub pull request carrying at least one
// AI-related label, found by the collector's label search.
type MergedPullRequest struct {
	Number         int        `json:"number"`
	Labels         []string   `json:"labels"`
	MergeCommitSHA *string    `json:"merge_commit_sha"`
	AuthorLogin    string     `json:"author_login"`
	MergedAt       *time.Time `json:"merged_at"`
	Repository     string     `json:"repository"`
}

// HasLabel reports whether the pull request carries the given label name
func (pr *MergedPullRequest) HasLabel(label string) bool {
	for _, l := range pr.Labels {
		if l == label {
			return true
		}
	}
	return false
}
