package models

import "time"

// Commit represents a single repository commit fetched from GitHub.
// SHA is unique only within one repository's result set.
type Commit struct {
	SHA          string    `json:"sha"`
	AuthorLogin  *string   `json:"author_login"`
	AuthorAvatar string    `json:"author_avatar"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Repository   string    `json:"repository"`
}

// NewCommit creates a new Commit
func NewCommit(sha, message, repository string, authorLogin *string, authorAvatar string, timestamp time.Time) *Commit {
	return &Commit{
		SHA:          sha,
		AuthorLogin:  authorLogin,
		AuthorAvatar: authorAvatar,
		Message:      message,
		Timestamp:    timestamp,
		Repository:   repository,
	}
}

// HasAuthor reports whether the commit has a resolvable platform account
func (c *Commit) HasAuthor() bool {
	return c.AuthorLogin != nil && *c.AuthorLogin != ""
}
