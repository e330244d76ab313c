package models

import "time"

// RepoRef identifies a repository to collect commits from.
type RepoRef struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Display returns the name shown in results, falling back to owner/name
func (r RepoRef) Display() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Owner + "/" + r.Name
}

// DateWindow is the half-open time range commits are collected for.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsValid reports whether the window covers any time at all
func (w DateWindow) IsValid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.End.After(w.Start)
}
