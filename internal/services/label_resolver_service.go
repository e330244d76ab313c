package services

import (
	"github.com/alimgiray/vibeboard/internal/models"
)

// LabelResolverService maps AI-labeled merged pull requests to per-commit
// tool overrides. PR labels carry no model information, so overrides name a
// tool only. The aggregation pipeline consumes an override solely when the
// detector left the commit unclassified; message trailers are the stronger,
// tool-authored signal and always win.
type LabelResolverService struct{}

func NewLabelResolverService() *LabelResolverService {
	return &LabelResolverService{}
}

type prKey struct {
	repository string
	number     int
}

// Resolve walks the rule table in order and records one merge-commit override
// per matching pull request. A PR matching multiple configured labels
// contributes only its first matching label in rule order, and the first
// writer wins when two PRs share a merge SHA. PRs without a merge commit are
// skipped; resolution is best-effort and additive.
func (s *LabelResolverService) Resolve(rules []*models.LabelRule, prs []*models.MergedPullRequest) map[string]models.ToolLabel {
	overrides := make(map[string]models.ToolLabel)
	claimed := make(map[prKey]bool)

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		for _, pr := range prs {
			if !pr.HasLabel(rule.Label) {
				continue
			}

			key := prKey{repository: pr.Repository, number: pr.Number}
			if claimed[key] {
				continue
			}
			claimed[key] = true

			if pr.MergeCommitSHA == nil || *pr.MergeCommitSHA == "" {
				continue
			}
			if _, exists := overrides[*pr.MergeCommitSHA]; exists {
				continue
			}
			overrides[*pr.MergeCommitSHA] = rule.Tool
		}
	}

	return overrides
}
