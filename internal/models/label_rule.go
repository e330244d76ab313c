package models

import (
	"github.com/google/uuid"
)

// LabelRule maps a pull request label name to an AI tool. Rules are evaluated
// in table order when a pull request carries more than one configured label.
type LabelRule struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Tool      ToolLabel `json:"tool"`
	Enabled   bool      `json:"enabled"`
	IsDefault bool      `json:"is_default"`
}

// NewLabelRule creates a new user-defined LabelRule with a generated UUID
func NewLabelRule(label string, tool ToolLabel) *LabelRule {
	return &LabelRule{
		ID:        uuid.New().String(),
		Label:     label,
		Tool:      tool,
		Enabled:   true,
		IsDefault: false,
	}
}

// DefaultLabelRules returns the built-in rule for each known tool label.
// Default rules cannot be deleted, only disabled.
func DefaultLabelRules() []*LabelRule {
	rules := make([]*LabelRule, 0, len(KnownTools))
	for _, tool := range KnownTools {
		rules = append(rules, &LabelRule{
			ID:        uuid.New().String(),
			Label:     string(tool),
			Tool:      tool,
			Enabled:   true,
			IsDefault: true,
		})
	}
	return rules
}
