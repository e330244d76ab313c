package services

import (
	"fmt"
	"sync"

	"github.com/alimgiray/vibeboard/internal/models"
)

// LabelRuleService owns the editable label-rule table. The table lives in
// memory for the lifetime of the process; it is read-only during a single
// leaderboard build and mutated only between builds.
type LabelRuleService struct {
	mu    sync.RWMutex
	rules []*models.LabelRule
}

// NewLabelRuleService creates the service with the built-in default rules
// pre-populated for each known tool.
func NewLabelRuleService() *LabelRuleService {
	return &LabelRuleService{
		rules: models.DefaultLabelRules(),
	}
}

// GetRules returns a snapshot of all rules in table order
func (s *LabelRuleService) GetRules() []*models.LabelRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := make([]*models.LabelRule, len(s.rules))
	for i, r := range s.rules {
		copied := *r
		rules[i] = &copied
	}
	return rules
}

// GetEnabledRules returns a snapshot of enabled rules in table order
func (s *LabelRuleService) GetEnabledRules() []*models.LabelRule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rules []*models.LabelRule
	for _, r := range s.rules {
		if r.Enabled {
			copied := *r
			rules = append(rules, &copied)
		}
	}
	return rules
}

// AddRule appends a user-defined rule. Label names must be unique within the
// active rule set.
func (s *LabelRuleService) AddRule(label string, tool models.ToolLabel) (*models.LabelRule, error) {
	if label == "" {
		return nil, fmt.Errorf("label is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rules {
		if r.Label == label {
			return nil, fmt.Errorf("a rule for label %q already exists", label)
		}
	}

	rule := models.NewLabelRule(label, tool)
	s.rules = append(s.rules, rule)

	copied := *rule
	return &copied, nil
}

// UpdateRule toggles or re-targets an existing rule
func (s *LabelRuleService) UpdateRule(id string, tool models.ToolLabel, enabled bool) (*models.LabelRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rules {
		if r.ID == id {
			r.Tool = tool
			r.Enabled = enabled
			copied := *r
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("label rule not found: %s", id)
}

// DeleteRule removes a user-defined rule. Default rules cannot be deleted,
// only disabled.
func (s *LabelRuleService) DeleteRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rules {
		if r.ID == id {
			if r.IsDefault {
				return fmt.Errorf("default rule %q cannot be deleted", r.Label)
			}
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("label rule not found: %s", id)
}
