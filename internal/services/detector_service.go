package services

import (
	"regexp"
	"strings"

	"github.com/alimgiray/vibeboard/internal/models"
)

// DetectorService classifies commit messages by AI tool signature. Rules are
// evaluated in priority order and the first match wins, so a commit is never
// counted under two tools.
type DetectorService struct {
	rules []detectorRule
}

type detectorRule struct {
	tool    models.ToolLabel
	pattern *regexp.Regexp
	// modelGroup is the index of the capture group inspected for a Claude
	// model name, 0 when the rule never names a model.
	modelGroup int
}

var (
	claudeCoauthorPattern  = regexp.MustCompile(`(?i)co-authored-by:\s*claude([^<\r\n]*)<[^<>\s]*@anthropic\.com>`)
	claudeGeneratedPattern = regexp.MustCompile(`(?i)generated\s+with\s+\[?claude\s+code\]?`)
	copilotCoauthorPattern = regexp.MustCompile(`(?i)co-authored-by:\s*copilot\b[^<\r\n]*<[^<>\s]*>`)
	cursorCoauthorPattern  = regexp.MustCompile(`(?i)co-authored-by:\s*cursor\b[^<\r\n]*<[^<>\s]*@cursor\.com>`)
)

func NewDetectorService() *DetectorService {
	return &DetectorService{
		rules: []detectorRule{
			{tool: models.ToolClaudeCoauthor, pattern: claudeCoauthorPattern, modelGroup: 1},
			{tool: models.ToolClaudeGenerated, pattern: claudeGeneratedPattern},
			{tool: models.ToolCopilot, pattern: copilotCoauthorPattern},
			{tool: models.ToolCursor, pattern: cursorCoauthorPattern},
		},
	}
}

// Classify inspects a commit message and returns its AI classification, or
// nil when no tool signature is present. Malformed input simply fails to
// match; Classify never errors.
func (s *DetectorService) Classify(message string) *models.Classification {
	for _, rule := range s.rules {
		match := rule.pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}

		classification := &models.Classification{Tool: rule.tool}
		if rule.tool.IsClaudeFamily() {
			classification.Model = models.ModelUnknown
			if rule.modelGroup > 0 && rule.modelGroup < len(match) {
				classification.Model = detectClaudeModel(match[rule.modelGroup])
			}
		}
		return classification
	}

	return nil
}

// detectClaudeModel looks for a model name in the free text of a Claude
// co-author trailer, e.g. "Claude Opus 4.5 <noreply@anthropic.com>".
func detectClaudeModel(text string) models.ModelVariant {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "opus"):
		return models.ModelOpus
	case strings.Contains(lower, "sonnet"):
		return models.ModelSonnet
	case strings.Contains(lower, "haiku"):
		return models.ModelHaiku
	default:
		return models.ModelUnknown
	}
}
