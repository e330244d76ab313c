package models

// ToolLabel identifies which AI assistance channel produced or co-authored a commit.
type ToolLabel string

const (
	ToolClaudeCoauthor  ToolLabel = "claude-coauthor"
	ToolClaudeGenerated ToolLabel = "claude-generated"
	ToolCopilot         ToolLabel = "copilot"
	ToolCursor          ToolLabel = "cursor"
	ToolCodex           ToolLabel = "codex"
	ToolGemini          ToolLabel = "gemini"
	ToolAgent           ToolLabel = "agent"
)

// KnownTools lists every tool label the engine ships default label rules for.
var KnownTools = []ToolLabel{
	ToolClaudeCoauthor,
	ToolClaudeGenerated,
	ToolCopilot,
	ToolCursor,
	ToolCodex,
	ToolGemini,
	ToolAgent,
}

// IsClaudeFamily reports whether the tool carries a Claude model variant.
func (t ToolLabel) IsClaudeFamily() bool {
	return t == ToolClaudeCoauthor || t == ToolClaudeGenerated
}

// ModelVariant identifies which Claude model authored the assistance.
// It only applies to the Claude tool family.
type ModelVariant string

const (
	ModelOpus    ModelVariant = "opus"
	ModelSonnet  ModelVariant = "sonnet"
	ModelHaiku   ModelVariant = "haiku"
	ModelUnknown ModelVariant = "unknown"
)

// Classification is the result of attributing a single commit to an AI tool.
// A commit has at most one classification.
type Classification struct {
	Tool  ToolLabel    `json:"tool"`
	Model ModelVariant `json:"model,omitempty"`
}

// ToolBreakdown counts AI-attributed commits per tool. It is a fixed-shape
// struct rather than a map so adding a new tool is a compile-time change.
type ToolBreakdown struct {
	ClaudeCoauthor  int `json:"claude-coauthor"`
	ClaudeGenerated int `json:"claude-generated"`
	Copilot         int `json:"copilot"`
	Cursor          int `json:"cursor"`
	Codex           int `json:"codex"`
	Gemini          int `json:"gemini"`
	Agent           int `json:"agent"`
}

// Add increments the bucket for the given tool. Unknown tools are ignored.
func (b *ToolBreakdown) Add(tool ToolLabel) {
	switch tool {
	case ToolClaudeCoauthor:
		b.ClaudeCoauthor++
	case ToolClaudeGenerated:
		b.ClaudeGenerated++
	case ToolCopilot:
		b.Copilot++
	case ToolCursor:
		b.Cursor++
	case ToolCodex:
		b.Codex++
	case ToolGemini:
		b.Gemini++
	case ToolAgent:
		b.Agent++
	}
}

// Merge adds another breakdown's counts into this one
func (b *ToolBreakdown) Merge(other ToolBreakdown) {
	b.ClaudeCoauthor += other.ClaudeCoauthor
	b.ClaudeGenerated += other.ClaudeGenerated
	b.Copilot += other.Copilot
	b.Cursor += other.Cursor
	b.Codex += other.Codex
	b.Gemini += other.Gemini
	b.Agent += other.Agent
}

// Total returns the sum of all tool buckets
func (b ToolBreakdown) Total() int {
	return b.ClaudeCoauthor + b.ClaudeGenerated + b.Copilot + b.Cursor + b.Codex + b.Gemini + b.Agent
}

// ClaudeTotal returns the number of commits attributed to the Claude family
func (b ToolBreakdown) ClaudeTotal() int {
	return b.ClaudeCoauthor + b.ClaudeGenerated
}

// ModelBreakdown counts Claude-attributed commits per model variant.
type ModelBreakdown struct {
	Opus    int `json:"opus"`
	Sonnet  int `json:"sonnet"`
	Haiku   int `json:"haiku"`
	Unknown int `json:"unknown"`
}

// Add increments the bucket for the given model variant. An empty variant
// counts as unknown.
func (b *ModelBreakdown) Add(model ModelVariant) {
	switch model {
	case ModelOpus:
		b.Opus++
	case ModelSonnet:
		b.Sonnet++
	case ModelHaiku:
		b.Haiku++
	default:
		b.Unknown++
	}
}

// Merge adds another breakdown's counts into this one
func (b *ModelBreakdown) Merge(other ModelBreakdown) {
	b.Opus += other.Opus
	b.Sonnet += other.Sonnet
	b.Haiku += other.Haiku
	b.Unknown += other.Unknown
}

// Total returns the sum of all model buckets
func (b ModelBreakdown) Total() int {
	return b.Opus + b.Sonnet + b.Haiku + b.Unknown
}
