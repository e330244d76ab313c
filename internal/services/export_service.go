package services

import (
	"bytes"
	"fmt"

	"github.com/alimgiray/vibeboard/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a leaderboard as an Excel workbook.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportLeaderboard builds a workbook with a summary sheet and the ranked
// leaderboard and returns its serialized bytes.
func (s *ExportService) ExportLeaderboard(data *models.LeaderboardData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	const boardSheet = "Leaderboard"

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Total commits", data.TotalCommits},
		{"AI commits", data.AICommits},
		{"Active users", data.ActiveUsers},
		{"Claude co-authored", data.AIToolBreakdown.ClaudeCoauthor},
		{"Claude generated", data.AIToolBreakdown.ClaudeGenerated},
		{"Copilot", data.AIToolBreakdown.Copilot},
		{"Cursor", data.AIToolBreakdown.Cursor},
		{"Codex", data.AIToolBreakdown.Codex},
		{"Gemini", data.AIToolBreakdown.Gemini},
		{"Agent", data.AIToolBreakdown.Agent},
		{"Claude Opus", data.ClaudeModelBreakdown.Opus},
		{"Claude Sonnet", data.ClaudeModelBreakdown.Sonnet},
		{"Claude Haiku", data.ClaudeModelBreakdown.Haiku},
		{"Claude unknown model", data.ClaudeModelBreakdown.Unknown},
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	if _, err := f.NewSheet(boardSheet); err != nil {
		return nil, fmt.Errorf("failed to create leaderboard sheet: %w", err)
	}

	header := []interface{}{"Rank", "Author", "AI Commits", "Total Commits", "AI %"}
	if err := f.SetSheetRow(boardSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write leaderboard header: %w", err)
	}

	for i, entry := range data.Leaderboard {
		row := []interface{}{
			entry.Rank,
			entry.Login,
			entry.AICommits,
			entry.TotalCommits,
			entry.AIPercentage,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(boardSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write leaderboard row: %w", err)
		}
	}

	return f.WriteToBuffer()
}
