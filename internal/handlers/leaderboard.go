package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alimgiray/vibeboard/internal/models"
	"github.com/alimgiray/vibeboard/internal/services"
	"github.com/alimgiray/vibeboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
	exportService      *services.ExportService
}

func NewLeaderboardHandler(
	leaderboardService *services.LeaderboardService,
	exportService *services.ExportService,
) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		exportService:      exportService,
	}
}

type leaderboardRequest struct {
	Repositories        []models.RepoRef `json:"repositories"`
	Since               time.Time        `json:"since"`
	Until               time.Time        `json:"until"`
	IncludePullRequests bool             `json:"include_pull_requests"`
}

func (r leaderboardRequest) toBuildRequest() services.BuildRequest {
	return services.BuildRequest{
		Repositories:        r.Repositories,
		Window:              models.DateWindow{Start: r.Since, End: r.Until},
		IncludePullRequests: r.IncludePullRequests,
	}
}

// BuildLeaderboard computes and returns the leaderboard as JSON. An empty
// repository selection returns the zeroed, renderable structure.
func (h *LeaderboardHandler) BuildLeaderboard(c *gin.Context) {
	var req leaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	data, err := h.leaderboardService.BuildLeaderboard(c.Request.Context(), req.toBuildRequest(), logProgress)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// ExportLeaderboard computes the leaderboard and returns it as an xlsx
// workbook download.
func (h *LeaderboardHandler) ExportLeaderboard(c *gin.Context) {
	var req leaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	data, err := h.leaderboardService.BuildLeaderboard(c.Request.Context(), req.toBuildRequest(), logProgress)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	buf, err := h.exportService.ExportLeaderboard(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("leaderboard-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// logProgress surfaces collection progress in the server logs
func logProgress(p models.Progress) {
	logger.WithFields(logrus.Fields{
		"phase":           p.Phase,
		"completed_repos": p.CompletedRepos,
		"total_repos":     p.TotalRepos,
		"commits_fetched": p.CommitsFetched,
	}).Debugf("Collection progress")
}
