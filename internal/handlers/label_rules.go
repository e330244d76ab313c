package handlers

import (
	"net/http"
	"strings"

	"github.com/alimgiray/vibeboard/internal/models"
	"github.com/alimgiray/vibeboard/internal/services"
	"github.com/gin-gonic/gin"
)

type LabelRuleHandler struct {
	labelRuleService *services.LabelRuleService
}

func NewLabelRuleHandler(labelRuleService *services.LabelRuleService) *LabelRuleHandler {
	return &LabelRuleHandler{
		labelRuleService: labelRuleService,
	}
}

// ListRules returns the full rule table in order
func (h *LabelRuleHandler) ListRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": h.labelRuleService.GetRules()})
}

type createRuleRequest struct {
	Label string           `json:"label" binding:"required"`
	Tool  models.ToolLabel `json:"tool" binding:"required"`
}

// CreateRule adds a user-defined rule
func (h *LabelRuleHandler) CreateRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	rule, err := h.labelRuleService.AddRule(req.Label, req.Tool)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rule)
}

type updateRuleRequest struct {
	Tool    models.ToolLabel `json:"tool" binding:"required"`
	Enabled bool             `json:"enabled"`
}

// UpdateRule re-targets or toggles an existing rule
func (h *LabelRuleHandler) UpdateRule(c *gin.Context) {
	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	rule, err := h.labelRuleService.UpdateRule(c.Param("id"), req.Tool, req.Enabled)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeleteRule removes a user-defined rule. Default rules can only be disabled.
func (h *LabelRuleHandler) DeleteRule(c *gin.Context) {
	if err := h.labelRuleService.DeleteRule(c.Param("id")); err != nil {
		status := http.StatusNotFound
		if strings.Contains(err.Error(), "cannot be deleted") {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
