package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/showcase_api/internal/middleware"
	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/service"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// DraftHandler stores the wizard form state of the current user.
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler constructs a DraftHandler.
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// SaveDraft replaces the draft for the tier in the path.
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	var req service.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	draft, err := h.draftService.SaveDraft(c.Request.Context(), middleware.GetUserID(c), models.Tier(c.Param("tier")), &req)
	if err != nil {
		respondError(c, err, "Failed to save draft")
		return
	}
	utils.Success(c, 200, "Draft saved", draft)
}

// GetDraft returns the draft for the tier in the path.
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.draftService.GetDraft(c.Request.Context(), middleware.GetUserID(c), models.Tier(c.Param("tier")))
	if err != nil {
		respondError(c, err, "Failed to load draft")
		return
	}
	utils.Success(c, 200, "", draft)
}

// DeleteDraft discards the draft for the tier in the path.
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	if err := h.draftService.DeleteDraft(c.Request.Context(), middleware.GetUserID(c), models.Tier(c.Param("tier"))); err != nil {
		respondError(c, err, "Failed to delete draft")
		return
	}
	utils.Success(c, 200, "Draft deleted", nil)
}
