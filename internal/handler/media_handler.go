package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/showcase_api/internal/models"
	"github.com/GTDGit/showcase_api/internal/service"
	"github.com/GTDGit/showcase_api/internal/utils"
)

// MediaHandler handles media uploads.
type MediaHandler struct {
	mediaService *service.MediaService
	maxBytes     int64
}

// NewMediaHandler constructs a MediaHandler accepting files up to maxBytes.
func NewMediaHandler(mediaService *service.MediaService, maxBytes int64) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, maxBytes: maxBytes}
}

// Upload stores the multipart "file" field as media of the given "kind".
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "file is required")
		return
	}
	if file.Size > h.maxBytes {
		utils.Error(c, 400, "VALIDATION_ERROR", "file is too large")
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "could not read file")
		return
	}
	defer f.Close()

	asset, err := h.mediaService.Upload(c.Request.Context(), models.MediaKind(c.PostForm("kind")), f)
	if err != nil {
		respondError(c, err, "Failed to upload media")
		return
	}
	utils.Success(c, 201, "Media uploaded successfully", asset)
}
