package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/showcase_api/internal/utils"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order; the first sentinel matched by errors.Is wins.
// An empty message exposes the wrapped detail, which is always client-facing.
var errorMappings = []errorMapping{
	{utils.ErrValidation, http.StatusBadRequest, ""},
	{utils.ErrInvalidCursor, http.StatusBadRequest, ""},
	{utils.ErrUnsupportedOperation, http.StatusBadRequest, ""},
	{utils.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{utils.ErrURLNotFound, http.StatusNotFound, "URL not found"},
	{utils.ErrDraftNotFound, http.StatusNotFound, "Draft not found"},
	{utils.ErrProductLimitReached, http.StatusConflict, ""},
	{utils.ErrURLLimitReached, http.StatusConflict, ""},
	{utils.ErrConflict, http.StatusConflict, "Product was modified concurrently, please retry"},
	{utils.ErrUploadFailed, http.StatusBadGateway, "Media upload failed"},
}

// respondError writes the error envelope for err. Unknown errors are logged
// and reported as a generic 500 with fallback as message.
func respondError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = detail(err, m.target)
		}
		utils.Error(c, m.status, m.target.Error(), msg)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.FullPath()).
		Msg(fallback)
	utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}

// detail strips the sentinel code prefix from a wrapped error message.
func detail(err, target error) string {
	msg := strings.TrimPrefix(err.Error(), target.Error()+": ")
	if msg == "" || msg == target.Error() {
		return "Invalid request"
	}
	return msg
}
