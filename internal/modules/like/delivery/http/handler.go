package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	like "teamnexus.com/collegeportal/internal/modules/like/service"
	"teamnexus.com/collegeportal/pkg/response"
)

type LikeHandler struct {
	service like.LikeService
}

func NewLikeHandler(service like.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// ToggleLike answers POST /feed/like/:id with {"status": "liked"|"unliked", "count": n}.
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
