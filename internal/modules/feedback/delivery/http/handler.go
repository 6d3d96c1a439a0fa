package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	feedbackDto "teamnexus.com/collegeportal/internal/modules/feedback/dto"
	feedback "teamnexus.com/collegeportal/internal/modules/feedback/service"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type FeedbackHandler struct {
	service feedback.FeedbackService
}

func NewFeedbackHandler(service feedback.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req feedbackDto.SubmitFeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Submit(c.Request.Context(), user, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your feedback!", "data": res})
}

func (h *FeedbackHandler) List(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), user)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *FeedbackHandler) Mine(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	items, err := h.service.Mine(c.Request.Context(), user)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}
