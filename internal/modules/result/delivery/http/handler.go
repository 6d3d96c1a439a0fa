package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	resultDto "teamnexus.com/collegeportal/internal/modules/result/dto"
	result "teamnexus.com/collegeportal/internal/modules/result/service"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type ResultHandler struct {
	service result.ResultService
}

func NewResultHandler(service result.ResultService) *ResultHandler {
	return &ResultHandler{service: service}
}

func (h *ResultHandler) Publish(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req resultDto.PublishResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Publish(c.Request.Context(), user, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Result published", "data": res})
}

func (h *ResultHandler) Mine(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	h.list(c, user.ID)
}

func (h *ResultHandler) ForStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	h.list(c, studentID)
}

func (h *ResultHandler) list(c *gin.Context, studentID uuid.UUID) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	results, err := h.service.ForStudent(c.Request.Context(), user, studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *ResultHandler) Delete(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid result id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Result deleted"})
}
