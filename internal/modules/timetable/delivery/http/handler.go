package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	timetableDto "teamnexus.com/collegeportal/internal/modules/timetable/dto"
	timetable "teamnexus.com/collegeportal/internal/modules/timetable/service"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type TimetableHandler struct {
	service timetable.TimetableService
}

func NewTimetableHandler(service timetable.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

func (h *TimetableHandler) Create(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req timetableDto.CreateEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Create(c.Request.Context(), user, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Timetable entry added", "data": res})
}

func (h *TimetableHandler) Mine(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	h.list(c, user.ID)
}

func (h *TimetableHandler) ForStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	h.list(c, studentID)
}

func (h *TimetableHandler) list(c *gin.Context, studentID uuid.UUID) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	entries, err := h.service.ForStudent(c.Request.Context(), user, studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *TimetableHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timetable entry id"})
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Timetable entry deleted"})
}
