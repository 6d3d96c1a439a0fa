package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	attendanceDto "teamnexus.com/collegeportal/internal/modules/attendance/dto"
	attendance "teamnexus.com/collegeportal/internal/modules/attendance/service"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type AttendanceHandler struct {
	service attendance.AttendanceService
}

func NewAttendanceHandler(service attendance.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

func (h *AttendanceHandler) Mark(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req attendanceDto.MarkAttendanceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Mark(c.Request.Context(), user, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked", "data": res})
}

func (h *AttendanceHandler) Mine(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	h.report(c, user.ID)
}

func (h *AttendanceHandler) ForStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	h.report(c, studentID)
}

func (h *AttendanceHandler) report(c *gin.Context, studentID uuid.UUID) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter attendanceDto.AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	report, err := h.service.Report(c.Request.Context(), user, studentID, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
