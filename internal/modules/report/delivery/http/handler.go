package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportDto "teamnexus.com/collegeportal/internal/modules/report/dto"
	report "teamnexus.com/collegeportal/internal/modules/report/service"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

const redirectFeed = "/feed"

type ReportHandler struct {
	service report.ReportService
}

func NewReportHandler(service report.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req reportDto.CreateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.CreateReport(c.Request.Context(), user, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Reported for review.", "data": res})
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reports, err := h.service.ListReports(c.Request.Context(), user)
	if err != nil {
		response.ResponseForbidden(c, err, redirectFeed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (h *ReportHandler) ResolveReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.ResolveReport(c.Request.Context(), user, id)
	if err != nil {
		response.ResponseForbidden(c, err, redirectFeed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report resolved.", "data": res})
}
