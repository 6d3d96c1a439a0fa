package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	annDto "teamnexus.com/collegeportal/internal/modules/announcement/dto"
	announcement "teamnexus.com/collegeportal/internal/modules/announcement/service"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type AnnouncementHandler struct {
	service announcement.AnnouncementService
}

func NewAnnouncementHandler(service announcement.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	var filter annDto.AnnouncementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req annDto.AnnouncementRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	file, err := dto.FormFileUpload(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	res, err := h.service.Create(c.Request.Context(), user, req, file)
	if err != nil {
		response.ResponseForbidden(c, err, announcement.RedirectList)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Announcement posted!", "data": res})
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req annDto.AnnouncementRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	file, err := dto.FormFileUpload(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	res, err := h.service.Update(c.Request.Context(), user, id, req, file)
	if err != nil {
		response.ResponseForbidden(c, err, announcement.RedirectList)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement updated!", "data": res})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid announcement id"})
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		response.ResponseForbidden(c, err, announcement.RedirectList)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted!"})
}
