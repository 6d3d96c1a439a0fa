package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	eventDto "teamnexus.com/collegeportal/internal/modules/event/dto"
	event "teamnexus.com/collegeportal/internal/modules/event/service"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type EventHandler struct {
	service event.EventService
}

func NewEventHandler(service event.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EventHandler) Registered(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	events, err := h.service.Registered(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	detail, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *EventHandler) Create(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req eventDto.EventRequest
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
		response.ResponseForbidden(c, err, event.RedirectList)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event created!", "data": res})
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req eventDto.EventRequest
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
		response.ResponseForbidden(c, err, event.RedirectList)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated!", "data": res})
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		response.ResponseForbidden(c, err, event.RedirectList)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted!"})
}

func (h *EventHandler) RSVP(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	created, err := h.service.RSVP(c.Request.Context(), userID, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "You have already registered for this event.", "registered": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "RSVP successful!", "registered": true})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return uuid.Nil, false
	}
	return id, true
}
