package handler

import (
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	noteDto "teamnexus.com/collegeportal/internal/modules/note/dto"
	note "teamnexus.com/collegeportal/internal/modules/note/service"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type NoteHandler struct {
	service note.NoteService
}

func NewNoteHandler(service note.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) List(c *gin.Context) {
	var filter noteDto.NoteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	notes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notes})
}

func (h *NoteHandler) Upload(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req noteDto.UploadNoteRequest
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

	res, err := h.service.Upload(c.Request.Context(), user, req, file)
	if err != nil {
		response.ResponseForbidden(c, err, note.RedirectList)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Note uploaded successfully!", "data": res})
}

func (h *NoteHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	d, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if d.Body == nil {
		c.Redirect(http.StatusFound, d.URL)
		return
	}
	defer d.Body.Close()

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Name}))
	c.Header("Content-Type", contentType(d.Name))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, d.Body); err != nil {
		log.Printf("Failed to stream note %s: %v", id, err)
	}
}

func (h *NoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, id); err != nil {
		response.ResponseForbidden(c, err, note.RedirectList)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted!"})
}

func contentType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
