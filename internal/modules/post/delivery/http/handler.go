package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	postDto "teamnexus.com/collegeportal/internal/modules/post/dto"
	post "teamnexus.com/collegeportal/internal/modules/post/service"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type PostHandler struct {
	service post.PostService
}

func NewPostHandler(service post.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) GetFeed(c *gin.Context) {
	var filter postDto.FeedFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feed, err := h.service.GetFeed(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req postDto.CreatePostRequest
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

	resp, err := h.service.CreatePost(c.Request.Context(), user, req, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created!", "data": resp})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parseID(c, "invalid post id")
	if !ok {
		return
	}

	viewerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	detail, err := h.service.GetPost(c.Request.Context(), viewerID, postID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := parseID(c, "invalid post id")
	if !ok {
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req postDto.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.AddComment(c.Request.Context(), user, postID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added!", "data": resp})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := parseID(c, "invalid post id")
	if !ok {
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), user, postID); err != nil {
		response.ResponseForbidden(c, err, post.RedirectFeed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted."})
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseID(c, "invalid comment id")
	if !ok {
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), user, commentID); err != nil {
		response.ResponseForbidden(c, err, post.RedirectFeed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted."})
}

func (h *PostHandler) PurgePost(c *gin.Context) {
	postID, ok := parseID(c, "invalid post id")
	if !ok {
		return
	}

	user, err := response.GetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.PurgePost(c.Request.Context(), user, postID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post permanently deleted."})
}

func parseID(c *gin.Context, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return uuid.Nil, false
	}
	return id, true
}
