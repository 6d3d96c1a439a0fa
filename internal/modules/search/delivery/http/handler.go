package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"teamnexus.com/collegeportal/internal/modules/search/dto"
	search "teamnexus.com/collegeportal/internal/modules/search/service"
	"teamnexus.com/collegeportal/pkg/response"
	"teamnexus.com/collegeportal/pkg/validator"
)

type SearchHandler struct {
	service search.SearchService
}

func NewSearchHandler(service search.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
