package dto

import (
	"github.com/google/uuid"
	commonDto "teamnexus.com/collegeportal/pkg/dto"
)

type CreatePostRequest struct {
	Title   string   `form:"title" json:"title" binding:"required,max=255"`
	Content string   `form:"content" json:"content" binding:"required"`
	Tags    []string `form:"tags" json:"tags"`
}

type CreateCommentRequest struct {
	Content string `form:"content" json:"content" binding:"required"`
}

type FeedFilter struct {
	Tag    string `form:"tag"`
	Search string `form:"search"`
}

type PostResponse struct {
	ID          uuid.UUID                `json:"id"`
	Title       string                   `json:"title"`
	Content     string                   `json:"content"`
	ContentHTML string                   `json:"content_html"`
	FileURL     *string                  `json:"file_url,omitempty"`
	Author      commonDto.AuthorResponse `json:"author"`
	Tags        []commonDto.TagResponse  `json:"tags"`
	LikeCount   int64                    `json:"like_count"`
	IsReported  bool                     `json:"is_reported"`
	CreatedAt   string                   `json:"created_at"`
}

type CommentResponse struct {
	ID          uuid.UUID                `json:"id"`
	PostID      uuid.UUID                `json:"post_id"`
	Content     string                   `json:"content"`
	ContentHTML string                   `json:"content_html"`
	Author      commonDto.AuthorResponse `json:"author"`
	CreatedAt   string                   `json:"created_at"`
}

type PostDetailResponse struct {
	Post     PostResponse      `json:"post"`
	Comments []CommentResponse `json:"comments"`
	Liked    bool              `json:"liked"`
}

type FeedResponse struct {
	Data []PostResponse          `json:"data"`
	Tags []commonDto.TagResponse `json:"tags"`
}
