package realtime

import "github.com/google/uuid"

type NewPostPayload struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt string    `json:"created_at"`
}

type NewCommentPayload struct {
	PostID    uuid.UUID `json:"post_id"`
	CommentID uuid.UUID `json:"comment_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

type LikePayload struct {
	PostID uuid.UUID `json:"post_id"`
	Count  int64     `json:"count"`
}

type ReportPayload struct {
	ReportID  uuid.UUID  `json:"report_id"`
	PostID    *uuid.UUID `json:"post_id"`
	CommentID *uuid.UUID `json:"comment_id"`
	Reason    string     `json:"reason"`
	Reporter  string     `json:"reporter"`
}

// Discard drops every event. Useful where no hub is running.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(string, any) {}
