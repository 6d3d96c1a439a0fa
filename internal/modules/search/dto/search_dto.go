package dto

type SearchQuery struct {
	Q     string `form:"q" binding:"required,max=200"`
	Limit int64  `form:"limit" binding:"omitempty,min=1,max=50"`
}

type PostHit struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"created_at"`
}

type AnnouncementHit struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Poster   string   `json:"poster"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"is_pinned"`
	PostedAt int64    `json:"posted_at"`
}

type SearchResponse struct {
	Query         string            `json:"query"`
	Posts         []PostHit         `json:"posts"`
	Announcements []AnnouncementHit `json:"announcements"`
}
