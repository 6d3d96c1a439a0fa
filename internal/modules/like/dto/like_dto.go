package dto

const (
	StatusLiked   = "liked"
	StatusUnliked = "unliked"
)

type LikeResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
