package service

import "teamnexus.com/collegeportal/internal/entity"

// Indexer is the write side of search used by content services. A nil
// Indexer means search is not configured.
type Indexer interface {
	IndexPost(post *entity.Post) error
	DeletePost(id string) error
	IndexAnnouncement(announcement *entity.Announcement) error
	DeleteAnnouncement(id string) error
}
