package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

// FeedQuery narrows the feed. Empty fields do not filter.
type FeedQuery struct {
	Tag    string
	Search string
}

type PostRepository interface {
	// Create inserts the post with the tags whose ids exist, in one transaction.
	Create(ctx context.Context, post *entity.Post, tagIDs []uuid.UUID) error
	FindFeed(ctx context.Context, q FeedQuery) ([]entity.Post, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	CreateComment(ctx context.Context, comment *entity.Comment) error
	FindActiveComments(ctx context.Context, postID uuid.UUID) ([]entity.Comment, error)
	FindActiveCommentByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	SoftDeleteComment(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(tagIDs) > 0 {
			var tags []entity.Tag
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return err
			}
			post.Tags = tags
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		return tx.Preload("Author").First(post, "id = ?", post.ID).Error
	})
}

func (r *postRepository) FindFeed(ctx context.Context, q FeedQuery) ([]entity.Post, error) {
	var posts []entity.Post

	query := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("posts.is_deleted = ?", false)

	if q.Tag != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE post_tags.post_id = posts.id AND tags.name = ?)",
			q.Tag,
		)
	}

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?)", like, like)
	}

	if err := query.Order("posts.created_at DESC, posts.id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// SoftDelete hides the post. Comments, likes and reports stay untouched.
func (r *postRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete removes the post row and everything hanging off it.
func (r *postRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post entity.Post
		if err := tx.Select("id").First(&post, "id = ?", id).Error; err != nil {
			return err
		}

		commentIDs := tx.Model(&entity.Comment{}).Select("id").Where("post_id = ?", id)

		if err := tx.Where("post_id = ? OR comment_id IN (?)", id, commentIDs).Delete(&entity.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Post{}, "id = ?", id).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *postRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) FindActiveComments(ctx context.Context, postID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *postRepository) FindActiveCommentByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *postRepository) SoftDeleteComment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
