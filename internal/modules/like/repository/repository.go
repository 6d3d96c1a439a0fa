package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

type LikeRepository interface {
	// Toggle flips the user's like on the post and returns the new state and count.
	Toggle(ctx context.Context, userID, postID uuid.UUID) (bool, int64, error)
	Count(ctx context.Context, postID uuid.UUID) (int64, error)
	IsLiked(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CountByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, userID, postID uuid.UUID) (bool, int64, error) {
	var (
		liked bool
		count int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&entity.Like{})
		if removed.Error != nil {
			return removed.Error
		}

		if removed.RowsAffected == 0 {
			// savepoint so a duplicate insert does not poison the outer tx
			err := tx.Transaction(func(inner *gorm.DB) error {
				return inner.Create(&entity.Like{UserID: userID, PostID: postID}).Error
			})
			// a concurrent toggle inserted first: already liked
			if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			liked = true
		}

		return tx.Model(&entity.Like{}).Where("post_id = ?", postID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

func (r *likeRepository) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountByPostIDs(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	type Result struct {
		PostID uuid.UUID
		Count  int64
	}
	var results []Result

	err := r.db.WithContext(ctx).
		Model(&entity.Like{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.PostID] = res.Count
	}
	return counts, nil
}
