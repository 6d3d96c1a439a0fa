package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	// FindAll lists every submission, newest first.
	FindAll(ctx context.Context) ([]entity.Feedback, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(feedback).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(feedback, "id = ?", feedback.ID).Error
	})
}

func (r *feedbackRepository) FindAll(ctx context.Context) ([]entity.Feedback, error) {
	var items []entity.Feedback
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("submitted_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *feedbackRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Feedback, error) {
	var items []entity.Feedback
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Feedback{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
