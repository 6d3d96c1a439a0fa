package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	tagRepo "teamnexus.com/collegeportal/internal/modules/tag/repository"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *entity.Announcement, tagNames []string) error
	Update(ctx context.Context, announcement *entity.Announcement, tagNames []string) error
	FindAll(ctx context.Context, category string) ([]entity.Announcement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *entity.Announcement, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := tagRepo.FindOrCreateByNames(tx, tagNames)
		if err != nil {
			return err
		}
		announcement.Tags = tags

		if err := tx.Create(announcement).Error; err != nil {
			return err
		}
		return tx.Preload("Poster").Preload("Tags").First(announcement, "id = ?", announcement.ID).Error
	})
}

// Update saves the editable columns and replaces the tag set.
func (r *announcementRepository) Update(ctx context.Context, announcement *entity.Announcement, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := tagRepo.FindOrCreateByNames(tx, tagNames)
		if err != nil {
			return err
		}

		if err := tx.Model(announcement).
			Select("title", "content", "category", "is_pinned", "file_url").
			Updates(announcement).Error; err != nil {
			return err
		}

		if err := tx.Model(announcement).Association("Tags").Replace(tags); err != nil {
			return err
		}
		announcement.Tags = tags
		return nil
	})
}

func (r *announcementRepository) FindAll(ctx context.Context, category string) ([]entity.Announcement, error) {
	var announcements []entity.Announcement
	query := r.db.WithContext(ctx).Preload("Poster").Preload("Tags")

	if category != "" {
		query = query.Where("category = ?", category)
	}

	err := query.Order("is_pinned DESC, posted_at DESC, id DESC").Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Announcement, error) {
	var announcement entity.Announcement
	if err := r.db.WithContext(ctx).
		Preload("Poster").
		Preload("Tags").
		First(&announcement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM announcement_tags WHERE announcement_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Announcement{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
