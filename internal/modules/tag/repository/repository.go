package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	FindByName(ctx context.Context, name string) (*entity.Tag, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)
	FindAll(ctx context.Context, filter string) ([]entity.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindAll(ctx context.Context, filter string) ([]entity.Tag, error) {
	var tags []entity.Tag
	query := r.db.WithContext(ctx).Order("name ASC")

	if filter != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter)+"%")
	}

	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes the tag and its post/announcement links.
func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag := entity.Tag{ID: id}
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM announcement_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// FindOrCreateByNames resolves tag names inside tx, creating missing ones.
// Blank and repeated names are skipped.
func FindOrCreateByNames(tx *gorm.DB, names []string) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var tag entity.Tag
		if err := tx.Where(entity.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
