package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindAll(ctx context.Context, semester int, subject string) ([]entity.Note, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(note).Error; err != nil {
		return err
	}
	return db.Preload("Uploader").First(note, "id = ?", note.ID).Error
}

func (r *noteRepository) FindAll(ctx context.Context, semester int, subject string) ([]entity.Note, error) {
	var notes []entity.Note
	query := r.db.WithContext(ctx).Preload("Uploader")

	if semester > 0 {
		query = query.Where("semester = ?", semester)
	}
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	err := query.Order("uploaded_at DESC, id DESC").Find(&notes).Error
	return notes, err
}

func (r *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var note entity.Note
	if err := r.db.WithContext(ctx).Preload("Uploader").First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Note{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
