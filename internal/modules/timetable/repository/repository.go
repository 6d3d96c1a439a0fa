package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

type TimetableRepository interface {
	Create(ctx context.Context, entry *entity.TimetableEntry) error
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.TimetableEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type timetableRepository struct {
	db *gorm.DB
}

func NewTimetableRepository(db *gorm.DB) TimetableRepository {
	return &timetableRepository{db: db}
}

func (r *timetableRepository) Create(ctx context.Context, entry *entity.TimetableEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByStudent orders by start time only; weekday order is applied by the caller.
func (r *timetableRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.TimetableEntry, error) {
	var entries []entity.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("start_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.TimetableEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
