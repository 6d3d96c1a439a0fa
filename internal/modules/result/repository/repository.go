package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"teamnexus.com/collegeportal/internal/entity"
)

type ResultRepository interface {
	// Upsert stores the result, replacing the student's earlier one for the same semester.
	Upsert(ctx context.Context, result *entity.Result) error
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Result, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Upsert(ctx context.Context, result *entity.Result) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "semester"}},
			DoUpdates: clause.AssignmentColumns([]string{"sgpa", "cgpa", "details", "posted_by", "updated_at"}),
		}).Create(result).Error
		if err != nil {
			return err
		}

		var stored entity.Result
		if err := tx.Preload("Poster").
			Where("student_id = ? AND semester = ?", result.StudentID, result.Semester).
			First(&stored).Error; err != nil {
			return err
		}
		*result = stored
		return nil
	})
}

func (r *resultRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.WithContext(ctx).
		Preload("Poster").
		Where("student_id = ?", studentID).
		Order("semester ASC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Result{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
