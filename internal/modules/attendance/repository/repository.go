package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"teamnexus.com/collegeportal/internal/entity"
)

type AttendanceRepository interface {
	// Mark records the status for a student on a day, replacing an earlier mark.
	Mark(ctx context.Context, record *entity.Attendance) error
	// FindByStudent lists records newest day first. Zero bounds are open.
	FindByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]entity.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Mark(ctx context.Context, record *entity.Attendance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "marked_at"}),
		}).Create(record).Error
		if err != nil {
			return err
		}

		// on conflict the surviving row keeps its original id
		var stored entity.Attendance
		if err := tx.Preload("Marker").
			Where("student_id = ? AND date = ?", record.StudentID, record.Date).
			First(&stored).Error; err != nil {
			return err
		}
		*record = stored
		return nil
	})
}

func (r *attendanceRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]entity.Attendance, error) {
	var records []entity.Attendance
	query := r.db.WithContext(ctx).Preload("Marker").Where("student_id = ?", studentID)

	if !from.IsZero() {
		query = query.Where("date >= ?", datatypes.Date(from))
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", datatypes.Date(to))
	}

	err := query.Order("date DESC").Find(&records).Error
	return records, err
}
