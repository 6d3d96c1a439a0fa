package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

type ReportRepository interface {
	// Create files the report and flags its targets in one transaction.
	// A missing or deleted target yields gorm.ErrRecordNotFound.
	Create(ctx context.Context, report *entity.Report) error
	FindAll(ctx context.Context) ([]entity.Report, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if report.PostID != nil {
			if err := flag(tx, &entity.Post{}, *report.PostID); err != nil {
				return err
			}
		}
		if report.CommentID != nil {
			if err := flag(tx, &entity.Comment{}, *report.CommentID); err != nil {
				return err
			}
		}
		return tx.Create(report).Error
	})
}

func flag(tx *gorm.DB, model any, id uuid.UUID) error {
	result := tx.Model(model).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_reported", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reportRepository) FindAll(ctx context.Context) ([]entity.Report, error) {
	var reports []entity.Report
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var report entity.Report
	if err := r.db.WithContext(ctx).Preload("Reporter").First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Report{}).
		Where("id = ?", id).
		Update("is_resolved", true).Error
}
