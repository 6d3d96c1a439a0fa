package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"teamnexus.com/collegeportal/internal/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	// FindUpcoming returns events starting at or after now, soonest first.
	FindUpcoming(ctx context.Context, now time.Time) ([]entity.Event, error)
	// FindPast returns events that started before now, most recent first.
	FindPast(ctx context.Context, now time.Time) ([]entity.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AddRSVP registers the user; created is false when they already were.
	AddRSVP(ctx context.Context, eventID, userID uuid.UUID) (created bool, err error)
	HasRSVP(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	CountRSVPs(ctx context.Context, eventID uuid.UUID) (int64, error)
	ListRSVPedEvents(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Preload("Poster").First(event, "id = ?", event.ID).Error
	})
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Model(event).
		Select("title", "description", "start_time", "end_time", "location", "registration_link", "category", "file_url").
		Updates(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).Preload("Poster").First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindUpcoming(ctx context.Context, now time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Poster").
		Where("start_time >= ?", now).
		Order("start_time ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindPast(ctx context.Context, now time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Poster").
		Where("start_time < ?", now).
		Order("start_time DESC, id DESC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&entity.EventRSVP{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *eventRepository) AddRSVP(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	rsvp := entity.EventRSVP{EventID: eventID, UserID: userID}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rsvp)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *eventRepository) HasRSVP(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EventRSVP{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepository) CountRSVPs(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EventRSVP{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) ListRSVPedEvents(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Poster").
		Where("id IN (?)", r.db.Model(&entity.EventRSVP{}).Select("event_id").Where("user_id = ?", userID)).
		Order("start_time ASC, id ASC").
		Find(&events).Error
	return events, err
}
