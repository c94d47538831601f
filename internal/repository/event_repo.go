package repository

import (
	"context"
	"time"

	"github.com/campushub/campus-events/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	FindApproved(ctx context.Context, titleQuery string) ([]models.Event, error)
	FindByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error)
	FindPending(ctx context.Context) ([]models.Event, error)
	CountLocationConflicts(ctx context.Context, location string, startAt, endAt time.Time, excludeID uint) (int64, error)
	FindEndedApproved(ctx context.Context, now time.Time) ([]models.Event, error)
	FindFeedbackDue(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	Save(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Organizer").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given
// transaction. Serializes concurrent registrations against the same event.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindApproved(ctx context.Context, titleQuery string) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx).Where("status = ?", models.EventApproved)
	if titleQuery != "" {
		q = q.Where("title ILIKE ?", "%"+titleQuery+"%")
	}
	if err := q.Order("start_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("start_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindPending(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Preload("Organizer").
		Where("status = ?", models.EventPending).
		Order("start_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountLocationConflicts counts approved events at the given location whose
// [start, end) window overlaps the one passed in, excluding the event being
// approved itself.
func (r *eventRepository) CountLocationConflicts(ctx context.Context, location string, startAt, endAt time.Time, excludeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("status = ? AND location = ? AND start_at < ? AND end_at > ? AND id <> ?",
			models.EventApproved, location, endAt, startAt, excludeID).
		Count(&count).Error
	return count, err
}

// FindEndedApproved returns approved events whose end time has passed.
// The status filter makes the sweeper's completion phase idempotent.
func (r *eventRepository) FindEndedApproved(ctx context.Context, now time.Time) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_at < ?", models.EventApproved, now).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindFeedbackDue returns completed events whose end time passed before the
// cutoff (end time + grace period already elapsed).
func (r *eventRepository) FindFeedbackDue(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_at <= ?", models.EventCompleted, cutoff).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Save(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}
