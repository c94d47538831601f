package repository

import (
	"context"
	"time"

	"github.com/campushub/campus-events/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	FindByToken(ctx context.Context, token string) (*models.Registration, error)
	FindByEventAndAttendee(ctx context.Context, tx *gorm.DB, eventID, attendeeID uint) (*models.Registration, error)
	CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	FindByEvent(ctx context.Context, eventID uint) ([]models.Registration, error)
	FindByAttendee(ctx context.Context, attendeeID uint) ([]models.Registration, error)
	FindFeedbackPending(ctx context.Context, eventID uint) ([]models.Registration, error)
	MarkCheckedIn(ctx context.Context, token string, at time.Time) (int64, error)
	MarkFeedbackRequested(ctx context.Context, regID uint, at time.Time) error
	GetDB() *gorm.DB
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) FindByToken(ctx context.Context, token string) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).
		Preload("Attendee").
		Preload("Event").
		Where("ticket_token = ?", token).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEventAndAttendee(ctx context.Context, tx *gorm.DB, eventID, attendeeID uint) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("event_id = ? AND attendee_id = ?", eventID, attendeeID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *registrationRepository) FindByEvent(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Preload("Attendee").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) FindByAttendee(ctx context.Context, attendeeID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("attendee_id = ?", attendeeID).
		Order("id DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// FindFeedbackPending returns an event's registrations that have not yet
// been sent a feedback request.
func (r *registrationRepository) FindFeedbackPending(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.WithContext(ctx).
		Preload("Attendee").
		Where("event_id = ? AND feedback_request_sent_at IS NULL", eventID).
		Order("id ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

// MarkCheckedIn flips the checked-in flag with a single conditional update.
// Returns the number of rows affected: 0 means the token was unknown or the
// flag was already set, so concurrent scans of the same token cannot both
// succeed.
func (r *registrationRepository) MarkCheckedIn(ctx context.Context, token string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("ticket_token = ? AND checked_in = ?", token, false).
		Updates(map[string]any{"checked_in": true, "checked_in_at": at})
	return result.RowsAffected, result.Error
}

func (r *registrationRepository) MarkFeedbackRequested(ctx context.Context, regID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", regID).
		Update("feedback_request_sent_at", at).Error
}
