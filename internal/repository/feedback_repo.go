package repository

import (
	"context"

	"github.com/campushub/campus-events/internal/models"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	Exists(ctx context.Context, eventID, attendeeID uint) (bool, error)
	CountAndAverage(ctx context.Context, eventID uint) (int64, float64, error)
	RatingCounts(ctx context.Context, eventID uint) (map[int]int64, error)
	RecentComments(ctx context.Context, eventID uint, limit int) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepository) Exists(ctx context.Context, eventID, attendeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("event_id = ? AND attendee_id = ?", eventID, attendeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *feedbackRepository) CountAndAverage(ctx context.Context, eventID uint) (int64, float64, error) {
	var result struct {
		Count   int64
		Average float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("event_id = ?", eventID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Count, result.Average, nil
}

func (r *feedbackRepository) RatingCounts(ctx context.Context, eventID uint) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("rating, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

func (r *feedbackRepository) RecentComments(ctx context.Context, eventID uint, limit int) ([]models.Feedback, error) {
	var fbs []models.Feedback
	err := r.db.WithContext(ctx).
		Preload("Attendee").
		Where("event_id = ? AND comment <> ''", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&fbs).Error
	if err != nil {
		return nil, err
	}
	return fbs, nil
}
