package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

// FeedbackRepo implements repository.FeedbackRepository backed by PostgreSQL.
type FeedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepo creates a new feedback repository
func NewFeedbackRepo(db *gorm.DB) repository.FeedbackRepository {
	return &FeedbackRepo{db: db}
}

// Create persists a new feedback entry.
func (r *FeedbackRepo) Create(feedback *entity.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// List returns a page of feedback entries, newest first, with the total count.
func (r *FeedbackRepo) List(limit, offset int) ([]entity.Feedback, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Feedback{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	var entries []entity.Feedback
	err := r.db.Order("created_at desc").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	return entries, total, nil
}

// UpdateStatus changes the status of a feedback entry.
func (r *FeedbackRepo) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&entity.Feedback{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update feedback %d status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: feedback with ID %d", apperrors.ErrNotFound, id)
	}
	return nil
}
