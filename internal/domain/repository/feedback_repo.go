package repository

import (
	"github.com/yourusername/auth-api/internal/domain/entity"
)

// FeedbackRepository defines methods for working with feedback submissions
type FeedbackRepository interface {
	// Create persists a new feedback entry.
	Create(feedback *entity.Feedback) error

	// List returns a page of feedback entries, newest first, along with the
	// total number of entries.
	List(limit, offset int) ([]entity.Feedback, int64, error)

	// UpdateStatus changes the status of a feedback entry.
	UpdateStatus(id uint, status string) error
}
