package service

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/auth-api/internal/domain/entity"
	"github.com/yourusername/auth-api/internal/domain/repository"
	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

const (
	maxFeedbackComments = 5000
	maxFeedbackEmail    = 255

	defaultFeedbackPageSize = 50
	maxFeedbackPageSize     = 200
)

// FeedbackService records and manages feedback submissions.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo repository.FeedbackRepository) (*FeedbackService, error) {
	if feedbackRepo == nil {
		return nil, fmt.Errorf("feedbackRepo must not be nil")
	}
	return &FeedbackService{feedbackRepo: feedbackRepo}, nil
}

// SubmitInput carries a feedback submission. UserID is nil for anonymous
// visitors.
type SubmitInput struct {
	UserID    *uint
	Email     string
	Comments  string
	UserAgent string
	IPAddress string
}

// Submit validates and stores a feedback entry with status "new".
func (s *FeedbackService) Submit(in SubmitInput) (*entity.Feedback, error) {
	comments := strings.TrimSpace(in.Comments)
	if comments == "" {
		return nil, fmt.Errorf("%w: comments are required", apperrors.ErrValidation)
	}
	// Limits are in characters, not bytes, so multibyte text is not
	// penalized.
	if utf8.RuneCountInString(comments) > maxFeedbackComments {
		return nil, fmt.Errorf("%w: comments must be at most %d characters", apperrors.ErrValidation, maxFeedbackComments)
	}
	email := strings.TrimSpace(in.Email)
	if utf8.RuneCountInString(email) > maxFeedbackEmail {
		return nil, fmt.Errorf("%w: email must be at most %d characters", apperrors.ErrValidation, maxFeedbackEmail)
	}

	feedback := &entity.Feedback{
		UserID:    in.UserID,
		Email:     email,
		Comments:  comments,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		Status:    entity.FeedbackStatusNew,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}

	log.Printf("[FeedbackService] Stored feedback %d", feedback.ID)
	return feedback, nil
}

// List returns a page of feedback entries, newest first.
func (s *FeedbackService) List(limit, offset int) ([]entity.Feedback, int64, error) {
	if limit <= 0 {
		limit = defaultFeedbackPageSize
	}
	if limit > maxFeedbackPageSize {
		limit = maxFeedbackPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.feedbackRepo.List(limit, offset)
}

// SetStatus moves a feedback entry to a known status.
func (s *FeedbackService) SetStatus(id uint, status string) error {
	switch status {
	case entity.FeedbackStatusNew, entity.FeedbackStatusReviewed, entity.FeedbackStatusResolved:
	default:
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	return s.feedbackRepo.UpdateStatus(id, status)
}
