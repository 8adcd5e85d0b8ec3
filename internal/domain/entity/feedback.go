package entity

import (
	"time"
)

// Feedback statuses.
const (
	FeedbackStatusNew      = "new"
	FeedbackStatusReviewed = "reviewed"
	FeedbackStatusResolved = "resolved"
)

// Feedback is a message submitted through the feedback form. UserID is nil
// for anonymous submissions.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	Email     string    `json:"email" gorm:"size:255"`
	Comments  string    `json:"comments" gorm:"type:text;not null"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	Status    string    `json:"status" gorm:"size:20;not null;default:new"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Feedback) TableName() string {
	return "user_feedback"
}
