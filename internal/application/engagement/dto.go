package engagement

import (
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/engagement"
)

// SubmitFeedbackInput contains the input for submitting product feedback
type SubmitFeedbackInput struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	Rating    int
	Comment   string
}

// UpdateFeedbackInput contains the input for revising existing feedback
type UpdateFeedbackInput struct {
	FeedbackID uuid.UUID
	UserID     uuid.UUID
	Rating     int
	Comment    string
}

// FeedbackInfo is the client representation of product feedback
type FeedbackInfo struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFeedbackInfo maps domain feedback to its client representation
func NewFeedbackInfo(f *engagement.Feedback) FeedbackInfo {
	return FeedbackInfo{
		ID:        f.ID,
		UserID:    f.UserID,
		ProductID: f.ProductID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FeedbackListResult contains a page of feedback plus the product's
// rating summary
type FeedbackListResult struct {
	Feedback []FeedbackInfo
	Summary  engagement.RatingSummary
	Total    int64
	Page     int
	PageSize int
}

// LogARSessionInput contains the input for recording a try-on session
type LogARSessionInput struct {
	UserID       uuid.UUID
	ProductID    uuid.UUID
	SnapshotURLs []string
	Metadata     map[string]string
}

// ARSessionInfo is the client representation of a try-on session
type ARSessionInfo struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ProductID    uuid.UUID
	SnapshotURLs []string
	Metadata     map[string]string
	CreatedAt    time.Time
}

// NewARSessionInfo maps a domain session to its client representation
func NewARSessionInfo(s *engagement.ARSession) ARSessionInfo {
	return ARSessionInfo{
		ID:           s.ID,
		UserID:       s.UserID,
		ProductID:    s.ProductID,
		SnapshotURLs: s.SnapshotURLs,
		Metadata:     s.Metadata,
		CreatedAt:    s.CreatedAt,
	}
}

// ARSessionListResult contains a page of try-on sessions
type ARSessionListResult struct {
	Sessions []ARSessionInfo
	Total    int64
	Page     int
	PageSize int
}

// PageInput contains pagination parameters
type PageInput struct {
	Page     int
	PageSize int
}
