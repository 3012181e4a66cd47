package engagement

import (
	"context"

	"github.com/google/uuid"
)

// PageFilter contains pagination options shared by engagement queries
type PageFilter struct {
	Page     int
	PageSize int
}

// NewPageFilter creates a PageFilter with default values
func NewPageFilter() PageFilter {
	return PageFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// FeedbackRepository defines the interface for feedback persistence
type FeedbackRepository interface {
	// Create creates a new feedback
	Create(ctx context.Context, feedback *Feedback) error

	// Update updates an existing feedback
	Update(ctx context.Context, feedback *Feedback) error

	// Delete deletes a feedback by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a feedback by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error)

	// FindByUserAndProduct finds the user's feedback for a product
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Feedback, error)

	// FindByProductID returns feedback for a product with pagination
	FindByProductID(ctx context.Context, productID uuid.UUID, filter PageFilter) ([]*Feedback, int64, error)

	// ExistsByUserAndProduct checks if the user already reviewed the product
	ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// RatingSummary returns the average rating and count for a product
	RatingSummary(ctx context.Context, productID uuid.UUID) (*RatingSummary, error)
}

// ARSessionRepository defines the interface for try-on session persistence
type ARSessionRepository interface {
	// Create appends a new session record
	Create(ctx context.Context, session *ARSession) error

	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ARSession, error)

	// FindByUserID returns a user's sessions with pagination
	FindByUserID(ctx context.Context, userID uuid.UUID, filter PageFilter) ([]*ARSession, int64, error)

	// FindByProductID returns sessions for a product with pagination
	FindByProductID(ctx context.Context, productID uuid.UUID, filter PageFilter) ([]*ARSession, int64, error)

	// CountByProductID returns the number of sessions logged for a product
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
}
