package engagement

import (
	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/shared"
)

// Feedback represents a product review left by a user.
// A user may leave at most one feedback per product.
type Feedback struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProductID uuid.UUID
	Rating    int // 1..5
	Comment   string
}

// NewFeedback creates a new feedback entry
func NewFeedback(userID, productID uuid.UUID, rating int, comment string) (*Feedback, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if len(comment) > 2000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}

	return &Feedback{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Rating:     rating,
		Comment:    comment,
	}, nil
}

// Update replaces the rating and comment
func (f *Feedback) Update(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if len(comment) > 2000 {
		return shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}

	f.Rating = rating
	f.Comment = comment
	f.Touch()
	return nil
}

// RatingSummary aggregates feedback for a product
type RatingSummary struct {
	ProductID uuid.UUID `json:"product_id"`
	Average   float64   `json:"average"`
	Count     int64     `json:"count"`
}
