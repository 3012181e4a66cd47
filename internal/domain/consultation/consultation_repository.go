package consultation

import (
	"context"

	"github.com/google/uuid"
)

// ConsultationRepository defines the interface for consultation persistence
type ConsultationRepository interface {
	// Create creates a new consultation
	Create(ctx context.Context, consultation *Consultation) error

	// Update updates an existing consultation
	Update(ctx context.Context, consultation *Consultation) error

	// FindByID finds a consultation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Consultation, error)

	// FindByCustomerID returns a customer's consultations with pagination
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter ConsultationFilter) ([]*Consultation, int64, error)

	// FindBySellerID returns a seller's consultations with pagination
	FindBySellerID(ctx context.Context, sellerID uuid.UUID, filter ConsultationFilter) ([]*Consultation, int64, error)
}

// ConsultationFilter contains filter options for querying consultations
type ConsultationFilter struct {
	// Filter by status
	Status *ConsultationStatus

	// Pagination
	Page     int
	PageSize int

	// Sorting
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// NewConsultationFilter creates a new ConsultationFilter with default values
func NewConsultationFilter() ConsultationFilter {
	return ConsultationFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "scheduled_at",
		SortOrder: "asc",
	}
}

// WithStatus sets the status filter
func (f ConsultationFilter) WithStatus(status ConsultationStatus) ConsultationFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f ConsultationFilter) WithPagination(page, pageSize int) ConsultationFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f ConsultationFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ConsultationFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
