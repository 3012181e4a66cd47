package consultation

import (
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/consultation"
)

// ScheduleInput contains the input for booking a consultation
type ScheduleInput struct {
	CustomerID  uuid.UUID
	SellerID    uuid.UUID
	ScheduledAt time.Time
	Duration    time.Duration
	Topic       string
}

// RescheduleInput contains the input for moving a consultation
type RescheduleInput struct {
	ConsultationID uuid.UUID
	ActingUserID   uuid.UUID
	ScheduledAt    time.Time
}

// CompleteInput contains the input for finishing a consultation
type CompleteInput struct {
	ConsultationID uuid.UUID
	ActingUserID   uuid.UUID
	Notes          string
}

// ListInput contains filters for listing consultations
type ListInput struct {
	Status   *consultation.ConsultationStatus
	Page     int
	PageSize int
}

// ConsultationInfo is the client representation of a consultation
type ConsultationInfo struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	SellerID    uuid.UUID
	ScheduledAt time.Time
	Duration    time.Duration
	Topic       string
	Notes       string
	Status      consultation.ConsultationStatus
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
}

// NewConsultationInfo maps a domain consultation to its client representation
func NewConsultationInfo(c *consultation.Consultation) ConsultationInfo {
	return ConsultationInfo{
		ID:          c.ID,
		CustomerID:  c.CustomerID,
		SellerID:    c.SellerID,
		ScheduledAt: c.ScheduledAt,
		Duration:    c.Duration,
		Topic:       c.Topic,
		Notes:       c.Notes,
		Status:      c.Status,
		ConfirmedAt: c.ConfirmedAt,
		CompletedAt: c.CompletedAt,
		CancelledAt: c.CancelledAt,
		CreatedAt:   c.CreatedAt,
	}
}

// ConsultationListResult contains a page of consultations
type ConsultationListResult struct {
	Consultations []ConsultationInfo
	Total         int64
	Page          int
	PageSize      int
}
