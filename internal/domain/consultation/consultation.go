package consultation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/shared"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	StatusRequested ConsultationStatus = "requested"
	StatusConfirmed ConsultationStatus = "confirmed"
	StatusCompleted ConsultationStatus = "completed"
	StatusCancelled ConsultationStatus = "cancelled"
)

// IsValid checks if the status is a valid ConsultationStatus
func (s ConsultationStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s ConsultationStatus) CanTransitionTo(target ConsultationStatus) bool {
	switch s {
	case StatusRequested:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false // Terminal states
	}
	return false
}

const (
	minDuration = 10 * time.Minute
	maxDuration = 4 * time.Hour
)

// Consultation represents a scheduled session between a customer and a seller
type Consultation struct {
	shared.BaseEntity
	CustomerID  uuid.UUID
	SellerID    uuid.UUID
	ScheduledAt time.Time
	Duration    time.Duration
	Topic       string
	Notes       string
	Status      ConsultationStatus
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// NewConsultation creates a new consultation request
func NewConsultation(customerID, sellerID uuid.UUID, scheduledAt time.Time, duration time.Duration, topic string) (*Consultation, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if customerID == sellerID {
		return nil, shared.NewDomainError("INVALID_PARTICIPANTS", "Customer and seller must be different users")
	}
	if !scheduledAt.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Scheduled time must be in the future")
	}
	if duration < minDuration || duration > maxDuration {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration must be between 10 minutes and 4 hours")
	}
	if len(topic) > 200 {
		return nil, shared.NewDomainError("INVALID_TOPIC", "Topic cannot exceed 200 characters")
	}

	return &Consultation{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customerID,
		SellerID:    sellerID,
		ScheduledAt: scheduledAt,
		Duration:    duration,
		Topic:       topic,
		Status:      StatusRequested,
	}, nil
}

// Confirm marks the consultation as confirmed by the seller
func (c *Consultation) Confirm() error {
	if err := c.transitionTo(StatusConfirmed); err != nil {
		return err
	}
	now := time.Now()
	c.ConfirmedAt = &now
	return nil
}

// Complete marks the consultation as completed
func (c *Consultation) Complete() error {
	if err := c.transitionTo(StatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	c.CompletedAt = &now
	return nil
}

// Cancel cancels the consultation before completion
func (c *Consultation) Cancel() error {
	if err := c.transitionTo(StatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	c.CancelledAt = &now
	return nil
}

// Reschedule moves a not-yet-completed consultation to a new future time.
// A confirmed consultation drops back to requested for re-confirmation.
func (c *Consultation) Reschedule(scheduledAt time.Time) error {
	if c.Status == StatusCompleted || c.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a finished consultation")
	}
	if !scheduledAt.After(time.Now()) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Scheduled time must be in the future")
	}

	c.ScheduledAt = scheduledAt
	if c.Status == StatusConfirmed {
		c.Status = StatusRequested
		c.ConfirmedAt = nil
	}
	c.Touch()
	return nil
}

// SetNotes sets the consultation notes
func (c *Consultation) SetNotes(notes string) error {
	if len(notes) > 2000 {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 2000 characters")
	}
	c.Notes = notes
	c.Touch()
	return nil
}

// InvolvesUser reports whether the user is a participant
func (c *Consultation) InvolvesUser(userID uuid.UUID) bool {
	return c.CustomerID == userID || c.SellerID == userID
}

func (c *Consultation) transitionTo(target ConsultationStatus) error {
	if !c.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition consultation from %s to %s", c.Status, target))
	}
	c.Status = target
	c.Touch()
	return nil
}
