package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/consultation"
)

// ConsultationModel is the persistence model for the Consultation aggregate root.
type ConsultationModel struct {
	BaseModel
	CustomerID  uuid.UUID                       `gorm:"type:char(36);not null;index"`
	SellerID    uuid.UUID                       `gorm:"type:char(36);not null;index"`
	ScheduledAt time.Time                       `gorm:"not null;index"`
	DurationMin int                             `gorm:"not null"`
	Topic       string                          `gorm:"type:varchar(200)"`
	Notes       string                          `gorm:"type:text"`
	Status      consultation.ConsultationStatus `gorm:"type:varchar(20);not null;default:'requested';index"`
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (ConsultationModel) TableName() string {
	return "consultations"
}

// ToDomain converts the persistence model to a domain Consultation entity.
func (m *ConsultationModel) ToDomain() *consultation.Consultation {
	return &consultation.Consultation{
		BaseEntity:  m.ToDomainBase(),
		CustomerID:  m.CustomerID,
		SellerID:    m.SellerID,
		ScheduledAt: m.ScheduledAt,
		Duration:    time.Duration(m.DurationMin) * time.Minute,
		Topic:       m.Topic,
		Notes:       m.Notes,
		Status:      m.Status,
		ConfirmedAt: m.ConfirmedAt,
		CompletedAt: m.CompletedAt,
		CancelledAt: m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Consultation entity.
func (m *ConsultationModel) FromDomain(c *consultation.Consultation) {
	m.FromDomainBase(c.BaseEntity)
	m.CustomerID = c.CustomerID
	m.SellerID = c.SellerID
	m.ScheduledAt = c.ScheduledAt
	m.DurationMin = int(c.Duration / time.Minute)
	m.Topic = c.Topic
	m.Notes = c.Notes
	m.Status = c.Status
	m.ConfirmedAt = c.ConfirmedAt
	m.CompletedAt = c.CompletedAt
	m.CancelledAt = c.CancelledAt
}

// ConsultationModelFromDomain creates a new persistence model from a domain Consultation entity.
func ConsultationModelFromDomain(c *consultation.Consultation) *ConsultationModel {
	m := &ConsultationModel{}
	m.FromDomain(c)
	return m
}
