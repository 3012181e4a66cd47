package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/shared"
)

// BaseModel holds the columns shared by all persistence models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomainBase converts the shared columns to a domain BaseEntity
func (m *BaseModel) ToDomainBase() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBase populates the shared columns from a domain BaseEntity
func (m *BaseModel) FromDomainBase(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}
