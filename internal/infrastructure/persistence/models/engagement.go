package models

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/engagement"
)

// FeedbackModel is the persistence model for the Feedback entity.
type FeedbackModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_feedback_user_product"`
	ProductID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_feedback_user_product;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FeedbackModel) TableName() string {
	return "feedback"
}

// ToDomain converts the persistence model to a domain Feedback entity.
func (m *FeedbackModel) ToDomain() *engagement.Feedback {
	return &engagement.Feedback{
		BaseEntity: m.ToDomainBase(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
}

// FromDomain populates the persistence model from a domain Feedback entity.
func (m *FeedbackModel) FromDomain(f *engagement.Feedback) {
	m.FromDomainBase(f.BaseEntity)
	m.UserID = f.UserID
	m.ProductID = f.ProductID
	m.Rating = f.Rating
	m.Comment = f.Comment
}

// FeedbackModelFromDomain creates a new persistence model from a domain Feedback entity.
func FeedbackModelFromDomain(f *engagement.Feedback) *FeedbackModel {
	m := &FeedbackModel{}
	m.FromDomain(f)
	return m
}

// ARSessionModel is the persistence model for the ARSession entity.
// SnapshotURLs and Metadata are stored as JSON text.
type ARSessionModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	ProductID uuid.UUID `gorm:"type:char(36);not null;index"`
	Snapshots string    `gorm:"type:text"`
	Metadata  string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ARSessionModel) TableName() string {
	return "ar_sessions"
}

// ToDomain converts the persistence model to a domain ARSession entity.
func (m *ARSessionModel) ToDomain() (*engagement.ARSession, error) {
	snapshots := make([]string, 0)
	if m.Snapshots != "" {
		if err := json.Unmarshal([]byte(m.Snapshots), &snapshots); err != nil {
			return nil, err
		}
	}

	metadata := make(map[string]string)
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, err
		}
	}

	return &engagement.ARSession{
		BaseEntity:   m.ToDomainBase(),
		UserID:       m.UserID,
		ProductID:    m.ProductID,
		SnapshotURLs: snapshots,
		Metadata:     metadata,
	}, nil
}

// ARSessionModelFromDomain creates a new persistence model from a domain ARSession entity.
func ARSessionModelFromDomain(s *engagement.ARSession) (*ARSessionModel, error) {
	snapshots, err := json.Marshal(s.SnapshotURLs)
	if err != nil {
		return nil, err
	}
	metadata, err := json.Marshal(s.Metadata)
	if err != nil {
		return nil, err
	}

	m := &ARSessionModel{
		UserID:    s.UserID,
		ProductID: s.ProductID,
		Snapshots: string(snapshots),
		Metadata:  string(metadata),
	}
	m.FromDomainBase(s.BaseEntity)
	return m, nil
}
