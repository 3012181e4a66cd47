package models

import (
	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/media"
)

// FileModel is the persistence model for the FileObject entity.
type FileModel struct {
	BaseModel
	OwnerID      uuid.UUID `gorm:"type:char(36);not null;index"`
	StorageKey   string    `gorm:"type:varchar(300);not null;uniqueIndex"`
	OriginalName string    `gorm:"type:varchar(300);not null"`
	ContentType  string    `gorm:"type:varchar(100)"`
	Size         int64     `gorm:"not null"`
	URL          string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (FileModel) TableName() string {
	return "files"
}

// ToDomain converts the persistence model to a domain FileObject entity.
func (m *FileModel) ToDomain() *media.FileObject {
	return &media.FileObject{
		BaseEntity:   m.ToDomainBase(),
		OwnerID:      m.OwnerID,
		StorageKey:   m.StorageKey,
		OriginalName: m.OriginalName,
		ContentType:  m.ContentType,
		Size:         m.Size,
		URL:          m.URL,
	}
}

// FromDomain populates the persistence model from a domain FileObject entity.
func (m *FileModel) FromDomain(f *media.FileObject) {
	m.FromDomainBase(f.BaseEntity)
	m.OwnerID = f.OwnerID
	m.StorageKey = f.StorageKey
	m.OriginalName = f.OriginalName
	m.ContentType = f.ContentType
	m.Size = f.Size
	m.URL = f.URL
}

// FileModelFromDomain creates a new persistence model from a domain FileObject entity.
func FileModelFromDomain(f *media.FileObject) *FileModel {
	m := &FileModel{}
	m.FromDomain(f)
	return m
}
