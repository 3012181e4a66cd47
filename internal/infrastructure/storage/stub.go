// Package storage provides object storage implementations for file uploads.
package storage

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	mediaapp "github.com/optivista/backend/internal/application/media"
)

// Ensure StubObjectStorage implements ObjectStorageService
var _ mediaapp.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage keeps objects in memory. Use it for development and
// tests until a real S3 backend is configured.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated object links.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
	// FailUpload forces Upload to return an error (for failure-path tests)
	FailUpload bool
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the object bytes in memory
func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, body io.Reader, _ int64, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	if s.FailUpload {
		return errors.New("upload failed")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()
	return nil
}

// DeleteObject removes the object if present
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether the key was uploaded
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()
	return ok, nil
}

// GenerateDownloadURL returns a fake presigned URL
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// PublicURL returns the stable URL for an object
func (s *StubObjectStorage) PublicURL(storageKey string) string {
	if storageKey == "" {
		return ""
	}
	return s.BaseURL + "/" + storageKey
}

// Object returns the stored bytes for a key (test helper)
func (s *StubObjectStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	data, ok := s.objects[storageKey]
	s.mu.RUnlock()
	return data, ok
}
