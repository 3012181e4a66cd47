package media

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/media"
	"github.com/optivista/backend/internal/domain/shared"
)

const defaultDownloadExpiry = 15 * time.Minute

// UploadService handles file uploads backed by object storage
type UploadService struct {
	fileRepo    media.FileRepository
	storage     ObjectStorageService
	maxFileSize int64
	logger      *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	fileRepo media.FileRepository,
	storage ObjectStorageService,
	maxFileSize int64,
	logger *zap.Logger,
) *UploadService {
	return &UploadService{
		fileRepo:    fileRepo,
		storage:     storage,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Upload validates the file, streams it to object storage and records its
// metadata. The storage write happens first; if the metadata insert fails the
// uploaded object is removed again.
func (s *UploadService) Upload(ctx context.Context, input UploadFileInput) (*FileInfo, error) {
	file, err := media.NewFileObject(input.OwnerID, input.OriginalName, input.ContentType, input.Size, s.maxFileSize)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Upload(ctx, file.StorageKey, input.Body, input.Size, input.ContentType); err != nil {
		s.logger.Error("Failed to upload file to storage",
			zap.String("storage_key", file.StorageKey),
			zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store the uploaded file")
	}

	if url := s.storage.PublicURL(file.StorageKey); url != "" {
		file.SetURL(url)
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		s.logger.Error("Failed to persist file metadata",
			zap.String("storage_key", file.StorageKey),
			zap.Error(err))
		if delErr := s.storage.DeleteObject(ctx, file.StorageKey); delErr != nil {
			s.logger.Warn("Failed to remove orphaned object after metadata failure",
				zap.String("storage_key", file.StorageKey),
				zap.Error(delErr))
		}
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to record the uploaded file")
	}

	s.logger.Info("File uploaded",
		zap.String("file_id", file.ID.String()),
		zap.String("storage_key", file.StorageKey),
		zap.Int64("size", file.Size))

	info := NewFileInfo(file)
	return &info, nil
}

// GetFile returns file metadata. Non-owners get a not found error unless they
// are admins.
func (s *UploadService) GetFile(ctx context.Context, fileID, actingUserID uuid.UUID, isAdmin bool) (*FileInfo, error) {
	file, err := s.load(ctx, fileID, actingUserID, isAdmin)
	if err != nil {
		return nil, err
	}
	info := NewFileInfo(file)
	return &info, nil
}

// GenerateDownloadURL returns a short-lived presigned link for the file
func (s *UploadService) GenerateDownloadURL(ctx context.Context, fileID, actingUserID uuid.UUID, isAdmin bool) (*DownloadURLResult, error) {
	file, err := s.load(ctx, fileID, actingUserID, isAdmin)
	if err != nil {
		return nil, err
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, file.StorageKey, defaultDownloadExpiry)
	if err != nil {
		s.logger.Error("Failed to presign download URL",
			zap.String("storage_key", file.StorageKey),
			zap.Error(err))
		return nil, shared.NewDomainError("DOWNLOAD_FAILED", "Failed to generate a download link")
	}

	return &DownloadURLResult{URL: url, ExpiresAt: expiresAt}, nil
}

// DeleteFile removes the file record and its stored object
func (s *UploadService) DeleteFile(ctx context.Context, fileID, actingUserID uuid.UUID, isAdmin bool) error {
	file, err := s.load(ctx, fileID, actingUserID, isAdmin)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		s.logger.Error("Failed to delete file record",
			zap.String("file_id", file.ID.String()),
			zap.Error(err))
		return shared.NewDomainError("DELETE_FAILED", "Failed to delete the file")
	}

	if err := s.storage.DeleteObject(ctx, file.StorageKey); err != nil {
		// The record is gone; the orphaned object is logged for cleanup.
		s.logger.Warn("Failed to remove stored object",
			zap.String("storage_key", file.StorageKey),
			zap.Error(err))
	}

	s.logger.Info("File deleted",
		zap.String("file_id", file.ID.String()),
		zap.String("storage_key", file.StorageKey))
	return nil
}

// ListOwnerFiles returns the files uploaded by a user
func (s *UploadService) ListOwnerFiles(ctx context.Context, ownerID uuid.UUID) ([]FileInfo, error) {
	files, err := s.fileRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list files", zap.String("owner_id", ownerID.String()), zap.Error(err))
		return nil, shared.NewDomainError("LIST_FAILED", "Failed to list files")
	}

	infos := make([]FileInfo, len(files))
	for i, f := range files {
		infos[i] = NewFileInfo(f)
	}
	return infos, nil
}

func (s *UploadService) load(ctx context.Context, fileID, actingUserID uuid.UUID, isAdmin bool) (*media.FileObject, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && file.OwnerID != actingUserID {
		return nil, shared.ErrNotFound
	}
	return file, nil
}
