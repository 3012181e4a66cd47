package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mediaapp "github.com/optivista/backend/internal/application/media"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
)

// MediaHandler handles file upload HTTP requests
type MediaHandler struct {
	BaseHandler
	uploadService *mediaapp.UploadService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(uploadService *mediaapp.UploadService) *MediaHandler {
	return &MediaHandler{uploadService: uploadService}
}

// RegisterRoutes registers file routes
func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.POST("", h.Upload)
		files.GET("", h.ListMyFiles)
		files.GET("/:id", h.GetFile)
		files.GET("/:id/download-url", h.GetDownloadURL)
		files.DELETE("/:id", h.DeleteFile)
	}
}

// FileResponse is the file representation in responses
type FileResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DownloadURLResponse carries a short-lived presigned download link
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toFileResponse(info mediaapp.FileInfo) FileResponse {
	return FileResponse{
		ID:           info.ID,
		OwnerID:      info.OwnerID,
		OriginalName: info.OriginalName,
		ContentType:  info.ContentType,
		Size:         info.Size,
		URL:          info.URL,
		CreatedAt:    info.CreatedAt,
	}
}

// Upload stores a multipart file for the authenticated user
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file field")
		return
	}

	src, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer src.Close()

	result, err := h.uploadService.Upload(c.Request.Context(), mediaapp.UploadFileInput{
		OwnerID:      userID,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         src,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toFileResponse(*result))
}

// GetFile returns file metadata visible to the acting user
func (h *MediaHandler) GetFile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid file ID")
		return
	}

	result, err := h.uploadService.GetFile(c.Request.Context(), fileID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toFileResponse(*result))
}

// GetDownloadURL returns a short-lived presigned URL for a file
func (h *MediaHandler) GetDownloadURL(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid file ID")
		return
	}

	result, err := h.uploadService.GenerateDownloadURL(c.Request.Context(), fileID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{URL: result.URL, ExpiresAt: result.ExpiresAt})
}

// DeleteFile removes a file and its stored object
func (h *MediaHandler) DeleteFile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid file ID")
		return
	}

	if err := h.uploadService.DeleteFile(c.Request.Context(), fileID, userID, middleware.IsAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMyFiles returns the authenticated user's files
func (h *MediaHandler) ListMyFiles(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.uploadService.ListOwnerFiles(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	files := make([]FileResponse, len(result))
	for i, info := range result {
		files[i] = toFileResponse(info)
	}
	h.Success(c, files)
}
