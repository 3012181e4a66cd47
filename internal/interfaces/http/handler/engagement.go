package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	engagementapp "github.com/optivista/backend/internal/application/engagement"
	"github.com/optivista/backend/internal/interfaces/http/dto"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
)

// EngagementHandler handles product feedback and AR try-on HTTP requests
type EngagementHandler struct {
	BaseHandler
	engagementService *engagementapp.EngagementService
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementService *engagementapp.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// RegisterRoutes registers feedback and AR session routes
func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("/:id/feedback", h.ListProductFeedback)
		products.POST("/:id/feedback", h.SubmitFeedback)
		products.GET("/:id/rating", h.GetRatingSummary)
		products.POST("/:id/ar-sessions", h.LogARSession)
		products.GET("/:id/ar-sessions/count", h.CountProductARSessions)
	}

	feedback := rg.Group("/feedback")
	{
		feedback.PUT("/:id", h.UpdateFeedback)
		feedback.DELETE("/:id", h.DeleteFeedback)
	}

	rg.GET("/ar-sessions", h.ListMyARSessions)
}

// FeedbackRequest is the request body for submitting or revising feedback
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// FeedbackResponse is the feedback representation in responses
type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toFeedbackResponse(info engagementapp.FeedbackInfo) FeedbackResponse {
	return FeedbackResponse{
		ID:        info.ID,
		UserID:    info.UserID,
		ProductID: info.ProductID,
		Rating:    info.Rating,
		Comment:   info.Comment,
		CreatedAt: info.CreatedAt,
		UpdatedAt: info.UpdatedAt,
	}
}

// ProductFeedbackResponse is a page of feedback with the rating summary
type ProductFeedbackResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
	Average  float64            `json:"average_rating"`
	Count    int64              `json:"rating_count"`
}

// LogARSessionRequest is the request body for recording a try-on session
type LogARSessionRequest struct {
	SnapshotURLs []string          `json:"snapshot_urls" binding:"omitempty,max=20,dive,url"`
	Metadata     map[string]string `json:"metadata" binding:"omitempty,max=32"`
}

// ARSessionResponse is the try-on session representation in responses
type ARSessionResponse struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	ProductID    uuid.UUID         `json:"product_id"`
	SnapshotURLs []string          `json:"snapshot_urls,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func toARSessionResponse(info engagementapp.ARSessionInfo) ARSessionResponse {
	return ARSessionResponse{
		ID:           info.ID,
		UserID:       info.UserID,
		ProductID:    info.ProductID,
		SnapshotURLs: info.SnapshotURLs,
		Metadata:     info.Metadata,
		CreatedAt:    info.CreatedAt,
	}
}

// SubmitFeedback records a review for a product
func (h *EngagementHandler) SubmitFeedback(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.engagementService.SubmitFeedback(c.Request.Context(), engagementapp.SubmitFeedbackInput{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toFeedbackResponse(*result))
}

// UpdateFeedback revises the author's own review
func (h *EngagementHandler) UpdateFeedback(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid feedback ID")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.engagementService.UpdateFeedback(c.Request.Context(), engagementapp.UpdateFeedbackInput{
		FeedbackID: feedbackID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toFeedbackResponse(*result))
}

// DeleteFeedback removes a review. Authors delete their own; admins any.
func (h *EngagementHandler) DeleteFeedback(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid feedback ID")
		return
	}

	if err := h.engagementService.DeleteFeedback(c.Request.Context(), feedbackID, userID, middleware.IsAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListProductFeedback returns a page of reviews with the rating summary
func (h *EngagementHandler) ListProductFeedback(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	req, ok := h.bindPage(c)
	if !ok {
		return
	}

	result, err := h.engagementService.ListProductFeedback(c.Request.Context(), productID, engagementapp.PageInput{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	feedback := make([]FeedbackResponse, len(result.Feedback))
	for i, info := range result.Feedback {
		feedback[i] = toFeedbackResponse(info)
	}
	h.SuccessWithMeta(c, ProductFeedbackResponse{
		Feedback: feedback,
		Average:  result.Summary.Average,
		Count:    result.Summary.Count,
	}, result.Total, result.Page, result.PageSize)
}

// GetRatingSummary returns the aggregate rating for a product
func (h *EngagementHandler) GetRatingSummary(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	summary, err := h.engagementService.GetRatingSummary(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// LogARSession records a virtual try-on session for a product
func (h *EngagementHandler) LogARSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req LogARSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}

	result, err := h.engagementService.LogARSession(c.Request.Context(), engagementapp.LogARSessionInput{
		UserID:       userID,
		ProductID:    productID,
		SnapshotURLs: req.SnapshotURLs,
		Metadata:     req.Metadata,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toARSessionResponse(*result))
}

// ListMyARSessions returns the authenticated user's try-on history
func (h *EngagementHandler) ListMyARSessions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req, ok := h.bindPage(c)
	if !ok {
		return
	}

	result, err := h.engagementService.ListUserARSessions(c.Request.Context(), userID, engagementapp.PageInput{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	sessions := make([]ARSessionResponse, len(result.Sessions))
	for i, info := range result.Sessions {
		sessions[i] = toARSessionResponse(info)
	}
	h.SuccessWithMeta(c, sessions, result.Total, result.Page, result.PageSize)
}

// CountProductARSessions returns how many try-on sessions a product has
func (h *EngagementHandler) CountProductARSessions(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	count, err := h.engagementService.CountProductARSessions(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"product_id": productID, "count": count})
}

func (h *EngagementHandler) bindPage(c *gin.Context) (dto.ListRequest, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return dto.ListRequest{}, false
	}
	req.Normalize()
	return req, true
}
