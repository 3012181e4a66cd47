package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	consultationapp "github.com/optivista/backend/internal/application/consultation"
	"github.com/optivista/backend/internal/domain/consultation"
	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/interfaces/http/dto"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
)

// ConsultationHandler handles consultation scheduling HTTP requests
type ConsultationHandler struct {
	BaseHandler
	consultationService *consultationapp.ConsultationService
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(consultationService *consultationapp.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService}
}

// RegisterRoutes registers consultation routes
func (h *ConsultationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	consultations := rg.Group("/consultations")
	{
		consultations.POST("", h.Schedule)
		consultations.GET("", h.ListMine)
		consultations.GET("/:id", h.Get)
		consultations.POST("/:id/cancel", h.Cancel)
		consultations.POST("/:id/reschedule", h.Reschedule)
	}

	seller := rg.Group("/consultations", middleware.RequireRole(identity.RoleSeller, identity.RoleAdmin))
	{
		seller.GET("/assigned", h.ListAssigned)
		seller.POST("/:id/confirm", h.Confirm)
		seller.POST("/:id/complete", h.Complete)
	}
}

// ScheduleConsultationRequest is the request body for booking a consultation
type ScheduleConsultationRequest struct {
	SellerID        uuid.UUID `json:"seller_id" binding:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,gte=15,lte=180"`
	Topic           string    `json:"topic" binding:"omitempty,max=256"`
}

// RescheduleConsultationRequest is the request body for moving a consultation
type RescheduleConsultationRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// CompleteConsultationRequest is the request body for finishing a consultation
type CompleteConsultationRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

// ConsultationResponse is the consultation representation in responses
type ConsultationResponse struct {
	ID              uuid.UUID  `json:"id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	SellerID        uuid.UUID  `json:"seller_id"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Topic           string     `json:"topic,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toConsultationResponse(info consultationapp.ConsultationInfo) ConsultationResponse {
	return ConsultationResponse{
		ID:              info.ID,
		CustomerID:      info.CustomerID,
		SellerID:        info.SellerID,
		ScheduledAt:     info.ScheduledAt,
		DurationMinutes: int(info.Duration / time.Minute),
		Topic:           info.Topic,
		Notes:           info.Notes,
		Status:          string(info.Status),
		ConfirmedAt:     info.ConfirmedAt,
		CompletedAt:     info.CompletedAt,
		CancelledAt:     info.CancelledAt,
		CreatedAt:       info.CreatedAt,
	}
}

// Schedule books a consultation with a seller
func (h *ConsultationHandler) Schedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ScheduleConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.consultationService.Schedule(c.Request.Context(), consultationapp.ScheduleInput{
		CustomerID:  userID,
		SellerID:    req.SellerID,
		ScheduledAt: req.ScheduledAt,
		Duration:    time.Duration(req.DurationMinutes) * time.Minute,
		Topic:       req.Topic,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toConsultationResponse(*result))
}

// Get returns a single consultation visible to the acting user
func (h *ConsultationHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consultationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid consultation ID")
		return
	}

	result, err := h.consultationService.Get(c.Request.Context(), consultationID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toConsultationResponse(*result))
}

// ListMine returns the authenticated customer's consultations
func (h *ConsultationHandler) ListMine(c *gin.Context) {
	h.list(c, h.consultationService.ListForCustomer)
}

// ListAssigned returns consultations assigned to the authenticated seller
func (h *ConsultationHandler) ListAssigned(c *gin.Context) {
	h.list(c, h.consultationService.ListForSeller)
}

// Confirm accepts a requested consultation
func (h *ConsultationHandler) Confirm(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consultationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid consultation ID")
		return
	}

	result, err := h.consultationService.Confirm(c.Request.Context(), consultationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toConsultationResponse(*result))
}

// Complete finishes a consultation and records the seller's notes
func (h *ConsultationHandler) Complete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consultationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid consultation ID")
		return
	}

	var req CompleteConsultationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}

	result, err := h.consultationService.Complete(c.Request.Context(), consultationapp.CompleteInput{
		ConsultationID: consultationID,
		ActingUserID:   userID,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toConsultationResponse(*result))
}

// Cancel cancels a consultation
func (h *ConsultationHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consultationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid consultation ID")
		return
	}

	result, err := h.consultationService.Cancel(c.Request.Context(), consultationID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toConsultationResponse(*result))
}

// Reschedule moves a consultation to a new time
func (h *ConsultationHandler) Reschedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	consultationID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid consultation ID")
		return
	}

	var req RescheduleConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.consultationService.Reschedule(c.Request.Context(), consultationapp.RescheduleInput{
		ConsultationID: consultationID,
		ActingUserID:   userID,
		ScheduledAt:    req.ScheduledAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toConsultationResponse(*result))
}

type consultationListFn func(ctx context.Context, userID uuid.UUID, input consultationapp.ListInput) (*consultationapp.ConsultationListResult, error)

func (h *ConsultationHandler) list(c *gin.Context, fn consultationListFn) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.Normalize()

	input := consultationapp.ListInput{Page: req.Page, PageSize: req.PageSize}
	if status := c.Query("status"); status != "" {
		s := consultation.ConsultationStatus(status)
		input.Status = &s
	}

	result, err := fn(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	consultations := make([]ConsultationResponse, len(result.Consultations))
	for i, info := range result.Consultations {
		consultations[i] = toConsultationResponse(info)
	}
	h.SuccessWithMeta(c, consultations, result.Total, result.Page, result.PageSize)
}
