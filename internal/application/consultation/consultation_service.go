package consultation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/consultation"
	"github.com/optivista/backend/internal/domain/identity"
	"github.com/optivista/backend/internal/domain/shared"
)

// ConsultationService handles consultation scheduling
type ConsultationService struct {
	consultationRepo consultation.ConsultationRepository
	userRepo         identity.UserRepository
	logger           *zap.Logger
}

// NewConsultationService creates a new consultation service
func NewConsultationService(
	consultationRepo consultation.ConsultationRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ConsultationService {
	return &ConsultationService{
		consultationRepo: consultationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Schedule books a consultation with a seller
func (s *ConsultationService) Schedule(ctx context.Context, input ScheduleInput) (*ConsultationInfo, error) {
	seller, err := s.userRepo.FindByID(ctx, input.SellerID)
	if err != nil {
		return nil, shared.NewDomainError("SELLER_NOT_FOUND", "Seller does not exist")
	}
	if seller.Role != identity.RoleSeller {
		return nil, shared.NewDomainError("NOT_A_SELLER", "Consultations can only be booked with sellers")
	}
	if seller.Status != identity.UserStatusActive {
		return nil, shared.NewDomainError("SELLER_UNAVAILABLE", "Seller is not available")
	}

	c, err := consultation.NewConsultation(input.CustomerID, input.SellerID, input.ScheduledAt, input.Duration, input.Topic)
	if err != nil {
		return nil, err
	}

	if err := s.consultationRepo.Create(ctx, c); err != nil {
		s.logger.Error("Failed to create consultation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to schedule consultation")
	}

	s.logger.Info("Consultation scheduled",
		zap.String("consultation_id", c.ID.String()),
		zap.String("customer_id", c.CustomerID.String()),
		zap.String("seller_id", c.SellerID.String()),
		zap.Time("scheduled_at", c.ScheduledAt))

	info := NewConsultationInfo(c)
	return &info, nil
}

// Get retrieves a consultation visible to the acting user
func (s *ConsultationService) Get(ctx context.Context, consultationID, actingUserID uuid.UUID, isAdmin bool) (*ConsultationInfo, error) {
	c, err := s.load(ctx, consultationID, actingUserID, isAdmin)
	if err != nil {
		return nil, err
	}

	info := NewConsultationInfo(c)
	return &info, nil
}

// Confirm lets the seller accept a requested consultation
func (s *ConsultationService) Confirm(ctx context.Context, consultationID, actingUserID uuid.UUID) (*ConsultationInfo, error) {
	c, err := s.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if c.SellerID != actingUserID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the seller can confirm a consultation")
	}

	if err := c.Confirm(); err != nil {
		return nil, err
	}

	return s.save(ctx, c)
}

// Complete lets the seller finish a confirmed consultation, optionally
// recording session notes.
func (s *ConsultationService) Complete(ctx context.Context, input CompleteInput) (*ConsultationInfo, error) {
	c, err := s.consultationRepo.FindByID(ctx, input.ConsultationID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if c.SellerID != input.ActingUserID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the seller can complete a consultation")
	}

	if err := c.Complete(); err != nil {
		return nil, err
	}
	if input.Notes != "" {
		if err := c.SetNotes(input.Notes); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, c)
}

// Cancel lets either participant cancel a not-yet-finished consultation
func (s *ConsultationService) Cancel(ctx context.Context, consultationID, actingUserID uuid.UUID, isAdmin bool) (*ConsultationInfo, error) {
	c, err := s.load(ctx, consultationID, actingUserID, isAdmin)
	if err != nil {
		return nil, err
	}

	if err := c.Cancel(); err != nil {
		return nil, err
	}

	return s.save(ctx, c)
}

// Reschedule lets the customer move a consultation to a new time.
// A confirmed consultation drops back to requested.
func (s *ConsultationService) Reschedule(ctx context.Context, input RescheduleInput) (*ConsultationInfo, error) {
	c, err := s.consultationRepo.FindByID(ctx, input.ConsultationID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if c.CustomerID != input.ActingUserID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the customer can reschedule a consultation")
	}

	if err := c.Reschedule(input.ScheduledAt); err != nil {
		return nil, err
	}

	return s.save(ctx, c)
}

// ListForCustomer returns a page of the customer's consultations
func (s *ConsultationService) ListForCustomer(ctx context.Context, customerID uuid.UUID, input ListInput) (*ConsultationListResult, error) {
	filter := s.buildFilter(input)

	consultations, total, err := s.consultationRepo.FindByCustomerID(ctx, customerID, filter)
	if err != nil {
		s.logger.Error("Failed to list consultations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list consultations")
	}

	return s.toListResult(consultations, total, filter), nil
}

// ListForSeller returns a page of the seller's consultations
func (s *ConsultationService) ListForSeller(ctx context.Context, sellerID uuid.UUID, input ListInput) (*ConsultationListResult, error) {
	filter := s.buildFilter(input)

	consultations, total, err := s.consultationRepo.FindBySellerID(ctx, sellerID, filter)
	if err != nil {
		s.logger.Error("Failed to list consultations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list consultations")
	}

	return s.toListResult(consultations, total, filter), nil
}

func (s *ConsultationService) load(ctx context.Context, consultationID, actingUserID uuid.UUID, isAdmin bool) (*consultation.Consultation, error) {
	c, err := s.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !isAdmin && !c.InvolvesUser(actingUserID) {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (s *ConsultationService) save(ctx context.Context, c *consultation.Consultation) (*ConsultationInfo, error) {
	if err := s.consultationRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update consultation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update consultation")
	}

	info := NewConsultationInfo(c)
	return &info, nil
}

func (s *ConsultationService) buildFilter(input ListInput) consultation.ConsultationFilter {
	filter := consultation.NewConsultationFilter().WithPagination(input.Page, input.PageSize)
	if input.Status != nil {
		filter = filter.WithStatus(*input.Status)
	}
	return filter
}

func (s *ConsultationService) toListResult(consultations []*consultation.Consultation, total int64, filter consultation.ConsultationFilter) *ConsultationListResult {
	infos := make([]ConsultationInfo, 0, len(consultations))
	for _, c := range consultations {
		infos = append(infos, NewConsultationInfo(c))
	}
	return &ConsultationListResult{
		Consultations: infos,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}
}
