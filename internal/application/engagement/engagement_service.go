package engagement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/domain/engagement"
	"github.com/optivista/backend/internal/domain/shared"
)

// EngagementService handles product feedback and AR try-on sessions
type EngagementService struct {
	feedbackRepo engagement.FeedbackRepository
	sessionRepo  engagement.ARSessionRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(
	feedbackRepo engagement.FeedbackRepository,
	sessionRepo engagement.ARSessionRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		feedbackRepo: feedbackRepo,
		sessionRepo:  sessionRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// SubmitFeedback records a user's rating for a product. A user can review
// each product once; revisions go through UpdateFeedback.
func (s *EngagementService) SubmitFeedback(ctx context.Context, input SubmitFeedbackInput) (*FeedbackInfo, error) {
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	}

	exists, err := s.feedbackRepo.ExistsByUserAndProduct(ctx, input.UserID, input.ProductID)
	if err != nil {
		s.logger.Error("Failed to check existing feedback", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit feedback")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_REVIEWED", "You have already reviewed this product")
	}

	feedback, err := engagement.NewFeedback(input.UserID, input.ProductID, input.Rating, input.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		// The unique index backs the check above under concurrency
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_REVIEWED", "You have already reviewed this product")
		}
		s.logger.Error("Failed to create feedback", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit feedback")
	}

	s.logger.Info("Feedback submitted",
		zap.String("feedback_id", feedback.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("rating", input.Rating))

	info := NewFeedbackInfo(feedback)
	return &info, nil
}

// UpdateFeedback revises the author's own feedback
func (s *EngagementService) UpdateFeedback(ctx context.Context, input UpdateFeedbackInput) (*FeedbackInfo, error) {
	feedback, err := s.feedbackRepo.FindByID(ctx, input.FeedbackID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if feedback.UserID != input.UserID {
		return nil, shared.NewDomainError("FORBIDDEN", "You can only edit your own feedback")
	}

	if err := feedback.Update(input.Rating, input.Comment); err != nil {
		return nil, err
	}

	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		s.logger.Error("Failed to update feedback", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update feedback")
	}

	info := NewFeedbackInfo(feedback)
	return &info, nil
}

// DeleteFeedback removes feedback. Authors can delete their own; admins
// can delete any.
func (s *EngagementService) DeleteFeedback(ctx context.Context, feedbackID, actingUserID uuid.UUID, isAdmin bool) error {
	feedback, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		return shared.ErrNotFound
	}
	if !isAdmin && feedback.UserID != actingUserID {
		return shared.NewDomainError("FORBIDDEN", "You can only delete your own feedback")
	}

	if err := s.feedbackRepo.Delete(ctx, feedbackID); err != nil {
		s.logger.Error("Failed to delete feedback", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete feedback")
	}
	return nil
}

// ListProductFeedback returns a page of feedback for a product along with
// its rating summary
func (s *EngagementService) ListProductFeedback(ctx context.Context, productID uuid.UUID, input PageInput) (*FeedbackListResult, error) {
	filter := engagement.PageFilter{Page: input.Page, PageSize: input.PageSize}
	if filter.Page <= 0 {
		filter = engagement.NewPageFilter()
	}

	feedback, total, err := s.feedbackRepo.FindByProductID(ctx, productID, filter)
	if err != nil {
		s.logger.Error("Failed to list feedback", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list feedback")
	}

	summary, err := s.feedbackRepo.RatingSummary(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to compute rating summary", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list feedback")
	}

	infos := make([]FeedbackInfo, 0, len(feedback))
	for _, f := range feedback {
		infos = append(infos, NewFeedbackInfo(f))
	}

	return &FeedbackListResult{
		Feedback: infos,
		Summary:  *summary,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetRatingSummary returns the average rating and review count for a product
func (s *EngagementService) GetRatingSummary(ctx context.Context, productID uuid.UUID) (*engagement.RatingSummary, error) {
	summary, err := s.feedbackRepo.RatingSummary(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to compute rating summary", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute rating summary")
	}
	return summary, nil
}

// LogARSession records a completed virtual try-on session. The product must
// carry a 3D model for try-on.
func (s *EngagementService) LogARSession(ctx context.Context, input LogARSessionInput) (*ARSessionInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	}
	if !product.SupportsTryOn() {
		return nil, shared.NewDomainError("TRYON_UNSUPPORTED", "Product does not support virtual try-on")
	}

	session, err := engagement.NewARSession(input.UserID, input.ProductID, input.SnapshotURLs, input.Metadata)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error("Failed to log AR session", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to log try-on session")
	}

	s.logger.Info("AR session logged",
		zap.String("session_id", session.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("snapshots", len(session.SnapshotURLs)))

	info := NewARSessionInfo(session)
	return &info, nil
}

// ListUserARSessions returns a page of the user's try-on sessions
func (s *EngagementService) ListUserARSessions(ctx context.Context, userID uuid.UUID, input PageInput) (*ARSessionListResult, error) {
	filter := engagement.PageFilter{Page: input.Page, PageSize: input.PageSize}
	if filter.Page <= 0 {
		filter = engagement.NewPageFilter()
	}

	sessions, total, err := s.sessionRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list AR sessions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list try-on sessions")
	}

	infos := make([]ARSessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, NewARSessionInfo(session))
	}

	return &ARSessionListResult{
		Sessions: infos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// CountProductARSessions reports how often a product was tried on
func (s *EngagementService) CountProductARSessions(ctx context.Context, productID uuid.UUID) (int64, error) {
	count, err := s.sessionRepo.CountByProductID(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to count AR sessions", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count try-on sessions")
	}
	return count, nil
}
