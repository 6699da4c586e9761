package services

import (
	"context"
	"errors"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewListResponse struct {
	Reviews []models.Review `json:"reviews"`
	Average float64         `json:"average_rating"`
	Count   int64           `json:"review_count"`
}

type ReviewService interface {
	SubmitReview(ctx context.Context, userID string, productID uuid.UUID, req *models.ReviewRequest) (*models.Review, *ServiceError)
	ListReviews(ctx context.Context, productID uuid.UUID, page, limit int) (*ReviewListResponse, *ServiceError)
	DeleteReview(ctx context.Context, userID string, productID uuid.UUID) *ServiceError
}

type reviewServiceImpl struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, logger *zap.Logger) ReviewService {
	return &reviewServiceImpl{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SubmitReview creates or replaces the caller's review for a product.
func (s *reviewServiceImpl) SubmitReview(ctx context.Context, userID string, productID uuid.UUID, req *models.ReviewRequest) (*models.Review, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	review := &models.Review{
		UserID:    userUUID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save review"}
	}

	return review, nil
}

func (s *reviewServiceImpl) ListReviews(ctx context.Context, productID uuid.UUID, page, limit int) (*ReviewListResponse, *ServiceError) {
	reviews, _, err := s.reviewRepo.FindByProduct(ctx, productID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list reviews"}
	}

	summary, err := s.reviewRepo.RatingForProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to aggregate rating", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list reviews"}
	}

	return &ReviewListResponse{
		Reviews: reviews,
		Average: round2(summary.Average),
		Count:   summary.Count,
	}, nil
}

func (s *reviewServiceImpl) DeleteReview(ctx context.Context, userID string, productID uuid.UUID) *ServiceError {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	rows, err := s.reviewRepo.Delete(ctx, userUUID, productID)
	if err != nil {
		s.logger.Error("Failed to delete review", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete review"}
	}
	if rows == 0 {
		return &ServiceError{StatusCode: 404, Message: "Review not found"}
	}
	return nil
}
