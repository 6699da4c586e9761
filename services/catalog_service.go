package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/models"
	"storefront/repository"

	awspkg "storefront/pkg/aws"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListProductsParams struct {
	Page    int
	Limit   int
	Filters repository.ProductFilters
}

type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Meta     MetaData         `json:"meta"`
}

// CatalogService defines the interface for product and category logic.
type CatalogService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError)
	ListProducts(ctx context.Context, params ListProductsParams) (*ProductListResponse, *ServiceError)
	CreateProduct(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, *ServiceError)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.ProductUpdateRequest) *ServiceError
	DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError

	ListCategories(ctx context.Context) ([]models.Category, *ServiceError)
	CreateCategory(ctx context.Context, name string, parentID *uuid.UUID) (*models.Category, *ServiceError)
	DeleteCategory(ctx context.Context, id uuid.UUID) *ServiceError

	GenerateImageUploadURL(ctx context.Context, sku, filename string, expirySeconds int64) (string, string, *ServiceError)
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	awsCfg       *sdkaws.Config
	imagesBucket string
	logger       *zap.Logger
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	awsCfg *sdkaws.Config,
	imagesBucket string,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		awsCfg:       awsCfg,
		imagesBucket: imagesBucket,
		logger:       logger,
	}
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	if summary, err := s.reviewRepo.RatingForProduct(ctx, id); err == nil {
		product.AverageRating = round2(summary.Average)
		product.ReviewCount = summary.Count
	}

	return product, nil
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, params ListProductsParams) (*ProductListResponse, *ServiceError) {
	products, total, err := s.productRepo.Find(ctx, params.Filters, params.Page, params.Limit)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list products"}
	}

	return &ProductListResponse{
		Products: products,
		Meta: MetaData{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, params.Limit),
			HasMore:    total > int64(params.Page*params.Limit),
		},
	}, nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *models.ProductCreateRequest) (*models.Product, *ServiceError) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &ServiceError{StatusCode: 400, Message: "Category does not exist"}
			}
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to verify category"}
		}
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Price:         req.Price,
		StockQuantity: req.Stock,
		IsActive:      true,
		CategoryID:    req.CategoryID,
		Images:        req.Images,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ServiceError{StatusCode: 409, Message: "SKU already exists"}
		}
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create product"}
	}

	s.logger.Info("Product created", zap.String("sku", product.SKU))
	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.ProductUpdateRequest) *ServiceError {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock_quantity"] = *req.Stock
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if len(updates) == 0 && req.Images == nil {
		return &ServiceError{StatusCode: 400, Message: "No fields to update"}
	}

	rows, err := s.productRepo.Update(ctx, id, updates)
	if err != nil {
		s.logger.Error("Failed to update product", zap.String("product_id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}
	if rows == 0 {
		return &ServiceError{StatusCode: 404, Message: "Product not found"}
	}
	return nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) *ServiceError {
	rows, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete product"}
	}
	if rows == 0 {
		return &ServiceError{StatusCode: 404, Message: "Product not found"}
	}
	return nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list categories"}
	}
	return categories, nil
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, name string, parentID *uuid.UUID) (*models.Category, *ServiceError) {
	category := &models.Category{Name: name, ParentID: parentID}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ServiceError{StatusCode: 409, Message: "Category already exists"}
		}
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create category"}
	}
	return category, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) *ServiceError {
	rows, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete category", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete category"}
	}
	if rows == 0 {
		return &ServiceError{StatusCode: 404, Message: "Category not found"}
	}
	return nil
}

// GenerateImageUploadURL returns a presigned S3 PUT URL for a product image.
func (s *catalogServiceImpl) GenerateImageUploadURL(ctx context.Context, sku, filename string, expirySeconds int64) (string, string, *ServiceError) {
	if s.awsCfg == nil || s.imagesBucket == "" {
		return "", "", &ServiceError{StatusCode: 503, Message: "Image uploads not configured"}
	}
	if expirySeconds <= 0 || expirySeconds > 3600 {
		expirySeconds = 900
	}

	key := fmt.Sprintf("products/%s/%d-%s", sku, time.Now().Unix(), filename)
	url, _, err := awspkg.GeneratePresignedPutURL(ctx, *s.awsCfg, s.imagesBucket, key, expirySeconds)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("sku", sku), zap.Error(err))
		return "", "", &ServiceError{StatusCode: 500, Message: "Failed to generate upload URL"}
	}

	return url, key, nil
}
