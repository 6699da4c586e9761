package controllers

import (
	"net/http"
	"strconv"

	"storefront/models"
	"storefront/repository"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductController struct {
	catalogService services.CatalogService
	cache          *CacheManager
}

func NewProductController(catalogService services.CatalogService, cache *CacheManager) *ProductController {
	return &ProductController{
		catalogService: catalogService,
		cache:          cache,
	}
}

// GetProducts returns a paginated, filtered product listing
func (pc *ProductController) GetProducts(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	filters := repository.ProductFilters{
		Search:     ctx.Query("search"),
		ActiveOnly: ctx.Query("include_inactive") != "true",
	}
	if raw := ctx.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id format"})
			return
		}
		filters.CategoryID = &id
	}
	if raw := ctx.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
			return
		}
		filters.MinPrice = &v
	}
	if raw := ctx.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		filters.MaxPrice = &v
	}

	params := services.ListProductsParams{Page: page, Limit: limit, Filters: filters}

	if cached, hit := pc.cache.GetProductList(ctx.Request.Context(), params); hit {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	result, serviceErr := pc.catalogService.ListProducts(ctx.Request.Context(), params)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	pc.cache.SetProductListAsync(params, result)
	ctx.JSON(http.StatusOK, result)
}

// GetProduct returns a single product with its rating summary
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if cached, hit := pc.cache.GetProduct(ctx.Request.Context(), id.String()); hit {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	product, serviceErr := pc.catalogService.GetProduct(ctx.Request.Context(), id)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	pc.cache.SetProductAsync(id.String(), product)
	ctx.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog (admin only)
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.ProductCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, serviceErr := pc.catalogService.CreateProduct(ctx.Request.Context(), &req)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	pc.cache.InvalidateProduct(ctx.Request.Context(), "")
	ctx.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a product (admin only)
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.ProductUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if serviceErr := pc.catalogService.UpdateProduct(ctx.Request.Context(), id, &req); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	pc.cache.InvalidateProduct(ctx.Request.Context(), id.String())
	ctx.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct soft-deletes a product (admin only)
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if serviceErr := pc.catalogService.DeleteProduct(ctx.Request.Context(), id); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	pc.cache.InvalidateProduct(ctx.Request.Context(), id.String())
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetImageUploadURL returns a presigned PUT URL for a product image (admin only)
func (pc *ProductController) GetImageUploadURL(ctx *gin.Context) {
	var req struct {
		SKU      string `json:"sku" binding:"required"`
		Filename string `json:"filename" binding:"required"`
		Expiry   int64  `json:"expiry_seconds"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	url, key, serviceErr := pc.catalogService.GenerateImageUploadURL(ctx.Request.Context(), req.SKU, req.Filename, req.Expiry)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"upload_url": url, "object_key": key})
}

// GetCategories returns all catalog categories
func (pc *ProductController) GetCategories(ctx *gin.Context) {
	categories, serviceErr := pc.catalogService.ListCategories(ctx.Request.Context())
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory adds a category (admin only)
func (pc *ProductController) CreateCategory(ctx *gin.Context) {
	var req struct {
		Name     string     `json:"name" binding:"required"`
		ParentID *uuid.UUID `json:"parent_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	category, serviceErr := pc.catalogService.CreateCategory(ctx.Request.Context(), req.Name, req.ParentID)
	if serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a category (admin only)
func (pc *ProductController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if serviceErr := pc.catalogService.DeleteCategory(ctx.Request.Context(), id); serviceErr != nil {
		ctx.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
