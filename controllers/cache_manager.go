package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/models"
	"storefront/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultCacheTTL = 5 * time.Minute

	productCachePrefix     = "product:detail:"
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"
)

// CacheManager handles Redis caching for the product catalog. List entries
// carry a version in their key; bumping the version invalidates them all
// without a scan.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redisClient *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redisClient,
		ttl:   DefaultCacheTTL,
	}
}

// GetProductList retrieves a cached product list response.
func (cm *CacheManager) GetProductList(ctx context.Context, params services.ListProductsParams) (*services.ProductListResponse, bool) {
	if cm == nil || cm.redis == nil {
		return nil, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listCacheKey(version, params)).Result()
	if err != nil {
		return nil, false
	}

	var response services.ProductListResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return &response, true
}

// SetProductListAsync caches a product list response asynchronously.
func (cm *CacheManager) SetProductListAsync(params services.ListProductsParams, response *services.ProductListResponse) {
	if cm == nil || cm.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version, params), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// GetProduct retrieves a cached product by ID.
func (cm *CacheManager) GetProduct(ctx context.Context, productID string) (*models.Product, bool) {
	if cm == nil || cm.redis == nil {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, productCachePrefix+productID).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a single product asynchronously.
func (cm *CacheManager) SetProductAsync(productID string, product *models.Product) {
	if cm == nil || cm.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		productJSON, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.String("product_id", productID))
			return
		}

		if err := cm.redis.Set(bgCtx, productCachePrefix+productID, productJSON, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("product_id", productID))
		}
	}()
}

// InvalidateProduct drops the cached product and bumps the list cache version.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, productID string) {
	if cm == nil || cm.redis == nil {
		return
	}

	if err := cm.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
		zap.L().Error("Failed to invalidate product list cache", zap.Error(err), zap.String("product_id", productID))
	}

	if productID != "" {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := cm.redis.Del(bgCtx, productCachePrefix+productID).Err(); err != nil {
				zap.L().Warn("Failed to delete cached product", zap.Error(err), zap.String("product_id", productID))
			}
		}()
	}
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		// First access seeds the version so list entries become cacheable.
		if err := cm.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return version, err
}

func (cm *CacheManager) listCacheKey(version int64, params services.ListProductsParams) string {
	categoryID := ""
	if params.Filters.CategoryID != nil {
		categoryID = params.Filters.CategoryID.String()
	}
	minPrice, maxPrice := "", ""
	if params.Filters.MinPrice != nil {
		minPrice = fmt.Sprintf("%.2f", *params.Filters.MinPrice)
	}
	if params.Filters.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%.2f", *params.Filters.MaxPrice)
	}
	return fmt.Sprintf("%s%d:p%d:l%d:c%s:min%s:max%s:q%s:a%t",
		productListCachePrefix, version,
		params.Page, params.Limit,
		categoryID, minPrice, maxPrice,
		params.Filters.Search, params.Filters.ActiveOnly,
	)
}
