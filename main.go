package main

import (
	"context"
	"strings"
	"time"

	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/kafka"
	"storefront/logger"
	"storefront/middleware"
	awspkg "storefront/pkg/aws"
	"storefront/repository"
	"storefront/routes"
	"storefront/services"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer func() { _ = logger.Log.Sync() }()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Log.Warn("Redis unavailable, product caching disabled", zap.Error(err))
		redisClient = nil
	}

	var producer kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer func() { _ = producer.Close() }()
	}

	var (
		awsCfg      *sdkaws.Config
		snsClient   awspkg.SNSPublisher
		metricsClnt *awspkg.MetricsClient
	)
	awsCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if loaded, err := awspkg.LoadAWSConfig(awsCtx); err != nil {
		logger.Log.Warn("AWS config unavailable, SNS/S3/metrics disabled", zap.Error(err))
	} else {
		awsCfg = &loaded
		if cfg.SNSTopicArn != "" {
			snsClient = awspkg.NewSNSClient(loaded)
		}
		if mc, err := awspkg.NewMetricsClient(awsCtx); err == nil {
			metricsClnt = mc
		}
	}
	cancel()

	userRepo := repository.NewGormUserRepository(db)
	addressRepo := repository.NewGormAddressRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	wishlistRepo := repository.NewGormWishlistRepository(db)
	couponRepo := repository.NewGormCouponRepository(db)

	var gateway services.Gateway
	if cfg.PaymentGateway == "stripe" && cfg.StripeSecretKey != "" {
		gateway = services.NewStripeGateway(cfg.StripeSecretKey)
	} else {
		gateway = services.NewMockGateway(time.Now().UnixNano(), cfg.MockApprovalRate)
	}

	pricing := services.PricingConfig{
		TaxRate:               cfg.TaxRate,
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
	}

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, logger.Log)
	addressService := services.NewAddressService(addressRepo, logger.Log)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, reviewRepo, awsCfg, cfg.S3Bucket, logger.Log)
	cartService := services.NewCartService(cartRepo, productRepo, logger.Log)
	couponService := services.NewCouponService(couponRepo, logger.Log)
	orderService := services.NewOrderService(orderRepo, cartRepo, couponService, pricing, producer, snsClient, cfg.SNSTopicArn, logger.Log)
	paymentService := services.NewPaymentService(orderRepo, paymentRepo, gateway, producer, logger.Log)
	reviewService := services.NewReviewService(reviewRepo, productRepo, logger.Log)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware(metricsClnt))

	routes.RegisterRoutes(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Product:  controllers.NewProductController(catalogService, controllers.NewCacheManager(redisClient)),
		Cart:     controllers.NewCartController(cartService),
		Order:    controllers.NewOrderController(orderService),
		Payment:  controllers.NewPaymentController(paymentService),
		Review:   controllers.NewReviewController(reviewService),
		Wishlist: controllers.NewWishlistController(wishlistService),
		Address:  controllers.NewAddressController(addressService),
		Coupon:   controllers.NewCouponController(couponService),
	}, cfg.JWTSecret)

	logger.Log.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server exited", zap.Error(err))
	}
}
