package routes

import (
	"storefront/controllers"
	"storefront/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler group wired by RegisterRoutes.
type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
	Review   *controllers.ReviewController
	Wishlist *controllers.WishlistController
	Address  *controllers.AddressController
	Coupon   *controllers.CouponController
}

func RegisterRoutes(r *gin.Engine, c Controllers, jwtSecret string) {
	auth := middleware.AuthMiddleware(jwtSecret)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	authRoutes := r.Group("/auth")
	authRoutes.POST("/register", c.Auth.Register)
	authRoutes.POST("/login", c.Auth.Login)
	authRoutes.GET("/profile", auth, c.Auth.Profile)

	productRoutes := r.Group("/products")
	productRoutes.GET("", c.Product.GetProducts)
	productRoutes.GET("/:id", c.Product.GetProduct)
	productRoutes.GET("/:id/reviews", c.Review.GetReviews)
	productRoutes.POST("/:id/reviews", auth, c.Review.SubmitReview)
	productRoutes.DELETE("/:id/reviews", auth, c.Review.DeleteReview)

	r.GET("/categories", c.Product.GetCategories)

	cartRoutes := r.Group("/cart")
	cartRoutes.Use(auth)
	cartRoutes.GET("", c.Cart.GetCart)
	cartRoutes.POST("/items", c.Cart.AddItem)
	cartRoutes.PUT("/items/:productId", c.Cart.UpdateItem)
	cartRoutes.DELETE("/items/:productId", c.Cart.RemoveItem)
	cartRoutes.DELETE("", c.Cart.ClearCart)

	orderRoutes := r.Group("/orders")
	orderRoutes.Use(auth)
	orderRoutes.POST("", c.Order.Checkout)
	orderRoutes.GET("", c.Order.GetOrders)
	orderRoutes.GET("/:id", c.Order.GetOrder)
	orderRoutes.GET("/:id/payments", c.Payment.GetPayments)

	paymentRoutes := r.Group("/payments")
	paymentRoutes.Use(auth)
	paymentRoutes.POST("/confirm", c.Payment.ConfirmPayment)

	wishlistRoutes := r.Group("/wishlist")
	wishlistRoutes.Use(auth)
	wishlistRoutes.GET("", c.Wishlist.GetWishlist)
	wishlistRoutes.POST("/:productId", c.Wishlist.AddToWishlist)
	wishlistRoutes.DELETE("/:productId", c.Wishlist.RemoveFromWishlist)

	addressRoutes := r.Group("/addresses")
	addressRoutes.Use(auth)
	addressRoutes.POST("", c.Address.CreateAddress)
	addressRoutes.GET("", c.Address.GetAddresses)
	addressRoutes.PUT("/:id", c.Address.UpdateAddress)
	addressRoutes.DELETE("/:id", c.Address.DeleteAddress)

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(auth, middleware.AdminOnly())
	adminRoutes.POST("/products", c.Product.CreateProduct)
	adminRoutes.PUT("/products/:id", c.Product.UpdateProduct)
	adminRoutes.DELETE("/products/:id", c.Product.DeleteProduct)
	adminRoutes.POST("/products/upload-url", c.Product.GetImageUploadURL)
	adminRoutes.POST("/categories", c.Product.CreateCategory)
	adminRoutes.DELETE("/categories/:id", c.Product.DeleteCategory)
	adminRoutes.GET("/orders", c.Order.GetAllOrders)
	adminRoutes.PUT("/orders/:id/status", c.Order.UpdateStatus)
	adminRoutes.POST("/coupons", c.Coupon.CreateCoupon)
	adminRoutes.GET("/coupons", c.Coupon.GetCoupons)
	adminRoutes.DELETE("/coupons/:code", c.Coupon.DeactivateCoupon)
}
