package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sellaids/backend/internal/infrastructure/auth"
	"github.com/sellaids/backend/internal/interfaces/http/handler"
	"github.com/sellaids/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Role names carried in access tokens
const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

// Handlers bundles the HTTP handlers and auth dependencies of the API
type Handlers struct {
	Auth         *handler.AuthHandler
	Vendor       *handler.VendorHandler
	Product      *handler.ProductHandler
	Ticket       *handler.TicketHandler
	Review       *handler.ReviewHandler
	Notification *handler.NotificationHandler
	Setting      *handler.SettingHandler
	Health       *handler.HealthHandler
	Static       *handler.StaticHandler

	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	// LoginLimiter throttles login attempts per client IP. Nil disables it.
	LoginLimiter *middleware.RateLimiter
	Swagger      middleware.SwaggerConfig
	Logger       *zap.Logger
}

// Mount registers every route of the marketplace API on engine
func Mount(engine *gin.Engine, h Handlers, opts ...RouterOption) {
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     h.JWTService,
		TokenBlacklist: h.TokenBlacklist,
		Logger:         h.Logger,
	}
	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	engine.GET("/health", h.Health.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(h.Swagger, jwtAuth),
		swaggerCSP,
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := NewRouter(engine, opts...)
	r.Register(authRoutes(h, jwtAuth))
	r.Register(registrationRoutes(h))
	r.Register(storefrontRoutes(h, middleware.OptionalJWTWithConfig(jwtConfig)))
	r.Register(vendorRoutes(h, jwtAuth))
	r.Register(adminRoutes(h, jwtAuth))
	r.Setup()

	engine.NoRoute(h.Static.NoRoute)
}

// swaggerCSP relaxes the API-wide policy for the bundled Swagger UI, which
// boots from an inline script.
func swaggerCSP(c *gin.Context) {
	c.Header("Content-Security-Policy",
		"default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
	c.Next()
}

func authRoutes(h Handlers, jwtAuth gin.HandlerFunc) *DomainGroup {
	login := []gin.HandlerFunc{h.Auth.Login}
	if h.LoginLimiter != nil {
		limit := middleware.RateLimitByKey(h.LoginLimiter, func(c *gin.Context) string {
			return "login:" + c.ClientIP()
		})
		login = append([]gin.HandlerFunc{limit}, login...)
	}

	return NewDomainGroup("auth", "/auth").
		POST("/login", login...).
		POST("/refresh", h.Auth.RefreshToken).
		POST("/logout", jwtAuth, h.Auth.Logout).
		GET("/me", jwtAuth, h.Auth.GetCurrentUser)
}

func registrationRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("registration", "/vendors/register").
		POST("", h.Vendor.Register).
		POST("/steps/:step", h.Vendor.ValidateStep)
}

func storefrontRoutes(h Handlers, optionalAuth gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("storefront", "")
	g.Group("products", "/products").
		GET("", h.Product.ListPublished).
		GET("/:id", h.Product.GetPublished).
		GET("/:id/reviews", h.Review.ListForProduct).
		POST("/:id/reviews", h.Review.Post)
	g.POST("/contact", h.Ticket.Contact)
	g.POST("/tickets", optionalAuth, h.Ticket.Create)
	return g
}

func vendorRoutes(h Handlers, jwtAuth gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("vendor", "/vendor").Use(jwtAuth, middleware.RequireRole(RoleVendor))
	g.GET("/profile", h.Vendor.GetProfile).
		PUT("/profile", h.Vendor.UpdateProfile).
		GET("/dashboard", h.Vendor.Dashboard).
		GET("/tickets", h.Ticket.ListOwn)
	g.Group("products", "/products").
		GET("", h.Product.ListOwn).
		POST("", h.Product.CreateOwn).
		POST("/upload-url", h.Product.UploadURL).
		GET("/:id", h.Product.GetOwn).
		PUT("/:id", h.Product.UpdateOwn).
		DELETE("/:id", h.Product.DeleteOwn)
	return g
}

func adminRoutes(h Handlers, jwtAuth gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("admin", "/admin").Use(jwtAuth, middleware.RequireRole(RoleAdmin))

	g.Group("vendors", "/vendors").
		GET("", h.Vendor.List).
		GET("/:id", h.Vendor.Get).
		POST("/:id/approve", h.Vendor.Approve).
		POST("/:id/reject", h.Vendor.Reject).
		POST("/:id/suspend", h.Vendor.Suspend)

	g.Group("products", "/products").
		GET("", h.Product.List).
		GET("/:id", h.Product.Get).
		POST("/:id/approve", h.Product.Approve).
		POST("/:id/reject", h.Product.Reject).
		DELETE("/:id", h.Product.Delete)

	g.Group("tickets", "/tickets").
		GET("", h.Ticket.List).
		GET("/:id", h.Ticket.Get).
		PUT("/:id", h.Ticket.Update).
		DELETE("/:id", h.Ticket.Delete)

	g.Group("reviews", "/reviews").
		GET("", h.Review.List).
		GET("/export", h.Review.Export).
		DELETE("/:id", h.Review.Delete)

	g.Group("notifications", "/notifications").
		GET("", h.Notification.List).
		GET("/unread-count", h.Notification.UnreadCount).
		POST("/read-all", h.Notification.MarkAllRead).
		POST("/sms", h.Notification.SendSMS).
		POST("/:id/read", h.Notification.MarkRead).
		DELETE("/:id", h.Notification.Delete)

	g.Group("settings", "/settings").
		GET("", h.Setting.GetAll).
		GET("/:group", h.Setting.GetGroup).
		PUT("/:group", h.Setting.UpdateGroup)

	return g
}
