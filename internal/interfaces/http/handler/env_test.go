package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/sellaids/backend/internal/application/catalog"
	"github.com/sellaids/backend/internal/application/identity"
	notificationapp "github.com/sellaids/backend/internal/application/notification"
	reviewapp "github.com/sellaids/backend/internal/application/review"
	settingapp "github.com/sellaids/backend/internal/application/setting"
	supportapp "github.com/sellaids/backend/internal/application/support"
	vendorapp "github.com/sellaids/backend/internal/application/vendor"
	"github.com/sellaids/backend/internal/infrastructure/auth"
	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/sellaids/backend/internal/infrastructure/event"
	"github.com/sellaids/backend/internal/infrastructure/export"
	"github.com/sellaids/backend/internal/infrastructure/persistence"
	"github.com/sellaids/backend/internal/infrastructure/sms"
	"github.com/sellaids/backend/internal/infrastructure/storage"
	"github.com/sellaids/backend/internal/interfaces/http/dto"
	"github.com/sellaids/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAdminEmail    = "admin@sellaids.test"
	testAdminPassword = "admin-pass-123"
	testVendorPass    = "s3cretpass"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv wires the real services over an in-memory sqlite database
type testEnv struct {
	t      *testing.T
	db     *persistence.Database
	engine *gin.Engine

	jwt      *auth.JWTService
	auth     *identity.AuthService
	vendors  *vendorapp.VendorService
	products *catalogapp.ProductService
	tickets  *supportapp.TicketService
	reviews  *reviewapp.ReviewService
	settings *settingapp.SettingService
}

type envOptions struct {
	smsConfig config.SMSConfig
	staticDir string
}

type envOption func(*envOptions)

func withSMSGateway(baseURL string) envOption {
	return func(o *envOptions) {
		o.smsConfig = config.SMSConfig{BaseURL: baseURL, APIKey: "test-key", SenderID: "SLAIDS", Timeout: 2 * time.Second}
	}
}

func withStaticDir(dir string) envOption {
	return func(o *envOptions) { o.staticDir = dir }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	var o envOptions
	for _, opt := range opts {
		opt(&o)
	}

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	log := zap.NewNop()
	users := persistence.NewGormUserRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "sellaids-test",
		MaxRefreshCount:        3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	bus := event.NewInMemoryEventBus(log)
	settings := settingapp.NewSettingService(settingRepo, log)
	feed := notificationapp.NewFeedHandler(notificationRepo, settings, log)
	bus.Subscribe(feed, feed.EventTypes()...)

	authService := identity.NewAuthService(users, vendorRepo, jwtService, blacklist, log)
	env := &testEnv{
		t:        t,
		db:       db,
		jwt:      jwtService,
		auth:     authService,
		vendors:  vendorapp.NewVendorService(vendorRepo, users, productRepo, ticketRepo, persistence.NewGormRegistrationStore(db.DB), authService, bus, log),
		products: catalogapp.NewProductService(productRepo, vendorRepo, storage.NewStubObjectStorage("https://cdn.sellaids.test"), bus, 10*time.Minute, log),
		tickets:  supportapp.NewTicketService(ticketRepo, vendorRepo, bus, log),
		reviews:  reviewapp.NewReviewService(reviewRepo, productRepo, export.NewReviewExporter(nil), bus, log),
		settings: settings,
	}

	_, err = authService.BootstrapAdmin(context.Background(), identity.BootstrapAdminInput{
		Email: testAdminEmail, Password: testAdminPassword, Name: "Admin",
	})
	require.NoError(t, err)

	notifications := notificationapp.NewNotificationService(notificationRepo, sms.NewClient(o.smsConfig, log), log)
	env.engine = env.routes(jwtService, blacklist, notifications, o.staticDir)
	return env
}

func (e *testEnv) routes(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, notifications *notificationapp.NotificationService, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())

	authH := NewAuthHandler(e.auth)
	vendorH := NewVendorHandler(e.vendors)
	productH := NewProductHandler(e.products)
	ticketH := NewTicketHandler(e.tickets)
	reviewH := NewReviewHandler(e.reviews)
	reviewH.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	notificationH := NewNotificationHandler(notifications)
	settingH := NewSettingHandler(e.settings)

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	}
	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	r.GET("/health", NewHealthHandler(e.db).Health)

	api := r.Group("/api/v1")
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/refresh", authH.RefreshToken)
	api.POST("/auth/logout", jwtAuth, authH.Logout)
	api.GET("/auth/me", jwtAuth, authH.GetCurrentUser)

	api.POST("/vendors/register/steps/:step", vendorH.ValidateStep)
	api.POST("/vendors/register", vendorH.Register)
	api.GET("/products", productH.ListPublished)
	api.GET("/products/:id", productH.GetPublished)
	api.GET("/products/:id/reviews", reviewH.ListForProduct)
	api.POST("/products/:id/reviews", reviewH.Post)
	api.POST("/contact", ticketH.Contact)
	api.POST("/tickets", middleware.OptionalJWTWithConfig(jwtConfig), ticketH.Create)

	v := api.Group("/vendor", jwtAuth, middleware.RequireRole("vendor"))
	v.GET("/profile", vendorH.GetProfile)
	v.PUT("/profile", vendorH.UpdateProfile)
	v.GET("/dashboard", vendorH.Dashboard)
	v.GET("/products", productH.ListOwn)
	v.POST("/products", productH.CreateOwn)
	v.POST("/products/upload-url", productH.UploadURL)
	v.GET("/products/:id", productH.GetOwn)
	v.PUT("/products/:id", productH.UpdateOwn)
	v.DELETE("/products/:id", productH.DeleteOwn)
	v.GET("/tickets", ticketH.ListOwn)

	a := api.Group("/admin", jwtAuth, middleware.RequireRole("admin"))
	a.GET("/vendors", vendorH.List)
	a.GET("/vendors/:id", vendorH.Get)
	a.POST("/vendors/:id/approve", vendorH.Approve)
	a.POST("/vendors/:id/reject", vendorH.Reject)
	a.POST("/vendors/:id/suspend", vendorH.Suspend)
	a.GET("/products", productH.List)
	a.GET("/products/:id", productH.Get)
	a.POST("/products/:id/approve", productH.Approve)
	a.POST("/products/:id/reject", productH.Reject)
	a.DELETE("/products/:id", productH.Delete)
	a.GET("/tickets", ticketH.List)
	a.GET("/tickets/:id", ticketH.Get)
	a.PUT("/tickets/:id", ticketH.Update)
	a.DELETE("/tickets/:id", ticketH.Delete)
	a.GET("/reviews", reviewH.List)
	a.GET("/reviews/export", reviewH.Export)
	a.DELETE("/reviews/:id", reviewH.Delete)
	a.GET("/notifications", notificationH.List)
	a.GET("/notifications/unread-count", notificationH.UnreadCount)
	a.POST("/notifications/read-all", notificationH.MarkAllRead)
	a.POST("/notifications/sms", notificationH.SendSMS)
	a.POST("/notifications/:id/read", notificationH.MarkRead)
	a.DELETE("/notifications/:id", notificationH.Delete)
	a.GET("/settings", settingH.GetAll)
	a.GET("/settings/:group", settingH.GetGroup)
	a.PUT("/settings/:group", settingH.UpdateGroup)

	r.NoRoute(NewStaticHandler(staticDir).NoRoute)
	return r
}

// do sends a request and returns the recorder. body may be nil, a string or
// any JSON-encodable value.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(email, password string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	var result identity.LoginResult
	decodeData(e.t, w, &result)
	return result.AccessToken
}

func (e *testEnv) adminToken() string {
	return e.login(testAdminEmail, testAdminPassword)
}

// registerVendor submits the full wizard and returns the vendor
func (e *testEnv) registerVendor(email string) vendorapp.VendorResponse {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/v1/vendors/register", "", registrationBody(email))
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var v vendorapp.VendorResponse
	decodeData(e.t, w, &v)
	return v
}

// approvedVendor registers and approves a vendor, returning it and a fresh token
func (e *testEnv) approvedVendor(email string) (vendorapp.VendorResponse, string) {
	e.t.Helper()
	v := e.registerVendor(email)
	w := e.do(http.MethodPost, "/api/v1/admin/vendors/"+v.ID.String()+"/approve", e.adminToken(), nil)
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	return v, e.login(email, testVendorPass)
}

// publishedProduct creates a listing as the vendor and approves it
func (e *testEnv) publishedProduct(vendorToken, name string) catalogapp.ProductResponse {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/v1/vendor/products", vendorToken, productBody(name))
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var p catalogapp.ProductResponse
	decodeData(e.t, w, &p)

	w = e.do(http.MethodPost, "/api/v1/admin/products/"+p.ID.String()+"/approve", e.adminToken(), nil)
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())
	decodeData(e.t, w, &p)
	return p
}

func registrationBody(email string) gin.H {
	return gin.H{
		"name":                "Meera Kapoor",
		"email":               email,
		"phone":               "9876543210",
		"password":            testVendorPass,
		"confirm_password":    testVendorPass,
		"business_name":       "Meera's Closet",
		"business_type":       "individual",
		"address_line1":       "12 MG Road",
		"city":                "Bengaluru",
		"state":               "Karnataka",
		"postal_code":         "560001",
		"account_holder_name": "Meera Kapoor",
		"account_number":      "123456789012",
		"ifsc_code":           "HDFC0001234",
		"bank_name":           "HDFC Bank",
		"store_name":          "Meera Luxe",
		"categories":          []string{"Bags"},
		"accept_terms":        true,
	}
}

func productBody(name string) gin.H {
	return gin.H{
		"name":           name,
		"brand":          "Chanel",
		"category":       "Bags",
		"condition":      "excellent",
		"description":    "Classic flap, caviar leather",
		"price":          "245000",
		"original_price": "490000",
		"stock":          1,
		"images":         []string{"https://cdn.sellaids.test/products/flap.jpg"},
	}
}

// decodeData unmarshals the data field of a success envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}
