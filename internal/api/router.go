package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"tableorder-backend/config"
	"tableorder-backend/internal/auth"
	"tableorder-backend/internal/events"
	"tableorder-backend/internal/mw"
	"tableorder-backend/internal/notification"
	"tableorder-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(
	cfg *config.Config,
	s store.Store,
	tokens *auth.Tokens,
	pub events.Publisher,
	notifier *notification.WorkerPool,
	webpushOptions *webpush.Options,
) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, tokens, pub, notifier, webpushOptions)

	limit := rate.Limit(cfg.Server.RateLimitPerSec)
	if limit <= 0 {
		limit = rate.Limit(10)
	}
	rateLimiter := mw.RateLimiter(limit, 5, cfg.Server.RequestIPHeader)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	requireAuth := mw.RequireAuth(tokens)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Identity provisioning
		api.POST("/auth/signup", handler.Signup)
		api.POST("/auth/login", handler.Login)

		// Public reads (customers browse without login)
		api.GET("/menu", caching, handler.ListMenu)
		api.GET("/tables", caching, handler.ListTables)

		// Customer endpoints take no auth; the device session stands in
		// for identity.
		api.POST("/sessions", handler.RegisterSession)
		api.DELETE("/sessions", handler.CloseSession)

		api.POST("/orders", handler.CreateOrder)
		api.GET("/orders", handler.ListOrders)
		api.PUT("/orders/:id/status", handler.UpdateOrderStatus)

		api.POST("/requests", handler.CreateRequest)
		api.GET("/requests", handler.ListRequests)
		api.PUT("/requests/:id/serve", handler.ServeRequest)

		// Staff writes
		staff := api.Group("")
		staff.Use(requireAuth)
		{
			staff.POST("/menu", handler.CreateMenuItem)
			staff.PUT("/menu/:id", handler.UpdateMenuItem)

			staff.POST("/tables", handler.CreateTable)
			staff.PUT("/tables/:number/status", handler.SetTableStatus)
			staff.DELETE("/tables/:number", handler.DeleteTable)
			staff.GET("/tables/:number/sessions", handler.ListTableSessions)

			staff.GET("/profiles", handler.ListProfiles)
			staff.GET("/profiles/me", handler.GetMyProfile)
			staff.PUT("/profiles/me", handler.UpdateMyProfile)
		}

		// Push subscriptions
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
