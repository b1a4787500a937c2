package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/family-budget-backend/internal/config"
	"github.com/ignatzorin/family-budget-backend/internal/http/handlers"
	"github.com/ignatzorin/family-budget-backend/internal/http/middleware"
	"github.com/ignatzorin/family-budget-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	familyHandler *handlers.FamilyHandler,
	categoryHandler *handlers.CategoryHandler,
	transactionHandler *handlers.TransactionHandler,
	proposalHandler *handlers.ProposalHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	bankAccountHandler *handlers.BankAccountHandler,
	dashboardHandler *handlers.DashboardHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.Metrics())

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.StaticFS("/uploads", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/sessions", authHandler.ListSessions)
		protectedAuth.DELETE("/sessions/:id", authHandler.DeleteSession)
		protectedAuth.DELETE("/sessions", authHandler.DeleteAllSessionsExcept)
	}

	// WebSocket авторизуется токеном из query
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.GetMe)
		protected.PUT("/profile", profileHandler.UpdateMe)

		protected.POST("/families", familyHandler.Create)
		protected.POST("/families/join", familyHandler.Join)
		protected.POST("/families/leave", familyHandler.Leave)
		protected.GET("/families/my", familyHandler.Get)
		protected.GET("/families/members", familyHandler.Members)

		protected.GET("/categories", categoryHandler.List)
		protected.POST("/categories", categoryHandler.Create)
		protected.PUT("/categories/:id", middleware.UUIDValidator("id"), categoryHandler.Update)
		protected.DELETE("/categories/:id", middleware.UUIDValidator("id"), categoryHandler.Delete)

		protected.GET("/transactions", transactionHandler.List)
		protected.POST("/transactions", transactionHandler.Create)
		protected.GET("/transactions/balance", transactionHandler.Balance)
		protected.PUT("/transactions/:id", middleware.UUIDValidator("id"), transactionHandler.Update)
		protected.DELETE("/transactions/:id", middleware.UUIDValidator("id"), transactionHandler.Delete)

		protected.GET("/proposals", proposalHandler.List)
		protected.POST("/proposals", proposalHandler.Create)
		protected.GET("/proposals/:id/approvals", middleware.UUIDValidator("id"), proposalHandler.Approvals)
		protected.POST("/proposals/:id/vote", middleware.UUIDValidator("id"), proposalHandler.Vote)
		protected.GET("/approvals", proposalHandler.FamilyApprovals)

		protected.GET("/subscriptions", subscriptionHandler.List)
		protected.POST("/subscriptions", subscriptionHandler.Create)
		protected.GET("/subscriptions/upcoming", subscriptionHandler.Upcoming)
		protected.PUT("/subscriptions/:id", middleware.UUIDValidator("id"), subscriptionHandler.Update)
		protected.DELETE("/subscriptions/:id", middleware.UUIDValidator("id"), subscriptionHandler.Delete)

		protected.GET("/bank-accounts", bankAccountHandler.List)
		protected.POST("/bank-accounts", bankAccountHandler.Create)
		protected.PUT("/bank-accounts/:id", middleware.UUIDValidator("id"), bankAccountHandler.Rename)
		protected.DELETE("/bank-accounts/:id", middleware.UUIDValidator("id"), bankAccountHandler.Delete)

		protected.GET("/dashboard/data", dashboardHandler.GetDashboardData)

		protected.POST("/media/avatar", mediaHandler.UploadAvatar)
	}

	return r
}
