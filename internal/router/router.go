// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/loanpro-backend/internal/config"
	"github.com/javajoker/loanpro-backend/internal/handlers"
	"github.com/javajoker/loanpro-backend/internal/middleware"
	"github.com/javajoker/loanpro-backend/internal/services"
	"github.com/javajoker/loanpro-backend/internal/store"
	"github.com/javajoker/loanpro-backend/internal/utils"
)

// Dependencies carries the services the routes are wired to.
type Dependencies struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Loans         *services.LoanService
	Repayments    *services.RepaymentService
	Admin         *services.AdminService
	Notifications *services.NotificationService
}

// NewDependencies builds every service on top of st and gateway.
func NewDependencies(cfg *config.Config, st *store.Store, gateway services.PaymentGateway) *Dependencies {
	notificationService := services.NewNotificationService(cfg)

	return &Dependencies{
		Auth:          services.NewAuthService(st, cfg, notificationService),
		Users:         services.NewUserService(st),
		Loans:         services.NewLoanService(st),
		Repayments:    services.NewRepaymentService(st, gateway, notificationService, cfg.Payment.Currency),
		Admin:         services.NewAdminService(st, notificationService),
		Notifications: notificationService,
	}
}

func Initialize(cfg *config.Config, deps *Dependencies) *gin.Engine {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Auth)
	userHandler := handlers.NewUserHandler(deps.Users)
	loanHandler := handlers.NewLoanHandler(deps.Loans, deps.Repayments)
	adminHandler := handlers.NewAdminHandler(deps.Admin)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	generalLimit, authLimit := rateLimits(cfg.RateLimit)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(generalLimit)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Public routes
		v1.GET("/loan-products", loanHandler.GetProducts)
		v1.POST("/loans/quote", loanHandler.Quote)

		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(authLimit)
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.PUT("/profile", userHandler.UpdateProfile)
			users.PUT("/password", userHandler.ChangePassword)
			users.PUT("/bank-account", userHandler.LinkBankAccount)
		}

		// Customer loan routes
		loans := v1.Group("/loans")
		loans.Use(middleware.AuthRequired(), middleware.CustomerRequired())
		{
			loans.POST("", loanHandler.Apply)
			loans.GET("", loanHandler.List)
			loans.GET("/dashboard", loanHandler.Dashboard)
			loans.GET("/:id", loanHandler.Get)
			loans.GET("/:id/schedule", loanHandler.Schedule)
			loans.GET("/:id/payments", loanHandler.Payments)
			loans.POST("/:id/repayments", loanHandler.PayInstallment)
			loans.POST("/:id/repayments/full", loanHandler.PayInFull)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			admin.GET("/applications", adminHandler.GetApplications)
			admin.PUT("/applications/:id/approve", adminHandler.ApproveApplication)
			admin.PUT("/applications/:id/reject", adminHandler.RejectApplication)
		}
	}

	return r
}

func rateLimits(cfg config.RateLimitConfig) (general, auth gin.HandlerFunc) {
	if !cfg.Enabled {
		return middleware.NoLimit(), middleware.NoLimit()
	}

	generalLimiter := middleware.NewRateLimiter(rate.Limit(cfg.GeneralPerSec), cfg.GeneralBurst)
	authLimiter := middleware.NewRateLimiter(rate.Every(time.Minute/time.Duration(max(cfg.AuthPerMinute, 1))), cfg.AuthBurst)
	return generalLimiter.Middleware(), authLimiter.Middleware()
}
