package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/admin"
	"github.com/nagoyameshi/go-api-server/internal/auth"
	"github.com/nagoyameshi/go-api-server/internal/billing"
	"github.com/nagoyameshi/go-api-server/internal/category"
	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/favorite"
	"github.com/nagoyameshi/go-api-server/internal/member"
	"github.com/nagoyameshi/go-api-server/internal/meta"
	"github.com/nagoyameshi/go-api-server/internal/reservation"
	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	"github.com/nagoyameshi/go-api-server/internal/review"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/middleware"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"
	"github.com/nagoyameshi/go-api-server/internal/storage"
	"github.com/nagoyameshi/go-api-server/internal/subscription"
)

// Dependencies are the process-wide collaborators built in main.
type Dependencies struct {
	Config  *config.Config
	DB      *database.DB
	Metrics *metrics.Metrics
	Revoker session.Revoker
	Billing billing.Client
	Store   storage.Store
}

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, deps Dependencies) {
	cfg, db := deps.Config, deps.DB

	metaHandler := meta.NewHandler(cfg, db, deps.Revoker)
	router.GET("/health", metaHandler.Health)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	if local, ok := deps.Store.(*storage.LocalStore); ok && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		router.Static(cfg.Storage.PublicBaseURL, local.Dir())
	}

	// token
	memberTokens := token.NewJWTManager(cfg, token.NamespaceMember)
	adminTokens := token.NewJWTManager(cfg, token.NamespaceAdmin)
	router.Use(middleware.Authenticate(deps.Revoker, memberTokens, adminTokens))

	// repository
	memberRepository := member.NewMemberRepository()
	adminRepository := admin.NewAdminRepository()
	restaurantRepository := restaurant.NewRestaurantRepository()
	categoryRepository := category.NewCategoryRepository()
	reservationRepository := reservation.NewReservationRepository()
	reviewRepository := review.NewReviewRepository()
	favoriteRepository := favorite.NewFavoriteRepository()

	// shared services
	plan := cfg.Billing.PlanName
	gate := subscription.NewGate(db.DB, memberRepository, deps.Billing, plan, deps.Metrics)
	guard := access.NewGuard(gate, deps.Metrics)
	memberSessions := auth.NewSessions(memberTokens, deps.Revoker)
	adminSessions := auth.NewSessions(adminTokens, deps.Revoker)

	// service
	authService := auth.NewAuthService(db.DB, memberRepository, memberSessions)
	memberService := member.NewMemberService(db.DB, memberRepository)
	restaurantService := restaurant.NewRestaurantService(db.DB, restaurantRepository, categoryRepository, deps.Store, cfg.Storage.MaxUploadBytes)
	categoryService := category.NewCategoryService(db.DB, categoryRepository)
	reservationService := reservation.NewReservationService(db.DB, reservationRepository, restaurantService, cfg.App.Location, deps.Metrics)
	reviewService := review.NewReviewService(db.DB, reviewRepository, restaurantService, gate, deps.Metrics)
	favoriteService := favorite.NewFavoriteService(db.DB, favoriteRepository, restaurantService, deps.Metrics)
	adminService := admin.NewAdminService(db.DB, admin.Repositories{
		Admin:       adminRepository,
		Member:      memberRepository,
		Restaurant:  restaurantRepository,
		Category:    categoryRepository,
		Reservation: reservationRepository,
		Review:      reviewRepository,
	}, adminSessions)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberSessionHandler := auth.NewSessionHandler(memberSessions)
	adminSessionHandler := auth.NewSessionHandler(adminSessions)
	memberHandler := member.NewMemberHandler(memberService, guard)
	restaurantHandler := restaurant.NewRestaurantHandler(restaurantService)
	adminRestaurantHandler := restaurant.NewAdminRestaurantHandler(restaurantService)
	categoryHandler := category.NewCategoryHandler(categoryService)
	reservationHandler := reservation.NewReservationHandler(reservationService, guard)
	reviewHandler := review.NewReviewHandler(reviewService, guard)
	favoriteHandler := favorite.NewFavoriteHandler(favoriteService, guard)
	subscriptionHandler := subscription.NewSubscriptionHandler(gate, guard, plan)
	adminHandler := admin.NewAdminHandler(adminService)

	loginLimit := middleware.NewRateLimiter(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst).Middleware()

	// session
	router.POST("/register", guard.GuestOnly(), authHandler.Signup)
	router.POST("/login", loginLimit, guard.GuestOnly(), authHandler.Login)
	router.POST("/refresh", memberSessionHandler.Refresh)
	router.POST("/logout", guard.RequireMember(), memberSessionHandler.Logout)

	// profile
	router.GET("/user", guard.RequireMember(), memberHandler.GetProfile)
	router.PATCH("/user", guard.RequireMember(), memberHandler.UpdateProfile)

	// catalog
	router.GET("/", guard.GuestOnly(), restaurantHandler.Home)
	router.GET("/restaurants", guard.GuestOnly(), restaurantHandler.Index)
	router.GET("/restaurants/:id", guard.GuestOnly(), restaurantHandler.Show)
	router.GET("/regular-holidays", restaurantHandler.RegularHolidays)
	router.GET("/categories", categoryHandler.List)

	// reservations
	router.GET("/reservations", guard.RequireMember(), reservationHandler.Index)
	router.GET("/restaurants/:id/reservations/create", guard.RequireSubscription(), reservationHandler.Create)
	router.POST("/restaurants/:id/reservations", guard.RequireSubscription(), reservationHandler.Store)
	router.DELETE("/reservations/:id", guard.RequireMember(), reservationHandler.Destroy)

	// reviews
	router.GET("/restaurants/:id/reviews", reviewHandler.Index)
	router.POST("/restaurants/:id/reviews", guard.RequireMember(), reviewHandler.Store)
	router.GET("/restaurants/:id/reviews/:review/edit", guard.RequireMember(), reviewHandler.Edit)
	router.PATCH("/restaurants/:id/reviews/:review", guard.RequireMember(), reviewHandler.Update)
	router.DELETE("/reviews/:id", guard.RequireMember(), reviewHandler.Destroy)

	// favorites
	router.GET("/favorites", guard.RequireMember(), favoriteHandler.Index)
	router.POST("/favorites/:restaurant_id", guard.RequireMember(), favoriteHandler.Store)
	router.DELETE("/favorites/:restaurant_id", guard.RequireMember(), favoriteHandler.Destroy)

	// subscription
	router.GET("/subscription/create", guard.RequireNoSubscription(), subscriptionHandler.Create)
	router.POST("/subscription", guard.RequireNoSubscription(), subscriptionHandler.Store)
	router.GET("/subscription/edit", guard.RequireSubscription(), subscriptionHandler.Edit)
	router.PATCH("/subscription", guard.RequireSubscription(), subscriptionHandler.Update)
	router.DELETE("/subscription", guard.RequireSubscription(), subscriptionHandler.Destroy)

	// admin
	router.POST("/admin/login", loginLimit, adminHandler.Login)
	router.POST("/admin/refresh", adminSessionHandler.Refresh)

	adminGroup := router.Group("/admin")
	adminGroup.Use(guard.RequireAdmin())
	{
		adminGroup.POST("/logout", adminSessionHandler.Logout)
		adminGroup.GET("/home", adminHandler.Home)

		adminGroup.GET("/members", adminHandler.MemberIndex)
		adminGroup.GET("/members/:id", adminHandler.MemberShow)

		adminGroup.GET("/restaurants", adminRestaurantHandler.Index)
		adminGroup.POST("/restaurants", adminRestaurantHandler.Store)
		adminGroup.POST("/restaurants/import", adminRestaurantHandler.Import)
		adminGroup.GET("/restaurants/:id", adminRestaurantHandler.Show)
		adminGroup.PATCH("/restaurants/:id", adminRestaurantHandler.Update)
		adminGroup.DELETE("/restaurants/:id", adminRestaurantHandler.Destroy)

		adminGroup.GET("/categories", categoryHandler.AdminIndex)
		adminGroup.POST("/categories", categoryHandler.Store)
		adminGroup.PATCH("/categories/:id", categoryHandler.Update)
		adminGroup.DELETE("/categories/:id", categoryHandler.Destroy)
	}
}
