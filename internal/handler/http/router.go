package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boardpulse/internal/domain/contract"
	"boardpulse/internal/handler/http/middleware"
	"boardpulse/internal/usecase"
)

// Router wires the HTTP handlers onto a gin engine.
type Router struct {
	engagementHandler *EngagementHandler
	boardHandler      *BoardHandler
	adminHandler      *AdminHandler
	requestsPerSecond float64
}

// NewRouter builds the handler set from its collaborators.
func NewRouter(
	engagementUsecase usecase.IEngagementUseCase,
	janitor CounterJanitor,
	reconciler ReconcilerRunner,
	notices contract.INoticeRepository,
	posts contract.IPostRepository,
	requestsPerSecond float64,
) *Router {
	return &Router{
		engagementHandler: NewEngagementHandler(engagementUsecase),
		boardHandler:      NewBoardHandler(notices, posts, engagementUsecase),
		adminHandler:      NewAdminHandler(engagementUsecase, janitor, reconciler),
		requestsPerSecond: requestsPerSecond,
	}
}

// SetupRoutes registers middleware and all API routes.
func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// rate limiter configuration
	lmt := tollbooth.NewLimiter(r.requestsPerSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	// Engagement routes. The pending listing lives under its own prefix
	// because a literal segment cannot share a level with the :id param.
	contents := v1.Group("/contents")
	{
		contents.POST("/:type/:id/view", r.engagementHandler.RecordViewHandler)
		contents.GET("/:type/:id/views", r.engagementHandler.GetTotalCountHandler)
		contents.GET("/:type/:id/views/pending", r.engagementHandler.GetPendingCountHandler)
	}
	v1.GET("/pending/:type", r.engagementHandler.ListPendingHandler)

	// Board content routes
	notices := v1.Group("/notices")
	{
		notices.POST("", r.boardHandler.CreateNoticeHandler)
		notices.GET("", r.boardHandler.ListNoticesHandler)
		notices.GET("/:id", r.boardHandler.GetNoticeHandler)
		notices.DELETE("/:id", r.boardHandler.DeleteNoticeHandler)
	}
	posts := v1.Group("/posts")
	{
		posts.POST("", r.boardHandler.CreatePostHandler)
		posts.GET("", r.boardHandler.ListPostsHandler)
		posts.GET("/:id", r.boardHandler.GetPostHandler)
		posts.DELETE("/:id", r.boardHandler.DeletePostHandler)
	}

	// Operator tooling. Authorization is the deployment's concern; these
	// routes are grouped so a gateway can guard them in one place.
	admin := v1.Group("/admin")
	{
		admin.GET("/stats", r.adminHandler.GetStatsHandler)
		admin.PUT("/counters/:type/:id", r.adminHandler.SetCounterHandler)
		admin.POST("/counters/:type/:id/reset", r.adminHandler.ResetCounterHandler)
		admin.POST("/clear", r.adminHandler.ClearCountersHandler)
		admin.POST("/drain", r.adminHandler.RunDrainHandler)
		admin.POST("/repair", r.adminHandler.RunRepairHandler)
	}
}
