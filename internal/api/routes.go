package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nclx/gymnotetaker/internal/metrics"
	"nclx/gymnotetaker/internal/service"
)

// Services are the dependencies of the HTTP API.
type Services struct {
	Accounts service.AccountService
	Profiles service.ProfileService
	Workouts service.WorkoutService
	Sets     service.SetService
	Export   service.ExportService
}

type RouterOptions struct {
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer
	// LoginLimiter is optional; without it the login route is not rate limited.
	LoginLimiter   RequestRateLimiter
	LoginPerMinute int
}

// NewRouter builds a gin engine with the shared middleware and all routes.
func NewRouter(services Services, opts RouterOptions) *gin.Engine {
	if opts.Metrics == nil {
		m, reg := metrics.NewTestManagerAndRegistry()
		opts.Metrics, opts.Gatherer = m, reg
	}

	router := gin.New()
	router.Use(Recovery(opts.Metrics), RequestLogger(), RequestMetrics(opts.Metrics))
	SetupRoutes(router, services, opts)
	return router
}

func SetupRoutes(router *gin.Engine, services Services, opts RouterOptions) {
	authHandler := NewAuthHandler(services.Accounts, services.Profiles, opts.Metrics)
	workoutHandler := NewWorkoutHandler(services.Workouts, opts.Metrics)
	setHandler := NewSetHandler(services.Sets, opts.Metrics)
	exportHandler := NewExportHandler(services.Export, opts.Metrics)

	authMiddleware := AuthMiddleware(services.Accounts)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			if opts.LoginLimiter != nil {
				authGroup.POST("/login", RateLimit(opts.LoginLimiter, "login", opts.LoginPerMinute), authHandler.Login)
			} else {
				authGroup.POST("/login", authHandler.Login)
			}
			authGroup.DELETE("/session", authMiddleware, authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/users", authHandler.CreateProfile)
		protected.GET("/users/:userId/workouts", workoutHandler.ListUserWorkouts)

		protected.POST("/workouts", workoutHandler.CreateWorkout)
		protected.GET("/workouts/:workoutId", workoutHandler.GetWorkout)
		protected.POST("/workouts/:workoutId/exercises", workoutHandler.AddExercise)

		protected.POST("/exercises/:exerciseId/sets", setHandler.CreateSet)
		protected.GET("/exercises/:exerciseId/sets", setHandler.ListSets)

		protected.POST("/export", exportHandler.Export)
		protected.GET("/exports", exportHandler.ListExports)
	}
}
