// Package server assembles the HTTP routes for the lab service.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"comlab/internal/config"
	_ "comlab/internal/docs" // Import swagger docs
	"comlab/internal/handlers"
	"comlab/internal/metrics"
	"comlab/internal/middleware"
	"comlab/internal/ratelimit"
	"comlab/internal/services"
	"comlab/internal/validator"
)

// Dependencies are the collaborators the router needs. Limiter may be nil to
// disable kiosk throttling; Registry defaults to a fresh registry.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Limiter  ratelimit.Limiter
	Registry *prometheus.Registry
	Clock    func() time.Time
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	validator.Register()

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	collector := metrics.NewCollector(registry)

	// Initialize services
	db := deps.DB
	userService := services.NewComputerUserService(db)
	unitService := services.NewComputerUnitService(db)
	logService := services.NewActivityLogService(db)
	kioskOpts := []services.KioskOption{services.WithRecorder(collector)}
	if deps.Clock != nil {
		kioskOpts = append(kioskOpts, services.WithClock(deps.Clock))
	}
	kioskService := services.NewKioskService(db, logService, kioskOpts...)
	dashboardService := services.NewDashboardService(db, unitService)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	unitHandler := handlers.NewUnitHandler(unitService)
	logHandler := handlers.NewActivityLogHandler(logService)
	kioskHandler := handlers.NewKioskHandler(kioskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(deps.Config.CORSAllowedOrigins))

	kioskLimit := middleware.RateLimit(deps.Limiter, retryAfter(deps.Config.KioskRateLimit))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	// API v1 group
	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	users.GET("", userHandler.ListUsers)
	users.POST("", userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)
	users.POST("/:id/status", userHandler.UpdateUserStatus)

	units := v1.Group("/units")
	units.GET("", unitHandler.ListUnits)
	units.POST("", unitHandler.CreateUnit)
	units.GET("/:id", unitHandler.GetUnit)
	units.PUT("/:id", unitHandler.UpdateUnit)

	logs := v1.Group("/logs")
	logs.GET("", logHandler.ListLogs)
	logs.GET("/export", logHandler.ExportLogs)

	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	kiosk := v1.Group("/kiosk")
	kiosk.Use(kioskLimit)
	kiosk.POST("/identify", kioskHandler.Identify)
	kiosk.POST("/finalize", kioskHandler.Finalize)
	kiosk.GET("/status/:student_id", kioskHandler.Status)
	kiosk.POST("/sign-out", kioskHandler.SignOut)

	// Page and form routes
	router.GET("/", kioskHandler.KioskPage)
	router.POST("/", kioskLimit, kioskHandler.KioskSubmit)
	router.GET("/admins", dashboardHandler.DashboardPage)

	computerUsers := router.Group("/computer_users")
	computerUsers.GET("/", userHandler.UsersPage)
	computerUsers.POST("/add/", userHandler.AddUserForm)
	computerUsers.POST("/edit/:id/", userHandler.EditUserForm)
	computerUsers.GET("/view/:id/", userHandler.ViewUserDetails)

	computerUnits := router.Group("/computer_units")
	computerUnits.GET("/", unitHandler.UnitsPage)
	computerUnits.POST("/add/", unitHandler.AddUnitForm)
	computerUnits.POST("/edit/:id/", unitHandler.EditUnitForm)

	router.GET("/logs/", logHandler.LogsPage)

	return router
}

// retryAfter is how long a throttled kiosk waits for its next token.
func retryAfter(perMinute int) time.Duration {
	if perMinute <= 0 {
		return time.Minute
	}
	return time.Minute / time.Duration(perMinute)
}
