package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/evotodo/todo-backend/internal/api/handler"
	"github.com/evotodo/todo-backend/internal/api/middleware"
	"github.com/evotodo/todo-backend/internal/core/ports"
)

// Deps carries the constructed dependencies the router wires together.
type Deps struct {
	Mongo       *mongo.Database
	Redis       *redis.Client
	Tasks       ports.TaskService
	Activity    ports.ActivityService
	JWTSecret   string
	CORSOrigins []string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if len(d.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.CORSOrigins,
		}))
	}
	e.Use(echoprometheus.NewMiddleware("todo"))

	// --- Unprotected routes ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)
	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Protected routes ---
	// Every route under /api/:user_id passes the same fixed pipeline: token
	// verification, then path/identity reconciliation, then the handler. No
	// route may register here without both stages.
	taskHandler := handler.NewTaskHandler(d.Tasks)
	activityHandler := handler.NewActivityHandler(d.Activity)

	g := e.Group("/api/:user_id", middleware.Auth(d.JWTSecret), middleware.TenantGuard())
	g.POST("/tasks", taskHandler.Create)
	g.GET("/tasks", taskHandler.List)
	g.GET("/tasks/stats", taskHandler.Stats)
	g.GET("/tasks/:task_id", taskHandler.Get)
	g.PUT("/tasks/:task_id", taskHandler.Update)
	g.PATCH("/tasks/:task_id", taskHandler.Patch)
	g.DELETE("/tasks/:task_id", taskHandler.Delete)
	g.GET("/activity", activityHandler.List)

	return e
}
