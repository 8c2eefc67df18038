package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"reservebook/internal/handler/api"
	"reservebook/internal/handler/middleware"
	"reservebook/internal/handler/view"
	"reservebook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	reservationHandler *api.ReservationHandler,
	systemHandler *api.SystemHandler,
	limiter middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg, logger)
	engine.SetHTMLTemplate(view.Templates())
	setupRoutes(engine, reservationHandler, systemHandler, mutationMiddleware(cfg.RateLimit, limiter, logger))
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

// mutationMiddleware guards the endpoints that write to the database.
func mutationMiddleware(cfg config.RateLimitConfig, limiter middleware.RateLimiter, logger *slog.Logger) []gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return nil
	}
	return []gin.HandlerFunc{middleware.RateLimit(limiter, logger, cfg.FailOpen)}
}

func setupRoutes(engine *gin.Engine, reservationHandler *api.ReservationHandler, systemHandler *api.SystemHandler, mutationMw []gin.HandlerFunc) {
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	root := engine.Group("")
	addRoutes(root, []route{
		{Method: http.MethodGet, Path: "/", Handler: reservationHandler.Index},
		{Method: http.MethodGet, Path: "/events", Handler: reservationHandler.Events},
		{Method: http.MethodGet, Path: "/reservations", Handler: reservationHandler.List},
		{Method: http.MethodGet, Path: "/reservations/:id", Handler: reservationHandler.Show},
		{Method: http.MethodPost, Path: "/reserve", Handler: reservationHandler.Reserve, Mw: mutationMw},
		{Method: http.MethodPost, Path: "/delete/:id", Handler: reservationHandler.Delete, Mw: mutationMw},
	})

	addRoutes(root, []route{
		{Method: http.MethodGet, Path: "/healthz", Handler: systemHandler.Healthz},
		{Method: http.MethodGet, Path: "/readyz", Handler: systemHandler.Readyz},
		{Method: http.MethodGet, Path: "/initdb", Handler: systemHandler.InitDB, Mw: mutationMw},
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
