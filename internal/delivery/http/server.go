package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/region-service/internal/config"
	"github.com/region-service/internal/delivery/http/handler"
	"github.com/region-service/internal/delivery/http/middleware"
	"github.com/region-service/internal/metrics"
	"github.com/region-service/internal/pkg/errors"
	"github.com/region-service/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Handlers - обработчики, которые монтирует сервер
type Handlers struct {
	User    *handler.UserHandler
	Region  *handler.RegionHandler
	Geocode *handler.GeocodeHandler
	Health  *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Collector
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Region Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		metrics:  collector,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (тесты через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestLogger(s.logger, s.metrics))
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)

	// User routes
	users := api.Group("/users")
	users.Post("/", s.handlers.User.Create)
	users.Get("/", s.handlers.User.List)
	users.Get("/:id", s.handlers.User.Get)
	users.Put("/:id", s.handlers.User.Update)
	users.Delete("/:id", s.handlers.User.Delete)

	// Region routes; геозапросы регистрируются раньше /:id
	regions := api.Group("/regions")
	regions.Get("/containing", s.handlers.Region.Containing)
	regions.Get("/within-distance", s.handlers.Region.WithinDistance)
	regions.Post("/", s.handlers.Region.Create)
	regions.Get("/", s.handlers.Region.List)
	regions.Get("/:id", s.handlers.Region.Get)
	regions.Put("/:id", s.handlers.Region.Update)
	regions.Delete("/:id", s.handlers.Region.Delete)

	// Geocode
	api.Post("/geocode/resolve", s.handlers.Geocode.Resolve)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки fiber (404 маршрута, 405, паники) в общем формате ответа
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, errors.ErrInternalServer)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New("HTTP_ERROR", err.Error(), code),
		})
	}
}
