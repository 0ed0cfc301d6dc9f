// Package server wires the mock routes, the proxy gateway and the catalog
// endpoints into one fiber application.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/config"
	"apiexplorer/internal/logger"
	"apiexplorer/internal/mock"
	"apiexplorer/internal/openapi"
	"apiexplorer/internal/proxy"
)

const appName = "API Explorer"

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	catalog *catalog.Catalog
	log     *zap.Logger
}

func New(cfg *config.Config, c *catalog.Catalog, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               appName,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	s := &Server{app: app, cfg: cfg, catalog: c, log: log}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) setupMiddleware() {
	s.app.Use(fiberrecover.New(fiberrecover.Config{EnableStackTrace: true}))
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(logger.Middleware(s.log))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-API-Key",
		ExposeHeaders:    "Content-Length,Content-Type,Content-Disposition",
		AllowCredentials: false,
		MaxAge:           86400,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/api/catalog", func(c *fiber.Ctx) error {
		return c.JSON(s.catalog.Categories())
	})
	s.app.Get("/openapi.json", func(c *fiber.Ctx) error {
		return c.JSON(openapi.Document(s.catalog, c.BaseURL()))
	})

	proxy.New(proxy.Config{
		Origin:  s.cfg.Remote.Origin,
		Timeout: s.cfg.Remote.Timeout,
		Logger:  s.log.Named("proxy"),
	}).Register(s.app)

	mock.New(s.catalog, s.cfg.Mock.Delay, s.log.Named("mock")).Register(s.app)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr()
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", addr), zap.Int("endpoints", s.catalog.Len()))
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
