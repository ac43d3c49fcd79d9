// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "artspace/docs" // swagger docs
	"artspace/internal/auth"
	"artspace/internal/bootstrap"
	"artspace/internal/config"
	"artspace/internal/middleware"
	"artspace/internal/models"
	"artspace/internal/observability"
	"artspace/internal/repository"
	"artspace/internal/service"
	"artspace/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	store          storage.Store
	location       *time.Location
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenService
	userRepo       repository.UserRepository
	artworkRepo    repository.ArtworkRepository
	videoRepo      repository.VideoRepository
	userService    *service.UserService
	artworkService *service.ArtworkService
	videoService   *service.VideoService
}

// NewServer connects the runtime dependencies and builds a server on top of them.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	rt, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, rt.DB, rt.Redis, rt.Store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.Store) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("config and database are required")
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		store:          store,
		location:       cfg.Location(),
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		userRepo:       repository.NewUserRepository(db),
		artworkRepo:    repository.NewArtworkRepository(db),
		videoRepo:      repository.NewVideoRepository(db),
	}

	maxUpload := cfg.UploadMaxBytes()
	server.tokens = auth.NewTokenService(cfg, server.userRepo)
	server.userService = service.NewUserService(server.userRepo, server.artworkRepo, server.videoRepo, server.tokens, store, maxUpload)
	server.artworkService = service.NewArtworkService(server.artworkRepo, server.userRepo, store, maxUpload)
	server.videoService = service.NewVideoService(server.videoRepo, server.userRepo, store, maxUpload)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New())

	// Propagate request ID into the user context for logging
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Uploaded images are embedded by the frontend from another origin.
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all API routes
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	if s.config.UploadBackend != "s3" && s.config.UploadDir != "" {
		app.Static(storage.LocalURLPrefix, s.config.UploadDir, fiber.Static{
			MaxAge: 3600,
		})
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)

	authRequired := s.AuthRequired()

	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.RateLimit(s.redis, middleware.RateLimitOptions{
		Env: s.config.Env, Limit: 5, Window: 10 * time.Minute, Name: "register",
	}), s.Register)
	authGroup.Post("/login", middleware.RateLimit(s.redis, middleware.RateLimitOptions{
		Env: s.config.Env, Limit: 10, Window: 5 * time.Minute, Name: "login",
	}), s.Login)

	users := api.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Get("/me", authRequired, s.GetMyProfile)
	users.Delete("/me", authRequired, s.DeleteMyAccount)
	users.Get("/:id/detail", s.GetArtistDetail)
	users.Put("/:id", authRequired, s.UpdateUser)

	artworks := api.Group("/karya_seni")
	artworks.Get("/", s.GetArtworks)
	artworks.Get("/latest", s.GetLatestArtworks)
	artworks.Get("/by-user", s.GetArtworksByOwner)
	artworks.Get("/me", authRequired, s.GetMyArtworks)
	artworks.Post("/", authRequired, s.CreateArtwork)
	artworks.Get("/:id", s.GetArtwork)
	artworks.Put("/:id", authRequired, s.UpdateArtwork)
	artworks.Delete("/:id", authRequired, s.DeleteArtwork)
	artworks.Post("/:id/like", authRequired, s.LikeArtwork)
	artworks.Post("/:id/unlike", authRequired, s.UnlikeArtwork)

	videos := api.Group("/ruang_video")
	videos.Get("/", s.GetVideos)
	videos.Get("/latest", s.GetLatestVideos)
	videos.Get("/by-user", s.GetVideosByOwner)
	videos.Get("/me", authRequired, s.GetMyVideos)
	videos.Post("/", authRequired, s.CreateVideo)
	videos.Get("/:id", s.GetVideo)
	videos.Put("/:id", authRequired, s.UpdateVideo)
	videos.Delete("/:id", authRequired, s.DeleteVideo)
	videos.Post("/:id/like", authRequired, s.ToggleVideoLike)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck pings the database and, when configured, Redis.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It resolves the bearer
// token to a live user and stores the ID in locals and the user context.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.tokens.Verify(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return models.Respond(c, err)
		}

		c.Locals(middleware.LocalUserID, user.ID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID resolves the caller when a valid token is present but does
// not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) uint {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return 0
	}
	user, err := s.tokens.Verify(c.UserContext(), header)
	if err != nil {
		return 0
	}
	return user.ID
}

// NewApp builds the Fiber app with the shared error handler and body limit.
func (s *Server) NewApp() *fiber.App {
	bodyLimit := int(s.config.UploadMaxBytes()) + 1<<20
	app := fiber.New(fiber.Config{
		AppName:   "Artspace API",
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Message: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
