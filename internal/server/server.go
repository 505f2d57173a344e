// Package server assembles the Fiber application: middleware, public and
// protected routes, and the central error handler.
package server

import (
	"io"

	"mesto/internal/config"
	"mesto/internal/handlers"
	"mesto/internal/middleware"
	"mesto/internal/repositories"
	"mesto/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppName is reported in the Fiber startup banner.
const AppName = "mesto"

// Deps are the collaborators New wires into the application.
type Deps struct {
	Config config.Config
	DB     *gorm.DB
	Logger *zap.Logger

	// Events receives activity events. Nil disables publishing.
	Events services.EventPublisher
	// CrashScheduler runs the crash-test panic. Nil means handlers.AfterResponse.
	CrashScheduler handlers.Scheduler
	// AccessLog is where request lines are written. Nil means stdout.
	AccessLog io.Writer
}

// New builds the application. Route order matters: the auth middleware is
// registered after the public routes and before everything else, so any
// later route, including the not-found fallback, requires a token.
func New(deps Deps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	opts := []services.Option{services.WithLogger(log)}
	if deps.Events != nil {
		opts = append(opts, services.WithEvents(deps.Events))
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	cardRepo := repositories.NewGORMCardRepository(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, deps.Config.JWTSecret, deps.Config.TokenTTL, opts...)
	userService := services.NewUserService(userRepo, opts...)
	cardService := services.NewCardService(cardRepo, opts...)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	cardHandler := handlers.NewCardHandler(cardService)

	app := fiber.New(fiber.Config{
		AppName:               AppName,
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: deps.Config.Production,
	})

	// --- Middleware ---
	app.Use(fiberrecover.New())
	loggerCfg := fiberlogger.Config{}
	if deps.AccessLog != nil {
		loggerCfg.Output = deps.AccessLog
	}
	app.Use(fiberlogger.New(loggerCfg))
	app.Use(helmet.New())
	app.Use(cors.New())

	// --- Public routes ---
	if deps.Config.CrashTestEnabled {
		app.Get("/crash-test", handlers.NewCrashTestHandler(deps.CrashScheduler))
	}
	authHandler.RegisterRoutes(app)

	// --- Protected routes ---
	app.Use(middleware.AuthRequired(authService, log))
	userHandler.RegisterRoutes(app)
	cardHandler.RegisterRoutes(app)

	app.Use(handlers.HandleNotFound)

	return app
}
