package app

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nodefit/internal/config"
	"nodefit/internal/handlers"
	"nodefit/internal/middleware"
	"nodefit/internal/repositories"
	"nodefit/internal/services"
	"nodefit/pkg/gemini"
	"nodefit/pkg/logger"
	"nodefit/pkg/weather"
)

// Options are the collaborators of the application. Nil fields fall back to
// the clients described by Config, or to nothing when Config leaves them
// unset.
type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Generator services.Generator
	Weather   services.WeatherSource
	Events    services.EventPublisher
	Clock     services.Clock
	Logger    *zap.Logger
	// RequestLog enables the per-request access log.
	RequestLog bool
}

// Services groups every service of the application.
type Services struct {
	Auth        *services.AuthService
	Profiles    *services.ProfileService
	Reports     *services.ReportService
	Streaks     *services.StreakService
	Badges      *services.BadgeService
	Meals       *services.MealService
	Tasks       *services.TaskService
	Cycles      *services.CycleService
	Insights    *services.InsightService
	Environment *services.EnvironmentService
	Drafts      *services.DraftService
	Session     *services.Session
}

// App is the HTTP application and the services behind it.
type App struct {
	Fiber    *fiber.App
	Services *Services
}

// NewGenerator returns a Gemini client, or nil when no API key is set.
func NewGenerator(cfg *config.Config) services.Generator {
	if cfg == nil || cfg.GeminiAPIKey == "" {
		return nil
	}
	return &gemini.Client{
		BaseURL:    cfg.GeminiBaseURL,
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewWeatherSource returns the weather and air quality client.
func NewWeatherSource(cfg *config.Config) services.WeatherSource {
	if cfg == nil {
		return nil
	}
	return &weather.Client{
		WeatherBaseURL:    cfg.WeatherBaseURL,
		AirQualityBaseURL: cfg.AirQualityBaseURL,
		APIKey:            cfg.OpenWeatherAPIKey,
		HTTPClient:        &http.Client{Timeout: 15 * time.Second},
	}
}

// NewServices wires repositories and services over db.
func NewServices(opts Options) *Services {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{JWTSecret: "nodefit-local-secret", SessionTTL: 720 * time.Hour}
	}
	log := logger.OrNop(opts.Logger)
	db := opts.DB

	gen := opts.Generator
	if gen == nil {
		gen = NewGenerator(opts.Config)
	}
	source := opts.Weather
	if source == nil {
		source = NewWeatherSource(opts.Config)
	}

	store := repositories.NewGORMKeyValueRepository(db)

	s := &Services{}
	s.Badges = services.NewBadgeService(repositories.NewGORMBadgeRepository(db), opts.Events, log.Named("badges"))
	s.Auth = services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.SessionTTL, cfg.BcryptCost, opts.Events, log.Named("auth"))
	s.Profiles = services.NewProfileService(repositories.NewGORMProfileRepository(db), opts.Events, log.Named("profiles"))
	s.Streaks = services.NewStreakService(repositories.NewGORMStreakRepository(db), s.Badges, log.Named("streaks"))
	s.Insights = services.NewInsightService(gen, log.Named("insights"))
	s.Reports = services.NewReportService(repositories.NewGORMReportRepository(db), s.Insights, s.Badges, opts.Events, log.Named("reports"))
	s.Meals = services.NewMealService(repositories.NewGORMMealRepository(db), s.Insights, s.Badges, opts.Events, log.Named("meals"))
	s.Tasks = services.NewTaskService(repositories.NewGORMTaskRepository(db), s.Insights, log.Named("tasks"))
	s.Cycles = services.NewCycleService(repositories.NewGORMCycleRepository(db), log.Named("cycles"))
	s.Environment = services.NewEnvironmentService(source, log.Named("environment"))
	s.Drafts = services.NewDraftService(store)
	if opts.Clock != nil {
		s.Streaks.WithClock(opts.Clock)
		s.Cycles.WithClock(opts.Clock)
	}
	s.Session = services.NewSession(s.Auth, s.Profiles, s.Streaks, s.Meals, s.Drafts, store, log.Named("session"))
	return s
}

// New builds the Fiber application. The session is not restored; call
// Services.Session.Init before serving.
func New(opts Options) *App {
	log := logger.OrNop(opts.Logger)
	s := NewServices(opts)

	app := fiber.New(fiber.Config{
		AppName:   "nodefit",
		BodyLimit: 16 * 1024 * 1024, // food photos arrive inline
	})
	app.Use(recover.New())
	if opts.RequestLog {
		app.Use(fiberlogger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		state := s.Session.State()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":        "healthy",
			"time":          time.Now().Format(time.RFC3339),
			"authenticated": state.Authenticated,
			"events":        opts.Events != nil,
		})
	})

	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	handlers.NewAuthHandler(s.Session, log).RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.SessionRequired(s.Session, s.Auth, log))
	handlers.NewDraftHandler(s.Drafts, log).RegisterRoutes(protectedRoutes)
	handlers.NewEnvironmentHandler(s.Environment, log).RegisterRoutes(protectedRoutes)
	handlers.NewProfileHandler(s.Session, log).RegisterRoutes(protectedRoutes)
	handlers.NewProgressHandler(s.Session, s.Streaks, s.Badges, log).RegisterRoutes(protectedRoutes)
	handlers.NewReportHandler(s.Session, s.Reports, s.Environment, log).RegisterRoutes(protectedRoutes)
	handlers.NewMealHandler(s.Session, s.Meals, log).RegisterRoutes(protectedRoutes)
	handlers.NewTaskHandler(s.Session, s.Tasks, log).RegisterRoutes(protectedRoutes)
	handlers.NewCycleHandler(s.Session, s.Cycles, log).RegisterRoutes(protectedRoutes)
	handlers.NewInsightHandler(s.Session, s.Insights, s.Environment, log).RegisterRoutes(protectedRoutes)

	return &App{Fiber: app, Services: s}
}
