package router

import (
	"fmt"
	"log"
	"time"

	"github.com/gatherly/app/internal/auth"
	"github.com/gatherly/app/internal/handlers"
	appMiddleware "github.com/gatherly/app/internal/middleware"
	"github.com/gatherly/app/internal/models"
	"github.com/gatherly/app/internal/repositories"
	"github.com/gatherly/app/pkg/mailer"
	"github.com/gatherly/app/pkg/token"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Options carries the secrets and collaborators the route layer needs.
type Options struct {
	SessionSecret    []byte
	ResetTokenSecret []byte
	ResetTokenTTL    time.Duration
	BaseURL          string
	Mailer           mailer.Mailer
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, opts Options) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.RSVP{},
		&models.Post{},
		&models.Follow{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}

	userRepo := repositories.NewGormUserRepository(db)
	eventRepo := repositories.NewGormEventRepository(db)
	rsvpRepo := repositories.NewGormRSVPRepository(db)
	postRepo := repositories.NewGormPostRepository(db)
	followRepo := repositories.NewGormFollowRepository(db)

	sessionManager := auth.NewSessionManager(opts.SessionSecret, userRepo)
	e.Use(sessionManager.LoadUser())
	e.Use(appMiddleware.TouchLastSeen(userRepo, sessionManager))
	requireLogin := sessionManager.RequireLogin()

	e.GET("/health", handlers.HealthCheck)

	handlers.NewAuthHandler(userRepo, sessionManager).RegisterRoutes(e)
	handlers.NewEventHandler(eventRepo, rsvpRepo, sessionManager).RegisterRoutes(e, requireLogin)
	handlers.NewRSVPHandler(rsvpRepo, eventRepo, sessionManager).RegisterRoutes(e, requireLogin)
	handlers.NewProfileHandler(userRepo, postRepo, followRepo, sessionManager).RegisterRoutes(e, requireLogin)

	resetIssuer := token.NewResetIssuer(opts.ResetTokenSecret, opts.ResetTokenTTL)
	handlers.NewPasswordResetHandler(userRepo, resetIssuer, opts.Mailer, sessionManager, opts.BaseURL).RegisterRoutes(e)

	log.Println("All routes configured.")
	return nil
}
