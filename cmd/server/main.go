package main

import (
	"log"

	"github.com/gatherly/app/internal/forms"
	"github.com/gatherly/app/internal/render"
	"github.com/gatherly/app/internal/router"
	"github.com/gatherly/app/pkg/config"
	"github.com/gatherly/app/pkg/mailer"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	e := echo.New()
	router.SetupMiddleware(e)

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	e.Renderer = renderer
	e.Validator = forms.NewValidator()

	var mail mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPAddr != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	}

	err = router.SetupRoutes(e, db, router.Options{
		SessionSecret:    []byte(cfg.SessionSecret),
		ResetTokenSecret: []byte(cfg.ResetTokenSecret),
		ResetTokenTTL:    cfg.ResetTokenTTL,
		BaseURL:          cfg.BaseURL,
		Mailer:           mail,
	})
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
