// @title DevEvent API
// @version 1.0
// @description Developer events listing, bookings and admin event management.
// @BasePath /
// @securityDefinitions.apikey AdminCookie
// @in header
// @name Cookie
// @description admin_token session cookie set by POST /api/admin/login
package main

import (
	"context"
	"log"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := config.NewLogger(cfg.Environment)

	application, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
