package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"docverify/internal/app"
	"docverify/internal/config"
	"docverify/internal/handler"
	"docverify/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(context.Background(), cfg, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	// Initialize handlers
	comparisonH := handler.NewComparisonHandler(a.Service, cfg.Documents.MaxFileSize())
	templateH := handler.NewTemplateHandler(a.Service)
	healthH := handler.NewHealthHandler(a.Templates)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, comparisonH, templateH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
