package main

import (
	"fmt"
	"log"

	"cargoquote/internal/config"
	"cargoquote/internal/handler"
	"cargoquote/internal/quote"
	"cargoquote/internal/repository/postgres"
	"cargoquote/internal/router"
	"cargoquote/internal/service"
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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	versionRepo := postgres.NewVersionRepo(db)
	optionRepo := postgres.NewOptionRepo(db)
	legRepo := postgres.NewLegRepo(db)
	chargeRepo := postgres.NewChargeRepo(db)
	masterData := postgres.NewMasterDataRepo(db)

	// Initialize services
	calc := quote.NewCalculator(cfg.Pricing.CacheTTL, nil)
	optionSvc := service.NewQuoteOptionService(
		versionRepo, optionRepo, legRepo, chargeRepo, masterData,
		calc, cfg.Pricing.DefaultMarginPercent)
	versionSvc := service.NewVersionService(versionRepo, optionRepo)

	// Initialize handlers
	optionH := handler.NewQuoteOptionHandler(optionSvc)
	versionH := handler.NewVersionHandler(versionSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, optionH, versionH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
