package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sallamerger/backend/config"
	httpDelivery "github.com/sallamerger/backend/internal/delivery/http"
	"github.com/sallamerger/backend/internal/infrastructure/spreadsheet"
	"github.com/sallamerger/backend/internal/infrastructure/store"
	"github.com/sallamerger/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Salla Merger Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	reader := spreadsheet.NewReader()
	writer := spreadsheet.NewWriter()
	outputs := store.NewMemoryStore()
	defer outputs.Close()
	log.Printf("Output TTL: %s", cfg.Store.TTL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		reader.SetDebug(true)
		log.Printf("Workbook reader debug mode enabled")
	}

	// Initialize usecase layer
	listingService := usecase.NewListingService(
		reader,
		writer,
		outputs,
		usecase.ListingServiceConfig{
			ProductColumn:      cfg.Listing.ProductColumn,
			MinFrequency:       cfg.Listing.MinFrequency,
			MaxCandidates:      cfg.Listing.MaxCandidates,
			FallbackCandidates: cfg.Listing.FallbackCandidates,
			TokensPerProduct:   cfg.Listing.TokensPerProduct,
			HeaderMinCells:     cfg.Listing.HeaderMinCells,
			OutputTTL:          cfg.Store.TTL,
			EnableDebugLogging: cfg.Listing.EnableDebugLogging,
		},
	)

	log.Printf("Listing: column=%q, min_frequency=%d, candidates=%d/%d, language=%s",
		cfg.Listing.ProductColumn,
		cfg.Listing.MinFrequency,
		cfg.Listing.MaxCandidates,
		cfg.Listing.FallbackCandidates,
		cfg.Listing.Language)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(listingService, httpDelivery.HandlerConfig{
		Language:       cfg.Listing.Language,
		PreviewRows:    cfg.Listing.PreviewRows,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
	})

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
