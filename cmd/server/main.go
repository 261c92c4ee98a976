package main

import (
	"fmt"
	"log"

	"mdocr/internal/archive/noop"
	s3archive "mdocr/internal/archive/s3"
	"mdocr/internal/cleanup"
	"mdocr/internal/config"
	"mdocr/internal/handler"
	"mdocr/internal/mistral"
	"mdocr/internal/pdf"
	"mdocr/internal/port"
	"mdocr/internal/router"
	"mdocr/internal/service"
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

	client := mistral.NewClient(&cfg.Mistral)

	var cleaner port.TextCleaner
	if cfg.Cleanup.Enabled() {
		cleaner = cleanup.NewCleaner(&cfg.Cleanup)
	} else {
		cleaner = cleanup.NewNoopCleaner()
		log.Printf("cleanup disabled: no MDOCR_CLEANUP_API_KEY set")
	}

	var archive port.ArchiveStore
	if cfg.Archive.Enabled() {
		archive, err = s3archive.NewStore(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize archive store: %w", err)
		}
	} else {
		archive = noop.NewStore()
	}

	convSvc := service.NewConversionService(client, client, cleaner, archive)
	registry := service.NewDownloadRegistry()

	convertH := handler.NewConvertHandler(convSvc, registry, pdf.PageCount, &cfg.Upload)
	healthH := handler.NewHealthHandler(cfg.Mistral.APIKey != "")

	r := router.Setup(convertH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Addr())
	if err := r.Run(cfg.Server.Addr()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
