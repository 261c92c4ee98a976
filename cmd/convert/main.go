// Command convert runs the PDF-to-markdown pipeline once from the
// command line, without starting the web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"mdocr/internal/archive/noop"
	"mdocr/internal/cleanup"
	"mdocr/internal/config"
	"mdocr/internal/mistral"
	"mdocr/internal/port"
	"mdocr/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		noImages  = flag.Bool("no-images", false, "do not request image descriptions")
		noCleanup = flag.Bool("no-cleanup", false, "skip the AI cleanup pass")
		out       = flag.String("o", "", "write markdown to this path instead of stdout")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: convert [flags] <file.pdf>")
	}
	path := flag.Arg(0)

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
	}
	svc := service.NewConversionService(client, client, cleaner, noop.NewStore())

	result, err := svc.ConvertFile(context.Background(), path, service.ConversionInput{
		IncludeImageDescriptions: !*noImages,
		Cleanup:                  !*noCleanup,
		Progress: func(percent int, stage string) {
			fmt.Fprintf(os.Stderr, "%3d%% %s\n", percent, stage)
		},
	})
	if err != nil {
		return fmt.Errorf("✗ Error processing PDF: %w", err)
	}

	fmt.Fprintln(os.Stderr, result.Status)
	if *out != "" {
		if err := os.WriteFile(*out, []byte(result.Markdown), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", *out, err)
		}
		return nil
	}
	fmt.Print(result.Markdown)
	return nil
}
