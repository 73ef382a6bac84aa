// Command setup-sheets creates the Mindscape tabs in the configured spreadsheet and
// seeds them with sample rows. Tabs that already exist are left alone unless
// --reseed is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-backend/infrastructure/config"
	"portfolio-backend/infrastructure/httpclient"
	"portfolio-backend/infrastructure/sheets"
)

func main() {
	reseed := flag.Bool("reseed", false, "overwrite existing tabs with the sample data")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline for the Sheets calls")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	creds := sheets.Credentials{
		Email:         cfg.Google.ServiceAccountEmail,
		PrivateKey:    cfg.Google.PrivateKey,
		SpreadsheetID: cfg.Google.SpreadsheetID,
	}
	if err := creds.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Google Sheets credentials unusable: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY and GOOGLE_SHEETS_ID.")
		os.Exit(1)
	}

	base := httpclient.NewFactory(httpclient.Options{Timeout: cfg.Upstream.Timeout, Logger: logger}).Client("google-sheets")
	client, err := sheets.NewClient(ctx, creds, base, logger)
	if err != nil {
		log.Fatalf("Failed to create sheets client: %v", err)
	}

	results, err := sheets.NewProvisioner(client, logger).Provision(ctx, *reseed)
	for _, r := range results {
		switch {
		case r.Seeded:
			fmt.Printf("✅ %s: wrote headers and %d sample rows\n", r.Title, r.Rows)
		case r.Created:
			fmt.Printf("✅ %s: created\n", r.Title)
		default:
			fmt.Printf("ℹ️  %s: already exists, left unchanged\n", r.Title)
		}
	}
	if err != nil {
		log.Fatalf("Provisioning failed: %v", err)
	}

	fmt.Printf("\nSpreadsheet ready: https://docs.google.com/spreadsheets/d/%s\n", client.SpreadsheetID())
}
