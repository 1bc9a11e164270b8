// Command migrate applies the schema to DATABASE_URL. An optional argument
// overrides the URL.
package main

import (
	"context"
	"fmt"
	"os"

	"drafthours/adapters/postgres"
	"drafthours/internal/config"
	"drafthours/internal/migration"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	url := cfg.Database.URL
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	db, err := postgres.Open(context.Background(), cfg.Database.Driver, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("schema at version %s\n", migration.NewRunner().Version())
}
