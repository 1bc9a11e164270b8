package main

import (
	"context"
	"fmt"
	"os"

	"drafthours/internal/config"
	"drafthours/internal/container"
	"drafthours/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	c, err := container.Build(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.Shutdown(ctx)

	app, err := ui.NewApp(ui.Config{Port: cfg.UI.Port}, c.Estimation, c.Logger)
	if err != nil {
		c.Logger.Error("Failed to create UI app: %v", err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		c.Logger.Error("[UI] Server failed: %v", err)
		os.Exit(1)
	}
}
