package main

import (
	"context"
	"fmt"
	"os"

	"drafthours/internal/api"
	"drafthours/internal/config"
	"drafthours/internal/container"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	c, err := container.Build(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.Shutdown(ctx)

	router := api.NewRouter(api.NewHandler(c.Estimation, c.Logger))

	addr := ":" + cfg.Server.Port
	c.Logger.Info("[API] Starting drafting estimator API on %s", addr)
	if err := router.Run(addr); err != nil {
		c.Logger.Error("[API] Server failed: %v", err)
		os.Exit(1)
	}
}
