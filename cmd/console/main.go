package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheCasperSolangi/arc-fun-front/internal/console/cli"
	"github.com/TheCasperSolangi/arc-fun-front/internal/console/config"
	"github.com/TheCasperSolangi/arc-fun-front/internal/logging"
)

func main() {
	log := logging.NewDefault()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err.Error())
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Error(ctx, "console exited with error", "error", err.Error())
		os.Exit(1)
	}
}
