package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/GoSim-25-26J-441/projects-miniapp/config"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/client"
)

const usage = `usage: projectsctl <command> [args]

commands:
  list [pages]              load the first N pages (default 1) and print the cards
  edit <id> field=value...  open the edit form for a loaded project, apply changes and save
  seed                      create the demo project catalogue through the API
  close                     press the mini app main button and wait for the close countdown`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(client.Options{
		BaseURL:   cfg.Client.BaseURL,
		PageSize:  cfg.Client.PageSize,
		Timeout:   cfg.Client.Timeout,
		RateLimit: rate.Limit(cfg.Client.RateLimit),
		Burst:     cfg.Client.Burst,
		InitData:  cfg.Client.InitData,
		Logger:    logger,
	})

	app, err := newApp(ctx, api, cfg.Client.InitData, os.Stdout, logger)
	if err != nil {
		log.Fatalf("mini app: %v", err)
	}
	defer app.close()

	switch os.Args[1] {
	case "list":
		err = app.runList(ctx, os.Args[2:])
	case "edit":
		err = app.runEdit(ctx, os.Args[2:])
	case "seed":
		err = app.runSeed(ctx)
	case "close":
		err = app.runClose()
	default:
		err = fmt.Errorf("unknown command: %s\n\n%s", os.Args[1], usage)
	}
	if err != nil {
		app.close()
		log.Fatal(err)
	}
}
