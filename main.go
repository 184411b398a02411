package main

import (
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"store/pkg/app"
	"store/pkg/domain/model"
	"store/pkg/domain/service"
	"store/pkg/infrastructure/logging"
	"store/pkg/infrastructure/memory"
	"store/transport"
)

func main() {
	cliApp := &cli.App{
		Name:  "store",
		Usage: "menu-driven terminal store simulation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-file", Usage: "append structured logs to `FILE` instead of stderr"},
			&cli.StringFlag{Name: "log-level", Usage: "logrus level (debug, info, warn, error)"},
			&cli.Int64Flag{Name: "seed", Usage: "rng seed, 0 seeds from the clock"},
		},
		Action: run,
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.WithError(err).Fatal("store terminated")
	}
}

func run(c *cli.Context) error {
	cfg, err := app.Load()
	if err != nil {
		return err
	}
	if v := c.String("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}

	setupLogging(cfg)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	catalog := memory.NewProductCatalog(memory.SeedCatalog(cfg.RestockDelay))
	users := memory.NewUserRegistry()

	alerts := transport.NewAlertFeed()
	dispatcher := logging.NewDispatcher(alerts)

	now := time.Now
	stock := service.NewStockService(catalog, dispatcher, now, rng, service.StockConfig{
		DepleteWindow: cfg.DepleteWindow,
		RestockMin:    cfg.RestockMin,
		RestockMax:    cfg.RestockMax,
	})
	cart := service.NewCartService(catalog, users, model.NewCart(), dispatcher, now)
	accounts := service.NewAccountService(users, dispatcher, now)

	console := transport.NewConsole(os.Stdin, os.Stdout, transport.Deps{
		Stock:    stock,
		Cart:     cart,
		Accounts: accounts,
		Products: catalog,
		Alerts:   alerts,
	})
	return console.Run()
}

func setupLogging(cfg app.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.WithError(err).Warn("cannot open log file, logging to stderr")
			return
		}
		log.SetOutput(file)
	}
}
