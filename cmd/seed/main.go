package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/trogers1052/stock-dashboard/internal/config"
	"github.com/trogers1052/stock-dashboard/internal/database"
	"github.com/trogers1052/stock-dashboard/internal/generator"
	"github.com/trogers1052/stock-dashboard/internal/kafka"
	"github.com/trogers1052/stock-dashboard/internal/lock"
	"github.com/trogers1052/stock-dashboard/internal/logging"
	"github.com/trogers1052/stock-dashboard/internal/seed"
	"github.com/urfave/cli"
)

func main() {
	logger := logging.New("stock-dashboard-seed")

	app := cli.NewApp()
	app.Name = "seed"
	app.Usage = "drop the stock dashboard database and fill it with synthetic price history"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "months",
			Usage: "length of the generated history in calendar months (default SEED_MONTHS)",
		},
		cli.Float64Flag{
			Name:  "volatility",
			Usage: "maximum absolute daily return (default SEED_VOLATILITY)",
		},
		cli.Int64Flag{
			Name:  "rand-seed",
			Usage: "seed for the random source; 0 picks one from the clock",
		},
	}
	app.Action = func(c *cli.Context) error {
		return run(c, logger)
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}
}

func run(c *cli.Context, logger *logrus.Entry) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.IsSet("months") {
		cfg.Seed.Months = c.Int("months")
	}
	if c.IsSet("volatility") {
		cfg.Seed.Volatility = c.Float64("volatility")
	}
	if cfg.Seed.Months <= 0 {
		return fmt.Errorf("months must be positive, got %d", cfg.Seed.Months)
	}

	randSeed := c.Int64("rand-seed")
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.WithField("database", cfg.Database.DBName).Info("Connected to database")

	params := generator.DefaultParams()
	params.Volatility = cfg.Seed.Volatility

	opts := seed.Options{
		Months: cfg.Seed.Months,
		Params: params,
		Source: rand.New(rand.NewSource(randSeed)),
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		opts.Publisher = producer
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		defer client.Close()
		opts.Locker = lock.NewRedis(client, cfg.Redis.LockKey, cfg.Redis.LockTTL)
	}

	logger.WithFields(logrus.Fields{
		"months":     opts.Months,
		"volatility": params.Volatility,
		"rand_seed":  randSeed,
	}).Info("Seeding database")

	result, err := seed.NewSeeder(db, opts, logger).Run(ctx)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"companies":    result.Companies,
		"price_points": result.PricePoints,
	}).Info("Companies and stock data have been created")
	return nil
}
