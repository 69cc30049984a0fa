package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "github.com/ton-connect/kit-sub008/docs"
	"github.com/ton-connect/kit-sub008/limits"
	"github.com/ton-connect/kit-sub008/status"
	"github.com/ton-connect/kit-sub008/storage"
	"github.com/ton-connect/kit-sub008/tonapi"
	"github.com/ton-connect/kit-sub008/trace"
)

// Command-line flags
var (
	redisAddr      = flag.String("redis", "localhost:6379", "Redis server dsn")
	traceSourceURL = flag.String("trace-source", "https://toncenter.com", "Trace source base URL")
	traceSourceKey = flag.String("trace-source-api-key", "", "Trace source API key")
	serverPort     = flag.Int("port", 8080, "Server port")
	prefork        = flag.Bool("prefork", false, "Use prefork")
	pendingTTL     = flag.Duration("pending-ttl", 300*time.Second, "Pending transaction TTL")
	fallbackFlag   = flag.String("fallback-policy", "root", "Failure policy for unrecognized traces: root or any")
	maxTxTon       = flag.Float64("max-tx-ton", 0, "Per-transaction cap in TON, 0 disables")
	maxDailyTon    = flag.Float64("max-daily-ton", 0, "Rolling daily spend cap in TON, 0 disables")
	maxWallets     = flag.Int("max-wallets", 0, "Max wallets per user, 0 disables")
	logLevel       = flag.String("loglevel", "info", "Log level")
)

var (
	log       *logrus.Logger
	rdb       *redis.Client
	store     *storage.Redis
	statusSvc *status.Service
	limitsMgr *limits.Manager
)

// @title TON Wallet Transactions API
// @version 0.0.1
// @description	Pending transaction lifecycle and trace status resolution for TON wallets.
// @basePath /api/wallet/
func main() {
	flag.Parse()

	log = logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("loglevel", *logLevel).Warn("Unknown log level, using info")
	}

	fallback, err := trace.ParseFallbackPolicy(*fallbackFlag)
	if err != nil {
		log.Fatal(err)
	}

	rdb = redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	store = storage.NewRedis(rdb)

	client := tonapi.NewClient(*traceSourceURL, *traceSourceKey)
	statusSvc = status.NewService(client, trace.NewResolver(fallback), log)
	limitsMgr = limits.NewManager(limits.Config{
		MaxTxAmountTon:    *maxTxTon,
		MaxDailyAmountTon: *maxDailyTon,
		MaxWalletsPerUser: *maxWallets,
	})

	config := fiber.Config{
		AppName:     "TON Wallet Transactions API",
		Concurrency: 256 * 1024,
		Prefork:     *prefork,
	}
	app := fiber.New(config)

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return nil
	})

	app.Use("/api/wallet/", func(c *fiber.Ctx) error {
		c.Accepts("application/json")
		start := time.Now()
		err := c.Next()
		stop := time.Now()
		c.Append("Server-timing", fmt.Sprintf("app;dur=%v", stop.Sub(start).String()))
		return err
	})

	app.Get("/healthcheck", healthCheck)

	app.Post("/api/wallet/v1/pending", createPendingTransaction)
	app.Get("/api/wallet/v1/pending", listPendingTransactions)
	app.Post("/api/wallet/v1/pending/:id/confirm", confirmPendingTransaction)
	app.Post("/api/wallet/v1/pending/:id/cancel", cancelPendingTransaction)
	app.Get("/api/wallet/v1/status", getTransactionStatus)
	app.Post("/api/wallet/v1/status", getTransactionStatusByBoc)
	app.Post("/api/wallet/v1/wallets", registerWallet)
	app.Get("/api/wallet/v1/wallets", listWallets)

	var swaggerConfig = swagger.Config{
		Title:           "TON Wallet Transactions API - Swagger UI",
		Layout:          "BaseLayout",
		DeepLinking:     true,
		TryItOutEnabled: true,
	}
	app.Get("/api/wallet/*", swagger.New(swaggerConfig))

	bind := fmt.Sprintf(":%d", *serverPort)
	log.WithField("bind", bind).Info("Starting server")
	log.Fatal(app.Listen(bind))
}
