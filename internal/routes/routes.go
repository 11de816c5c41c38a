package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/sango-pay/sango_pay/internal/auth"
	"github.com/sango-pay/sango_pay/internal/config"
	"github.com/sango-pay/sango_pay/internal/identity"
	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/middleware"
	"github.com/sango-pay/sango_pay/internal/notification"
	"github.com/sango-pay/sango_pay/internal/query"
	"github.com/sango-pay/sango_pay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Store backends are
// chosen here: Postgres when a pool is supplied, in-memory otherwise (dev and
// tests only).
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods: "GET,POST,OPTIONS",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var (
		accounts ledger.AccountStore
		txlog    ledger.TransactionLog
		userRepo identity.Repository
	)
	if d.DB != nil {
		accounts = ledger.NewPostgresAccounts(d.DB)
		txlog = ledger.NewPostgresLog(d.DB)
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		accounts = ledger.NewInMemoryAccounts()
		txlog = ledger.NewInMemoryLog()
		userRepo = identity.NewMemoryRepository()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	engine := wallet.NewService(accounts, txlog, notifier)
	queries := query.NewService(accounts, txlog)
	identitySvc := identity.NewService(userRepo, accounts)
	authSvc := auth.NewService(d.Cfg)

	authHandler := auth.NewHandler(identitySvc, authSvc)
	walletHandler := wallet.NewHandler(engine)
	queryHandler := query.NewHandler(queries)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(authSvc)
	protected := api.Group("", jwtmw)
	RegisterWalletRoutes(protected, walletHandler, queryHandler)

	return nil
}
