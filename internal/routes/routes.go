package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rollcall/rollcall/internal/config"
	"github.com/rollcall/rollcall/internal/middleware"
	"github.com/rollcall/rollcall/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Dev may run without Postgres or Redis; anything else must not.
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
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	var repo user.Repository
	if d.DB != nil {
		repo = user.NewPostgresRepository(d.DB)
	} else {
		repo = user.NewMemoryRepository()
	}

	var listingCache *user.ListingCache
	if d.Cache != nil {
		listingCache = user.NewListingCache(d.Cache, d.Cfg.CacheTTL, d.Logger)
	}

	svc := user.NewService(repo, listingCache, d.Logger, user.ServiceConfig{
		StoreTimeout:   d.Cfg.StoreTimeout,
		LogStoreDetail: !d.Cfg.IsProduction(),
	})
	handler := user.NewHandler(svc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterUserRoutes(api, handler)

	return nil
}
