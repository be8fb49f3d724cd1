package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/Kanyapat-samee/Bakeria/internal/application/auth"
	"github.com/Kanyapat-samee/Bakeria/internal/application/order"
	"github.com/Kanyapat-samee/Bakeria/internal/application/session"
	"github.com/Kanyapat-samee/Bakeria/internal/infrastructure/identity"
	infrapdf "github.com/Kanyapat-samee/Bakeria/internal/infrastructure/pdf"
	"github.com/Kanyapat-samee/Bakeria/internal/infrastructure/postgres"
	infraredis "github.com/Kanyapat-samee/Bakeria/internal/infrastructure/redis"
	httpRouter "github.com/Kanyapat-samee/Bakeria/internal/interfaces/http"
	"github.com/Kanyapat-samee/Bakeria/pkg/config"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	cartRepo := infraredis.NewCartRepository(redisClient, cfg.Redis.Namespace)

	// Dos pools de identidad sobre el mismo almacén: clientes de la tienda
	// y staff de la consola. Cada uno con su secreto y su resolver.
	customerProvider := identity.NewLocalProvider(userRepo, cfg.Auth.Customer, log)
	adminProvider := identity.NewLocalProvider(userRepo, cfg.Auth.Admin, log)
	customerResolver := appauth.NewResolver(cfg.Auth.Customer.Name, customerProvider, log)
	adminResolver := appauth.NewResolver(cfg.Auth.Admin.Name, adminProvider, log)

	sessions := session.NewManager(cartRepo, log)

	orderUC := order.NewUseCase(orderRepo, log)
	board := order.NewBoard(orderUC)

	receipts := infrapdf.NewReceiptGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bakeria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerResolver: customerResolver,
		AdminResolver:    adminResolver,
		Registrar:        customerProvider,
		Sessions:         sessions,
		Products:         productRepo,
		Orders:           orderUC,
		Board:            board,
		Receipts:         receipts,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
