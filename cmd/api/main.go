package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/farmapunto/pos-api/internal/application/auth"
	"github.com/farmapunto/pos-api/internal/application/sale"
	"github.com/farmapunto/pos-api/internal/application/usecase"
	"github.com/farmapunto/pos-api/internal/infrastructure/cache"
	"github.com/farmapunto/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/farmapunto/pos-api/internal/interfaces/http"
	"github.com/farmapunto/pos-api/pkg/config"
	"github.com/farmapunto/pos-api/pkg/logger"
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

	productoRepo := postgres.NewProductoRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	farmaciaRepo := postgres.NewFarmaciaRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de catálogo: Redis si está configurado, si no noop.
	var productoCache sale.ProductoCache = cache.NoopProductoCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisProductoCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, continuando sin cache")
		} else {
			productoCache = redisCache
			defer redisCache.Close()
		}
	}

	ventaUC := sale.NewCrearVentaUseCase(
		txRunner, productoRepo, inventarioRepo, clienteRepo, farmaciaRepo, ventaRepo, productoCache,
	)
	productoUC := usecase.NewProductoUseCase(productoRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, farmaciaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		VentaUC:    ventaUC,
		ProductoUC: productoUC,
		ClienteUC:  clienteUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Apagado limpio con SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando servidor")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}
