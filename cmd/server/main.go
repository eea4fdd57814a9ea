package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"blog-service/internal/api"
	"blog-service/internal/config"
	"blog-service/internal/events"
	"blog-service/internal/graph"
	"blog-service/internal/repository"
	"blog-service/internal/service"
	"blog-service/internal/storage"
	"blog-service/internal/token"
	"blog-service/internal/tracing"
	_ "blog-service/migrations"
)

func main() {
	cfg, err := config.Load(".env.dev")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api.SetupGlobalHandler("blog-service")

	shutdownTracer, err := tracing.InitTracerProvider("blog-service", cfg.Tracing.Endpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	db := connectDB(cfg)
	defer db.Close()

	eventPublisher, err := events.NewNatsPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	images, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("Failed to prepare image directory: %v", err)
	}

	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.TTL)

	userRepo := repository.NewPostgresUserRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo, userRepo, eventPublisher, images)
	userService := service.NewUserService(userRepo)

	resolver := graph.NewResolver(authService, postService, userService)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	graphHandler := graph.NewHandler(schema)
	imageHandler := api.NewImageHandler(images)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
	app.Use(api.AuthGate(tokens))

	api.RegisterRoutes(app, graphHandler, imageHandler, cfg.ImageDir)

	log.Printf("Listening blog-service on port %s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DB.URL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	log.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DB.URL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	log.Println("Migrations applied successfully!")
}
