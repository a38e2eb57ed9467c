package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"litlog/internal/config"
	"litlog/internal/handlers"
	"litlog/internal/middleware"
	"litlog/internal/models"
	"litlog/internal/repositories"
	"litlog/internal/services"
	"litlog/pkg/imagestore"
	"litlog/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Review{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Picture storage ---
	images, err := imagestore.New(cfg.PicturesDir)
	if err != nil {
		log.Fatalf("Failed to initialize picture storage: %v", err)
	}

	// --- Review events (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	reviewService := services.NewReviewService(reviewRepo, mqClient)
	userService := services.NewUserService(userRepo, images)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService, reviewService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	loginRequired := middleware.LoginRequired(authService)
	authHandler.RegisterRoutes(app)
	reviewHandler.RegisterRoutes(app, loginRequired)
	userHandler.RegisterRoutes(app, loginRequired)

	// Stored pictures are served from the pictures directory.
	app.Static("/static/pics", cfg.PicturesDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
		})
	})

	// --- Review event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for review events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received review event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeReviewEvents(handler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured database. sqlite is the default;
// postgres is selected with DB_DRIVER=postgres and a matching DSN.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	}
}
