package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds everything the application needs at startup. It is built once
// in main and passed down explicitly; nothing reads viper after Load returns.
type Config struct {
	AppPort     string
	DBDriver    string // "sqlite" or "postgres"
	DBDSN       string
	JWTSecret   string
	RabbitMQURL string // empty disables review events
	PicturesDir string
	BooksAPIURL string
	BooksAPIKey string
}

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "litlog.db")
	viper.SetDefault("JWT_SECRET", "dev-secret")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("PICTURES_DIR", "static/pics")
	viper.SetDefault("BOOKS_API_URL", "https://www.googleapis.com/books/v1")
	viper.SetDefault("BOOKS_API_KEY", "")
	viper.AutomaticEnv()

	cfg := &Config{
		AppPort:     viper.GetString("APP_PORT"),
		DBDriver:    viper.GetString("DB_DRIVER"),
		DBDSN:       viper.GetString("DB_DSN"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		PicturesDir: viper.GetString("PICTURES_DIR"),
		BooksAPIURL: viper.GetString("BOOKS_API_URL"),
		BooksAPIKey: viper.GetString("BOOKS_API_KEY"),
	}

	if cfg.JWTSecret == "dev-secret" {
		log.Println("Warning: using default JWT_SECRET, set it in the environment for production")
	}
	return cfg
}
