package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPath = ".env"

type Config struct {
	Env    string
	DB     DB
	Server Server
	Redis  Redis
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration
}

// Redis кэш справочников. Пустой Addr отключает кэш.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
	TTL      time.Duration
}

func MustLoad() *Config {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("app_env", "local")
	viper.SetDefault("run_address", ":8080")
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("redis_db", 0)
	viper.SetDefault("reference_cache_ttl_seconds", 300)
	viper.SetDefault("shutdown_timeout_seconds", 10)

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      viper.GetString("run_address"),
			ShutdownTimeout: time.Duration(viper.GetInt("shutdown_timeout_seconds")) * time.Second,
		},
		Redis: Redis{
			Addr:     viper.GetString("redis_addr"),
			Password: viper.GetString("redis_password"),
			DB:       viper.GetInt("redis_db"),
			TTL:      time.Duration(viper.GetInt("reference_cache_ttl_seconds")) * time.Second,
		},
	}

	if err := config.validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	return &config
}

func (c *Config) validate() error {
	if c.DB.DatabaseURI == "" {
		return errors.New("DATABASE_URI is required")
	}
	if c.Server.RunAddress == "" {
		return errors.New("RUN_ADDRESS is required")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("REFERENCE_CACHE_TTL_SECONDS must not be negative, got %s", c.Redis.TTL)
	}
	return nil
}
