package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".closeouts"
	defaultLocale        = "es"
)

type Config struct {
	Env               string `mapstructure:"app_env"`
	ServerAddress     string `mapstructure:"server_address"`
	ConfigDir         string `mapstructure:"config_dir"`
	DataPath          string `mapstructure:"data_path"`
	EnableTLS         bool   `mapstructure:"enable_tls"`
	Locale            string `mapstructure:"locale"`
	RequestTimeout    time.Duration
	SyncDayTimeout    time.Duration
	PaymentAliases    map[string]string
	rawPaymentAliases string
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("LOCALE", defaultLocale)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SYNC_DAY_TIMEOUT_SECONDS", 0)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Ошибка создания директории конфигурации: %v\n", err)
	}

	dataPath := viper.GetString("DATA_PATH")
	if dataPath == "" {
		dataPath = filepath.Join(configDir, "closeouts.db")
	}

	config := &Config{
		Env:               viper.GetString("APP_ENV"),
		ServerAddress:     viper.GetString("SERVER_ADDRESS"),
		ConfigDir:         configDir,
		DataPath:          dataPath,
		EnableTLS:         viper.GetBool("ENABLE_TLS"),
		Locale:            viper.GetString("LOCALE"),
		RequestTimeout:    time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		SyncDayTimeout:    time.Duration(viper.GetInt("SYNC_DAY_TIMEOUT_SECONDS")) * time.Second,
		rawPaymentAliases: viper.GetString("PAYMENT_ALIASES"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть положительным")
	}
	if c.SyncDayTimeout < 0 {
		return fmt.Errorf("sync_day_timeout_seconds не может быть отрицательным")
	}

	aliases, err := ParseAliases(c.rawPaymentAliases)
	if err != nil {
		return err
	}
	c.PaymentAliases = aliases

	return nil
}

// ParseAliases разбирает пары "сырое=Каноническое", разделённые запятыми.
func ParseAliases(raw string) (map[string]string, error) {
	aliases := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("некорректный синоним способа оплаты: %q", pair)
		}
		aliases[from] = to
	}
	return aliases, nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
