package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kstarostin/campfire-store-api/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port   string
	JWT    JWT
	DB     DB
	Redis  Redis
	Kafka  Kafka
	Otel   Otel
	Locale Locale
	Upload Upload
}

type JWT struct {
	Secret          string
	Issuer          string
	AccessExp       time.Duration
	CookieExp       time.Duration
	LogoutCookieExp time.Duration
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type Otel struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// Locale is the immutable set of storefront allow-lists. It is loaded once
// and passed by value into sanitizers, validators and pricing logic.
type Locale struct {
	AllowedLanguages     []string
	DefaultLanguage      string
	AllowedCurrencies    []string
	DefaultCurrency      string
	AllowedOrderStatuses []string
	DefaultOrderStatus   string
	AllowedRoles         []string
	DefaultRole          string
	AllowedImageMimes    []string
}

type Upload struct {
	Dir              string
	MaxProductImages int
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		JWT: JWT{
			Secret:          getEnv("JWT_SECRET", log),
			Issuer:          getEnvDefault("JWT_ISSUER", "campfire-store"),
			AccessExp:       parseDurationWithDays(getEnvDefault("JWT_EXPIRES_IN", "1d")),
			CookieExp:       parseDurationWithDays(getEnvDefault("JWT_COOKIE_EXPIRES_IN", "1d")),
			LogoutCookieExp: 5 * time.Second,
		},
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
			},
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       atoiDefault(getEnvDefault("REDIS_DB", "0"), 0),
		},
		Kafka: Kafka{
			Enabled: getEnvDefault("KAFKA_ENABLED", "false") == "true",
			Brokers: splitList(getEnvDefault("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnvDefault("KAFKA_ORDER_TOPIC", "storefront.orders"),
		},
		Otel: Otel{
			Enabled:     getEnvDefault("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnvDefault("OTEL_SERVICE_NAME", "campfire-store-api"),
		},
		Locale: Locale{
			AllowedLanguages:     splitList(getEnvDefault("ALLOWED_LANGUAGES", "en,de")),
			DefaultLanguage:      getEnvDefault("DEFAULT_LANGUAGE", "en"),
			AllowedCurrencies:    splitList(getEnvDefault("ALLOWED_CURRENCIES", "USD,EUR")),
			DefaultCurrency:      getEnvDefault("DEFAULT_CURRENCY", "USD"),
			AllowedOrderStatuses: []string{"open", "progress", "delivered"},
			DefaultOrderStatus:   "open",
			AllowedRoles:         []string{"user", "admin"},
			DefaultRole:          "user",
			AllowedImageMimes:    []string{"image/jpeg", "image/png", "image/webp"},
		},
		Upload: Upload{
			Dir:              getEnvDefault("UPLOAD_DIR", "public/img"),
			MaxProductImages: atoiDefault(getEnvDefault("MAX_PRODUCT_IMAGES", "5"), 5),
		},
	}
}

// Contains reports whether value is present in the allow-list.
func Contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
