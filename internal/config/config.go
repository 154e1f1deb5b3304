package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/employee-directory/internal/hierarchy"
	"github.com/employee-directory/internal/query"
	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы БД
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path - файл базы для драйвера sqlite
	Path string
}

// AppConfig - настройки справочника
type AppConfig struct {
	Language              string
	LogLevel              slog.Level
	QueryDefaultLimit     int
	HierarchyDefaultLimit int
	InitialDataCount      int
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load загружает конфигурацию из переменных окружения.
// Файл .env, если он есть, читается первым и не перекрывает уже заданные переменные.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "employee_catalog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "employee_catalog.db"),
		},
		App: AppConfig{
			Language:              strings.ToLower(getEnv("LANGUAGE", "en")),
			LogLevel:              parseLevel(getEnv("LOG_LEVEL", "info")),
			QueryDefaultLimit:     getEnvInt("QUERY_DEFAULT_LIMIT", query.DefaultLimit),
			HierarchyDefaultLimit: getEnvInt("HIERARCHY_DEFAULT_LIMIT", hierarchy.DefaultBudget),
			InitialDataCount:      getEnvInt("INITIAL_DATA_COUNT", 50000),
		},
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
