package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contém as configurações do servidor da API
type Config struct {
	ServerPort         string
	BasePath           string
	GinMode            string
	DataDir            string
	SyncEnabled        bool
	PushTimeout        time.Duration
	PrometheusEnabled  bool
	CORSAllowedOrigins []string
	MigrationsPath     string
	RunMigrations      bool
}

// NewConfigFromEnv cria uma nova configuração a partir de variáveis de ambiente
func NewConfigFromEnv() *Config {
	timeout, err := strconv.Atoi(getEnv("SYNC_PUSH_TIMEOUT_SECONDS", "15"))
	if err != nil || timeout <= 0 {
		timeout = 15
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		BasePath:           getEnv("API_BASE_PATH", "/api/v1"),
		GinMode:            getEnv("GIN_MODE", "release"),
		DataDir:            getEnv("DATA_DIR", "./data"),
		SyncEnabled:        getBool("SYNC_ENABLED", false),
		PushTimeout:        time.Duration(timeout) * time.Second,
		PrometheusEnabled:  getBool("PROMETHEUS_ENABLED", false),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "migrations"),
		RunMigrations:      getBool("RUN_MIGRATIONS", false),
	}
}

// AllowAllOrigins informa se o CORS libera qualquer origem
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSAllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.CORSAllowedOrigins) == 0
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
