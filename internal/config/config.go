package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port                int     `yaml:"port"`
	MaxPrincipal        float64 `yaml:"max_principal"`
	MaxContribution     float64 `yaml:"max_contribution"`
	MaxYears            int     `yaml:"max_years"`
	MaxPaymentsPerAnnum int     `yaml:"max_payments_per_annum"`
	MaxRate             float64 `yaml:"max_rate"`
	MaxBalanceCap       float64 `yaml:"max_balance_cap"`
	OTELEndpoint        string  `yaml:"otel_endpoint"`
	OTELServiceName     string  `yaml:"otel_service_name"`
	LogLevel            string  `yaml:"log_level"`
	ScenarioFile        string  `yaml:"scenario_file"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Port:                8000,
		MaxPrincipal:        1e9,
		MaxContribution:     1e8,
		MaxYears:            100,
		MaxPaymentsPerAnnum: 365,
		MaxRate:             200,
		MaxBalanceCap:       1e12,
		OTELServiceName:     "mcp-compound-server",
		LogLevel:            "INFO",
	}
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем YAML-файл
// из CONFIG_FILE (если задан), затем переменные окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnvInt("PORT", cfg.Port)
	cfg.MaxPrincipal = getEnvFloat("MAX_PRINCIPAL", cfg.MaxPrincipal)
	cfg.MaxContribution = getEnvFloat("MAX_CONTRIBUTION", cfg.MaxContribution)
	cfg.MaxYears = getEnvInt("MAX_YEARS", cfg.MaxYears)
	cfg.MaxPaymentsPerAnnum = getEnvInt("MAX_PAYMENTS_PER_ANNUM", cfg.MaxPaymentsPerAnnum)
	cfg.MaxRate = getEnvFloat("MAX_RATE", cfg.MaxRate)
	cfg.MaxBalanceCap = getEnvFloat("MAX_BALANCE_CAP", cfg.MaxBalanceCap)
	cfg.OTELEndpoint = getEnvString("OTEL_ENDPOINT", cfg.OTELEndpoint)
	cfg.OTELServiceName = getEnvString("OTEL_SERVICE_NAME", cfg.OTELServiceName)
	cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
	cfg.ScenarioFile = getEnvString("SCENARIO_FILE", cfg.ScenarioFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate проверяет, что лимиты заданы корректно
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port: значение должно быть в диапазоне [1; 65535]")
	}
	if c.MaxYears < 1 {
		return fmt.Errorf("max_years: значение должно быть ≥ 1")
	}
	if c.MaxPaymentsPerAnnum < 1 {
		return fmt.Errorf("max_payments_per_annum: значение должно быть ≥ 1")
	}
	if c.MaxPrincipal <= 0 || c.MaxContribution < 0 || c.MaxRate < 0 || c.MaxBalanceCap <= 0 {
		return fmt.Errorf("денежные лимиты должны быть положительными")
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// BalanceCap возвращает максимальный баланс для защиты от переполнения
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}
