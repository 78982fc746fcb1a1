package cmd

import (
	"fmt"
	"os"

	"github.com/cloud-ru/mcp-compound-go/internal/config"
	"github.com/cloud-ru/mcp-compound-go/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version задается при сборке через -ldflags
var version = "dev"

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "compound",
	Short: "Проекции сложного процента и ипотечный калькулятор",
	Long: `compound рассчитывает рост единовременных вложений, регулярных взносов
и инвестиций в долг по периодам, а также ежемесячные платежи по ипотеке.

Команды:
  serve      - HTTP-сервер с инструментами расчета
  project    - проекция инвестиции по годам
  mortgage   - расчет ипотеки
  scenarios  - пакетный расчет сценариев из YAML`,
	SilenceUsage: true,
}

// Execute запускает корневую команду
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML-файл конфигурации (переопределяет CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Уровень логирования (DEBUG, INFO, WARN, ERROR)")
}

// loadRuntime загружает конфигурацию и создает логгер с учетом флагов
func loadRuntime() (*config.Config, *zap.Logger, error) {
	if cfgFile != "" {
		if err := os.Setenv("CONFIG_FILE", cfgFile); err != nil {
			return nil, nil, fmt.Errorf("set CONFIG_FILE: %w", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Ошибка: %s: %v\n", msg, err)
}
