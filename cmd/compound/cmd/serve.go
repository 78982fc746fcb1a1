package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-ru/mcp-compound-go/internal/server"
	"github.com/cloud-ru/mcp-compound-go/internal/tools"
	"github.com/cloud-ru/mcp-compound-go/internal/tracing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запускает HTTP-сервер с инструментами расчета",
	Long: `Запускает HTTP-сервер:

  POST /tools/{name}  - вызов инструмента с JSON-параметрами
  GET  /tools         - список инструментов
  GET  /metrics       - метрики Prometheus
  GET  /healthz       - проверка готовности`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		printError("запуск сервера", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, shutdown, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, version, logger)
	if err != nil {
		logger.Error("tracing init failed", zap.Error(err))
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting compound server",
		zap.String("version", version),
		zap.Int("port", cfg.Port),
		zap.Int("max_years", cfg.MaxYears),
	)

	srv := server.New(cfg.Port, tools.Registry(cfg, tracer, logger), logger)
	return srv.Run(ctx)
}
