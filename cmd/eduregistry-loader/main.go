// Загрузчик данных реестра: импортирует XML-выгрузки Рособрнадзора
// из локальной директории (ER_LOADER_CACHE_PATH) в PostgreSQL.
// Запускается отдельно от веб-сервиса, обычно как Kubernetes CronJob.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/akosarev/eduregistry/internal/config"
	"github.com/akosarev/eduregistry/internal/database"
	"github.com/akosarev/eduregistry/internal/loader"
	"github.com/akosarev/eduregistry/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg)
	logger.Info("Загрузчик реестра запускается",
		slog.String("version", config.Version),
		slog.String("cache_path", cfg.LoaderCachePath),
	)

	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	l := loader.New(repository.NewTxRunner(pool), logger)

	stats, err := l.LoadDir(ctx, cfg.LoaderCachePath)
	if err != nil {
		logger.Error("Ошибка импорта", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Импорт завершён",
		slog.Int("certificates", stats.Certificates),
		slog.Int("orgs_created", stats.OrganizationsCreated),
		slog.Int("orgs_updated", stats.OrganizationsUpdated),
		slog.Int("programs_created", stats.ProgramsCreated),
		slog.Int("skipped", stats.Skipped),
	)
}
