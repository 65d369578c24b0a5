// Точка входа сервиса реестра образовательных организаций.
// Загружает конфигурацию, применяет миграции, подключается к PostgreSQL,
// создаёт сервисный слой и обработчики, запускает мониторинг зависимостей
// (topologymetrics) и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	apihandlers "github.com/akosarev/eduregistry/internal/api/handlers"
	"github.com/akosarev/eduregistry/internal/config"
	"github.com/akosarev/eduregistry/internal/database"
	"github.com/akosarev/eduregistry/internal/repository"
	"github.com/akosarev/eduregistry/internal/server"
	"github.com/akosarev/eduregistry/internal/service"
	"github.com/akosarev/eduregistry/internal/ui/auth"
	uihandlers "github.com/akosarev/eduregistry/internal/ui/handlers"
	uimiddleware "github.com/akosarev/eduregistry/internal/ui/middleware"
	"github.com/akosarev/eduregistry/internal/ui/view"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Сервис реестра запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if os.Getenv("ER_DEPHEALTH_GROUP") == "" {
		logger.Warn("ER_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Repositories
	orgRepo := repository.NewOrganizationRepository(pool)
	regionRepo := repository.NewRegionRepository(pool)
	specRepo := repository.NewSpecialtyRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// 6. Services
	registrySvc := service.NewRegistryService(orgRepo, cfg.PageSize, logger)
	orgSvc := service.NewOrganizationService(orgRepo, logger)
	regionSvc := service.NewRegionService(regionRepo, logger)
	specialtySvc := service.NewSpecialtyService(specRepo, logger)
	userSvc := service.NewUserService(userRepo, logger)

	// 7. topologymetrics — мониторинг зависимостей (PostgreSQL)
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"eduregistry",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
			defer dephealthSvc.Stop()
		}
	}

	// 8. Session Manager — шифрование сессий (AES-256-GCM)
	sessionMgr, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookie)
	if err != nil {
		logger.Error("Ошибка создания Session Manager", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		logger.Warn("ER_SESSION_SECRET не задан, сессии не сохраняются между рестартами")
	}
	sessionAuth := uimiddleware.NewSessionAuth(sessionMgr, logger)

	// 9. Handlers
	renderer := view.NewJSONRenderer()
	h := server.Handlers{
		Registry:     uihandlers.NewRegistryHandler(registrySvc, regionSvc, specialtySvc, renderer, logger),
		Organization: uihandlers.NewOrganizationHandler(orgSvc, renderer, logger),
		Region:       uihandlers.NewRegionHandler(regionSvc, renderer, logger),
		Auth:         uihandlers.NewAuthHandler(userSvc, sessionMgr, renderer, logger),
		Health:       apihandlers.NewHealthHandler(database.NewReadinessChecker(pool)),
	}

	// 10. HTTP-сервер с graceful shutdown
	srv := server.New(cfg, logger, h, sessionAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка HTTP-сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
