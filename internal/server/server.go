// Пакет server — HTTP-сервер реестра с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на reverse proxy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	apihandlers "github.com/akosarev/eduregistry/internal/api/handlers"
	apimw "github.com/akosarev/eduregistry/internal/api/middleware"
	"github.com/akosarev/eduregistry/internal/config"
	"github.com/akosarev/eduregistry/internal/ui/handlers"
	uimw "github.com/akosarev/eduregistry/internal/ui/middleware"
)

// Handlers — обработчики, монтируемые сервером.
type Handlers struct {
	Registry     *handlers.RegistryHandler
	Organization *handlers.OrganizationHandler
	Region       *handlers.RegionHandler
	Auth         *handlers.AuthHandler
	Health       *apihandlers.HealthHandler
}

// Server — HTTP-сервер реестра.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными routes и middleware.
// Страницы чтения (реестр, карточка организации) публичны,
// изменяющие маршруты закрыты сессионным middleware.
func New(cfg *config.Config, logger *slog.Logger, h Handlers, sessionAuth *uimw.SessionAuth) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(apimw.MetricsMiddleware())
	router.Use(apimw.RequestLogger(logger))

	// Служебные endpoints — проверяются Kubernetes напрямую
	router.Get("/health/live", h.Health.HealthLive)
	router.Get("/health/ready", h.Health.HealthReady)
	router.Get("/metrics", h.Health.GetMetrics)

	// Аутентификация
	router.Get("/login", h.Auth.HandleLoginForm)
	router.Post("/login", h.Auth.HandleLogin)
	router.Get("/register", h.Auth.HandleRegisterForm)
	router.Post("/register", h.Auth.HandleRegister)
	router.Post("/logout", h.Auth.HandleLogout)

	// Страницы чтения: сессия опциональна (имя пользователя в шапке)
	router.Group(func(r chi.Router) {
		r.Use(sessionAuth.OptionalAuth())

		r.Get("/", redirectToRegistry)
		r.Get(handlers.RegistryBasePath, h.Registry.HandleList)
		r.Get("/organizations/{id}", h.Organization.HandleDetail)
		r.Get("/regions", h.Region.HandleList)
	})

	// Изменяющие маршруты: только с действующей сессией
	router.Group(func(r chi.Router) {
		r.Use(sessionAuth.RequireAuth())

		r.Post("/organizations", h.Organization.HandleCreate)
		r.Post("/organizations/{id}", h.Organization.HandleUpdate)
		r.Post("/organizations/{id}/delete", h.Organization.HandleDelete)

		r.Post("/regions", h.Region.HandleCreate)
		r.Post("/regions/{id}", h.Region.HandleUpdate)
		r.Post("/regions/{id}/delete", h.Region.HandleDelete)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// redirectToRegistry — корень сайта ведёт на страницу реестра.
func redirectToRegistry(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, handlers.RegistryBasePath, http.StatusFound)
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
