// registry.go — сервис построения страницы реестра организаций.
//
// Собирает страницу списка из двух согласованных запросов к хранилищу:
// подсчёт общего числа записей и выборка текущей страницы с теми же
// фильтрами и сортировкой. Номер страницы за пределами диапазона
// приводится к ближайшей допустимой странице.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/registry"
	"github.com/akosarev/eduregistry/internal/repository"
)

var (
	registryQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "er_registry_queries_total",
			Help: "Количество запросов страницы реестра.",
		},
		[]string{"filtered", "sort_by"},
	)
	registryQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "er_registry_query_duration_seconds",
			Help:    "Длительность построения страницы реестра (count + list).",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RegistryPage — готовая страница реестра: записи, фактические параметры
// запроса (после приведения номера страницы) и блок пагинации.
type RegistryPage struct {
	Items      []*model.Organization
	Request    registry.ListRequest
	Pagination registry.Pagination
}

// RegistryService — сервис списка реестра организаций.
type RegistryService struct {
	orgRepo  repository.OrganizationRepository
	pageSize int
	logger   *slog.Logger
}

// NewRegistryService создаёт сервис реестра с фиксированным размером страницы.
func NewRegistryService(orgRepo repository.OrganizationRepository, pageSize int, logger *slog.Logger) *RegistryService {
	return &RegistryService{
		orgRepo:  orgRepo,
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "registry_service")),
	}
}

// PageSize возвращает размер страницы реестра.
func (s *RegistryService) PageSize() int {
	return s.pageSize
}

// BuildPage строит страницу реестра по разрешённым параметрам запроса.
//
// Подсчёт и выборка используют одинаковые фильтры, поэтому блок пагинации
// всегда согласован с содержимым страницы. Если запрошенная страница
// вышла за диапазон (записи удалили, фильтр сузили), выборка выполняется
// для приведённого номера из Pagination.CurrentPage.
func (s *RegistryService) BuildPage(ctx context.Context, req registry.ListRequest) (*RegistryPage, error) {
	start := time.Now()

	total, err := s.orgRepo.Count(ctx, req.Filters)
	if err != nil {
		return nil, fmt.Errorf("подсчёт организаций: %w", err)
	}

	pg := registry.Paginate(req.Page, s.pageSize, total)
	req.Page = pg.CurrentPage

	offset := registry.PageRequest{Page: pg.CurrentPage, PageSize: s.pageSize}.Offset()
	items, err := s.orgRepo.List(ctx, req.Filters, req.Sort, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("выборка организаций: %w", err)
	}

	registryQueriesTotal.WithLabelValues(
		strconv.FormatBool(!req.Filters.IsEmpty()),
		string(req.Sort.Field),
	).Inc()
	registryQueryDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug("Страница реестра построена",
		slog.Int64("total", total),
		slog.Int("page", pg.CurrentPage),
		slog.Int("total_pages", pg.TotalPages),
		slog.Int("items", len(items)),
	)

	return &RegistryPage{
		Items:      items,
		Request:    req,
		Pagination: pg,
	}, nil
}
