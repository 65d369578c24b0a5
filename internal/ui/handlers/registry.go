// Пакет handlers — HTTP-обработчики веб-интерфейса реестра.
// registry.go — главная страница: список организаций с фильтрами,
// сортировкой и пагинацией.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/akosarev/eduregistry/internal/registry"
	"github.com/akosarev/eduregistry/internal/service"
	"github.com/akosarev/eduregistry/internal/ui/middleware"
	"github.com/akosarev/eduregistry/internal/ui/view"
)

// RegistryBasePath — путь страницы реестра, база для всех ссылок списка.
const RegistryBasePath = "/registry"

// RegistryHandler — обработчик страницы реестра.
type RegistryHandler struct {
	registrySvc  *service.RegistryService
	regionSvc    *service.RegionService
	specialtySvc *service.SpecialtyService
	renderer     view.Renderer
	logger       *slog.Logger
}

// NewRegistryHandler создаёт обработчик реестра.
func NewRegistryHandler(
	registrySvc *service.RegistryService,
	regionSvc *service.RegionService,
	specialtySvc *service.SpecialtyService,
	renderer view.Renderer,
	logger *slog.Logger,
) *RegistryHandler {
	return &RegistryHandler{
		registrySvc:  registrySvc,
		regionSvc:    regionSvc,
		specialtySvc: specialtySvc,
		renderer:     renderer,
		logger:       logger.With(slog.String("component", "ui_registry")),
	}
}

// HandleList — GET /registry
// Любая комбинация query-параметров даёт валидную страницу:
// некорректные значения деградируют до значений по умолчанию.
func (h *RegistryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := registry.ResolveListRequest(r.URL.Query(), h.registrySvc.PageSize())

	page, err := h.registrySvc.BuildPage(ctx, req)
	if err != nil {
		h.logger.Error("Ошибка построения страницы реестра",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	regions, err := h.regionSvc.List(ctx)
	if err != nil {
		h.logger.Error("Ошибка загрузки регионов", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	groups, err := h.specialtySvc.ListGroups(ctx)
	if err != nil {
		h.logger.Error("Ошибка загрузки УГС", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	// Специальности каскадом: при выбранной УГС — только её специальности.
	specialties, err := h.specialtySvc.ListSpecialties(ctx, page.Request.Filters.SpecialtyGroupID)
	if err != nil {
		h.logger.Error("Ошибка загрузки специальностей", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	v := view.BuildRegistryView(RegistryBasePath, page, regions, groups, specialties)
	if session := middleware.SessionFromContext(ctx); session != nil {
		v.Username = session.Username
	}

	if err := h.renderer.Render(w, http.StatusOK, "registry", v); err != nil {
		h.logger.Error("Ошибка рендеринга реестра", slog.String("error", err.Error()))
	}
}
