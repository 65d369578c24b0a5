// regions.go — администрирование справочника регионов.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/service"
	"github.com/akosarev/eduregistry/internal/ui/view"
)

// RegionHandler — обработчики справочника регионов.
type RegionHandler struct {
	regionSvc *service.RegionService
	renderer  view.Renderer
	logger    *slog.Logger
}

// NewRegionHandler создаёт обработчик регионов.
func NewRegionHandler(regionSvc *service.RegionService, renderer view.Renderer, logger *slog.Logger) *RegionHandler {
	return &RegionHandler{
		regionSvc: regionSvc,
		renderer:  renderer,
		logger:    logger.With(slog.String("component", "ui_regions")),
	}
}

// RegionsView — модель представления списка регионов.
type RegionsView struct {
	Regions []*model.Region `json:"regions"`
	Error   string          `json:"error,omitempty"`
}

// HandleList — GET /regions
func (h *RegionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, http.StatusOK, "")
}

// HandleCreate — POST /regions
func (h *RegionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if _, err := h.regionSvc.Create(r.Context(), name); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/regions", http.StatusSeeOther)
}

// HandleUpdate — POST /regions/{id}
func (h *RegionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if err := h.regionSvc.Update(r.Context(), id, name); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/regions", http.StatusSeeOther)
}

// HandleDelete — POST /regions/{id}/delete
// Регион с организациями не удаляется — список показывается с сообщением.
func (h *RegionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.regionSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/regions", http.StatusSeeOther)
}

// renderError показывает список регионов с сообщением об ошибке.
func (h *RegionHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "Внутренняя ошибка сервера"

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, service.ErrRegionInUse):
		status = http.StatusConflict
		msg = err.Error()
	default:
		h.logger.Error("Ошибка операции с регионом", slog.String("error", err.Error()))
	}

	h.renderList(w, r, status, msg)
}

func (h *RegionHandler) renderList(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	regions, err := h.regionSvc.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения списка регионов", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, status, "regions", &RegionsView{
		Regions: regions,
		Error:   errMsg,
	}); err != nil {
		h.logger.Error("Ошибка рендеринга регионов", slog.String("error", err.Error()))
	}
}
