// organizations.go — карточка организации: просмотр и изменения.
// Изменяющие маршруты закрыты сессионным middleware.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/service"
	"github.com/akosarev/eduregistry/internal/ui/view"
)

// OrganizationHandler — обработчики карточки организации.
type OrganizationHandler struct {
	orgSvc   *service.OrganizationService
	renderer view.Renderer
	logger   *slog.Logger
}

// NewOrganizationHandler создаёт обработчик организаций.
func NewOrganizationHandler(
	orgSvc *service.OrganizationService,
	renderer view.Renderer,
	logger *slog.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		orgSvc:   orgSvc,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "ui_organizations")),
	}
}

// OrganizationView — модель представления карточки организации.
type OrganizationView struct {
	Organization *model.Organization `json:"organization"`
	// Error — сообщение об ошибке формы (при повторном показе).
	Error string `json:"error,omitempty"`
}

// HandleDetail — GET /organizations/{id}
func (h *OrganizationHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	org, err := h.orgSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("Ошибка получения организации",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	if err := h.renderer.Render(w, http.StatusOK, "organization", &OrganizationView{Organization: org}); err != nil {
		h.logger.Error("Ошибка рендеринга организации", slog.String("error", err.Error()))
	}
}

// HandleCreate — POST /organizations
// Создаёт организацию из данных формы, redirect на её карточку.
func (h *OrganizationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	org := organizationFromForm(r)

	if err := h.orgSvc.Create(r.Context(), org); err != nil {
		h.renderFormError(w, r, org, err)
		return
	}

	http.Redirect(w, r, "/organizations/"+strconv.FormatInt(org.ID, 10), http.StatusSeeOther)
}

// HandleUpdate — POST /organizations/{id}
func (h *OrganizationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	org := organizationFromForm(r)
	org.ID = id

	if err := h.orgSvc.Update(r.Context(), org); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderFormError(w, r, org, err)
		return
	}

	http.Redirect(w, r, "/organizations/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// HandleDelete — POST /organizations/{id}/delete
// Удаляет организацию вместе с программами, redirect на реестр.
func (h *OrganizationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.orgSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("Ошибка удаления организации",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, RegistryBasePath, http.StatusSeeOther)
}

// renderFormError повторно показывает форму с сообщением об ошибке.
func (h *OrganizationHandler) renderFormError(w http.ResponseWriter, r *http.Request, org *model.Organization, err error) {
	status := http.StatusInternalServerError
	msg := "Внутренняя ошибка сервера"

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		msg = err.Error()
	default:
		h.logger.Error("Ошибка сохранения организации",
			slog.String("error", err.Error()),
		)
	}

	if rErr := h.renderer.Render(w, status, "organization_form", &OrganizationView{
		Organization: org,
		Error:        msg,
	}); rErr != nil {
		h.logger.Error("Ошибка рендеринга формы", slog.String("error", rErr.Error()))
	}
}

// organizationFromForm собирает организацию из полей формы.
// Пустые необязательные поля остаются NULL.
func organizationFromForm(r *http.Request) *model.Organization {
	org := &model.Organization{
		FullName: strings.TrimSpace(r.PostFormValue("full_name")),
		OGRN:     strings.TrimSpace(r.PostFormValue("ogrn")),
	}

	org.ShortName = optionalFormValue(r, "short_name")
	org.INN = optionalFormValue(r, "inn")
	org.KPP = optionalFormValue(r, "kpp")
	org.Address = optionalFormValue(r, "address")
	org.Phone = optionalFormValue(r, "phone")
	org.Email = optionalFormValue(r, "email")
	org.Website = optionalFormValue(r, "website")
	org.HeadName = optionalFormValue(r, "head_name")

	if regionID, err := strconv.ParseInt(r.PostFormValue("region_id"), 10, 64); err == nil && regionID > 0 {
		org.RegionID = &regionID
	}

	return org
}

// optionalFormValue возвращает указатель на trimmed-значение поля,
// nil для пустого.
func optionalFormValue(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.PostFormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

// parseIDParam извлекает числовой параметр {id} из URL.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
