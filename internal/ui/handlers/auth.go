// auth.go — вход, регистрация и выход.
// Вход принимает имя пользователя или email; сессия хранится
// в зашифрованном cookie.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/akosarev/eduregistry/internal/service"
	"github.com/akosarev/eduregistry/internal/ui/auth"
	"github.com/akosarev/eduregistry/internal/ui/view"
)

// AuthHandler — обработчики аутентификации.
type AuthHandler struct {
	userSvc        *service.UserService
	sessionManager *auth.SessionManager
	renderer       view.Renderer
	logger         *slog.Logger
}

// NewAuthHandler создаёт обработчик аутентификации.
func NewAuthHandler(
	userSvc *service.UserService,
	sessionManager *auth.SessionManager,
	renderer view.Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userSvc:        userSvc,
		sessionManager: sessionManager,
		renderer:       renderer,
		logger:         logger.With(slog.String("component", "ui_auth")),
	}
}

// AuthView — модель представления форм входа и регистрации.
type AuthView struct {
	// Login — введённый логин для повторного показа формы.
	Login string `json:"login,omitempty"`
	Error string `json:"error,omitempty"`
}

// HandleLoginForm — GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusOK, "login", &AuthView{}); err != nil {
		h.logger.Error("Ошибка рендеринга формы входа", slog.String("error", err.Error()))
	}
}

// HandleLogin — POST /login
// Проверяет пару логин/пароль, устанавливает session cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	login := strings.TrimSpace(r.PostFormValue("login"))
	password := r.PostFormValue("password")

	user, err := h.userSvc.Authenticate(r.Context(), login, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.renderAuthError(w, "login", login, "Неверные имя пользователя или пароль", http.StatusUnauthorized)
			return
		}
		h.logger.Error("Ошибка аутентификации", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	session := h.sessionManager.NewSession(user.ID, user.Username)
	if err := h.sessionManager.SetSessionCookie(w, session); err != nil {
		h.logger.Error("Ошибка установки session cookie", slog.String("error", err.Error()))
		http.Error(w, "Ошибка создания сессии", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Пользователь вошёл",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	http.Redirect(w, r, RegistryBasePath, http.StatusSeeOther)
}

// HandleRegisterForm — GET /register
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusOK, "register", &AuthView{}); err != nil {
		h.logger.Error("Ошибка рендеринга формы регистрации", slog.String("error", err.Error()))
	}
}

// HandleRegister — POST /register
// Создаёт учётную запись и сразу открывает сессию.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	user, err := h.userSvc.Register(r.Context(), username, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			h.renderAuthError(w, "register", username, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, service.ErrConflict):
			h.renderAuthError(w, "register", username, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("Ошибка регистрации", slog.String("error", err.Error()))
			http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	session := h.sessionManager.NewSession(user.ID, user.Username)
	if err := h.sessionManager.SetSessionCookie(w, session); err != nil {
		h.logger.Error("Ошибка установки session cookie", slog.String("error", err.Error()))
		http.Error(w, "Ошибка создания сессии", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, RegistryBasePath, http.StatusSeeOther)
}

// HandleLogout — POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessionManager.ClearSessionCookie(w)
	http.Redirect(w, r, RegistryBasePath, http.StatusSeeOther)
}

// renderAuthError повторно показывает форму с сообщением об ошибке.
func (h *AuthHandler) renderAuthError(w http.ResponseWriter, page, login, msg string, status int) {
	if err := h.renderer.Render(w, status, page, &AuthView{Login: login, Error: msg}); err != nil {
		h.logger.Error("Ошибка рендеринга формы", slog.String("error", err.Error()))
	}
}
