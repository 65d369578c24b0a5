// Пакет middleware — HTTP middleware веб-интерфейса реестра.
// auth.go — проверка сессии в зашифрованном cookie.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/akosarev/eduregistry/internal/ui/auth"
)

// contextKey — тип для ключей контекста UI (избегаем коллизий с другими middleware).
type contextKey string

const (
	// ContextKeySession — данные сессии в контексте запроса.
	ContextKeySession contextKey = "session"
)

// SessionAuth — middleware проверки сессии пользователей.
// Извлекает сессию из зашифрованного cookie; изменяющие маршруты
// требуют действующую сессию, страницы чтения доступны без неё.
type SessionAuth struct {
	sessionManager *auth.SessionManager
	logger         *slog.Logger
}

// NewSessionAuth создаёт middleware сессий.
func NewSessionAuth(sessionManager *auth.SessionManager, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{
		sessionManager: sessionManager,
		logger:         logger.With(slog.String("component", "session_middleware")),
	}
}

// RequireAuth возвращает middleware, требующий действующую сессию.
// Отсутствующая, повреждённая или истёкшая сессия — redirect на /login.
func (sa *SessionAuth) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sa.sessionManager.GetSessionFromRequest(r)
			if err != nil {
				sa.logger.Debug("Ошибка чтения сессии",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				// Повреждённый cookie — очищаем и redirect на login
				sa.sessionManager.ClearSessionCookie(w)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			if session == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			if session.IsExpired() {
				sa.logger.Debug("Сессия истекла",
					slog.String("username", session.Username),
				)
				sa.sessionManager.ClearSessionCookie(w)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth возвращает middleware, добавляющий сессию в контекст,
// если она есть и действительна. Запрос проходит дальше в любом случае.
func (sa *SessionAuth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sa.sessionManager.GetSessionFromRequest(r)
			if err == nil && session != nil && !session.IsExpired() {
				ctx := context.WithValue(r.Context(), ContextKeySession, session)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext извлекает SessionData из контекста запроса.
// Возвращает nil если сессия не найдена.
func SessionFromContext(ctx context.Context) *auth.SessionData {
	session, ok := ctx.Value(ContextKeySession).(*auth.SessionData)
	if !ok {
		return nil
	}
	return session
}
