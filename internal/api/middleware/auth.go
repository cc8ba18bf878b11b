package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// userIDHeader заголовок с идентификатором пользователя
// Аутентификацию выполняет API-шлюз, сервис доверяет заголовку
const userIDHeader = "X-User-ID"

type userIDContextKey struct{}

// Auth извлекает ID пользователя из заголовка и кладет его в контекст.
// Запросы без заголовка пропускаются дальше: публичные маршруты
// не требуют пользователя, защищенные проверяют его через GetUserID.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(userIDHeader); raw != "" {
			if userID, err := strconv.ParseInt(raw, 10, 64); err == nil && userID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDContextKey{}, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(int64)
	return userID, ok
}
