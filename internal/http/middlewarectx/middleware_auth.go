// Package middlewarectx содержит HTTP middleware для проверки подписанных токенов доступа.
//
// TokenMiddleware читает необязательный заголовок Authorization: Bearer <jwt>.
// Если заголовок передан, токен обязан быть валидным: UID из subject кладётся
// в контекст запроса и затем сверяется с аргументом user_id в GraphQL-резолверах.
// Невалидный токен отклоняется с HTTP 401 Unauthorized. Запрос без заголовка
// проходит дальше без идентичности в контексте.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/calorie-tracker/internal/http/response"
	"github.com/magabrotheeeer/calorie-tracker/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUID — ключ для UID владельца токена в контексте.
const UserUID Key = "user_uid"

const bearerPrefix = "Bearer "

// Service описывает интерфейс сервиса для валидации токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// TokenMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
func TokenMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.TokenMiddleware"

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, bearerPrefix) {
				log.Warn("invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid authorization header"))
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

			userUID, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil || userUID == "" {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := WithUserUID(r.Context(), userUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserUID кладёт UID владельца токена в контекст.
func WithUserUID(ctx context.Context, userUID string) context.Context {
	return context.WithValue(ctx, UserUID, userUID)
}

// UserUIDFrom возвращает UID владельца токена, если запрос был с валидным токеном.
func UserUIDFrom(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserUID).(string)
	return uid, ok && uid != ""
}
