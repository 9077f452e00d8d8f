package middleware

import (
	"context"
	"fmt"
	"strings"

	"stacknori/internal/handler"
	"stacknori/internal/model"
	"stacknori/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// UserResolver 由 access token 解析目前使用者，*service.Authenticator 直接滿足
type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, accessToken string) (*model.User, error)
}

// CurrentUser 取得 RequireAuth 放入 context 的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", fmt.Errorf("%w: missing token", service.ErrInvalidToken)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: invalid authorization header format", service.ErrInvalidToken)
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth 驗證 Bearer access token 並將使用者放入 context
func RequireAuth(auth UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, err := bearerToken(c)
			if err != nil {
				return handler.Error(c, err)
			}
			u, err := auth.ResolveCurrentUser(c.Request().Context(), tok)
			if err != nil {
				return handler.Error(c, err)
			}
			c.Set(ContextUserKey, u)
			return next(c)
		}
	}
}

// RequireAdmin 在 RequireAuth 之上要求 superuser
func RequireAdmin(auth UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireAuth(auth)(func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok || !u.IsSuperuser {
				return handler.Error(c, service.ErrForbidden)
			}
			return next(c)
		})
	}
}
