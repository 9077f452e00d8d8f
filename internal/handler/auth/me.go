package auth

import (
	"net/http"

	"stacknori/internal/dto"
	"stacknori/internal/handler"
	"stacknori/internal/middleware"
	"stacknori/internal/service"

	"github.com/labstack/echo/v4"
)

// GetMeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /auth/me [get]
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.Error(c, service.ErrInvalidToken)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}
