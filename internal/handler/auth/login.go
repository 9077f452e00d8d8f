// File: internal/handler/auth/login.go
package auth

import (
	"stacknori/internal/dto"
	"stacknori/internal/handler"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 email/密碼 驗證並回傳 access 與 refresh token
// @Summary     登入使用者
// @Description 使用 OAuth2 password form (username 為 email) 驗證，回傳一組 token
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       username formData string true "使用者 email"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} dto.TokenResponse
// @Failure     400      {object} dto.HTTPError
// @Failure     401      {object} dto.HTTPError
// @Failure     500      {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid form data")
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		user, err := auth.Authenticate(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return handler.Error(c, err)
		}
		return issue(c, auth, user)
	}
}
