package auth

import (
	"net/http"

	"stacknori/internal/dto"
	"stacknori/internal/handler"
	"stacknori/internal/model"
	"stacknori/internal/service"

	"github.com/labstack/echo/v4"
)

func tokenResponse(pair *service.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    dto.TokenTypeBearer,
	}
}

func issue(c echo.Context, auth Authenticator, user *model.User) error {
	pair, err := auth.IssueTokenPair(user)
	if err != nil {
		return handler.Error(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse(pair))
}

// RefreshHandler 以 refresh token 換發新的一組 token，舊的 refresh token 隨即失效
// @Summary     Refresh tokens
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RefreshRequest true "refresh token"
// @Success     200  {object} dto.TokenResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/refresh [post]
func RefreshHandler(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		pair, err := auth.Refresh(c.Request().Context(), req.RefreshToken)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, tokenResponse(pair))
	}
}

// LogoutHandler 撤銷 refresh token
// @Summary     Logout
// @Tags        auth
// @Accept      json
// @Param       body body dto.RefreshRequest true "refresh token"
// @Success     204  "No Content"
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/logout [post]
func LogoutHandler(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}
		if err := auth.Revoke(c.Request().Context(), req.RefreshToken); err != nil {
			return handler.Error(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
