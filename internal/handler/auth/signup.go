package auth

import (
	"net/http"

	"stacknori/internal/dto"
	"stacknori/internal/handler"

	"github.com/labstack/echo/v4"
)

// SignupHandler 註冊新使用者
// @Summary     Sign up
// @Description 以 email 與密碼 (至少 8 字元) 建立帳號，email 會轉為小寫
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.SignupRequest true "註冊資料"
// @Success     201  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/signup [post]
func SignupHandler(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SignupRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		user, err := auth.Register(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
	}
}
