package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"stacknori/internal/dto"
	"stacknori/internal/service"

	"github.com/labstack/echo/v4"
)

// ContextErrorKey 存放原始錯誤，供 RequestLogger 記錄
const ContextErrorKey = "error"

// Status 將領域錯誤對應為 HTTP 狀態碼
func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrInvalidItemType),
		errors.Is(err, service.ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoadmapNotFound),
		errors.Is(err, service.ErrMaterialNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// message 回傳對外訊息；401/403/404 只回傳 sentinel 訊息，500 不外洩原因
func message(err error, status int) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusInternalServerError:
		return "internal server error"
	}
	for _, target := range []error{
		service.ErrInvalidCredentials,
		service.ErrInvalidToken,
		service.ErrUserNotFound,
		service.ErrForbidden,
		service.ErrRoadmapNotFound,
		service.ErrMaterialNotFound,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(status)
}

// Error 依錯誤種類寫出 JSON 錯誤回應；401 一律附上 Bearer challenge
func Error(c echo.Context, err error) error {
	status := Status(err)
	c.Set(ContextErrorKey, err)
	if status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return c.JSON(status, dto.HTTPError{Message: message(err, status)})
}

// BadRequest 用於 Bind / Validate 失敗
func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: msg})
}

// PathID 解析正整數 path 參數
func PathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidInput, name)
	}
	return id, nil
}
