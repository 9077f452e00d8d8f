package handler

import (
	"net/http"
	"time"

	"stacknori/internal/cache"
	"stacknori/internal/database"
	"stacknori/internal/dto"

	"github.com/labstack/echo/v4"
)

const healthKey = "health:ping"

var timeNow = time.Now

// HealthHandler 健康檢查（不需登入）
// @Summary     Health Check
// @Description 檢查資料庫與 Redis 連線，回傳服務狀態與環境
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.HealthResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /health [get]
func HealthHandler(db database.DB, cch cache.Cache, env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			c.Set(ContextErrorKey, err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, healthKey, "ok", time.Minute).Err(); err != nil {
			c.Set(ContextErrorKey, err)
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, dto.HealthResponse{
			Status:      "ok",
			Environment: env,
			Timestamp:   timeNow().UTC(),
		})
	}
}
