// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"stacknori/internal/cache"
	"stacknori/internal/database"
	"stacknori/internal/handler"
	"stacknori/internal/handler/auth"
	"stacknori/internal/handler/materials"
	"stacknori/internal/handler/progress"
	"stacknori/internal/handler/roadmaps"
	"stacknori/internal/middleware"
	"stacknori/internal/service"
)

const BasePath = "/api/v1"

// Authenticator 為路由所需的認證操作，*service.Authenticator 直接滿足
type Authenticator interface {
	auth.Authenticator
	middleware.UserResolver
}

var _ Authenticator = (*service.Authenticator)(nil)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, authn Authenticator, env string) {
	api := e.Group(BasePath)
	requireAuth := middleware.RequireAuth(authn)
	requireAdmin := middleware.RequireAdmin(authn)

	// 健康檢查（不需登入）
	api.GET("/health", handler.HealthHandler(db, cch, env))

	// 註冊、登入與 token 輪替
	apiAuth := api.Group("/auth")
	apiAuth.POST("/signup", auth.SignupHandler(authn))
	apiAuth.POST("/login", auth.LoginHandler(authn))
	apiAuth.POST("/refresh", auth.RefreshHandler(authn))
	apiAuth.POST("/logout", auth.LogoutHandler(authn))
	apiAuth.GET("/me", auth.GetMeHandler(), requireAuth)

	api.GET("/roadmaps", roadmaps.ListRoadmapsHandler(db), requireAuth)
	api.POST("/roadmaps", roadmaps.UpsertRoadmapHandler(db), requireAdmin)

	api.GET("/materials", materials.SearchMaterialsHandler(db), requireAuth)
	api.POST("/materials", materials.CreateMaterialHandler(db), requireAdmin)
	api.POST("/materials/:material_id/scrap", materials.ScrapMaterialHandler(db), requireAuth)
	api.DELETE("/materials/:material_id/scrap", materials.UnscrapMaterialHandler(db), requireAuth)

	apiProgress := api.Group("/progress", requireAuth)
	apiProgress.GET("", progress.GetProgressOverviewHandler(db))
	apiProgress.POST("/:item_id/complete", progress.UpdateProgressHandler(db))
}
