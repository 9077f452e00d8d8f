package progress

import (
	"net/http"

	"stacknori/internal/database"
	"stacknori/internal/dto"
	"stacknori/internal/handler"
	"stacknori/internal/middleware"
	"stacknori/internal/model"
	"stacknori/internal/service"

	"github.com/labstack/echo/v4"
)

// 可於測試覆寫
var (
	updateProgress      = service.UpdateProgress
	getProgressOverview = service.GetProgressOverview
)

// UpdateProgressHandler 設定單一項目的完成狀態
// @Summary     Update progress
// @Description type 省略時視為 roadmap
// @Tags        progress
// @Accept      json
// @Produce     json
// @Param       item_id path     int                       true  "項目 ID"
// @Param       type    query    string                    false "項目種類" Enums(roadmap, material)
// @Param       body    body     dto.ProgressUpdateRequest true  "完成狀態"
// @Success     200     {object} dto.ProgressUpdateResponse
// @Failure     400     {object} dto.HTTPError
// @Failure     401     {object} dto.HTTPError
// @Failure     404     {object} dto.HTTPError
// @Failure     500     {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /progress/{item_id}/complete [post]
func UpdateProgressHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.Error(c, service.ErrInvalidToken)
		}
		itemID, err := handler.PathID(c, "item_id")
		if err != nil {
			return handler.Error(c, err)
		}
		itemType, err := model.ParseItemType(c.QueryParam("type"))
		if err != nil {
			return handler.BadRequest(c, err.Error())
		}

		var req dto.ProgressUpdateRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		view, err := updateProgress(c.Request().Context(), db, user.ID, itemType, itemID, *req.Completed)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.ProgressUpdateResponse{
			Success:     true,
			ItemID:      view.ItemID,
			ItemType:    view.ItemType,
			IsCompleted: view.IsCompleted,
		})
	}
}

// GetProgressOverviewHandler 列出使用者進度與統計
// @Summary     Progress overview
// @Description category 只作用於 roadmap 項目；type=material 時忽略 category
// @Tags        progress
// @Produce     json
// @Param       category query    string false "路線圖分類" Enums(frontend, backend, devops)
// @Param       type     query    string false "項目種類" Enums(roadmap, material)
// @Success     200      {object} dto.ProgressOverviewResponse
// @Failure     400      {object} dto.HTTPError
// @Failure     401      {object} dto.HTTPError
// @Failure     500      {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /progress [get]
func GetProgressOverviewHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.Error(c, service.ErrInvalidToken)
		}
		var q dto.ProgressOverviewQuery
		if err := c.Bind(&q); err != nil {
			return handler.BadRequest(c, "invalid query parameters")
		}
		if err := c.Validate(&q); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		overview, err := getProgressOverview(c.Request().Context(), db, user.ID, model.Category(q.Category), model.ItemType(q.Type))
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.ProgressOverviewResponse{
			Progress:   overview.Progress,
			Statistics: overview.Statistics,
		})
	}
}
