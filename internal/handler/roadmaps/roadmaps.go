package roadmaps

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
	listRoadmaps  = service.ListRoadmaps
	upsertRoadmap = service.UpsertRoadmap
)

// ListRoadmapsHandler 回傳路線圖樹與目前使用者的完成狀態
// @Summary     List roadmaps
// @Description 以樹狀結構回傳所有路線圖節點，並標示使用者是否已完成
// @Tags        roadmaps
// @Produce     json
// @Success     200 {object} dto.RoadmapListResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /roadmaps [get]
func ListRoadmapsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.Error(c, service.ErrInvalidToken)
		}
		tree, err := listRoadmaps(c.Request().Context(), db, user.ID)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.RoadmapListResponse{Roadmaps: tree})
	}
}

// UpsertRoadmapHandler 新增或更新路線圖節點 (管理員)
// @Summary     Create or update a roadmap node
// @Description 以 (category, name, parent_id) 為鍵；父節點必須存在且分類相同
// @Tags        roadmaps
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateRoadmapRequest true "節點資料"
// @Success     201  {object} model.Roadmap
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /roadmaps [post]
func UpsertRoadmapHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateRoadmapRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		node, err := upsertRoadmap(c.Request().Context(), db, service.RoadmapInput{
			Category:    model.Category(req.Category),
			Name:        req.Name,
			Level:       req.Level,
			Description: req.Description,
			ParentID:    req.ParentID,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, node)
	}
}
