package materials

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
	searchMaterials = service.SearchMaterials
	createMaterial  = service.CreateMaterial
	setScrap        = service.SetScrap
)

// SearchMaterialsHandler 搜尋教材
// @Summary     Search materials
// @Description keyword 會比對標題、摘要與關鍵字 (不分大小寫)；結果依建立時間新到舊排序
// @Tags        materials
// @Produce     json
// @Param       keyword    query    string false "關鍵字"
// @Param       difficulty query    string false "難度" Enums(beginner, intermediate)
// @Param       type       query    string false "類型" Enums(document, video)
// @Param       page       query    int    false "頁碼"   default(1)
// @Param       limit      query    int    false "每頁筆數" default(20)
// @Success     200        {object} dto.MaterialListResponse
// @Failure     400        {object} dto.HTTPError
// @Failure     401        {object} dto.HTTPError
// @Failure     500        {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /materials [get]
func SearchMaterialsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.Error(c, service.ErrInvalidToken)
		}
		var q dto.MaterialSearchQuery
		if err := c.Bind(&q); err != nil {
			return handler.BadRequest(c, "invalid query parameters")
		}
		if err := c.Validate(&q); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		page, err := searchMaterials(c.Request().Context(), db, user.ID, service.MaterialQuery{
			Keyword:    q.Keyword,
			Difficulty: model.Difficulty(q.Difficulty),
			Type:       model.MaterialType(q.Type),
			Page:       q.Page,
			Limit:      q.Limit,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewMaterialListResponse(page))
	}
}

// CreateMaterialHandler 新增教材 (管理員)
// @Summary     Create a material
// @Tags        materials
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateMaterialRequest true "教材資料"
// @Success     201  {object} model.Material
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /materials [post]
func CreateMaterialHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateMaterialRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, err.Error())
		}

		m, err := createMaterial(c.Request().Context(), db, &model.Material{
			Title:      req.Title,
			URL:        req.URL,
			Difficulty: model.Difficulty(req.Difficulty),
			Type:       model.MaterialType(req.Type),
			Source:     req.Source,
			Summary:    req.Summary,
			Keywords:   req.Keywords,
		})
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusCreated, m)
	}
}

func scrapHandler(db database.DB, scrap bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return handler.Error(c, service.ErrInvalidToken)
		}
		materialID, err := handler.PathID(c, "material_id")
		if err != nil {
			return handler.Error(c, err)
		}
		state, err := setScrap(c.Request().Context(), db, user.ID, materialID, scrap)
		if err != nil {
			return handler.Error(c, err)
		}
		return c.JSON(http.StatusOK, dto.ScrapResponse{Success: true, IsScrapped: state})
	}
}

// ScrapMaterialHandler 收藏教材；重複收藏不會產生錯誤
// @Summary     Scrap a material
// @Tags        materials
// @Produce     json
// @Param       material_id path     int true "教材 ID"
// @Success     200         {object} dto.ScrapResponse
// @Failure     400         {object} dto.HTTPError
// @Failure     401         {object} dto.HTTPError
// @Failure     404         {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /materials/{material_id}/scrap [post]
func ScrapMaterialHandler(db database.DB) echo.HandlerFunc {
	return scrapHandler(db, true)
}

// UnscrapMaterialHandler 取消收藏；未收藏時為 no-op
// @Summary     Remove a material scrap
// @Tags        materials
// @Produce     json
// @Param       material_id path     int true "教材 ID"
// @Success     200         {object} dto.ScrapResponse
// @Failure     400         {object} dto.HTTPError
// @Failure     401         {object} dto.HTTPError
// @Failure     404         {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /materials/{material_id}/scrap [delete]
func UnscrapMaterialHandler(db database.DB) echo.HandlerFunc {
	return scrapHandler(db, false)
}
