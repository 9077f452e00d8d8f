package materials

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stacknori/internal/database"
	"stacknori/internal/dto"
	"stacknori/internal/middleware"
	"stacknori/internal/model"
	"stacknori/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func restore() {
	searchMaterials = service.SearchMaterials
	createMaterial = service.CreateMaterial
	setScrap = service.SetScrap
}

func newCtx(method, target, body string, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	return c, rec
}

func TestSearchMaterialsHandler(t *testing.T) {
	t.Cleanup(restore)
	user := &model.User{ID: 2}
	searchMaterials = func(_ context.Context, _ database.DB, userID int, q service.MaterialQuery) (*service.MaterialPage, error) {
		require.Equal(t, 2, userID)
		require.Equal(t, "fastapi", q.Keyword)
		require.Equal(t, model.DifficultyBeginner, q.Difficulty)
		require.Equal(t, 2, q.Page)
		require.Equal(t, 5, q.Limit)
		return &service.MaterialPage{
			Items: []service.MaterialView{{
				Material:   model.Material{ID: 7, Title: "FastAPI", Keywords: []string{"python"}},
				IsScrapped: true,
			}},
			Page: 2, Limit: 5, Total: 6, TotalPages: 2,
		}, nil
	}

	ctx, rec := newCtx(http.MethodGet, "/materials?keyword=fastapi&difficulty=beginner&page=2&limit=5", "", user)
	require.NoError(t, SearchMaterialsHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Materials []struct {
			ID         int      `json:"id"`
			IsScrapped bool     `json:"is_scrapped"`
			Keywords   []string `json:"keywords"`
		} `json:"materials"`
		Pagination dto.PaginationMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 7, resp.Materials[0].ID)
	require.True(t, resp.Materials[0].IsScrapped)
	require.Equal(t, dto.PaginationMeta{Page: 2, Limit: 5, Total: 6, TotalPages: 2}, resp.Pagination)

	for _, target := range []string{
		"/materials?difficulty=expert",
		"/materials?type=podcast",
		"/materials?limit=500",
		"/materials?page=abc",
	} {
		ctx, rec = newCtx(http.MethodGet, target, "", user)
		require.NoError(t, SearchMaterialsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCreateMaterialHandler(t *testing.T) {
	t.Cleanup(restore)
	createMaterial = func(_ context.Context, _ database.DB, m *model.Material) (*model.Material, error) {
		require.Equal(t, model.MaterialTypeVideo, m.Type)
		m.ID = 12
		return m, nil
	}
	admin := &model.User{ID: 1, IsSuperuser: true}

	ctx, rec := newCtx(http.MethodPost, "/materials", `{"title":"Go Tour","url":"https://go.dev/tour","difficulty":"beginner","type":"video","keywords":["go"]}`, admin)
	require.NoError(t, CreateMaterialHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":12`)

	ctx, rec = newCtx(http.MethodPost, "/materials", `{"title":"Go Tour","url":"not a url","difficulty":"beginner","type":"video"}`, admin)
	require.NoError(t, CreateMaterialHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScrapHandlers(t *testing.T) {
	t.Cleanup(restore)
	user := &model.User{ID: 4}
	setScrap = func(_ context.Context, _ database.DB, userID, materialID int, scrap bool) (bool, error) {
		require.Equal(t, 4, userID)
		if materialID == 404 {
			return false, service.ErrMaterialNotFound
		}
		return scrap, nil
	}

	call := func(h echo.HandlerFunc, id string) *httptest.ResponseRecorder {
		ctx, rec := newCtx(http.MethodPost, "/", "", user)
		ctx.SetParamNames("material_id")
		ctx.SetParamValues(id)
		require.NoError(t, h(ctx))
		return rec
	}

	rec := call(ScrapMaterialHandler(&database.FakeDB{}), "7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"is_scrapped":true}`, rec.Body.String())

	rec = call(UnscrapMaterialHandler(&database.FakeDB{}), "7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"is_scrapped":false}`, rec.Body.String())

	rec = call(ScrapMaterialHandler(&database.FakeDB{}), "404")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(ScrapMaterialHandler(&database.FakeDB{}), "x")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
