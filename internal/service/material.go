package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stacknori/internal/database"
	"stacknori/internal/model"
	"stacknori/internal/store"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	searchMaterials     = store.SearchMaterials
	countMaterials      = store.CountMaterials
	getMaterialByID     = store.GetMaterialByID
	createMaterial      = store.CreateMaterial
	scrappedMaterialIDs = store.ScrappedMaterialIDs
	addScrap            = store.AddScrap
	removeScrap         = store.RemoveScrap
)

// MaterialView 為附上收藏狀態的教材
type MaterialView struct {
	model.Material
	IsScrapped bool `json:"is_scrapped"`
}

// MaterialQuery 為教材搜尋條件；Page 與 Limit 為 0 時使用預設值
type MaterialQuery struct {
	Keyword    string
	Difficulty model.Difficulty
	Type       model.MaterialType
	Page       int
	Limit      int
}

type MaterialPage struct {
	Items      []MaterialView
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func (q MaterialQuery) normalize() (MaterialQuery, error) {
	if q.Difficulty != "" && !q.Difficulty.Valid() {
		return q, fmt.Errorf("%w: difficulty %q", ErrInvalidInput, q.Difficulty)
	}
	if q.Type != "" && !q.Type.Valid() {
		return q, fmt.Errorf("%w: type %q", ErrInvalidInput, q.Type)
	}
	// 0 代表未指定
	if q.Page < 0 {
		return q, fmt.Errorf("%w: page must be >= 1", ErrInvalidInput)
	}
	if q.Limit < 0 || q.Limit > MaxLimit {
		return q, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxLimit)
	}
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	return q, nil
}

// SearchMaterials 依條件分頁搜尋教材。
// count 與分頁查詢共用同一組過濾條件，因此 Total 恆等於過濾後的筆數。
func SearchMaterials(ctx context.Context, db database.DB, userID int, q MaterialQuery) (*MaterialPage, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	filter := store.MaterialFilter{
		Keyword:    q.Keyword,
		Difficulty: q.Difficulty,
		Type:       q.Type,
		Limit:      q.Limit,
		Offset:     (q.Page - 1) * q.Limit,
	}

	total, err := countMaterials(ctx, db, filter)
	if err != nil {
		return nil, fmt.Errorf("SearchMaterials: %w", err)
	}
	items, err := searchMaterials(ctx, db, filter)
	if err != nil {
		return nil, fmt.Errorf("SearchMaterials: %w", err)
	}

	ids := make([]int, len(items))
	for i, m := range items {
		ids[i] = m.ID
	}
	scrapped, err := scrappedMaterialIDs(ctx, db, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("SearchMaterials: %w", err)
	}

	views := make([]MaterialView, len(items))
	for i, m := range items {
		views[i] = MaterialView{Material: m, IsScrapped: scrapped[m.ID]}
	}
	return &MaterialPage{
		Items:      views,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}, nil
}

// CreateMaterial 新增教材 (管理員)
func CreateMaterial(ctx context.Context, db database.DB, m *model.Material) (*model.Material, error) {
	m.Title = strings.TrimSpace(m.Title)
	m.URL = strings.TrimSpace(m.URL)
	switch {
	case m.Title == "" || m.URL == "":
		return nil, fmt.Errorf("%w: title and url are required", ErrInvalidInput)
	case !m.Difficulty.Valid():
		return nil, fmt.Errorf("%w: difficulty %q", ErrInvalidInput, m.Difficulty)
	case !m.Type.Valid():
		return nil, fmt.Errorf("%w: type %q", ErrInvalidInput, m.Type)
	}

	keywords := make([]string, 0, len(m.Keywords))
	for _, k := range m.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	m.Keywords = keywords

	created, err := createMaterial(ctx, db, m)
	if err != nil {
		return nil, fmt.Errorf("CreateMaterial: %w", err)
	}
	return created, nil
}

// SetScrap 設定收藏狀態並回傳結果；重複收藏或取消不存在的收藏皆為 no-op
func SetScrap(ctx context.Context, db database.DB, userID, materialID int, scrap bool) (bool, error) {
	if _, err := getMaterialByID(ctx, db, materialID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrMaterialNotFound
		}
		return false, fmt.Errorf("SetScrap: %w", err)
	}

	if !scrap {
		if err := removeScrap(ctx, db, userID, materialID); err != nil {
			return false, fmt.Errorf("SetScrap: %w", err)
		}
		return false, nil
	}

	err := addScrap(ctx, db, userID, materialID)
	if errors.Is(err, store.ErrForeignKey) {
		return false, ErrMaterialNotFound
	}
	if err != nil {
		return false, fmt.Errorf("SetScrap: %w", err)
	}
	return true, nil
}
