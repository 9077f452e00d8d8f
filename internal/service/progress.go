package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stacknori/internal/database"
	"stacknori/internal/model"
	"stacknori/internal/store"
)

var (
	upsertProgress = store.UpsertProgress
	listProgress   = store.ListProgress
	countProgress  = store.CountProgress
)

// ProgressView 為單筆進度；Category 對 roadmap 為路線圖分類，對 material 為教材類型
type ProgressView struct {
	ID          int            `json:"-"`
	ItemID      int            `json:"item_id"`
	ItemName    string         `json:"item_name"`
	ItemType    model.ItemType `json:"item_type"`
	Category    string         `json:"category"`
	IsCompleted bool           `json:"is_completed"`
	CompletedAt *time.Time     `json:"completed_at"`
}

type Statistics struct {
	TotalItems        int     `json:"total_items"`
	CompletedItems    int     `json:"completed_items"`
	CompletionRate    float64 `json:"completion_rate"`
	RoadmapTotal      int     `json:"roadmap_total"`
	RoadmapCompleted  int     `json:"roadmap_completed"`
	MaterialTotal     int     `json:"material_total"`
	MaterialCompleted int     `json:"material_completed"`
}

type ProgressOverview struct {
	Progress   []ProgressView `json:"progress"`
	Statistics Statistics     `json:"statistics"`
}

// NewStatistics 合併兩個範圍的計數；total 為 0 時完成率為 0
func NewStatistics(roadmapTotal, roadmapCompleted, materialTotal, materialCompleted int) Statistics {
	s := Statistics{
		RoadmapTotal:      roadmapTotal,
		RoadmapCompleted:  roadmapCompleted,
		MaterialTotal:     materialTotal,
		MaterialCompleted: materialCompleted,
		TotalItems:        roadmapTotal + materialTotal,
		CompletedItems:    roadmapCompleted + materialCompleted,
	}
	if s.TotalItems > 0 {
		s.CompletionRate = float64(s.CompletedItems) / float64(s.TotalItems)
	}
	return s
}

// UpdateProgress 設定使用者對單一項目的完成狀態。
// 項目必須存在於 itemType 對應的集合中；同一 (user, item) 只會有一筆紀錄。
func UpdateProgress(ctx context.Context, db database.DB, userID int, itemType model.ItemType, itemID int, completed bool) (*ProgressView, error) {
	var name, category string
	switch itemType {
	case model.ItemTypeRoadmap:
		r, err := getRoadmapByID(ctx, db, itemID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoadmapNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("UpdateProgress: %w", err)
		}
		name, category = r.Name, string(r.Category)
	case model.ItemTypeMaterial:
		m, err := getMaterialByID(ctx, db, itemID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("UpdateProgress: %w", err)
		}
		name, category = m.Title, string(m.Type)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidItemType, itemType)
	}

	p, err := upsertProgress(ctx, db, userID, itemType, itemID, completed, timeNow().UTC())
	if errors.Is(err, store.ErrForeignKey) {
		if itemType == model.ItemTypeMaterial {
			return nil, ErrMaterialNotFound
		}
		return nil, ErrRoadmapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateProgress: %w", err)
	}
	return &ProgressView{
		ID:          p.ID,
		ItemID:      itemID,
		ItemName:    name,
		ItemType:    itemType,
		Category:    category,
		IsCompleted: p.IsCompleted,
		CompletedAt: p.CompletedAt,
	}, nil
}

// GetProgressOverview 列出使用者進度與統計。
// category 只作用在 roadmap 範圍；指定 itemType 時另一個範圍的統計歸零。
func GetProgressOverview(ctx context.Context, db database.DB, userID int, category model.Category, itemType model.ItemType) (*ProgressOverview, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if itemType != "" && !itemType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidItemType, itemType)
	}
	if itemType == model.ItemTypeMaterial {
		category = ""
	}

	entries, err := listProgress(ctx, db, userID, category, itemType)
	if err != nil {
		return nil, fmt.Errorf("GetProgressOverview: %w", err)
	}
	counts, err := countProgress(ctx, db, userID, category)
	if err != nil {
		return nil, fmt.Errorf("GetProgressOverview: %w", err)
	}

	switch itemType {
	case model.ItemTypeRoadmap:
		counts.MaterialTotal, counts.MaterialCompleted = 0, 0
	case model.ItemTypeMaterial:
		counts.RoadmapTotal, counts.RoadmapCompleted = 0, 0
	}

	views := make([]ProgressView, len(entries))
	for i, e := range entries {
		views[i] = ProgressView{
			ID:          e.ID,
			ItemID:      e.ItemID(),
			ItemName:    e.ItemName,
			ItemType:    e.ItemType,
			Category:    e.Category,
			IsCompleted: e.IsCompleted,
			CompletedAt: e.CompletedAt,
		}
	}
	return &ProgressOverview{
		Progress:   views,
		Statistics: NewStatistics(counts.RoadmapTotal, counts.RoadmapCompleted, counts.MaterialTotal, counts.MaterialCompleted),
	}, nil
}
