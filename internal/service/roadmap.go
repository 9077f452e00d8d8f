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

var (
	listRoadmaps          = store.ListRoadmaps
	getRoadmapByID        = store.GetRoadmapByID
	upsertRoadmap         = store.UpsertRoadmap
	getRoadmapProgressMap = store.GetRoadmapProgressMap
)

// RoadmapView 為附上使用者完成狀態的路線圖節點
type RoadmapView struct {
	ID          int            `json:"id"`
	Category    model.Category `json:"category"`
	Name        string         `json:"name"`
	Level       int            `json:"level"`
	Description *string        `json:"description"`
	ParentID    *int           `json:"parent_id"`
	IsCompleted bool           `json:"is_completed"`
	Children    []*RoadmapView `json:"children"`
}

// BuildRoadmapTree 由扁平節點重建樹狀結構。
// 先建立全部節點的 view，再依原順序掛到父節點下；父節點不存在的節點會被略過。
func BuildRoadmapTree(nodes []model.Roadmap, progress map[int]bool) []*RoadmapView {
	views := make(map[int]*RoadmapView, len(nodes))
	for _, n := range nodes {
		views[n.ID] = &RoadmapView{
			ID:          n.ID,
			Category:    n.Category,
			Name:        n.Name,
			Level:       n.Level,
			Description: n.Description,
			ParentID:    n.ParentID,
			IsCompleted: progress[n.ID],
			Children:    []*RoadmapView{},
		}
	}

	roots := []*RoadmapView{}
	for _, n := range nodes {
		v := views[n.ID]
		if n.ParentID == nil {
			roots = append(roots, v)
			continue
		}
		if parent, ok := views[*n.ParentID]; ok {
			parent.Children = append(parent.Children, v)
		}
	}
	return roots
}

// ListRoadmaps 回傳使用者視角的路線圖樹
func ListRoadmaps(ctx context.Context, db database.DB, userID int) ([]*RoadmapView, error) {
	nodes, err := listRoadmaps(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("ListRoadmaps: %w", err)
	}
	progress, err := getRoadmapProgressMap(ctx, db, userID)
	if err != nil {
		return nil, fmt.Errorf("ListRoadmaps: %w", err)
	}
	return BuildRoadmapTree(nodes, progress), nil
}

// RoadmapInput 為管理員新增或更新節點的輸入
type RoadmapInput struct {
	Category    model.Category
	Name        string
	Level       int
	Description *string
	ParentID    *int
}

// UpsertRoadmap 以 (category, name, parent) 新增或更新節點。
// 父節點必須已存在且屬於同一分類；未指定 level 時由父節點推算。
func UpsertRoadmap(ctx context.Context, db database.DB, in RoadmapInput) (*model.Roadmap, error) {
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	level := in.Level
	if in.ParentID != nil {
		parent, err := getRoadmapByID(ctx, db, *in.ParentID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoadmapNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("UpsertRoadmap: %w", err)
		}
		if parent.Category != in.Category {
			return nil, fmt.Errorf("%w: parent belongs to %s", ErrInvalidCategory, parent.Category)
		}
		if level == 0 {
			level = parent.Level + 1
		}
	}
	if level == 0 {
		level = 1
	}

	r, err := upsertRoadmap(ctx, db, &model.Roadmap{
		Category:    in.Category,
		Name:        name,
		Level:       level,
		Description: in.Description,
		ParentID:    in.ParentID,
	})
	if errors.Is(err, store.ErrForeignKey) {
		return nil, ErrRoadmapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UpsertRoadmap: %w", err)
	}
	return r, nil
}
