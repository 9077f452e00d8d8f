// File: internal/model/progress.go
package model

import (
	"fmt"
	"time"
)

// ItemType 進度追蹤的項目種類，只有 roadmap 與 material 兩種
type ItemType string

const (
	ItemTypeRoadmap  ItemType = "roadmap"
	ItemTypeMaterial ItemType = "material"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeRoadmap || t == ItemTypeMaterial
}

// ParseItemType 解析查詢參數；空字串視為 roadmap
func ParseItemType(s string) (ItemType, error) {
	if s == "" {
		return ItemTypeRoadmap, nil
	}
	t := ItemType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown item type %q", s)
	}
	return t, nil
}

// Progress 為 user_progress 表的一列。
// ItemType 為 roadmap 時只有 RoadmapID 有值，為 material 時只有 MaterialID 有值。
type Progress struct {
	ID          int        `db:"id" json:"id"`
	UserID      int        `db:"user_id" json:"user_id"`
	ItemType    ItemType   `db:"item_type" json:"item_type"`
	RoadmapID   *int       `db:"roadmap_id" json:"roadmap_id"`
	MaterialID  *int       `db:"material_id" json:"material_id"`
	IsCompleted bool       `db:"is_completed" json:"is_completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ItemID 回傳依 ItemType 對應的外鍵
func (p Progress) ItemID() int {
	if p.ItemType == ItemTypeMaterial && p.MaterialID != nil {
		return *p.MaterialID
	}
	if p.RoadmapID != nil {
		return *p.RoadmapID
	}
	return 0
}
