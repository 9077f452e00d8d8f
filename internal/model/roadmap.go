// File: internal/model/roadmap.go
package model

import "time"

// Category 路線圖分類
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryDevOps   Category = "devops"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategoryDevOps:
		return true
	}
	return false
}

// Roadmap 為 roadmaps 表的一列；樹狀結構以 ParentID 表示
type Roadmap struct {
	ID          int       `db:"id" json:"id"`
	Category    Category  `db:"category" json:"category"`
	Name        string    `db:"name" json:"name"`
	Level       int       `db:"level" json:"level"`
	Description *string   `db:"description" json:"description"`
	ParentID    *int      `db:"parent_id" json:"parent_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
