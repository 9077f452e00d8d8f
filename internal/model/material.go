// File: internal/model/material.go
package model

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate
}

type MaterialType string

const (
	MaterialTypeDocument MaterialType = "document"
	MaterialTypeVideo    MaterialType = "video"
)

func (t MaterialType) Valid() bool {
	return t == MaterialTypeDocument || t == MaterialTypeVideo
}

type Material struct {
	ID         int          `db:"id" json:"id"`
	Title      string       `db:"title" json:"title"`
	URL        string       `db:"url" json:"url"`
	Difficulty Difficulty   `db:"difficulty" json:"difficulty"`
	Type       MaterialType `db:"type" json:"type"`
	Source     *string      `db:"source" json:"source"`
	Summary    *string      `db:"summary" json:"summary"`
	Keywords   []string     `db:"keywords" json:"keywords"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

type Scrap struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	MaterialID int       `db:"material_id" json:"material_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
