package store

import (
	"context"

	"stacknori/internal/database"
	"stacknori/internal/model"
)

const roadmapColumns = `id, category, name, level, description, parent_id, created_at, updated_at`

func scanRoadmap(row interface{ Scan(...any) error }) (*model.Roadmap, error) {
	r := &model.Roadmap{}
	if err := row.Scan(
		&r.ID,
		&r.Category,
		&r.Name,
		&r.Level,
		&r.Description,
		&r.ParentID,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRoadmaps 以扁平形式回傳所有節點，依 level、id 排序
func ListRoadmaps(ctx context.Context, db database.DB) ([]model.Roadmap, error) {
	rows, err := db.Query(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps ORDER BY level, id`,
	)
	if err != nil {
		return nil, wrapErr("ListRoadmaps", err)
	}
	defer rows.Close()

	var list []model.Roadmap
	for rows.Next() {
		r, err := scanRoadmap(rows)
		if err != nil {
			return nil, wrapErr("ListRoadmaps", err)
		}
		list = append(list, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListRoadmaps", err)
	}
	return list, nil
}

func GetRoadmapByID(ctx context.Context, db database.DB, id int) (*model.Roadmap, error) {
	r, err := scanRoadmap(db.QueryRow(ctx,
		`SELECT `+roadmapColumns+` FROM roadmaps WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapErr("GetRoadmapByID", err)
	}
	return r, nil
}

// UpsertRoadmap 以 (category, name, parent_id) 為鍵新增或更新節點。
// 節點只能掛在既有節點之下，因此樹不會形成循環。
func UpsertRoadmap(ctx context.Context, db database.DB, r *model.Roadmap) (*model.Roadmap, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO roadmaps (category, name, level, description, parent_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (category, name, (COALESCE(parent_id, 0)))
		 DO UPDATE SET level = EXCLUDED.level,
		               description = EXCLUDED.description,
		               updated_at = now()
		 RETURNING id, created_at, updated_at`,
		string(r.Category),
		r.Name,
		r.Level,
		r.Description,
		r.ParentID,
	)
	if err := row.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, wrapErr("UpsertRoadmap", err)
	}
	return r, nil
}
