package store

import (
	"context"

	"stacknori/internal/database"
)

// AddScrap 新增收藏；已存在時不做任何事 (uq_material_scrap)
func AddScrap(ctx context.Context, db database.DB, userID, materialID int) error {
	_, err := db.Exec(ctx,
		`INSERT INTO material_scraps (user_id, material_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, material_id) DO NOTHING`,
		userID,
		materialID,
	)
	return wrapErr("AddScrap", err)
}

// RemoveScrap 刪除收藏；不存在時不做任何事
func RemoveScrap(ctx context.Context, db database.DB, userID, materialID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM material_scraps WHERE user_id = $1 AND material_id = $2`,
		userID,
		materialID,
	)
	return wrapErr("RemoveScrap", err)
}

// ScrappedMaterialIDs 回傳 materialIDs 中已被使用者收藏的 id 集合
func ScrappedMaterialIDs(ctx context.Context, db database.DB, userID int, materialIDs []int) (map[int]bool, error) {
	set := make(map[int]bool, len(materialIDs))
	if len(materialIDs) == 0 {
		return set, nil
	}
	rows, err := db.Query(ctx,
		`SELECT material_id FROM material_scraps WHERE user_id = $1 AND material_id = ANY($2)`,
		userID,
		materialIDs,
	)
	if err != nil {
		return nil, wrapErr("ScrappedMaterialIDs", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr("ScrappedMaterialIDs", err)
		}
		set[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ScrappedMaterialIDs", err)
	}
	return set, nil
}
