package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stacknori/internal/database"
	"stacknori/internal/model"
)

const progressColumns = `id, user_id, item_type, roadmap_id, material_id, is_completed, completed_at, created_at, updated_at`

// ProgressEntry 為帶有項目名稱與分類的進度紀錄。
// roadmap 的 Category 為路線圖分類，material 則為教材類型
type ProgressEntry struct {
	model.Progress
	ItemName string
	Category string
}

// ProgressCounts 為統計所需的四個計數
type ProgressCounts struct {
	RoadmapTotal      int
	RoadmapCompleted  int
	MaterialTotal     int
	MaterialCompleted int
}

func progressDest(p *model.Progress) []any {
	return []any{
		&p.ID,
		&p.UserID,
		&p.ItemType,
		&p.RoadmapID,
		&p.MaterialID,
		&p.IsCompleted,
		&p.CompletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

// GetRoadmapProgressMap 回傳使用者 roadmap 進度 {roadmap_id: is_completed}
func GetRoadmapProgressMap(ctx context.Context, db database.DB, userID int) (map[int]bool, error) {
	rows, err := db.Query(ctx,
		`SELECT roadmap_id, is_completed
		 FROM user_progress
		 WHERE user_id = $1 AND item_type = 'roadmap'`,
		userID,
	)
	if err != nil {
		return nil, wrapErr("GetRoadmapProgressMap", err)
	}
	defer rows.Close()

	m := map[int]bool{}
	for rows.Next() {
		var (
			id        int
			completed bool
		)
		if err := rows.Scan(&id, &completed); err != nil {
			return nil, wrapErr("GetRoadmapProgressMap", err)
		}
		m[id] = completed
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("GetRoadmapProgressMap", err)
	}
	return m, nil
}

// UpsertProgress 以 (user, item) 的唯一約束原子地新增或更新進度。
// 已完成的項目再次標記完成時保留原本的 completed_at；取消完成時清除。
func UpsertProgress(ctx context.Context, db database.DB, userID int, itemType model.ItemType, itemID int, completed bool, now time.Time) (*model.Progress, error) {
	var fkColumn string
	switch itemType {
	case model.ItemTypeRoadmap:
		fkColumn = "roadmap_id"
	case model.ItemTypeMaterial:
		fkColumn = "material_id"
	default:
		return nil, fmt.Errorf("UpsertProgress: unknown item type %q", itemType)
	}

	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	query := fmt.Sprintf(
		`INSERT INTO user_progress (user_id, item_type, %[1]s, is_completed, completed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, %[1]s) DO UPDATE
		 SET is_completed = EXCLUDED.is_completed,
		     completed_at = CASE WHEN EXCLUDED.is_completed
		                         THEN COALESCE(user_progress.completed_at, EXCLUDED.completed_at)
		                         ELSE NULL END,
		     updated_at = now()
		 RETURNING %[2]s`, fkColumn, progressColumns)

	p := &model.Progress{}
	if err := db.QueryRow(ctx, query,
		userID,
		string(itemType),
		itemID,
		completed,
		completedAt,
	).Scan(progressDest(p)...); err != nil {
		return nil, wrapErr("UpsertProgress", err)
	}
	return p, nil
}

// ListProgress 列出使用者所有進度。category 只套用在 roadmap 項目；
// itemType 為空時不限制種類。
func ListProgress(ctx context.Context, db database.DB, userID int, category model.Category, itemType model.ItemType) ([]ProgressEntry, error) {
	args := []any{userID}
	conds := []string{"p.user_id = $1"}
	if itemType != "" {
		args = append(args, string(itemType))
		conds = append(conds, fmt.Sprintf("p.item_type = $%d", len(args)))
	}
	if category != "" && itemType != model.ItemTypeMaterial {
		args = append(args, string(category))
		conds = append(conds, fmt.Sprintf("(p.item_type <> 'roadmap' OR r.category = $%d)", len(args)))
	}

	cols := make([]string, 0, 11)
	for _, c := range strings.Split(progressColumns, ", ") {
		cols = append(cols, "p."+c)
	}
	query := `SELECT ` + strings.Join(cols, ", ") + `,
		        COALESCE(r.name, m.title, ''),
		        COALESCE(r.category, m.type, '')
		 FROM user_progress p
		 LEFT JOIN roadmaps r ON r.id = p.roadmap_id
		 LEFT JOIN materials m ON m.id = p.material_id
		 WHERE ` + strings.Join(conds, " AND ") + `
		 ORDER BY p.id`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("ListProgress", err)
	}
	defer rows.Close()

	list := []ProgressEntry{}
	for rows.Next() {
		var e ProgressEntry
		dest := append(progressDest(&e.Progress), &e.ItemName, &e.Category)
		if err := rows.Scan(dest...); err != nil {
			return nil, wrapErr("ListProgress", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListProgress", err)
	}
	return list, nil
}

// CountProgress 計算 roadmap 與 material 兩個範圍的總數與完成數；
// category 只影響 roadmap 範圍
func CountProgress(ctx context.Context, db database.DB, userID int, category model.Category) (*ProgressCounts, error) {
	c := &ProgressCounts{}
	err := db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM roadmaps
		     WHERE $2::text = '' OR category = $2::text),
		   (SELECT COUNT(*) FROM user_progress p
		     JOIN roadmaps r ON r.id = p.roadmap_id
		     WHERE p.user_id = $1 AND p.item_type = 'roadmap' AND p.is_completed
		       AND ($2::text = '' OR r.category = $2::text)),
		   (SELECT COUNT(*) FROM materials),
		   (SELECT COUNT(*) FROM user_progress
		     WHERE user_id = $1 AND item_type = 'material' AND is_completed)`,
		userID,
		string(category),
	).Scan(&c.RoadmapTotal, &c.RoadmapCompleted, &c.MaterialTotal, &c.MaterialCompleted)
	if err != nil {
		return nil, wrapErr("CountProgress", err)
	}
	return c, nil
}
