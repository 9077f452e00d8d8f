package store

import (
	"context"
	"fmt"
	"strings"

	"stacknori/internal/database"
	"stacknori/internal/model"
)

const materialColumns = `id, title, url, difficulty, type, source, summary, keywords, created_at, updated_at`

// MaterialFilter 描述教材搜尋條件，空值代表不過濾
type MaterialFilter struct {
	Keyword    string
	Difficulty model.Difficulty
	Type       model.MaterialType
	Limit      int
	Offset     int
}

// likeEscaper 跳脫 ILIKE 的萬用字元，讓關鍵字以字面比對
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// where 產生共用的 WHERE 子句；count 與分頁查詢必須使用同一組條件
func (f MaterialFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		args = append(args, "%"+likeEscaper.Replace(kw)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE $%[1]d OR summary ILIKE $%[1]d OR EXISTS (SELECT 1 FROM unnest(keywords) AS k WHERE k ILIKE $%[1]d))`, n))
	}
	if f.Difficulty != "" {
		args = append(args, string(f.Difficulty))
		conds = append(conds, fmt.Sprintf(`difficulty = $%d`, len(args)))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		conds = append(conds, fmt.Sprintf(`type = $%d`, len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanMaterial(row interface{ Scan(...any) error }) (*model.Material, error) {
	m := &model.Material{}
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.URL,
		&m.Difficulty,
		&m.Type,
		&m.Source,
		&m.Summary,
		&m.Keywords,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if m.Keywords == nil {
		m.Keywords = []string{}
	}
	return m, nil
}

// SearchMaterials 回傳符合條件的一頁教材，依建立時間新到舊、id 小到大排序
func SearchMaterials(ctx context.Context, db database.DB, f MaterialFilter) ([]model.Material, error) {
	where, args := f.where()
	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + materialColumns + ` FROM materials` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("SearchMaterials", err)
	}
	defer rows.Close()

	list := []model.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, wrapErr("SearchMaterials", err)
		}
		list = append(list, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("SearchMaterials", err)
	}
	return list, nil
}

// CountMaterials 回傳符合條件的總筆數 (忽略 Limit/Offset)
func CountMaterials(ctx context.Context, db database.DB, f MaterialFilter) (int, error) {
	where, args := f.where()
	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM materials`+where, args...).Scan(&total); err != nil {
		return 0, wrapErr("CountMaterials", err)
	}
	return total, nil
}

func GetMaterialByID(ctx context.Context, db database.DB, id int) (*model.Material, error) {
	m, err := scanMaterial(db.QueryRow(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapErr("GetMaterialByID", err)
	}
	return m, nil
}

func CreateMaterial(ctx context.Context, db database.DB, m *model.Material) (*model.Material, error) {
	if m.Keywords == nil {
		m.Keywords = []string{}
	}
	row := db.QueryRow(ctx,
		`INSERT INTO materials (title, url, difficulty, type, source, summary, keywords)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		m.Title,
		m.URL,
		string(m.Difficulty),
		string(m.Type),
		m.Source,
		m.Summary,
		m.Keywords,
	)
	if err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, wrapErr("CreateMaterial", err)
	}
	return m, nil
}
