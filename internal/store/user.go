package store

import (
	"context"

	"stacknori/internal/database"
	"stacknori/internal/model"
)

const userColumns = `id, email, password_hash, is_active, is_superuser, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.IsActive,
		&u.IsSuperuser,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrapErr("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, wrapErr("GetUserByEmail", err)
	}
	return u, nil
}

// CreateUser 新增使用者；email 重複時回傳 ErrDuplicate
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, is_active, is_superuser)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Email,
		u.PasswordHash,
		u.IsActive,
		u.IsSuperuser,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, wrapErr("CreateUser", err)
	}
	return u, nil
}

// UpdateUserAdmin 重設密碼並設定管理員旗標，同時重新啟用帳號
func UpdateUserAdmin(ctx context.Context, db database.DB, userID int, passwordHash string, isSuperuser bool) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, is_superuser = $2, is_active = TRUE, updated_at = now()
		 WHERE id = $3`,
		passwordHash,
		isSuperuser,
		userID,
	)
	if err != nil {
		return wrapErr("UpdateUserAdmin", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr("UpdateUserAdmin", ErrNotFound)
	}
	return nil
}
