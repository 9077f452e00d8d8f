package main

import (
	"context"
	"errors"
	"fmt"

	"stacknori/internal/database"
	"stacknori/internal/model"
	"stacknori/internal/service"
	"stacknori/internal/store"

	"github.com/spf13/cobra"
)

var (
	getUserByEmail  = store.GetUserByEmail
	createUser      = store.CreateUser
	updateUserAdmin = store.UpdateUserAdmin
	hashPassword    = service.HashPassword
)

const minPasswordLength = 8

// createAdmin 建立管理員；帳號已存在時需 force 才會重設密碼並提升權限
func createAdmin(ctx context.Context, db database.DB, email, password string, force bool) (*model.User, error) {
	email = service.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email 不可為空")
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("密碼長度至少 %d 字元", minPasswordLength)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密碼雜湊失敗: %v", err)
	}

	existing, err := getUserByEmail(ctx, db, email)
	switch {
	case err == nil:
		if !force {
			return nil, fmt.Errorf("使用者 %s 已存在，若要覆寫請加上 --force", email)
		}
		if err := updateUserAdmin(ctx, db, existing.ID, hash, true); err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
		existing.IsSuperuser = true
		existing.IsActive = true
		return existing, nil
	case errors.Is(err, store.ErrNotFound):
		return createUser(ctx, db, &model.User{
			Email:        email,
			PasswordHash: hash,
			IsActive:     true,
			IsSuperuser:  true,
		})
	default:
		return nil, err
	}
}

func newCreateAdminCmd() *cobra.Command {
	var (
		email    string
		password string
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "建立或提升管理員帳號",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := newPgxPool(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("DB 連線失敗: %v", err)
			}
			defer db.Close()

			u, err := createAdmin(cmd.Context(), db, email, password, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin ready: id=%d email=%s\n", u.ID, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "管理員 email")
	cmd.Flags().StringVar(&password, "password", "", "管理員密碼")
	cmd.Flags().BoolVar(&force, "force", false, "帳號已存在時重設密碼並設為管理員")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
