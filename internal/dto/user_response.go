// File: internal/dto/user_response.go
package dto

import (
	"time"

	"stacknori/internal/model"
)

// UserResponse 使用者公開資訊，不含密碼哈希
// swagger:model dto.UserResponse
type UserResponse struct {
	ID          int       `json:"id" example:"1"`
	Email       string    `json:"email" example:"alice@example.com"`
	IsActive    bool      `json:"is_active" example:"true"`
	IsSuperuser bool      `json:"is_superuser" example:"false"`
	CreatedAt   time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
