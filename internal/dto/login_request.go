// File: internal/dto/login_request.go
package dto

// LoginRequest 沿用 OAuth2 password form，username 即 email
// swagger:model dto.LoginRequest
type LoginRequest struct {
	Username string `form:"username" validate:"required" example:"alice@example.com"`
	Password string `form:"password" validate:"required" example:"Secret123!"`
}
