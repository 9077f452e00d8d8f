// File: internal/dto/token_response.go
package dto

const TokenTypeBearer = "bearer"

// swagger:model dto.TokenResponse
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOi..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOi..."`
	TokenType    string `json:"token_type" example:"bearer"`
}
