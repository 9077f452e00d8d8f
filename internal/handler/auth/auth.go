package auth

import (
	"context"

	"stacknori/internal/model"
	"stacknori/internal/service"
)

// Authenticator 為 auth handler 所需的認證操作，*service.Authenticator 直接滿足
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	IssueTokenPair(u *model.User) (*service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
}
