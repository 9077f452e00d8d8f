package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stacknori/internal/cache"
	"stacknori/internal/config"
	"stacknori/internal/database"
	"stacknori/internal/model"
	"stacknori/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType 區分 access 與 refresh token，兩者不可互換
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims 定義 JWT 負載內容；sub 為使用者 id，jti 為 token id
type Claims struct {
	Type        TokenType `json:"type"`
	IsSuperuser bool      `json:"is_superuser,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// 可於測試覆寫
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID      = func() string { return uuid.NewString() }

	getUserByID    = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	createUser     = store.CreateUser
	isTokenRevoked = cache.IsTokenRevoked
	revokeToken    = cache.RevokeToken
)

// Authenticator 負責註冊、登入與 token 的簽發、驗證及撤銷
type Authenticator struct {
	db         database.DB
	cache      cache.Cache
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthenticator(cfg *config.Config, db database.DB, c cache.Cache) *Authenticator {
	a := &Authenticator{
		db:         db,
		cache:      c,
		secret:     []byte(cfg.SecretKey),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
	if a.accessTTL <= 0 {
		a.accessTTL = config.DefaultAccessTokenTTL
	}
	if a.refreshTTL <= 0 {
		a.refreshTTL = config.DefaultRefreshTokenTTL
	}
	return a
}

// NormalizeEmail 去除空白並轉小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 建立一般使用者。
// 先查詢作為快速路徑，並發註冊仍由 email 唯一索引把關。
func (a *Authenticator) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	_, err := getUserByEmail(ctx, a.db, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("Register: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	u, err := createUser(ctx, a.db, &model.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	return u, nil
}

// Authenticate 驗證 email 與密碼，帳號不存在、停用或密碼錯誤皆回傳 ErrInvalidCredentials
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := getUserByEmail(ctx, a.db, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokenPair 為使用者簽發一組 access / refresh token
func (a *Authenticator) IssueTokenPair(u *model.User) (*TokenPair, error) {
	access, err := a.sign(u, TokenTypeAccess, a.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := a.sign(u, TokenTypeRefresh, a.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (a *Authenticator) sign(u *model.User, typ TokenType, ttl time.Duration) (string, error) {
	now := timeNow()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newTokenID(),
		},
	}
	if typ == TokenTypeAccess {
		claims.IsSuperuser = u.IsSuperuser
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// ParseToken 驗證簽章、有效期限與 type，任何失敗皆包裝為 ErrInvalidToken
func (a *Authenticator) ParseToken(tokenString string, expected TokenType) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(timeNow), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != expected {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, expected)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing token id", ErrInvalidToken)
	}
	return claims, nil
}

// lookupSubject 以 sub 取得使用者；不存在或停用回傳 ErrUserNotFound
func (a *Authenticator) lookupSubject(ctx context.Context, claims *Claims) (*model.User, error) {
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}
	u, err := getUserByID(ctx, a.db, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ResolveCurrentUser 由 access token 取得目前使用者
func (a *Authenticator) ResolveCurrentUser(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := a.ParseToken(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return a.lookupSubject(ctx, claims)
}

// Refresh 驗證 refresh token 並輪替。
// 舊 jti 以 SET NX 寫入撤銷清單，同一 token 併發換發時只有一個請求拿到新的一組。
func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.ParseToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	revoked, err := isTokenRevoked(ctx, a.cache, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("Refresh: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", ErrInvalidToken)
	}

	u, err := a.lookupSubject(ctx, claims)
	if err != nil {
		return nil, err
	}
	err = revokeToken(ctx, a.cache, claims.ID, claims.ExpiresAt.Sub(timeNow()))
	if errors.Is(err, cache.ErrAlreadyRevoked) {
		return nil, fmt.Errorf("%w: token revoked", ErrInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("Refresh: %w", err)
	}
	return a.IssueTokenPair(u)
}

// Revoke 將 refresh token 列入撤銷清單 (登出)；重複登出視為成功
func (a *Authenticator) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := a.ParseToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return err
	}
	err = revokeToken(ctx, a.cache, claims.ID, claims.ExpiresAt.Sub(timeNow()))
	if err != nil && !errors.Is(err, cache.ErrAlreadyRevoked) {
		return fmt.Errorf("Revoke: %w", err)
	}
	return nil
}
