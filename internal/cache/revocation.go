package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	revokedTokenPrefix = "auth:revoked:"
	// 撤銷紀錄的最短保留時間
	minRevocationTTL = time.Second
)

// ErrAlreadyRevoked 表示 jti 已在撤銷清單中
var ErrAlreadyRevoked = errors.New("token already revoked")

// RevokedTokenKey 回傳 token id 在撤銷清單中的 key
func RevokedTokenKey(jti string) string {
	return revokedTokenPrefix + jti
}

// RevokeToken 以 SET NX 將 jti 加入撤銷清單，ttl 應為 token 剩餘有效時間。
// 同一 jti 只有第一個呼叫者成功，其餘回傳 ErrAlreadyRevoked。
func RevokeToken(ctx context.Context, c Cache, jti string, ttl time.Duration) error {
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}
	ok, err := c.SetNX(ctx, RevokedTokenKey(jti), "1", ttl).Result()
	if err != nil {
		return fmt.Errorf("RevokeToken: %w", err)
	}
	if !ok {
		return ErrAlreadyRevoked
	}
	return nil
}

// IsTokenRevoked 查詢 jti 是否已被撤銷
func IsTokenRevoked(ctx context.Context, c Cache, jti string) (bool, error) {
	err := c.Get(ctx, RevokedTokenKey(jti)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("IsTokenRevoked: %w", err)
	}
}
