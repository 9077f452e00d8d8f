package service

import (
	"context"
	"sync"
	"time"

	"stacknori/internal/cache"
	"stacknori/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// restoreGlobals 還原所有可覆寫的套件變數
func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID = func() string { return uuid.NewString() }

	getUserByID = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	isTokenRevoked = cache.IsTokenRevoked
	revokeToken = cache.RevokeToken

	listRoadmaps = store.ListRoadmaps
	getRoadmapByID = store.GetRoadmapByID
	upsertRoadmap = store.UpsertRoadmap
	getRoadmapProgressMap = store.GetRoadmapProgressMap

	searchMaterials = store.SearchMaterials
	countMaterials = store.CountMaterials
	getMaterialByID = store.GetMaterialByID
	createMaterial = store.CreateMaterial
	scrappedMaterialIDs = store.ScrappedMaterialIDs
	addScrap = store.AddScrap
	removeScrap = store.RemoveScrap

	upsertProgress = store.UpsertProgress
	listProgress = store.ListProgress
	countProgress = store.CountProgress
}

type memEntry struct {
	val string
	ttl time.Duration
}

// newMemCache 回傳以 map 實作的 FakeCache，可供多個 goroutine 使用
func newMemCache() (*cache.FakeCache, map[string]memEntry) {
	var mu sync.Mutex
	data := map[string]memEntry{}
	c := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			mu.Lock()
			defer mu.Unlock()
			if e, ok := data[key]; ok {
				return redis.NewStringResult(e.val, nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, val any, ttl time.Duration) *redis.StatusCmd {
			mu.Lock()
			defer mu.Unlock()
			data[key] = memEntry{val: val.(string), ttl: ttl}
			return redis.NewStatusResult("OK", nil)
		},
		SetNXFn: func(_ context.Context, key string, val any, ttl time.Duration) *redis.BoolCmd {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := data[key]; ok {
				return redis.NewBoolResult(false, nil)
			}
			data[key] = memEntry{val: val.(string), ttl: ttl}
			return redis.NewBoolResult(true, nil)
		},
	}
	return c, data
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
