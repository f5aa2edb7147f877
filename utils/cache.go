// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"styledecor/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated Redis client for authorization caching
// (email-to-role lookups used by the RequireRole middleware).
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth): %v", err)
	}
}

// GetAuthCacheClient returns the authorization cache client.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

func roleCacheKey(email string) string {
	return "role:" + email
}

// CachedRole returns the cached role for an email, or "" on a miss.
func CachedRole(ctx context.Context, email string) string {
	if AuthCacheClient == nil {
		return ""
	}
	role, err := AuthCacheClient.Get(ctx, roleCacheKey(email)).Result()
	if err != nil {
		return ""
	}
	return role
}

// CacheRole stores the role for an email with the configured TTL.
func CacheRole(ctx context.Context, email, role string) {
	if AuthCacheClient == nil {
		return
	}
	ttl := time.Duration(config.AppConfig.RoleCacheTTL) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	AuthCacheClient.Set(ctx, roleCacheKey(email), role, ttl)
}

// InvalidateRole drops the cached role for an email. Called whenever a role
// changes so promotions and demotions take effect immediately.
func InvalidateRole(ctx context.Context, email string) {
	if AuthCacheClient == nil {
		return
	}
	AuthCacheClient.Del(ctx, roleCacheKey(email))
}
