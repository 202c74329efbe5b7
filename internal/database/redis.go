package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Para-FR/youtube-linktree-demo/internal/config"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Token revocation and page caching will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// --- Token Revocation (logout) ---

// BlacklistToken stores a token JTI until its natural expiry so logged-out
// tokens stop working server-side.
func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	key := fmt.Sprintf("blacklist:%s", jti)
	return Redis.Set(Ctx, key, "revoked", ttl).Err()
}

// IsTokenBlacklisted reports whether a token JTI has been revoked.
// If Redis is unavailable the token is treated as valid.
func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	exists, err := Redis.Exists(Ctx, fmt.Sprintf("blacklist:%s", jti)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// --- Public Page Cache ---

func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return nil
	}
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
