package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const authTokenPrefix = "authToken:"

// CacheTokenHash stores the hash of a user's current auth token with a TTL so
// the auth middleware can validate tokens without a profile lookup.
func CacheTokenHash(client *redis.Client, userID, tokenHash string, ttl time.Duration) error {
	ctx := context.Background()
	return client.Set(ctx, authTokenPrefix+userID, tokenHash, ttl).Err()
}

// GetCachedTokenHash retrieves a user's cached token hash. An empty string is
// returned on cache miss.
func GetCachedTokenHash(client *redis.Client, userID string) string {
	ctx := context.Background()
	hash, err := client.Get(ctx, authTokenPrefix+userID).Result()
	if err != nil {
		return ""
	}
	return hash
}

// DeleteCachedTokenHash removes a user's cached token hash (sign-out or
// revocation).
func DeleteCachedTokenHash(client *redis.Client, userID string) error {
	ctx := context.Background()
	return client.Del(ctx, authTokenPrefix+userID).Err()
}
