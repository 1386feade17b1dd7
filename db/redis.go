// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if err := SetEncryptionKey([]byte(viper.GetString("redis.encryptionKey"))); err != nil {
		return err
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

// SetEncryptionKey sets the AES-256 key used for cached values.
func SetEncryptionKey(key []byte) error {
	if len(key) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}
	encryptionKey = key
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func resourceKey(uuid string) string {
	return fmt.Sprintf("resource:%s", uuid)
}

// sealResource encodes a resource as the base64 AES-GCM value stored in Redis.
func sealResource(res model.Resource) (string, error) {
	resourceJSON, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("failed to marshal resource: %w", err)
	}
	encrypted, err := encrypt(resourceJSON)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt resource: %w", err)
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

func openResource(value string) (model.Resource, error) {
	encrypted, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode resource: %w", err)
	}
	resourceJSON, err := decrypt(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt resource: %w", err)
	}
	return model.DecodeResource(resourceJSON)
}

// CacheResources writes resources in one pipeline, overwriting earlier
// versions.
func CacheResources(ctx context.Context, resources []model.Resource) error {
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	pipe := RedisClient.Pipeline()
	for _, res := range resources {
		value, err := sealResource(res)
		if err != nil {
			return err
		}
		pipe.Set(ctx, resourceKey(res.Header().UUID), value, defaultTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache resources: %w", err)
	}

	logger.Debug("Resources cached successfully", zap.Int("count", len(resources)))
	return nil
}

// GetCachedResource returns nil, nil on a cache miss.
func GetCachedResource(ctx context.Context, uuid string) (model.Resource, error) {
	value, err := RedisClient.Get(ctx, resourceKey(uuid)).Result()
	if err == redis.Nil {
		logger.Debug("Resource not found in cache", zap.String("uuid", uuid))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get resource from cache: %w", err)
	}

	res, err := openResource(value)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resource retrieved from cache", zap.String("uuid", uuid))
	return res, nil
}

func DeleteCachedResource(ctx context.Context, uuid string) error {
	err := RedisClient.Del(ctx, resourceKey(uuid)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete resource from cache: %w", err)
	}
	logger.Debug("Resource deleted from cache", zap.String("uuid", uuid))
	return nil
}

// RateLimit is a sliding window counter: a sorted set of request timestamps
// per key, trimmed to the window on every call.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}

// RedisLimiter adapts RateLimit to the HTTP middleware.
type RedisLimiter struct{}

func (RedisLimiter) Allow(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	return RateLimit(ctx, key, limit, per)
}
