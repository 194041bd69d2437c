// Package cache хранит в Redis список отозванных сессий.
//
// Сессия живёт в подписанной cookie, поэтому выход из системы помечает её
// идентификатор (jti) как отозванный до момента естественного истечения.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/nutriede/internal/config"
)

const revokedPrefix = "session:revoked:"

type Cache struct {
	Db *redis.Client
}

func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// RevokeSession помечает сессию отозванной на время ttl.
// Нулевой или отрицательный ttl означает, что сессия уже истекла и запись не нужна.
func (c *Cache) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	const op = "cache.RevokeSession"
	if ttl <= 0 {
		return nil
	}
	if err := c.Db.Set(ctx, revokedPrefix+sessionID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsRevoked сообщает, была ли сессия отозвана.
func (c *Cache) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	const op = "cache.IsRevoked"
	n, err := c.Db.Exists(ctx, revokedPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx).Err()
}

// Close закрывает клиент.
func (c *Cache) Close() error {
	return c.Db.Close()
}
