// Package redisstore реализует Record Store поверх Redis.
// Значения хранятся как строки без срока жизни: Redis здесь выступает
// персистентным key-value хранилищем, а не кешем.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mxtmdev/investment-platform/internal/config"
)

// Store инкапсулирует клиент Redis.
type Store struct {
	Db *redis.Client
}

// New создает клиент Redis по настройкам подключения и проверяет соединение.
func New(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "store.redisstore.New"
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
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db}, nil
}

// Get возвращает значение по ключу и признак его наличия.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "store.redisstore.Get"
	val, err := s.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set перезаписывает значение по ключу без срока жизни.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const op = "store.redisstore.Set"
	if err := s.Db.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает подключение к Redis.
func (s *Store) Close() error {
	return s.Db.Close()
}
