// Package pgstore реализует Record Store поверх PostgreSQL.
// Коллекции хранятся в таблице records как пары ключ-значение,
// внешний контракт хранилища от этого не меняется.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mxtmdev/investment-platform/internal/migrations"
)

// Store инкапсулирует соединение с PostgreSQL.
type Store struct {
	DB *sql.DB
}

// New открывает соединение с PostgreSQL, проверяет его
// и применяет миграции схемы из каталога migrationsPath.
func New(storageConnectionString, migrationsPath string) (*Store, error) {
	const op = "store.pgstore.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db, migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{DB: db}, nil
}

// Get возвращает значение по ключу и признак его наличия.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "store.pgstore.Get"

	var value string
	query := `SELECT value FROM records WHERE key = $1`
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return value, true, nil
}

// Set перезаписывает значение по ключу.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const op = "store.pgstore.Set"

	query := `INSERT INTO records (key, value) VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с базой данных.
func (s *Store) Close() error {
	return s.DB.Close()
}
